package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/erosmarket/storefront/internal/core/domain"
)

type stubProductRepo struct {
	products map[string]*domain.Product
	nextID   int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	clone := *product
	r.nextID++
	clone.ID = "p_" + strconv.Itoa(r.nextID)
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func TestProductService_CreateAndGet(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), zerolog.Nop())

	created, err := svc.CreateProduct(context.Background(), &domain.Product{Name: "Mate cup", Price: 12.5, Stock: 8, Category: "kitchen"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}

	got, err := svc.GetProduct(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Mate cup" || got.Price != 12.5 {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestProductService_GetMissing(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), zerolog.Nop())

	if _, err := svc.GetProduct(context.Background(), "p_missing"); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_UpdateDelete(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, zerolog.Nop())

	created, _ := svc.CreateProduct(context.Background(), &domain.Product{Name: "Mug", Price: 5})
	created.Price = 6
	if err := svc.UpdateProduct(context.Background(), created); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.products[created.ID].Price != 6 {
		t.Fatalf("price not persisted")
	}

	if err := svc.DeleteProduct(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteProduct(context.Background(), created.ID); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound on second delete, got %v", err)
	}
}
