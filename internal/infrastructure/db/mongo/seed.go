package mongo

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/erosmarket/storefront/internal/core/domain"
)

// seedProducts is the reference catalog loaded into an empty database.
var seedProducts = []domain.Product{
	{Name: "Mate Imperial", Price: 45.00, Stock: 12, Category: "kitchen", Image: "🧉", Description: "Hand-carved calabash mate with alpaca trim"},
	{Name: "Leather Wallet", Price: 32.50, Stock: 20, Category: "accessories", Image: "👛", Description: "Full-grain vegetable-tanned leather"},
	{Name: "Alfajores Box", Price: 18.00, Stock: 40, Category: "food", Image: "🍪", Description: "Dozen dulce de leche alfajores"},
	{Name: "Wool Poncho", Price: 89.90, Stock: 6, Category: "clothing", Image: "🧥", Description: "Handwoven llama wool, natural dyes"},
	{Name: "Silver Earrings", Price: 54.00, Stock: 15, Category: "jewelry", Image: "💍", Description: "Sterling silver filigree"},
	{Name: "Tango Vinyl", Price: 27.00, Stock: 9, Category: "music", Image: "🎵", Description: "Remastered golden-age tango recordings"},
}

// SeedProducts inserts the reference catalog when the collection is empty.
// Re-running against a populated database is a no-op.
func SeedProducts(ctx context.Context, repo *ProductRepository, log zerolog.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i := range seedProducts {
		if _, err := repo.Create(ctx, &seedProducts[i]); err != nil {
			return err
		}
	}

	log.Info().Int("products", len(seedProducts)).Msg("seeded catalog")
	return nil
}
