package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/erosmarket/storefront/internal/client/session"
	"github.com/erosmarket/storefront/internal/client/storage"
	"github.com/erosmarket/storefront/internal/core/domain"
	"github.com/erosmarket/storefront/internal/core/ports"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sess := session.NewStore(storage.NewMemStore(), zerolog.Nop())
	return NewClient(server.URL, sess), sess
}

func TestClient_LoginFeedsSessionStore(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["email"] != "a@x.com" || req["password"] != "pw1" {
			t.Fatalf("unexpected credentials: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"token":    "signed-token",
			"username": "alice",
			"email":    "a@x.com",
			"role":     domain.RoleGuest,
		})
	})

	client, sess := newTestClient(t, mux)

	result, err := client.Login(context.Background(), "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token != "signed-token" {
		t.Fatalf("unexpected token: %s", result.Token)
	}
	if !sess.IsAuthenticated() || sess.Token() != "signed-token" {
		t.Fatalf("login must feed the session store")
	}
}

func TestClient_LoginRejection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	})

	client, sess := newTestClient(t, mux)

	if _, err := client.Login(context.Background(), "a@x.com", "wrong"); err == nil {
		t.Fatalf("expected error")
	}
	if sess.IsAuthenticated() {
		t.Fatalf("failed login must not touch the session store")
	}
}

func TestClient_AuthenticatedRequestCarriesBearer(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	})

	client, sess := newTestClient(t, mux)
	sess.Login(loginFixture())

	if err := client.UpdateProfile(context.Background(), "alicia", "alicia@x.com", ""); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if gotAuth != "Bearer signed-token" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if sess.Current().Username != "alicia" {
		t.Fatalf("profile update must mirror into the session store")
	}
}

func TestClient_LogoutClearsSessionEvenOnServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
	})

	client, sess := newTestClient(t, mux)
	sess.Login(loginFixture())

	if err := client.Logout(context.Background()); err == nil {
		t.Fatalf("expected server error to surface")
	}
	if sess.IsAuthenticated() {
		t.Fatalf("local session must clear regardless of server outcome")
	}
}

func TestClient_ListProducts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]domain.Product{{ID: "p_1", Name: "Mate cup", Price: 12.5}})
	})

	client, _ := newTestClient(t, mux)

	products, err := client.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Mate cup" {
		t.Fatalf("unexpected products: %+v", products)
	}
}

func loginFixture() ports.LoginResult {
	return ports.LoginResult{
		Token:    "signed-token",
		Username: "alice",
		Email:    "a@x.com",
		Role:     domain.RoleGuest,
	}
}
