// Package api is the typed HTTP client the storefront frontends use to talk
// to the server. Successful logins feed the session store; authenticated
// calls read the bearer token back out of it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/erosmarket/storefront/internal/client/session"
	"github.com/erosmarket/storefront/internal/core/domain"
	"github.com/erosmarket/storefront/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client wraps the storefront HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store
}

func NewClient(baseURL string, sess *session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		session: sess,
	}
}

// apiError is the server's {"error": "..."} envelope surfaced to callers.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Login authenticates and stores the resulting session.
func (c *Client) Login(ctx context.Context, email, secret string) (*ports.LoginResult, error) {
	var result ports.LoginResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": secret,
	}, &result, false)
	if err != nil {
		return nil, err
	}
	c.session.Login(result)
	return &result, nil
}

// Register creates a new account. It does not log in.
func (c *Client) Register(ctx context.Context, username, email, secret, avatar string) (*domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": secret,
		"avatar":   avatar,
	}, &user, false)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the server-side token when possible, then always clears
// the local session.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, true)
	c.session.Logout()
	return err
}

// UpdateProfile pushes the new display fields and mirrors them locally.
func (c *Client) UpdateProfile(ctx context.Context, username, email, avatar string) error {
	err := c.do(ctx, http.MethodPut, "/api/users/profile", map[string]string{
		"username": username,
		"email":    email,
		"avatar":   avatar,
	}, nil, true)
	if err != nil {
		return err
	}
	c.session.UpdateProfile(username, email, avatar)
	return nil
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products, false); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+id, nil, &product, false); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	var created domain.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", product, &created, true); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, product domain.Product) error {
	return c.do(ctx, http.MethodPut, "/api/products/"+product.ID, product, nil, true)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+id, nil, nil, true)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authenticated bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		if tok := c.session.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return &apiError{Status: resp.StatusCode, Message: envelope.Error}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
