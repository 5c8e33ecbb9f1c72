// Package rest implements the store ports over the external JSON record
// API: flat /users, /categories and /transactions collections with
// query-parameter lookups and integer ids assigned on create.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kopilka/internal/core"
	"kopilka/internal/store"
)

type Config struct {
	BaseURL string
	Timeout time.Duration // default 30s
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ store.Store = (*Client)(nil)

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, store.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) FindByCredentials(ctx context.Context, email, password string) (*core.User, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("password", password)

	var users []core.User
	if err := c.do(ctx, http.MethodGet, "/users", q, nil, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	u := users[0]
	return &u, nil
}

func (c *Client) EmailExists(ctx context.Context, email string) (bool, error) {
	q := url.Values{}
	q.Set("email", email)

	var users []core.User
	if err := c.do(ctx, http.MethodGet, "/users", q, nil, &users); err != nil {
		return false, err
	}
	return len(users) > 0, nil
}

func (c *Client) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	var created core.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, u, &created); err != nil {
		return core.User{}, err
	}
	return created, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (core.User, error) {
	var u core.User
	if err := c.do(ctx, http.MethodGet, "/users/"+strconv.FormatInt(id, 10), nil, nil, &u); err != nil {
		return core.User{}, err
	}
	return u, nil
}

func (c *Client) SetCurrency(ctx context.Context, id int64, currency string) (core.User, error) {
	patch := map[string]string{"currency": currency}
	var u core.User
	if err := c.do(ctx, http.MethodPatch, "/users/"+strconv.FormatInt(id, 10), nil, patch, &u); err != nil {
		return core.User{}, err
	}
	return u, nil
}

func (c *Client) ListCategories(ctx context.Context, userID int64) ([]core.Category, error) {
	q := url.Values{}
	q.Set("userId", strconv.FormatInt(userID, 10))

	var cats []core.Category
	if err := c.do(ctx, http.MethodGet, "/categories", q, nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) CreateCategory(ctx context.Context, cat core.Category) (core.Category, error) {
	var created core.Category
	if err := c.do(ctx, http.MethodPost, "/categories", nil, cat, &created); err != nil {
		return core.Category{}, err
	}
	return created, nil
}

func (c *Client) UpdateCategory(ctx context.Context, cat core.Category) (core.Category, error) {
	var updated core.Category
	if err := c.do(ctx, http.MethodPut, "/categories/"+strconv.FormatInt(cat.ID, 10), nil, cat, &updated); err != nil {
		return core.Category{}, err
	}
	return updated, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

func (c *Client) ListTransactions(ctx context.Context, userID int64) ([]core.Transaction, error) {
	q := url.Values{}
	q.Set("userId", strconv.FormatInt(userID, 10))

	var txns []core.Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions", q, nil, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

func (c *Client) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	var created core.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", nil, t, &created); err != nil {
		return core.Transaction{}, err
	}
	return created, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	var updated core.Transaction
	if err := c.do(ctx, http.MethodPut, "/transactions/"+strconv.FormatInt(t.ID, 10), nil, t, &updated); err != nil {
		return core.Transaction{}, err
	}
	return updated, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+strconv.FormatInt(id, 10), nil, nil, nil)
}
