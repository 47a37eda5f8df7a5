// Package client is the Go counterpart of the browser-side board controller:
// it talks to the HTTP API, keeps an in-memory copy of the caller's
// applications, and derives the per-status pipeline columns for rendering.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"applytrack/internal/models"
)

// Client is a stateful API client for a single authenticated user.
//
// Update and Move apply their mutation to local state before the server
// confirms it; if the request fails, the pre-mutation state is restored and
// the error returned, so the local list never silently diverges from the
// server. Create and Delete wait for confirmation instead.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	token string
	apps  []models.Application
}

// New creates a client for the API at baseURL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// RegisterInput holds the fields the registration endpoint requires.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CPassword string `json:"cpassword"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates an account and stores the returned token for
// subsequent calls.
func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &resp); err != nil {
		return err
	}
	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()
	return nil
}

// Login authenticates and stores the returned token for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return err
	}
	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()
	return nil
}

// Refresh replaces local state with the server's application list. On
// failure the last known-good state is kept, so the caller can distinguish
// "could not load" from "no applications".
func (c *Client) Refresh(ctx context.Context) error {
	var apps []models.Application
	if err := c.do(ctx, http.MethodGet, "/applications", nil, &apps); err != nil {
		return err
	}
	c.mu.Lock()
	c.apps = apps
	c.mu.Unlock()
	return nil
}

// Applications returns a copy of the local application list.
func (c *Client) Applications() []models.Application {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Application(nil), c.apps...)
}

// Board groups the local list into pipeline columns keyed by status. Every
// status has an entry even when its column is empty.
func (c *Client) Board() map[string][]models.Application {
	board := map[string][]models.Application{
		models.StatusApplied:   {},
		models.StatusInterview: {},
		models.StatusOffer:     {},
		models.StatusRejected:  {},
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range c.apps {
		board[a.Status] = append(board[a.Status], a)
	}
	return board
}

// Create submits a new application and appends the server's row (with its
// assigned id) to local state once confirmed.
func (c *Client) Create(ctx context.Context, app models.Application) (models.Application, error) {
	var created models.Application
	if err := c.do(ctx, http.MethodPost, "/applications", app, &created); err != nil {
		return models.Application{}, err
	}
	c.mu.Lock()
	c.apps = append(c.apps, created)
	c.mu.Unlock()
	return created, nil
}

// Update replaces one application optimistically: local state changes
// first, then the server is told; a failure rolls local state back.
func (c *Client) Update(ctx context.Context, app models.Application) error {
	c.mu.Lock()
	snapshot := append([]models.Application(nil), c.apps...)
	found := false
	for i := range c.apps {
		if c.apps[i].ID == app.ID {
			c.apps[i] = app
			found = true
			break
		}
	}
	c.mu.Unlock()
	if !found {
		return fmt.Errorf("no local application with id %d", app.ID)
	}

	var updated models.Application
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/applications/%d", app.ID), app, &updated)
	if err != nil {
		c.mu.Lock()
		c.apps = snapshot
		c.mu.Unlock()
		return err
	}

	// Reconcile with what the server actually stored (it may have cleared
	// the date on a status transition).
	c.mu.Lock()
	for i := range c.apps {
		if c.apps[i].ID == updated.ID {
			c.apps[i] = updated
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// Move transitions an application to a new pipeline status.
func (c *Client) Move(ctx context.Context, id int64, status string) error {
	c.mu.Lock()
	var target *models.Application
	for i := range c.apps {
		if c.apps[i].ID == id {
			app := c.apps[i]
			target = &app
			break
		}
	}
	c.mu.Unlock()
	if target == nil {
		return fmt.Errorf("no local application with id %d", id)
	}
	target.Status = status
	return c.Update(ctx, *target)
}

// Delete removes an application, dropping it from local state only after
// the server confirms.
func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/applications/%d", id), nil, nil); err != nil {
		return err
	}
	c.mu.Lock()
	kept := c.apps[:0]
	for _, a := range c.apps {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	c.apps = kept
	c.mu.Unlock()
	return nil
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// do sends one JSON request and decodes the response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
