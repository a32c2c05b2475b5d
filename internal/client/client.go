// Package client talks to the catalog HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Ryuseikaiz/Ichu-Database/internal/domain"
	"github.com/Ryuseikaiz/Ichu-Database/internal/editor"
	apperr "github.com/Ryuseikaiz/Ichu-Database/internal/errors"
)

const (
	defaultTimeout = 30 * time.Second

	// Client-side pacing: 10 requests per second, burst of 20
	defaultRPS   = 10
	defaultBurst = 20

	maxErrorBody = 1 << 16
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit paces outgoing requests.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// Client is the remote card store.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

var _ editor.RemoteStore = (*Client)(nil)

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(defaultRPS, defaultBurst),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// envelope is the response wrapper every endpoint uses.
type envelope struct {
	Version int             `json:"v"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details any             `json:"details"`
}

type cardList struct {
	Cards []domain.Card `json:"cards"`
	Total int           `json:"total"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// List fetches the whole collection.
func (c *Client) List(ctx context.Context) ([]domain.Card, error) {
	var out cardList
	if err := c.do(ctx, http.MethodGet, "/api/cards", "", nil, &out); err != nil {
		return nil, err
	}
	if out.Cards == nil {
		out.Cards = []domain.Card{}
	}
	return out.Cards, nil
}

// Get fetches one card.
func (c *Client) Get(ctx context.Context, id string) (*domain.Card, error) {
	var card domain.Card
	if err := c.do(ctx, http.MethodGet, "/api/cards/"+url.PathEscape(id), "", nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// Update replaces the editable fields of card and returns the stored card.
func (c *Client) Update(ctx context.Context, token string, card *domain.Card) (*domain.Card, error) {
	var stored domain.Card
	if err := c.do(ctx, http.MethodPut, "/api/cards/"+url.PathEscape(card.ID), token, card, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// Delete removes card id.
func (c *Client) Delete(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/cards/"+url.PathEscape(id), token, nil, nil)
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, username, password string) (*editor.Session, error) {
	body := map[string]string{"username": username, "password": password}

	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	return &editor.Session{Username: out.Username, Token: out.Token, ExpiresAt: out.ExpiresAt}, nil
}

// Session asks the API whether token is still valid and returns the
// session it belongs to.
func (c *Client) Session(ctx context.Context, token string) (*editor.Session, error) {
	var out struct {
		Username  string    `json:"username"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/session", token, nil, &out); err != nil {
		return nil, err
	}
	return &editor.Session{Username: out.Username, Token: token, ExpiresAt: out.ExpiresAt}, nil
}

// Export downloads the collection file as served by the API.
func (c *Client) Export(ctx context.Context) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, "/api/cards/export", "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeRemote, "read export")
	}
	return data, nil
}

// do sends a JSON request and decodes the envelope's data into out.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	resp, err := c.send(ctx, method, path, token, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return apperr.Wrap(err, apperr.CodeRemote, "decode response")
	}
	if !env.Success {
		return envelopeError(&env, resp.StatusCode)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperr.Wrap(err, apperr.CodeRemote, "decode response data")
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path, token string, in any) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeRemote, "rate limit wait")
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("catalog request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeRemote, "request failed")
	}
	return resp, nil
}

// decodeError turns a non-2xx response into a coded error.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return apperr.FromCode("", "", resp.StatusCode)
	}
	return envelopeError(&env, resp.StatusCode)
}

func envelopeError(env *envelope, status int) error {
	msg := env.Message
	if msg == "" {
		msg = env.Error
	}
	err := apperr.FromCode(env.Code, msg, status)
	if env.Details != nil {
		return err.WithDetails(env.Details)
	}
	return err
}
