// Package supabase binds the module to a GoTrue-style identity service over
// its REST API: token-to-identity exchange, invite-by-email, and paginated
// account listing.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mokuren/go-adminkit"
)

// APIError carries the upstream status code and message so callers can
// forward identity-service failures verbatim.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) StatusCode() int {
	return e.Status
}

// User is an identity-service account.
type User struct {
	UserID string `json:"id"`
	Mail   string `json:"email"`
}

func (u User) ID() string    { return u.UserID }
func (u User) Email() string { return u.Mail }

// Client talks to the identity service's auth API. Token exchange uses the
// anonymous key; invite and listing require the service-role key and return
// a config error when it is absent.
type Client struct {
	cfg  Config
	http *http.Client
}

var (
	_ adminkit.IdentityVerifier = (*Client)(nil)
	_ adminkit.IdentityAdmin    = (*Client)(nil)
)

type ClientOption func(*Client) *Client

func NewClient(cfg Config, opts ...ClientOption) *Client {
	c := &Client{
		cfg:  cfg.Resolve(),
		http: http.DefaultClient,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) *Client {
		if httpClient != nil {
			c.http = httpClient
		}
		return c
	}
}

// UserFromToken exchanges a bearer token for the identity it belongs to.
func (c *Client) UserFromToken(ctx context.Context, token string) (adminkit.Identity, error) {
	if err := c.cfg.ValidatePublic(); err != nil {
		return nil, err
	}

	user := &User{}
	err := c.do(ctx, http.MethodGet, "/auth/v1/user", c.cfg.AnonKey, token, nil, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// InviteUserByEmail asks the identity service to create the account and send
// an invitation email.
func (c *Client) InviteUserByEmail(ctx context.Context, email string) (adminkit.Identity, error) {
	if err := c.cfg.ValidateService(); err != nil {
		return nil, err
	}

	body := map[string]string{"email": email}
	user := &User{}
	err := c.do(ctx, http.MethodPost, "/auth/v1/invite", c.cfg.ServiceKey, c.cfg.ServiceKey, body, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ListUsers fetches one page of the account list. Pages are zero-based here;
// the upstream API counts from one.
func (c *Client) ListUsers(ctx context.Context, page, perPage int) ([]adminkit.Identity, error) {
	if err := c.cfg.ValidateService(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page+1))
	query.Set("per_page", strconv.Itoa(perPage))

	out := struct {
		Users []*User `json:"users"`
	}{}

	path := "/auth/v1/admin/users?" + query.Encode()
	if err := c.do(ctx, http.MethodGet, path, c.cfg.ServiceKey, c.cfg.ServiceKey, nil, &out); err != nil {
		return nil, err
	}

	users := make([]adminkit.Identity, 0, len(out.Users))
	for _, u := range out.Users {
		users = append(users, u)
	}

	return users, nil
}

func (c *Client) do(ctx context.Context, method, path, apiKey, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("supabase: failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.URL+path, reader)
	if err != nil {
		return fmt.Errorf("supabase: failed to build request: %w", err)
	}

	req.Header.Set("apikey", apiKey)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return &APIError{
			Status:  http.StatusBadGateway,
			Message: err.Error(),
		}
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("supabase: failed to decode response: %w", err)
	}

	return nil
}

func decodeAPIError(res *http.Response) error {
	payload := struct {
		Msg         string `json:"msg"`
		Message     string `json:"message"`
		ErrorDesc   string `json:"error_description"`
		ErrorString string `json:"error"`
	}{}

	// Decode failures fall through to the status text.
	_ = json.NewDecoder(res.Body).Decode(&payload)

	message := payload.Msg
	for _, candidate := range []string{payload.Message, payload.ErrorDesc, payload.ErrorString} {
		if message != "" {
			break
		}
		message = candidate
	}

	if strings.TrimSpace(message) == "" {
		message = http.StatusText(res.StatusCode)
	}

	return &APIError{
		Status:  res.StatusCode,
		Message: message,
	}
}
