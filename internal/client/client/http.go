package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/tcgexchange/internal/client/models"
	"github.com/dmitrijs2005/tcgexchange/internal/common"
	"github.com/dmitrijs2005/tcgexchange/internal/logging"
	"github.com/dmitrijs2005/tcgexchange/internal/netx"
	"golang.org/x/time/rate"
)

type HTTPClient struct {
	baseURL  string
	identity Identity
	http     *http.Client
	limiter  *rate.Limiter
	log      logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the default transport, mostly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout sets the overall timeout of each request.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) { h.http = netx.NewHTTPClient(d) }
}

// WithRateLimit spaces outbound requests to at most rps per second. Zero or
// a negative rps disables the limiter.
func WithRateLimit(rps float64, burst int) Option {
	return func(h *HTTPClient) {
		if rps <= 0 {
			h.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		h.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func NewHTTPClient(baseURL string, identity Identity, log logging.Logger, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		identity: identity,
		http:     netx.NewHTTPClient(0),
		log:      log.With("component", "api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one request. When out is non-nil a successful body is decoded as
// JSON into it; the raw body is always returned as text. Every failure is
// logged before being returned.
func (c *HTTPClient) do(ctx context.Context, method, route string, body any, out any) (string, error) {
	text, err := c.roundTrip(ctx, method, route, body, out)
	if err != nil {
		c.log.Error(ctx, "api request failed", "method", method, "route", route, "error", err)
		return "", err
	}
	return text, nil
}

// fail logs a failure detected after a successful round trip.
func (c *HTTPClient) fail(ctx context.Context, route string, err error) error {
	c.log.Error(ctx, "api request failed", "route", route, "error", err)
	return err
}

func (c *HTTPClient) roundTrip(ctx context.Context, method, route string, body any, out any) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+route, reader)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.identity.BasicAuth(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Basic "+token)
	}
	req.Header.Set(common.ClientIDHeaderName, c.identity.ClientID())

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	raw, err := netx.ReadBody(resp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPError{Status: resp.StatusCode, Reason: strings.TrimSpace(string(raw))}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return "", fmt.Errorf("%w: %s %s: %v", ErrUnexpectedResponse, method, route, err)
		}
	}

	return string(raw), nil
}

// expectText turns a successful text response into an error unless it
// equals want.
func expectText(got, want string) error {
	got = strings.TrimSpace(got)
	if got == want {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnexpectedResponse, got)
}

func (c *HTTPClient) SignIn(ctx context.Context, req SignInRequest) (*SignInResponse, error) {
	var resp SignInResponse
	if _, err := c.do(ctx, http.MethodPost, "/user/signin", req, &resp); err != nil {
		return nil, err
	}
	if resp.Profile.FriendID == "" {
		return nil, c.fail(ctx, "/user/signin", fmt.Errorf("%w: signin response without friend_id", ErrUnexpectedResponse))
	}
	return &resp, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, req CreateUserRequest) error {
	text, err := c.do(ctx, http.MethodPost, "/user", req, nil)
	if err != nil {
		return err
	}
	if err := expectText(text, ResultCreated); err != nil {
		return c.fail(ctx, "/user", err)
	}
	return nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, req UpdateUserRequest) error {
	text, err := c.do(ctx, http.MethodPost, "/user", req, nil)
	if err != nil {
		return err
	}
	if err := expectText(text, ResultUpdated); err != nil {
		return c.fail(ctx, "/user", err)
	}
	return nil
}

func (c *HTTPClient) Proposals(ctx context.Context, req CredentialsRequest) ([]models.Proposal, error) {
	var proposals []models.Proposal
	if _, err := c.do(ctx, http.MethodPost, "/user/proposals", req, &proposals); err != nil {
		return nil, err
	}
	return proposals, nil
}

func (c *HTTPClient) Discussions(ctx context.Context) ([]models.Discussion, error) {
	var discussions []models.Discussion
	if _, err := c.do(ctx, http.MethodGet, "/user/discussions", nil, &discussions); err != nil {
		return nil, err
	}
	return discussions, nil
}

func (c *HTTPClient) Messages(ctx context.Context, friendID string) ([]models.Message, error) {
	if friendID == "" {
		return nil, c.fail(ctx, "/user/messages", common.ErrEmptyFriendID)
	}
	var messages []models.Message
	if _, err := c.do(ctx, http.MethodGet, "/user/messages/"+url.PathEscape(friendID), nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *HTTPClient) PostMessage(ctx context.Context, friendID, message string) (string, error) {
	return c.do(ctx, http.MethodPut, "/user/messages", postMessageRequest{To: friendID, Message: message}, nil)
}

func (c *HTTPClient) SendMagicLink(ctx context.Context, email, friendID string) (string, error) {
	return c.do(ctx, http.MethodPost, "/forgotten_password", magicLinkRequest{Email: email, FriendID: friendID}, nil)
}
