// Package hibp is a client for the Have I Been Pwned v3 API and the Pwned
// Passwords range API.
//
// API key and user agent are passed on every call. A Client holds no state
// that changes between calls, so one value may be shared across goroutines
// as long as its *http.Client may.
package hibp

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pwncheck/metrics"
	"pwncheck/pkg/domain"
	"pwncheck/svc/util"

	"github.com/pkg/errors"
)

const (
	DefaultPasswordsURL = "https://api.pwnedpasswords.com"
	DefaultAPIURL       = "https://haveibeenpwned.com/api/v3"

	headerAPIKey    = "hibp-api-key"
	headerUserAgent = "user-agent"
)

// maxBodySize caps a response body; a range body is well under 100 KiB.
var maxBodySize int64 = 8 * 1024 * 1024

type Client struct {
	httpClient   *http.Client
	passwordsURL string
	apiURL       string
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient. The client is used as given;
// no timeout is added.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithPasswordsURL points range lookups at another host, e.g. a test server.
func WithPasswordsURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.passwordsURL = strings.TrimRight(u, "/")
		}
	}
}

func WithAPIURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.apiURL = strings.TrimRight(u, "/")
		}
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		httpClient:   http.DefaultClient,
		passwordsURL: DefaultPasswordsURL,
		apiURL:       DefaultAPIURL,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var defaultClient = New()

func PasswordCount(ctx context.Context, apiKey, userAgent, password string) (int64, error) {
	return defaultClient.PasswordCount(ctx, apiKey, userAgent, password)
}

func BreachesForAccount(ctx context.Context, apiKey, userAgent, email string) ([]domain.Breach, bool, error) {
	return defaultClient.BreachesForAccount(ctx, apiKey, userAgent, email)
}

func PastesForAccount(ctx context.Context, apiKey, userAgent, email string) (domain.Pastes, error) {
	return defaultClient.PastesForAccount(ctx, apiKey, userAgent, email)
}

func Breach(ctx context.Context, apiKey, userAgent, name string) (*domain.Breach, error) {
	return defaultClient.Breach(ctx, apiKey, userAgent, name)
}

type response struct {
	status int
	body   []byte
}

// get issues one GET and returns the body for 200 and 404. Every other
// status is turned into a *domain.Err.
func (c *Client) get(ctx context.Context, op, apiKey, userAgent, url string) (*response, error) {
	if userAgent == "" {
		return nil, domain.ErrUserAgentRequired
	}
	if apiKey == "" {
		return nil, domain.ErrAPIKeyRequired
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: build request", op)
	}
	req.Header.Set(headerAPIKey, apiKey)
	req.Header.Set(headerUserAgent, userAgent)

	requestID := util.RequestID(ctx)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	metrics.RequestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	if err != nil {
		util.Warn().Err(err).
			Str("op", op).
			Str("request_id", requestID).
			Dur("duration", elapsed).
			Msg("hibp request failed")
		return nil, errors.Wrapf(err, "%s: request", op)
	}
	defer resp.Body.Close()

	metrics.UpstreamStatus.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "%s: read body", op)
	}
	if int64(len(body)) > maxBodySize {
		util.Warn().Str("op", op).Str("request_id", requestID).Int64("limit", maxBodySize).Msg("response body too large")
		return nil, errors.Wrapf(domain.ErrResponseTooLarge, "%s: body exceeds %d bytes", op, maxBodySize)
	}
	util.Debug().
		Str("op", op).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Int("size", len(body)).
		Dur("duration", elapsed).
		Msg("hibp response")

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNotFound:
		return &response{status: resp.StatusCode, body: body}, nil
	}
	serr := statusError(resp, apiKey)
	util.Warn().
		Str("op", op).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Str("body", util.RedactLogLine(snippet(body))).
		Msg(serr.Msg)
	return nil, serr
}

func statusError(resp *http.Response, apiKey string) *domain.Err {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domain.NewUnauthorized(util.RedactToken(apiKey))
	case http.StatusForbidden:
		return domain.ErrForbidden
	}
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return domain.NewUnexpectedStatus(resp.StatusCode, text)
}

func snippet(b []byte) string {
	const n = 200
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

func observe(op string, err error, found bool) {
	outcome := metrics.OutcomeNotFound
	switch {
	case err != nil:
		outcome = metrics.OutcomeError
	case found:
		outcome = metrics.OutcomeFound
	}
	metrics.Lookups.WithLabelValues(op, outcome).Inc()
}
