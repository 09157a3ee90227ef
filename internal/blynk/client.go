package blynk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"blynk_bridge/internal/models"
)

const (
	getPath    = "/get"
	updatePath = "/update"

	maxBodyBytes = 64 << 10

	redacted = "***"
)

// ErrStatus is wrapped by errors for non-2xx answers from the cloud API.
var ErrStatus = errors.New("blynk: unexpected status")

// Client reads and writes Blynk virtual pins over the external HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient builds a client for baseURL (e.g. https://blynk.cloud/external/api).
// Per-call deadlines come from the caller's context; the http.Client carries no
// global timeout of its own.
func NewClient(baseURL, token string) *Client {
	return NewClientWithHTTP(baseURL, token, &http.Client{})
}

// NewClientWithHTTP is NewClient with a caller supplied *http.Client.
func NewClientWithHTTP(baseURL, token string, hc *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: hc,
	}
}

// Get reads pin. A non-2xx answer is an error wrapping ErrStatus.
func (c *Client) Get(ctx context.Context, pin string) (models.PinReading, error) {
	body, err := c.do(ctx, c.url(getPath, pin, nil))
	if err != nil {
		return models.Absent(), fmt.Errorf("reading pin %s: %w", pin, err)
	}
	return models.ParsePinReading(body), nil
}

// Update writes value to pin.
func (c *Client) Update(ctx context.Context, pin string, value int) error {
	v := strconv.Itoa(value)
	if _, err := c.do(ctx, c.url(updatePath, pin, &v)); err != nil {
		return fmt.Errorf("updating pin %s to %d: %w", pin, value, err)
	}
	return nil
}

// ReadURL is the read URL for pin with the token redacted, for display.
func (c *Client) ReadURL(pin string) string {
	return fmt.Sprintf("%s%s?token=%s&pin=%s", c.baseURL, getPath, RedactToken(c.token), url.QueryEscape(pin))
}

// RedactToken keeps the first four characters of a token.
func RedactToken(token string) string {
	if len(token) <= 4 {
		return redacted
	}
	return token[:4] + redacted
}

func (c *Client) url(path, pin string, value *string) string {
	q := url.Values{}
	q.Set("token", c.token)
	q.Set("pin", pin)
	if value != nil {
		q.Set("value", *value)
	}
	return c.baseURL + path + "?" + q.Encode()
}

func (c *Client) do(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", scrubURLError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// scrubURLError drops the request URL (which carries the token) from
// transport errors so they are safe to log and to return to clients.
func scrubURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}

// WithTimeout derives a context bounded by d, or returns ctx untouched when d <= 0.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
