package contact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	// ErrThrottled is returned when submissions arrive faster than the
	// configured rate.
	ErrThrottled = errors.New("contact: too many submissions")
	// ErrNoEndpoint is returned when no form backend is configured.
	ErrNoEndpoint = errors.New("contact: no endpoint configured")
	// ErrIncomplete is returned for a form with a missing field.
	ErrIncomplete = errors.New("contact: form incomplete")
)

const successMessage = "Thanks! Your message is on its way. I'll get back to you soon."

// Form is what a visitor fills in.
type Form struct {
	Name    string
	Email   string
	Message string
}

// Validate checks that every field is present and the email looks like one.
func (f Form) Validate() error {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Message) == "" {
		return fmt.Errorf("%w: name and message are required", ErrIncomplete)
	}
	at := strings.Index(f.Email, "@")
	if at <= 0 || at == len(f.Email)-1 {
		return fmt.Errorf("%w: email %q is not valid", ErrIncomplete, f.Email)
	}
	return nil
}

func (f Form) values() url.Values {
	v := url.Values{}
	v.Set("name", strings.TrimSpace(f.Name))
	v.Set("email", strings.TrimSpace(f.Email))
	v.Set("message", strings.TrimSpace(f.Message))
	return v
}

// Result is the user-visible outcome of a submission.
type Result struct {
	OK      bool
	Message string
	Err     error
}

// Options configures a Client.
type Options struct {
	Endpoint      string
	FallbackEmail string
	Timeout       time.Duration
	PerMinute     float64
	Burst         int
	HTTPClient    *http.Client
}

// Client posts contact forms to a form backend. A single attempt is made
// per submission.
type Client struct {
	endpoint string
	fallback string
	http     *http.Client
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// NewClient creates a client. Zero options fall back to a 10 s timeout
// and two submissions per minute.
func NewClient(opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.PerMinute <= 0 {
		opts.PerMinute = 2
	}
	if opts.Burst <= 0 {
		opts.Burst = 2
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		endpoint: opts.Endpoint,
		fallback: opts.FallbackEmail,
		http:     hc,
		limiter:  rate.NewLimiter(rate.Limit(opts.PerMinute/60), opts.Burst),
		logger:   logger,
	}
}

// Submit validates and posts f as application/x-www-form-urlencoded.
// Any 2xx response is a success; everything else yields a message that
// points the visitor at the fallback address.
func (c *Client) Submit(ctx context.Context, f Form) Result {
	if err := f.Validate(); err != nil {
		return Result{Message: "Please fill in your name, a valid email and a message.", Err: err}
	}
	if !c.limiter.Allow() {
		return c.failure(ErrThrottled)
	}
	if c.endpoint == "" {
		return c.failure(ErrNoEndpoint)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(f.values().Encode()))
	if err != nil {
		return c.failure(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.failure(fmt.Errorf("failed to post form: %w", err))
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.failure(fmt.Errorf("form backend returned %s", resp.Status))
	}
	c.logger.Info("contact form sent", zap.String("email", f.Email))
	return Result{OK: true, Message: successMessage}
}

func (c *Client) failure(err error) Result {
	c.logger.Warn("contact form failed", zap.Error(err))
	msg := "Sorry, your message could not be sent."
	if errors.Is(err, ErrThrottled) {
		msg = "You're sending messages too quickly."
	}
	if c.fallback != "" {
		msg += " Please email " + c.fallback + " directly."
	}
	return Result{Message: msg, Err: err}
}
