package convertkit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/persx/persx-sub000/internal/pkg/ctxutil"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

type Client interface {
	Subscribe(ctx context.Context, req SubscribeRequest) (*Subscriber, error)
}

type Config struct {
	APIKey     string
	FormID     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	// IndustryTags maps an industry key to a ConvertKit tag id.
	IndustryTags map[string]int64
}

// New returns nil when no API key or form is configured; callers treat a nil
// client as "newsletter disabled".
func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" || strings.TrimSpace(cfg.FormID) == "" {
		return nil, nil
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.convertkit.com"
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &client{
		log:        log.With("client", "ConvertKitClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

type SubscribeRequest struct {
	Email     string
	FirstName string
	Industry  string
	Fields    map[string]string
}

type Subscriber struct {
	ID    int64  `json:"id"`
	Email string `json:"email_address"`
	State string `json:"state"`
}

type subscribeWire struct {
	APIKey    string            `json:"api_key"`
	Email     string            `json:"email"`
	FirstName string            `json:"first_name,omitempty"`
	Tags      []int64           `json:"tags,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

type subscribeResponse struct {
	Subscription struct {
		ID         int64      `json:"id"`
		State      string     `json:"state"`
		Subscriber Subscriber `json:"subscriber"`
	} `json:"subscription"`
}

func (c *client) Subscribe(ctx context.Context, req SubscribeRequest) (*Subscriber, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, fmt.Errorf("convertkit: email required")
	}
	wire := subscribeWire{
		APIKey:    c.cfg.APIKey,
		Email:     email,
		FirstName: strings.TrimSpace(req.FirstName),
		Fields:    map[string]string{},
	}
	for k, v := range req.Fields {
		wire.Fields[k] = v
	}
	if ind := strings.TrimSpace(req.Industry); ind != "" {
		wire.Fields["industry"] = ind
		if id, ok := c.cfg.IndustryTags[ind]; ok {
			wire.Tags = []int64{id}
		}
	}
	if len(wire.Fields) == 0 {
		wire.Fields = nil
	}

	raw, err := c.do(ctx, http.MethodPost, "/v3/forms/"+c.cfg.FormID+"/subscribe", wire)
	if err != nil {
		return nil, err
	}
	var out subscribeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("convertkit: decode response: %w", err)
	}
	sub := out.Subscription.Subscriber
	if sub.State == "" {
		sub.State = out.Subscription.State
	}
	return &sub, nil
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	if len(msg) > 2000 {
		msg = msg[:2000] + "..."
	}
	return fmt.Sprintf("convertkit http %d: %s", e.StatusCode, msg)
}

func retryable(err error) bool {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode == http.StatusTooManyRequests || he.StatusCode >= 500
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func (c *client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	ctx = ctxutil.Default(ctx)
	var out []byte
	err := retry.Do(
		func() error {
			raw, err := c.doOnce(ctx, method, path, body)
			if err != nil {
				return err
			}
			out = raw
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.cfg.MaxRetries)+1),
		retry.Delay(500*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn("ConvertKit request retrying",
				"path", path,
				"attempt", n+1,
				"max_retries", c.cfg.MaxRetries,
				"error", err.Error(),
			)
		}),
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) doOnce(ctx context.Context, method, path string, body any) ([]byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}
