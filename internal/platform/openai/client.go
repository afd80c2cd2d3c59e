package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/persx/persx-sub000/internal/platform/logger"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 30 * time.Second
)

var ErrEmptyCompletion = errors.New("openai returned no content")

// TextRequest is one chat completion with a system and a user message.
type TextRequest struct {
	System      string
	User        string
	MaxTokens   int64
	Temperature float64
}

// Client is the OpenAI surface the rest of the service depends on.
type Client interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}

type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	HTTPClient *http.Client
}

type client struct {
	log     *logger.Logger
	sdk     openai.Client
	model   string
	timeout time.Duration
}

// New returns nil when no API key is configured; callers treat a nil Client as
// "generation unavailable".
func New(log *logger.Logger, cfg Config) Client {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &client{
		log:     log.With("client", "OpenAI", "model", cfg.Model),
		sdk:     openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

func (c *client) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	start := time.Now()
	resp, err := c.sdk.Chat.Completions.New(ctx, params)
	if err != nil {
		err = mapError(err)
		c.log.Warn("chat completion failed", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrEmptyCompletion
	}
	c.log.Debug("chat completion ok",
		"elapsed_ms", time.Since(start).Milliseconds(),
		"completion_tokens", resp.Usage.CompletionTokens,
	)
	return out, nil
}

func mapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return fmt.Errorf("openai error (status %d): %s", apiErr.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("openai error (status %d)", apiErr.StatusCode)
	}
	return err
}
