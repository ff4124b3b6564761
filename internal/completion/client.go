// Package completion asks a hosted chat model for journal entry titles.
//
// A call never returns an error: every failure becomes a TitleResult with
// Outcome FallbackRequired so the caller can switch to the local heuristic.
package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL    = "https://api.openai.com/v1"
	defaultModel      = "gpt-3.5-turbo"
	defaultTimeout    = 10 * time.Second
	defaultMaxContent = 2000

	maxTitleTokens   = 20
	titleTemperature = 0.7

	systemPrompt = "You are a helpful assistant that creates meaningful, concise titles for personal journal entries. " +
		"Focus on the main emotion, theme, or topic. Keep titles short (3-8 words) and personal."
)

var (
	ErrNoAPIKey   = errors.New("completion api key not configured")
	ErrEmptyReply = errors.New("completion returned no title")
	ErrNoContent  = errors.New("no content to title")
)

type Outcome int

const (
	FallbackRequired Outcome = iota
	Generated
)

func (o Outcome) String() string {
	if o == Generated {
		return "generated"
	}
	return "fallback_required"
}

// TitleResult carries either a generated title or the reason a fallback is needed.
type TitleResult struct {
	Outcome Outcome
	Title   string
	Reason  error
}

func fallback(err error) TitleResult {
	return TitleResult{Outcome: FallbackRequired, Reason: err}
}

// Config is supplied by the caller; nothing here has a baked-in secret.
type Config struct {
	APIKey        string
	BaseURL       string
	Model         string
	Timeout       time.Duration
	MaxContent    int
	RatePerMinute int // 0 disables limiting
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxContent <= 0 {
		c.MaxContent = defaultMaxContent
	}
	return c
}

// Generator is the slice of llms.Model the client needs.
type Generator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

type Client struct {
	gen     Generator
	cfg     Config
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New builds a client backed by an OpenAI-compatible chat completions endpoint.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	cfg = cfg.withDefaults()
	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create completion model: %w", err)
	}
	return NewWithGenerator(llm, cfg, logger), nil
}

// NewWithGenerator wraps an existing model, e.g. a fake in tests.
func NewWithGenerator(gen Generator, cfg Config, logger *zap.Logger) *Client {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := rate.Inf
	if cfg.RatePerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RatePerMinute))
	}
	return &Client{
		gen:     gen,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// GenerateTitle asks the model for a 3-8 word title.
func (c *Client) GenerateTitle(ctx context.Context, content string) TitleResult {
	if strings.TrimSpace(content) == "" {
		return fallback(ErrNoContent)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return fallback(fmt.Errorf("rate limiter: %w", err))
	}

	start := time.Now()
	resp, err := c.gen.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, titlePrompt(truncateContent(content, c.cfg.MaxContent))),
	}, llms.WithMaxTokens(maxTitleTokens), llms.WithTemperature(titleTemperature))
	if err != nil {
		return fallback(fmt.Errorf("generate title: %w", err))
	}
	if len(resp.Choices) == 0 {
		return fallback(ErrEmptyReply)
	}

	title := cleanTitle(resp.Choices[0].Content)
	if title == "" {
		return fallback(ErrEmptyReply)
	}
	c.logger.Debug("generated title",
		zap.String("model", c.cfg.Model),
		zap.Duration("duration", time.Since(start)),
	)
	return TitleResult{Outcome: Generated, Title: title}
}

func titlePrompt(content string) string {
	return "Generate a concise, descriptive title (3-8 words) for this journal entry. " +
		"The title should capture the main theme, emotion, or topic. Make it personal and meaningful.\n\n" +
		"Journal Entry:\n\"" + content + "\"\n\nTitle:"
}

func truncateContent(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "..."
}

// cleanTitle trims the reply and drops one surrounding quote on each side.
func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	if s != "" && strings.ContainsRune(`"'`, rune(s[0])) {
		s = s[1:]
	}
	if s != "" && strings.ContainsRune(`"'`, rune(s[len(s)-1])) {
		s = s[:len(s)-1]
	}
	return strings.TrimSpace(s)
}
