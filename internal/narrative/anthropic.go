package narrative

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

const systemPrompt = "You are a performance marketing analyst. You receive the computed " +
	"results of an ad-spend analysis as JSON. Write a short commentary (at most five " +
	"sentences) for the advertiser: state whether the campaigns make money, name the " +
	"campaigns to scale or pause, and give one concrete next step. Use only the figures " +
	"provided. Amounts are in the base currency given in the JSON. Answer in the language " +
	"of the campaign names when it is obvious, otherwise in French."

type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int64
	Timeout   time.Duration
}

// AnthropicNarrator asks a Claude model for the commentary. It makes a
// single attempt per call.
type AnthropicNarrator struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

func NewAnthropic(cfg Config) *AnthropicNarrator {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 600
	}
	return &AnthropicNarrator{
		client:    sdk.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: maxTokens,
	}
}

func (a *AnthropicNarrator) Generate(ctx context.Context, s Summary) (string, error) {
	prompt, err := Prompt(s)
	if err != nil {
		return "", err
	}
	msg, err := a.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(a.model),
		MaxTokens: a.maxTokens,
		System:    []sdk.TextBlockParam{{Text: systemPrompt}},
		Messages:  []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(prompt))},
	})
	if err != nil {
		return "", eris.Wrap(err, "anthropic: create message")
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// Prompt renders the user message sent to the model.
func Prompt(s Summary) (string, error) {
	body, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "marshal narrator summary")
	}
	return "Analysis results:\n" + string(body), nil
}
