package advisor

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Category selects the system instruction for the completion call. The
// fallback rules ignore it.
type Category string

const (
	CategoryAgronomy    Category = "agronomy"
	CategoryMarketplace Category = "marketplace"
	CategoryGeneral     Category = "general"
)

// ParseCategory maps a request string onto the category set; anything
// unknown becomes general.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryAgronomy, CategoryMarketplace, CategoryGeneral:
		return Category(s)
	}
	return CategoryGeneral
}

// ErrInvalidAPIKey reports that the completion service rejected the
// configured credential. This is the one upstream failure surfaced to
// the caller; everything else is absorbed by the fallback.
var ErrInvalidAPIKey = errors.New("completion service rejected API key")

// AuthErrorReply is the user-visible reply on the credential-error path.
const AuthErrorReply = "Authentication error: Invalid OpenAI API key. Please check your configuration."

var systemPrompts = map[Category]string{
	CategoryAgronomy:    "You are an expert agricultural advisor for Indian farmers. Provide practical farming advice considering Indian climate and crops. Keep responses concise and actionable.",
	CategoryMarketplace: "You are a helpful guide for an agricultural marketplace platform. Help users understand how to buy and sell crops, pricing, and platform features.",
	CategoryGeneral:     "You are a helpful agricultural assistant for farmers in India. You can answer questions about farming practices, crop prices, market trends, and our Kisan Mandi platform. Keep responses concise and practical.",
}

// completionClient is the slice of the OpenAI client the engine uses.
// Narrowed to an interface so tests can substitute a stub.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Engine answers advisor questions: a completion call when a credential
// is configured, the deterministic fallback otherwise.
type Engine struct {
	client completionClient // nil when no credential is configured
}

func NewEngine(apiKey string) *Engine {
	if apiKey == "" {
		return &Engine{}
	}
	return &Engine{client: openai.NewClient(apiKey)}
}

// Answer produces a reply for the message. The returned error is non-nil
// only on the credential-error path, where the reply is AuthErrorReply.
func (e *Engine) Answer(ctx context.Context, message string, category Category) (string, error) {
	if e.client == nil {
		return FallbackReply(message), nil
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT3Dot5Turbo,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompts[ParseCategory(string(category))]},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		if isCredentialError(err) {
			return AuthErrorReply, ErrInvalidAPIKey
		}
		return FallbackReply(message), nil
	}

	if len(resp.Choices) == 0 {
		return FallbackReply(message), nil
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return FallbackReply(message), nil
	}
	return reply, nil
}

// isCredentialError classifies an upstream failure. Quota and rate-limit
// errors are checked first so they always take the silent fallback, even
// when the message also mentions the key.
func isCredentialError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized:
			return true
		case http.StatusTooManyRequests:
			return false
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "quota") || strings.Contains(msg, "exceeded") || strings.Contains(msg, "rate") {
		return false
	}
	return strings.Contains(msg, "authentication") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "api_key") ||
		strings.Contains(msg, "api key")
}
