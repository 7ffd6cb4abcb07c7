package llm

import (
	"context"
	"strings"
	"time"
)

// Provider abstracts a chat-completion backend (OpenAI, Anthropic, Ollama).
type Provider interface {
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Name() string
}

// Gateway routes completions to the configured provider with retry and fallback.
type Gateway interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Provider(name string) (Provider, error)
	Providers() []string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// DefaultMaxTokens bounds a completion when the caller sets no budget. Hints
// are a sentence or two, so every adapter shares this small ceiling.
const DefaultMaxTokens = 200

// ChatRequest is the input for chat completions. An empty Model is filled by
// the gateway with the model configured for the provider it calls.
type ChatRequest struct {
	Provider    string    `json:"provider,omitempty"`
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// ChatResponse is the output from chat completions.
type ChatResponse struct {
	ID           string        `json:"id"`
	Provider     string        `json:"provider"`
	Model        string        `json:"model"`
	Content      string        `json:"content"`
	InputTokens  int           `json:"input_tokens"`
	OutputTokens int           `json:"output_tokens"`
	CostUSD      float64       `json:"cost_usd"`
	Latency      time.Duration `json:"latency"`
}

// SystemAndUser builds the two-turn conversation every hint request uses.
func SystemAndUser(system, user string) []Message {
	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: user},
	}
}

func (r ChatRequest) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return DefaultMaxTokens
}

// system splits out the system prompt; adapters that carry it separately use
// the remaining turns as the conversation.
func (r ChatRequest) system() (string, []Message) {
	var system string
	turns := make([]Message, 0, len(r.Messages))
	for _, m := range r.Messages {
		if m.Role == RoleSystem {
			system = m.Content
			continue
		}
		turns = append(turns, m)
	}
	return system, turns
}

// completed normalizes an adapter result: hint text is trimmed and cost is
// priced against the requested model.
func completed(provider string, req ChatRequest, id, model, content string, in, out int, start time.Time) *ChatResponse {
	if model == "" {
		model = req.Model
	}
	return &ChatResponse{
		ID:           id,
		Provider:     provider,
		Model:        model,
		Content:      strings.TrimSpace(content),
		InputTokens:  in,
		OutputTokens: out,
		CostUSD:      CalculateCost(req.Model, in, out),
		Latency:      time.Since(start),
	}
}
