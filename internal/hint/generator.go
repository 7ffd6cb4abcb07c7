//go:generate go run go.uber.org/mock/mockgen -source=generator.go -destination=../mocks/mock_completer.go -package=mocks

// Package hint turns partner speech into a short coaching hint.
package hint

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nikhilbhutani/silentcoach/internal/config"
	"github.com/nikhilbhutani/silentcoach/internal/llm"
	"github.com/nikhilbhutani/silentcoach/internal/prompt"
	"github.com/nikhilbhutani/silentcoach/pkg/tokenizer"
)

const (
	Fallback       = "The AI coach is processing... Please continue supporting your partner with curiosity and compassion."
	NoConversation = "No conversation yet."
)

// Completer is the slice of llm.Gateway the generator needs.
type Completer interface {
	Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error)
}

type Generator struct {
	log         *slog.Logger
	completer   Completer
	system      string
	maxTokens   int
	temperature float64
}

func NewGenerator(log *slog.Logger, completer Completer, cfg config.LLMConfig) *Generator {
	system := cfg.SystemPrompt
	if strings.TrimSpace(system) == "" {
		system = prompt.DefaultSystem
	}
	return &Generator{
		log:         log,
		completer:   completer,
		system:      system,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// Generate never fails: provider errors and empty completions yield Fallback.
func (g *Generator) Generate(ctx context.Context, text string) string {
	resp, err := g.completer.Chat(ctx, llm.ChatRequest{
		Messages:    llm.SystemAndUser(g.system, text),
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		g.log.Error("hint generation failed", "error", err, "prompt_words", tokenizer.CountWords(text))
		return Fallback
	}

	content := strings.TrimSpace(resp.Content)
	if content == "" {
		g.log.Warn("empty completion, using fallback hint", "provider", resp.Provider, "model", resp.Model)
		return Fallback
	}

	g.log.Debug("hint generated",
		"provider", resp.Provider,
		"model", resp.Model,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
		"cost_usd", resp.CostUSD,
		"latency_ms", resp.Latency.Milliseconds(),
	)
	return content
}

// RegenerateFromHistory asks for a hint over the whole history, highlighting
// the last recent utterances.
func (g *Generator) RegenerateFromHistory(ctx context.Context, history []string, recent int) string {
	if len(history) == 0 {
		return NoConversation
	}
	if recent <= 0 || recent > len(history) {
		recent = len(history)
	}

	text, err := prompt.Regenerate.Render(map[string]string{
		"history": strings.Join(history, " "),
		"recent":  strings.Join(history[len(history)-recent:], " "),
	})
	if err != nil {
		g.log.Error("render regenerate prompt", "error", err)
		return Fallback
	}
	return g.Generate(ctx, text)
}
