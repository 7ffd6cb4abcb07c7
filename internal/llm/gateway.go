package llm

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/nikhilbhutani/silentcoach/internal/config"
)

type gateway struct {
	providers        map[string]Provider
	models           map[string]string
	defaultProvider  string
	fallbackProvider string
	maxRetries       int
	backoff          time.Duration
}

// NewGateway registers a provider for every credential present in cfg.
func NewGateway(cfg config.LLMConfig) Gateway {
	providers := make(map[string]Provider)
	if cfg.OpenAIKey != "" {
		providers["openai"] = NewOpenAIProvider(cfg.OpenAIKey)
	}
	if cfg.AnthropicKey != "" {
		providers["anthropic"] = NewAnthropicProvider(cfg.AnthropicKey)
	}
	if cfg.OllamaURL != "" {
		providers["ollama"] = NewOllamaProvider(cfg.OllamaURL)
	}
	models := make(map[string]string, len(providers))
	for name := range providers {
		models[name] = cfg.ModelFor(name)
	}
	return NewGatewayWithProviders(providers, models, cfg.DefaultProvider, cfg.FallbackProvider, cfg.MaxRetries)
}

// NewGatewayWithProviders builds a gateway over an explicit provider set.
// models maps a provider name to the model used when a request names none.
func NewGatewayWithProviders(providers map[string]Provider, models map[string]string, defaultProvider, fallbackProvider string, maxRetries int) Gateway {
	return &gateway{
		providers:        providers,
		models:           models,
		defaultProvider:  defaultProvider,
		fallbackProvider: fallbackProvider,
		maxRetries:       maxRetries,
		backoff:          500 * time.Millisecond,
	}
}

func (g *gateway) Provider(name string) (Provider, error) {
	p, ok := g.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %q not configured", name)
	}
	return p, nil
}

func (g *gateway) Providers() []string {
	names := make([]string, 0, len(g.providers))
	for name := range g.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *gateway) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	providerName := req.Provider
	if providerName == "" {
		providerName = g.defaultProvider
	}

	resp, err := g.chatWithRetry(ctx, providerName, req)
	if err != nil && g.fallbackProvider != "" && g.fallbackProvider != providerName {
		slog.Warn("primary provider failed, trying fallback",
			"primary", providerName,
			"fallback", g.fallbackProvider,
			"error", err,
		)
		// A model chosen for the primary means nothing to the backup.
		backup := req
		backup.Model = ""
		return g.chatWithRetry(ctx, g.fallbackProvider, backup)
	}
	return resp, err
}

func (g *gateway) chatWithRetry(ctx context.Context, providerName string, req ChatRequest) (*ChatResponse, error) {
	p, err := g.Provider(providerName)
	if err != nil {
		return nil, err
	}
	if req.Model == "" {
		req.Model = g.models[providerName]
	}
	if req.Model == "" {
		return nil, fmt.Errorf("no model configured for provider %q", providerName)
	}

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*attempt) * g.backoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			slog.Debug("retrying LLM call", "provider", providerName, "attempt", attempt)
		}

		resp, err := p.ChatCompletion(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("all retries exhausted for %s: %w", providerName, lastErr)
}
