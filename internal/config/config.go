package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

type Config struct {
	Server ServerConfig
	Room   RoomConfig
	LLM    LLMConfig
	Coach  CoachConfig
	Redis  RedisConfig
	Admin  AdminConfig

	LogLevel string `env:"LOG_LEVEL,default=info"`
}

type ServerConfig struct {
	Host        string `env:"SERVER_HOST,default=0.0.0.0"`
	Port        int    `env:"SERVER_PORT,default=8000" validate:"gt=0,lte=65535"`
	CORSOrigins string `env:"CORS_ORIGINS,default=*"`
}

type RoomConfig struct {
	URL         string `env:"LIVEKIT_URL"`
	Name        string `env:"LIVEKIT_ROOM"`
	APIKey      string `env:"LIVEKIT_API_KEY"`
	APISecret   string `env:"LIVEKIT_API_SECRET"`
	Token       string `env:"LIVEKIT_TOKEN"`
	BotName     string `env:"BOT_NAME,default=ai-coach" validate:"required"`
	HintChannel bool   `env:"ROOM_HINT_CHANNEL,default=false"`
}

type LLMConfig struct {
	OpenAIKey        string  `env:"OPENAI_API_KEY"`
	AnthropicKey     string  `env:"ANTHROPIC_API_KEY"`
	OllamaURL        string  `env:"OLLAMA_URL"`
	DefaultProvider  string  `env:"LLM_DEFAULT_PROVIDER,default=openai" validate:"oneof=openai anthropic ollama"`
	FallbackProvider string  `env:"LLM_FALLBACK_PROVIDER" validate:"omitempty,oneof=openai anthropic ollama"`
	OpenAIModel      string  `env:"OPENAI_MODEL,default=gpt-4o-mini" validate:"required"`
	AnthropicModel   string  `env:"ANTHROPIC_MODEL,default=claude-3-5-haiku-latest" validate:"required"`
	OllamaModel      string  `env:"OLLAMA_MODEL,default=llama3.1" validate:"required"`
	MaxTokens        int     `env:"LLM_MAX_TOKENS,default=200" validate:"gt=0"`
	Temperature      float64 `env:"LLM_TEMPERATURE,default=0.7" validate:"gte=0,lte=2"`
	MaxRetries       int     `env:"LLM_MAX_RETRIES,default=1" validate:"gte=0"`
	SystemPrompt     string  `env:"SYSTEM_PROMPT"`
}

// CoachConfig holds the tunables of the hint-triggering logic.
type CoachConfig struct {
	PartnerPattern   string        `env:"PARTNER_NAME_PATTERN,default=^partner$" validate:"required"`
	SilenceThreshold time.Duration `env:"SILENCE_THRESHOLD,default=1500ms" validate:"gt=0"`
	PollInterval     time.Duration `env:"POLL_INTERVAL,default=500ms" validate:"gt=0"`
	ContextWindow    int           `env:"CONTEXT_WINDOW,default=10" validate:"gt=0"`
	MinWords         int           `env:"MIN_WORDS_FOR_HINT,default=5" validate:"gte=0"`
	MaxHistory       int           `env:"MAX_HISTORY,default=100" validate:"gt=0"`
	RecentCount      int           `env:"REGENERATE_RECENT,default=3" validate:"gt=0"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,default=0" validate:"gte=0"`
	Channel  string `env:"REDIS_HINT_CHANNEL,default=coach:hints"`
}

type AdminConfig struct {
	RestartToken string  `env:"RESTART_TOKEN"`
	RateLimit    float64 `env:"ADMIN_RATE_LIMIT,default=2" validate:"gt=0"`
	RateBurst    int     `env:"ADMIN_RATE_BURST,default=5" validate:"gt=0"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env file: %w", err)
	}
	return FromEnviron()
}

// FromEnviron builds a Config from the current environment without touching .env.
func FromEnviron() (*Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := cfg.Coach.PartnerRegexp(); err != nil {
		return nil, fmt.Errorf("invalid PARTNER_NAME_PATTERN: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate reports every required variable that is missing. The agent cannot
// join a room or produce hints without these.
func (c *Config) Validate() error {
	var missing []string
	if c.Room.URL == "" {
		missing = append(missing, "LIVEKIT_URL")
	}
	if c.Room.Name == "" && c.Room.Token == "" {
		missing = append(missing, "LIVEKIT_ROOM")
	}
	if c.Room.Token == "" && (c.Room.APIKey == "" || c.Room.APISecret == "") {
		missing = append(missing, "LIVEKIT_TOKEN or LIVEKIT_API_KEY+LIVEKIT_API_SECRET")
	}
	if c.LLM.OpenAIKey == "" && c.LLM.AnthropicKey == "" && c.LLM.OllamaURL == "" {
		missing = append(missing, "OPENAI_API_KEY, ANTHROPIC_API_KEY or OLLAMA_URL")
	} else {
		for _, provider := range lo.Compact([]string{c.LLM.DefaultProvider, c.LLM.FallbackProvider}) {
			if !c.LLM.HasCredential(provider) {
				missing = append(missing, fmt.Sprintf("%s (required by provider %s)", credentialVar[provider], provider))
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, "; "))
	}
	return nil
}

var credentialVar = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"ollama":    "OLLAMA_URL",
}

// HasCredential reports whether provider can be reached with this config.
func (c LLMConfig) HasCredential(provider string) bool {
	switch provider {
	case "openai":
		return c.OpenAIKey != ""
	case "anthropic":
		return c.AnthropicKey != ""
	case "ollama":
		return c.OllamaURL != ""
	}
	return false
}

// ModelFor is the model sent to provider.
func (c LLMConfig) ModelFor(provider string) string {
	switch provider {
	case "openai":
		return c.OpenAIModel
	case "anthropic":
		return c.AnthropicModel
	case "ollama":
		return c.OllamaModel
	}
	return ""
}

// PartnerRegexp compiles the partner display-name pattern case-insensitively.
func (c CoachConfig) PartnerRegexp() (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + c.PartnerPattern)
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c ServerConfig) AllowedOrigins() []string {
	origins := lo.Map(strings.Split(c.CORSOrigins, ","), func(o string, _ int) string {
		return strings.TrimSpace(o)
	})
	return lo.Compact(origins)
}
