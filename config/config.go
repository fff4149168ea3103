package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	Port            string
	FrontendOrigins []string
	OpenAIKey       string
	OpenAIModel     string
	OpenAIBaseURL   string
	AnthropicKey    string
	AnthropicModel  string
	LLMTimeout      time.Duration
	HistoryTokens   int
	SessionStore    string
	DatabaseURL     string
	DBMaxConns      int
	SQLitePath      string
	SlackToken      string
	SlackChannelID  string
	LinearToken     string
}

// LoadConfig loads configuration from environment variables
// It first tries to load from .env file, then falls back to system environment variables
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
	}

	return &Config{
		Port:            getEnv("PORT", "3001"),
		FrontendOrigins: splitList(getEnv("FRONTEND_URL", "http://localhost:3000")),
		OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
		AnthropicKey:    getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		LLMTimeout:      time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		HistoryTokens:   getEnvInt("LLM_HISTORY_TOKENS", 3000),
		SessionStore:    strings.ToLower(getEnv("SESSION_STORE", StoreMemory)),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		DBMaxConns:      getEnvInt("DB_MAX_CONNS", 10),
		SQLitePath:      getEnv("SQLITE_PATH", "data/devbrain.db"),
		SlackToken:      getEnv("SLACK_BOT_TOKEN", ""),
		SlackChannelID:  getEnv("SLACK_CHANNEL_ID", ""),
		LinearToken:     getEnv("LINEAR_API_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Provider names the LLM backend the keys select; OpenAI wins when both are set
func (c *Config) Provider() string {
	switch {
	case c.OpenAIKey != "":
		return "openai"
	case c.AnthropicKey != "":
		return "anthropic"
	default:
		return ""
	}
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	switch c.SessionStore {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when SESSION_STORE=postgres")
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when SESSION_STORE=sqlite")
		}
	default:
		return fmt.Errorf("unknown SESSION_STORE %q (memory, postgres, sqlite)", c.SessionStore)
	}
	if c.SlackToken != "" && c.SlackChannelID == "" {
		return fmt.Errorf("SLACK_CHANNEL_ID is required when SLACK_BOT_TOKEN is set")
	}
	return nil
}
