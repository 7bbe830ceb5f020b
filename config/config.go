package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	AIBackendGemini = "gemini"
	AIBackendGRPC   = "grpc"
	AIBackendOpenAI = "openai"
	AIBackendNone   = "none"

	StorageSupabase = "supabase"
	StorageSQLite   = "sqlite"
)

// Config is the full service configuration, loaded from YAML and the environment.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	AI        AIConfig        `yaml:"ai"`
	Storage   StorageConfig   `yaml:"storage"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	Worker    WorkerConfig    `yaml:"worker"`
}

type ServerConfig struct {
	Port         int    `yaml:"port" validate:"gte=1,lte=65535"`
	BodyLimitMB  int    `yaml:"body_limit_mb" validate:"gte=1"`
	AllowOrigins string `yaml:"allow_origins"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
}

// AIConfig selects the AI backend. Model applies to the gemini and openai backends.
type AIConfig struct {
	Backend         string        `yaml:"backend" validate:"oneof=gemini grpc openai none"`
	GeminiAPIKey    string        `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	OpenAIAPIKey    string        `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string        `yaml:"openai_base_url" env:"OPENAI_BASE_URL"`
	Model           string        `yaml:"model"`
	GRPCAddr        string        `yaml:"grpc_addr" env:"AI_GRPC_ADDR"`
	AnalysisTimeout time.Duration `yaml:"analysis_timeout" validate:"gt=0"`
	MatchTimeout    time.Duration `yaml:"match_timeout" validate:"gt=0"`
}

type StorageConfig struct {
	Backend     string `yaml:"backend" validate:"oneof=supabase sqlite"`
	SupabaseURL string `yaml:"supabase_url" env:"SUPABASE_URL"`
	SupabaseKey string `yaml:"supabase_key" env:"SUPABASE_SERVICE_KEY"`
	SQLitePath  string `yaml:"sqlite_path" env:"DATABASE_PATH"`
}

type RateLimitConfig struct {
	Requests        int           `yaml:"requests" validate:"gte=0"`
	Window          time.Duration `yaml:"window" validate:"gt=0"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" validate:"gt=0"`
}

type WorkerConfig struct {
	Workers   int `yaml:"workers" validate:"gte=1"`
	QueueSize int `yaml:"queue_size" validate:"gte=1"`
}

var validate = validator.New()

// Load reads the YAML config file, applies environment overrides and defaults,
// and validates the result. A missing file is not an error: the service can
// run from environment variables alone.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path == "" {
		path = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" && c.AI.GeminiAPIKey == "" {
		c.AI.GeminiAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && c.AI.OpenAIAPIKey == "" {
		c.AI.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" && c.AI.OpenAIBaseURL == "" {
		c.AI.OpenAIBaseURL = v
	}
	if v := os.Getenv("AI_GRPC_ADDR"); v != "" && c.AI.GRPCAddr == "" {
		c.AI.GRPCAddr = v
	}
	if v := os.Getenv("SUPABASE_URL"); v != "" && c.Storage.SupabaseURL == "" {
		c.Storage.SupabaseURL = v
	}
	if v := os.Getenv("SUPABASE_SERVICE_KEY"); v != "" && c.Storage.SupabaseKey == "" {
		c.Storage.SupabaseKey = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" && c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.BodyLimitMB == 0 {
		c.Server.BodyLimitMB = 4
	}
	if c.Server.AllowOrigins == "" {
		c.Server.AllowOrigins = "*"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Log.Level = strings.ToLower(c.Log.Level)

	if c.AI.Backend == "" {
		switch {
		case c.AI.GeminiAPIKey != "":
			c.AI.Backend = AIBackendGemini
		case c.AI.OpenAIAPIKey != "":
			c.AI.Backend = AIBackendOpenAI
		case c.AI.GRPCAddr != "":
			c.AI.Backend = AIBackendGRPC
		default:
			c.AI.Backend = AIBackendNone
		}
	}
	if c.AI.Model == "" {
		switch c.AI.Backend {
		case AIBackendOpenAI:
			c.AI.Model = "gpt-4o-mini"
		default:
			c.AI.Model = "gemini-2.5-flash"
		}
	}
	if c.AI.AnalysisTimeout == 0 {
		c.AI.AnalysisTimeout = 60 * time.Second
	}
	if c.AI.MatchTimeout == 0 {
		c.AI.MatchTimeout = 30 * time.Second
	}

	if c.Storage.Backend == "" {
		if c.Storage.SupabaseURL != "" && c.Storage.SupabaseKey != "" {
			c.Storage.Backend = StorageSupabase
		} else {
			c.Storage.Backend = StorageSQLite
		}
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = "adgen.db"
	}

	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = 60
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = time.Minute
	}
	if c.RateLimit.CleanupInterval == 0 {
		c.RateLimit.CleanupInterval = 5 * time.Minute
	}

	if c.Worker.Workers == 0 {
		c.Worker.Workers = 4
	}
	if c.Worker.QueueSize == 0 {
		c.Worker.QueueSize = 100
	}
}

// Validate checks struct constraints and the credentials each selected backend needs.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	switch c.AI.Backend {
	case AIBackendGemini:
		if c.AI.GeminiAPIKey == "" {
			return fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or ai.gemini_api_key)")
		}
	case AIBackendOpenAI:
		if c.AI.OpenAIAPIKey == "" {
			return fmt.Errorf("OpenAI API key is required (set OPENAI_API_KEY or ai.openai_api_key)")
		}
	case AIBackendGRPC:
		if c.AI.GRPCAddr == "" {
			return fmt.Errorf("AI service address is required (set AI_GRPC_ADDR or ai.grpc_addr)")
		}
	}
	if c.Storage.Backend == StorageSupabase {
		if c.Storage.SupabaseURL == "" || c.Storage.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_KEY must be set for the supabase storage backend")
		}
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
