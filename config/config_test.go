package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_FILE", "GEMINI_API_KEY", "OPENAI_API_KEY", "OPENAI_BASE_URL", "AI_GRPC_ADDR",
		"SUPABASE_URL", "SUPABASE_SERVICE_KEY", "DATABASE_PATH", "LOG_LEVEL", "PORT",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Addr() != ":8080" {
		t.Fatalf("unexpected port %d", cfg.Server.Port)
	}
	if cfg.AI.Backend != AIBackendNone {
		t.Fatalf("expected none backend without credentials, got %q", cfg.AI.Backend)
	}
	if cfg.Storage.Backend != StorageSQLite || cfg.Storage.SQLitePath != "adgen.db" {
		t.Fatalf("expected sqlite default storage, got %+v", cfg.Storage)
	}
	if cfg.AI.MatchTimeout != 30*time.Second || cfg.RateLimit.Window != time.Minute {
		t.Fatalf("unexpected timing defaults: %+v %+v", cfg.AI, cfg.RateLimit)
	}
	if cfg.Worker.Workers != 4 || cfg.Worker.QueueSize != 100 {
		t.Fatalf("unexpected worker defaults: %+v", cfg.Worker)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 9000
log:
  level: DEBUG
ai:
  backend: openai
  model: gpt-test
  match_timeout: 5s
ratelimit:
  requests: 10
`)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Fatalf("PORT should override the file, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected lower-cased level, got %q", cfg.Log.Level)
	}
	if cfg.AI.OpenAIAPIKey != "sk-test" || cfg.AI.Model != "gpt-test" {
		t.Fatalf("unexpected AI config: %+v", cfg.AI)
	}
	if cfg.AI.MatchTimeout != 5*time.Second || cfg.AI.AnalysisTimeout != 60*time.Second {
		t.Fatalf("unexpected timeouts: %+v", cfg.AI)
	}
	if cfg.RateLimit.Requests != 10 {
		t.Fatalf("expected 10 requests, got %d", cfg.RateLimit.Requests)
	}
}

func TestLoad_BackendInference(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		ai    string
		model string
	}{
		{"gemini key", map[string]string{"GEMINI_API_KEY": "g"}, AIBackendGemini, "gemini-2.5-flash"},
		{"openai key", map[string]string{"OPENAI_API_KEY": "o"}, AIBackendOpenAI, "gpt-4o-mini"},
		{"grpc addr", map[string]string{"AI_GRPC_ADDR": "localhost:50051"}, AIBackendGRPC, "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.AI.Backend != tt.ai || cfg.AI.Model != tt.model {
				t.Fatalf("got backend %q model %q", cfg.AI.Backend, cfg.AI.Model)
			}
		})
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown ai backend", "ai:\n  backend: claude\n", "validation failed"},
		{"gemini without key", "ai:\n  backend: gemini\n", "Gemini API key"},
		{"openai without key", "ai:\n  backend: openai\n", "OpenAI API key"},
		{"grpc without addr", "ai:\n  backend: grpc\n", "AI service address"},
		{"supabase without creds", "storage:\n  backend: supabase\n", "SUPABASE_URL"},
		{"bad port", "server:\n  port: 70000\n", "validation failed"},
		{"bad yaml", "server: [", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestInitLogger_UnknownLevel(t *testing.T) {
	l := InitLogger("loud")
	if l.GetLevel().String() != "info" {
		t.Fatalf("expected info fallback, got %s", l.GetLevel())
	}
	if Log != l {
		t.Fatal("InitLogger should set the package logger")
	}
}
