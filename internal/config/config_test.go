package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid json backend config",
			config: Config{
				Port:         "8080",
				StoreBackend: "json",
				StorePath:    "despesas.json",
				LogLevel:     "info",
			},
			wantErr: false,
		},
		{
			name: "valid memory backend config",
			config: Config{
				Port:         "9090",
				StoreBackend: "memory",
				LogLevel:     "debug",
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:         "abc",
				StoreBackend: "json",
				StorePath:    "despesas.json",
				LogLevel:     "info",
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:         "70000",
				StoreBackend: "json",
				StorePath:    "despesas.json",
				LogLevel:     "info",
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "invalid backend",
			config: Config{
				Port:         "8080",
				StoreBackend: "sqlite",
				LogLevel:     "info",
			},
			wantErr:     true,
			errorString: "invalid store backend 'sqlite'",
		},
		{
			name: "json backend requires a path",
			config: Config{
				Port:         "8080",
				StoreBackend: "json",
				StorePath:    "",
				LogLevel:     "info",
			},
			wantErr:     true,
			errorString: "store path cannot be empty",
		},
		{
			name: "invalid log level",
			config: Config{
				Port:         "8080",
				StoreBackend: "memory",
				LogLevel:     "verbose",
			},
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestConfig_ValidateCreatesStoreDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := Config{
		Port:         "8080",
		StoreBackend: "json",
		StorePath:    filepath.Join(dir, "despesas.json"),
		LogLevel:     "info",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected directory to be created, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_BACKEND", "STORE_PATH", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" || cfg.StoreBackend != "json" || cfg.StorePath != "data/despesas.json" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "warn")
	cfg := Load()
	if cfg.Port != "9999" || cfg.StoreBackend != "memory" || cfg.LogLevel != "warn" {
		t.Fatalf("env overrides ignored: %+v", cfg)
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for in, want := range cases {
		if got := (&Config{LogLevel: in}).SlogLevel(); got != want {
			t.Fatalf("%q expected %v, got %v", in, want, got)
		}
	}
}
