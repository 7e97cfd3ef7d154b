package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/example/hearing-board/internal/hearing"
)

var allKeys = []string{
	"HEARINGS_HTTP_PORT",
	"HEARINGS_SOURCE",
	"HEARINGS_SHEET",
	"HEARINGS_SQLITE_TABLE",
	"HEARINGS_TIMEZONE",
	"HEARINGS_LOG_LEVEL",
	"HEARINGS_EXPORT_RATE",
	"HEARINGS_EXPORT_BURST",
	"HEARINGS_CORS_ORIGINS",
	"HEARINGS_COLUMN_DATETIME",
	"HEARINGS_COLUMN_CASE",
	"HEARINGS_COLUMN_PLAINTIFF",
	"HEARINGS_COLUMN_DEFENDANT",
	"HEARINGS_COLUMN_ROOM",
	"HEARINGS_COLUMN_JUDGE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.Source != "audiencias.xlsx" {
			t.Fatalf("unexpected default source: %q", cfg.Source)
		}
		if cfg.Location == nil || cfg.Location.String() != "America/Bogota" {
			t.Fatalf("unexpected default location: %v", cfg.Location)
		}
		if cfg.LogLevel != slog.LevelInfo {
			t.Fatalf("unexpected default log level: %v", cfg.LogLevel)
		}
		if cfg.Columns != hearing.DefaultColumns() {
			t.Fatalf("unexpected default columns: %+v", cfg.Columns)
		}
		if cfg.ExportRate != 2 || cfg.ExportBurst != 4 {
			t.Fatalf("unexpected export limits: %v/%d", cfg.ExportRate, cfg.ExportBurst)
		}
	})

	t.Run("reads overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HEARINGS_HTTP_PORT", "9090")
		t.Setenv("HEARINGS_SOURCE", "datos/audiencias.db")
		t.Setenv("HEARINGS_SQLITE_TABLE", "agenda")
		t.Setenv("HEARINGS_TIMEZONE", "UTC")
		t.Setenv("HEARINGS_LOG_LEVEL", "debug")
		t.Setenv("HEARINGS_CORS_ORIGINS", "https://a.example, ,https://b.example")
		t.Setenv("HEARINGS_COLUMN_ROOM", "Sala")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.HTTPPort != 9090 || cfg.Source != "datos/audiencias.db" || cfg.SQLiteTable != "agenda" {
			t.Fatalf("unexpected config: %+v", cfg)
		}
		if cfg.LogLevel != slog.LevelDebug {
			t.Fatalf("expected debug level, got %v", cfg.LogLevel)
		}
		if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(cfg.CORSOrigins, want) {
			t.Fatalf("expected origins %v, got %v", want, cfg.CORSOrigins)
		}
		if cfg.Columns.Room != "Sala" || cfg.Columns.Judge != "Juez" {
			t.Fatalf("unexpected columns: %+v", cfg.Columns)
		}
	})

	t.Run("errors when required values are missing", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HEARINGS_SOURCE", "   ")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error when required values are missing")
		}
		expected := "faltan variables de entorno obligatorias: HEARINGS_SOURCE"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("aggregates invalid values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("HEARINGS_HTTP_PORT", "abc")
		t.Setenv("HEARINGS_SOURCE", "audiencias.pdf")
		t.Setenv("HEARINGS_TIMEZONE", "Marte/Olympus")
		t.Setenv("HEARINGS_LOG_LEVEL", "verbose")
		t.Setenv("HEARINGS_EXPORT_RATE", "-1")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for invalid values")
		}
		expected := "valores de variables de entorno no válidos: HEARINGS_HTTP_PORT, HEARINGS_SOURCE, HEARINGS_TIMEZONE, HEARINGS_LOG_LEVEL, HEARINGS_EXPORT_RATE"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "hearings.env")
	if err := os.WriteFile(path, []byte("HEARINGS_HTTP_PORT=7070\nHEARINGS_SHEET=Agenda\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("HEARINGS_SHEET", "Principal")

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPPort != 7070 {
		t.Fatalf("expected port from file, got %d", cfg.HTTPPort)
	}
	if cfg.Sheet != "Principal" {
		t.Fatalf("expected process environment to win, got %q", cfg.Sheet)
	}
}
