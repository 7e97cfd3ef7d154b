package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/example/hearing-board/internal/hearing"
	"github.com/example/hearing-board/internal/logging"
	"github.com/example/hearing-board/internal/persistence/sources"
)

// Config captures environment driven configuration values for the hearing board.
type Config struct {
	HTTPPort     int
	Source       string
	Sheet        string
	SQLiteTable  string
	TimezoneName string
	Location     *time.Location
	LogLevel     slog.Level
	ExportRate   float64
	ExportBurst  int
	CORSOrigins  []string
	Columns      hearing.Columns
}

const (
	defaultSource   = "audiencias.xlsx"
	defaultTimezone = "America/Bogota"
)

// LoadDotEnv loads variables from the given files, or ".env" when none are
// given, without overriding the process environment. Missing files are
// ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to defaults. Every missing or invalid value is
// collected and reported in a single localized error.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:     8080,
		Source:       defaultSource,
		SQLiteTable:  "audiencias",
		TimezoneName: defaultTimezone,
		LogLevel:     slog.LevelInfo,
		ExportRate:   2,
		ExportBurst:  4,
		Columns:      hearing.DefaultColumns(),
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("HEARINGS_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, "HEARINGS_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if value, set := os.LookupEnv("HEARINGS_SOURCE"); set {
		if source := strings.TrimSpace(value); source == "" {
			missing = append(missing, "HEARINGS_SOURCE")
		} else {
			cfg.Source = source
		}
	}
	if _, err := sources.KindOf(cfg.Source); err != nil {
		invalid = append(invalid, "HEARINGS_SOURCE")
	}

	cfg.Sheet = strings.TrimSpace(os.Getenv("HEARINGS_SHEET"))

	if table := strings.TrimSpace(os.Getenv("HEARINGS_SQLITE_TABLE")); table != "" {
		cfg.SQLiteTable = table
	}

	if tz := strings.TrimSpace(os.Getenv("HEARINGS_TIMEZONE")); tz != "" {
		cfg.TimezoneName = tz
	}
	loc, err := time.LoadLocation(cfg.TimezoneName)
	if err != nil {
		invalid = append(invalid, "HEARINGS_TIMEZONE")
	} else {
		cfg.Location = loc
	}

	if levelValue := os.Getenv("HEARINGS_LOG_LEVEL"); levelValue != "" {
		level, ok := logging.ParseLevel(levelValue)
		if !ok {
			invalid = append(invalid, "HEARINGS_LOG_LEVEL")
		} else {
			cfg.LogLevel = level
		}
	}

	if rateValue := strings.TrimSpace(os.Getenv("HEARINGS_EXPORT_RATE")); rateValue != "" {
		rate, err := strconv.ParseFloat(rateValue, 64)
		if err != nil || rate < 0 {
			invalid = append(invalid, "HEARINGS_EXPORT_RATE")
		} else {
			cfg.ExportRate = rate
		}
	}

	if burstValue := strings.TrimSpace(os.Getenv("HEARINGS_EXPORT_BURST")); burstValue != "" {
		burst, err := strconv.Atoi(burstValue)
		if err != nil || burst <= 0 {
			invalid = append(invalid, "HEARINGS_EXPORT_BURST")
		} else {
			cfg.ExportBurst = burst
		}
	}

	if origins := strings.TrimSpace(os.Getenv("HEARINGS_CORS_ORIGINS")); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	overrides := []struct {
		key    string
		target *string
	}{
		{"HEARINGS_COLUMN_DATETIME", &cfg.Columns.DateTime},
		{"HEARINGS_COLUMN_CASE", &cfg.Columns.Case},
		{"HEARINGS_COLUMN_PLAINTIFF", &cfg.Columns.Plaintiff},
		{"HEARINGS_COLUMN_DEFENDANT", &cfg.Columns.Defendant},
		{"HEARINGS_COLUMN_ROOM", &cfg.Columns.Room},
		{"HEARINGS_COLUMN_JUDGE", &cfg.Columns.Judge},
	}
	for _, o := range overrides {
		if value := strings.TrimSpace(os.Getenv(o.key)); value != "" {
			*o.target = value
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("faltan variables de entorno obligatorias: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("valores de variables de entorno no válidos: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
