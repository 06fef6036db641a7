package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPort          = "8080"
	DefaultAppName       = "pet-pedigree"
	DefaultLineagePrefix = "PED"
)

// Config reúne lo que hoy viene por env. Todo es opcional.
type Config struct {
	Port string

	// Si viene, usa Postgres. Si no, in-memory.
	DBDSN string

	LogLevel  string
	LogFormat string
	AppName   string

	LineagePrefix string

	// Ruta a un TOML con la tabla [scoring] (ver pedigree.LoadWeights).
	ScoringConfig string
}

// Load lee variables de entorno. Si existe envFile (p.ej. ".env") lo carga
// antes, sin pisar variables ya definidas en el proceso.
func Load(envFile string) (Config, error) {
	if strings.TrimSpace(envFile) != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load env file '%s': %w", envFile, err)
		}
	}

	cfg := Config{
		Port:          getenv("PORT", DefaultPort),
		DBDSN:         strings.TrimSpace(os.Getenv("DB_DSN")),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFormat:     os.Getenv("LOG_FORMAT"),
		AppName:       getenv("APP_NAME", DefaultAppName),
		LineagePrefix: getenv("LINEAGE_PREFIX", DefaultLineagePrefix),
		ScoringConfig: strings.TrimSpace(os.Getenv("SCORING_CONFIG")),
	}

	if strings.ContainsAny(cfg.LineagePrefix, " \t-") {
		return Config{}, fmt.Errorf("LINEAGE_PREFIX must not contain spaces or '-', got %q", cfg.LineagePrefix)
	}

	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
