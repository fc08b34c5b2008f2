package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"insights/database"
)

// EnvPrefix préfixe des variables d'environnement (INSIGHTS_DRIVER, INSIGHTS_DSN, ...)
const EnvPrefix = "insights"

// Config configuration de l'application, lue depuis .env puis l'environnement
type Config struct {
	Driver          string        `envconfig:"DRIVER" default:"sqlite"`
	DSN             string        `envconfig:"DSN" default:"file:insights.db"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	QueryTimeout    time.Duration `envconfig:"QUERY_TIMEOUT" default:"5s"`
	CacheTTL        time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"text"`
	SuggestionQuery string        `envconfig:"SUGGESTION_QUERY"`
	SeriesWorkers   int           `envconfig:"SERIES_WORKERS" default:"4"`
}

// Load charge les fichiers .env (absents tolérés) puis les variables INSIGHTS_*.
// Les variables déjà présentes dans l'environnement ne sont pas écrasées.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate vérifie les valeurs incohérentes
func (c *Config) Validate() error {
	switch c.Driver {
	case database.DriverSQLite, database.DriverPostgres:
	default:
		return fmt.Errorf("config error: unsupported driver %q", c.Driver)
	}
	if c.DSN == "" {
		return errors.New("config error: DSN is required")
	}
	if c.QueryTimeout <= 0 {
		return errors.New("config error: query timeout must be positive")
	}
	if c.CacheTTL <= 0 {
		return errors.New("config error: cache TTL must be positive")
	}
	if c.SeriesWorkers <= 0 {
		return errors.New("config error: series workers must be positive")
	}
	if c.SuggestionQuery != "" && strings.Count(c.SuggestionQuery, "?") != 1 {
		return errors.New("config error: suggestion query must contain exactly one '?' placeholder")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("config error: unsupported log format %q", c.LogFormat)
	}
	return nil
}

// NewLogger construit le logger logrus selon LogLevel / LogFormat
func (c *Config) NewLogger(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// DatabaseOptions paramètres de connexion pour database.Open
func (c *Config) DatabaseOptions(logger *logrus.Logger) database.Options {
	return database.Options{
		Driver:       c.Driver,
		DSN:          c.DSN,
		MaxOpenConns: c.MaxOpenConns,
		Logger:       logger,
	}
}
