// Package config loads service settings.
//
// Precedence, lowest first: built-in defaults, the YAML file named by
// WORDLE_CONFIG, then environment variables (a local .env is loaded into the
// environment first and never overrides variables that are already set).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the CLI and the HTTP service.
type Config struct {
	Port          string `yaml:"port"`
	LogLevel      string `yaml:"log_level"`
	WordLength    int    `yaml:"word_length"`
	MaxTurns      int    `yaml:"max_turns"`
	StrictGuesses bool   `yaml:"strict_guesses"`
	AnswersFile   string `yaml:"answers_file"`
	AllowedFile   string `yaml:"allowed_file"`
	DBPath        string `yaml:"db_path"`
	JWTSecret     string `yaml:"jwt_secret"`
	DailySalt     string `yaml:"daily_salt"`
	ClientOrigin  string `yaml:"client_origin"`
	MaxSessions   int    `yaml:"max_sessions"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Port:          "5175",
		LogLevel:      "info",
		WordLength:    5,
		MaxTurns:      6,
		StrictGuesses: true,
		DBPath:        "./data/wordle.db",
		DailySalt:     "local_dev_salt",
		ClientOrigin:  "http://localhost:5173",
		MaxSessions:   10000,
	}
}

// Load resolves the configuration from defaults, file and environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("WORDLE_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"PORT":               &c.Port,
		"LOG_LEVEL":          &c.LogLevel,
		"WORDS_ANSWERS_FILE": &c.AnswersFile,
		"WORDS_ALLOWED_FILE": &c.AllowedFile,
		"DB_PATH":            &c.DBPath,
		"JWT_SECRET":         &c.JWTSecret,
		"DAILY_SALT":         &c.DailySalt,
		"CLIENT_ORIGIN":      &c.ClientOrigin,
	}
	for k, dst := range str {
		if v := os.Getenv(k); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"WORDLE_WORD_LENGTH":  &c.WordLength,
		"WORDLE_MAX_TURNS":    &c.MaxTurns,
		"WORDLE_MAX_SESSIONS": &c.MaxSessions,
	}
	for k, dst := range ints {
		if v := os.Getenv(k); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("config: %s=%q: %w", k, v, err)
			}
			*dst = n
		}
	}

	if v := os.Getenv("WORDLE_STRICT"); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: WORDLE_STRICT=%q: %w", v, err)
		}
		c.StrictGuesses = b
	}
	return nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.WordLength < 1 || c.WordLength > 15 {
		errs = append(errs, fmt.Errorf("word_length %d out of range 1..15", c.WordLength))
	}
	if c.MaxTurns < 1 {
		errs = append(errs, fmt.Errorf("max_turns %d must be >= 1", c.MaxTurns))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("port is empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Secret returns the JWT secret, falling back to a development value.
func (c Config) Secret() string {
	if c.JWTSecret == "" {
		return "dev_secret_change_me"
	}
	return c.JWTSecret
}
