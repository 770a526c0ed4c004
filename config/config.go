package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	minStartPlayers = 2
	maxStartPlayers = 8
)

var (
	ErrInvalidPort         = errors.New("port must be between 1 and 65535")
	ErrInvalidStartPlayers = fmt.Errorf("start players must be between %d and %d", minStartPlayers, maxStartPlayers)
	ErrNoAllowedOrigins    = errors.New("at least one allowed origin is required")
	ErrMalformedValue      = errors.New("malformed environment value")
)

// Config is the server's configuration, read from the environment
type Config struct {
	Port int `env:"PORT"`
	// AllowedOrigins are separated by ";" in the environment
	AllowedOrigins []string `env:"TOPTHAT_ALLOWED_ORIGINS"`
	// StartPlayers is how many players a game waits for before dealing
	StartPlayers int    `env:"TOPTHAT_START_PLAYERS"`
	LogLevel     string `env:"TOPTHAT_LOG_LEVEL"`
	Development  bool   `env:"TOPTHAT_DEV"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Port:           8000,
		AllowedOrigins: []string{"*"},
		StartPlayers:   2,
		LogLevel:       "info",
	}
}

// Load reads the configuration from the environment, after loading any
// .env files given (".env" if none are). Missing .env files are ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("could not load %s: %w", f, err)
		}
	}

	if err := checkTypes(); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("could not decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// checkTypes rejects numeric and boolean variables that do not parse.
// envdecode skips them silently, leaving the default in place.
func checkTypes() error {
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := strings.Split(field.Tag.Get("env"), ",")[0]
		raw, ok := os.LookupEnv(name)
		if name == "" || !ok || raw == "" {
			continue
		}

		var err error
		switch field.Type.Kind() {
		case reflect.Int:
			_, err = strconv.Atoi(strings.TrimSpace(raw))
		case reflect.Bool:
			_, err = strconv.ParseBool(strings.TrimSpace(raw))
		}
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrMalformedValue, name, raw)
		}
	}
	return nil
}

// Validate rejects out-of-range values
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Port)
	}
	if c.StartPlayers < minStartPlayers || c.StartPlayers > maxStartPlayers {
		return fmt.Errorf("%w: got %d", ErrInvalidStartPlayers, c.StartPlayers)
	}
	if len(c.AllowedOrigins) == 0 {
		return ErrNoAllowedOrigins
	}
	return nil
}

// Addr is the address to listen on
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
