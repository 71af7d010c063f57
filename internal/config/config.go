package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"

	"github.com/DrikC/bulls-and-cows/internal/game"
)

const defaultJWTSecret = "dev-secret-change-me"

// Config describes all runtime settings, for the console game and the server.
//
// Load it once in main, validate, then pass the pieces down explicitly.
type Config struct {
	Env string // dev|stage|prod

	Log struct {
		Format string // text|json
		Level  string // debug|info|warn|error
	}

	Game struct {
		CodeLength  int
		MinChar     rune
		MaxChar     rune
		MaxAttempts int
		Seed        uint64 // 0 => seeded from the clock
	}

	// PlayerID identifies the console player in the results store.
	PlayerID string

	Store struct {
		Backend       string // none|sqlite|postgres|redis
		SQLitePath    string
		RunMigrations bool
	}

	HTTP struct {
		Addr              string
		ReadHeaderTimeout time.Duration
		IdleTimeout       time.Duration
		ShutdownTimeout   time.Duration
	}

	Postgres struct {
		URL string
	}

	Redis struct {
		Addr     string
		DB       int
		StatsTTL time.Duration
	}

	Auth struct {
		Secret   string
		TokenTTL time.Duration
	}
}

// LoadFromEnv reads the environment, after merging a .env file from the
// working directory if there is one. Variables already set win over .env.
func LoadFromEnv() (Config, error) {
	_ = godotenv.Load()

	var c Config
	var errs []error

	c.Env = envString("APP_ENV", "dev")
	c.Log.Format = envString("LOG_FORMAT", "text")
	c.Log.Level = envString("LOG_LEVEL", "info")

	def := game.DefaultOptions()
	var err error
	if c.Game.CodeLength, err = envInt("CODE_LENGTH", def.CodeLength); err != nil {
		errs = append(errs, err)
	}
	if c.Game.MaxAttempts, err = envInt("MAX_ATTEMPTS", def.MaxAttempts); err != nil {
		errs = append(errs, err)
	}
	if c.Game.Seed, err = envUint("GAME_SEED", 0); err != nil {
		errs = append(errs, err)
	}
	if c.Game.MinChar, err = envChar("MIN_CHAR", def.MinChar); err != nil {
		errs = append(errs, err)
	}
	if c.Game.MaxChar, err = envChar("MAX_CHAR", def.MaxChar); err != nil {
		errs = append(errs, err)
	}

	c.PlayerID = envString("PLAYER_ID", "local")

	c.Store.Backend = envString("STORE_BACKEND", "sqlite")
	c.Store.SQLitePath = envString("SQLITE_PATH", "./data/bullscows.db")
	c.Store.RunMigrations = envBool("RUN_MIGRATIONS", true)

	port := envString("PORT", "8080")
	c.HTTP.Addr = envString("HTTP_ADDR", ":"+port)
	c.HTTP.ReadHeaderTimeout = envDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second)
	c.HTTP.IdleTimeout = envDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)
	c.HTTP.ShutdownTimeout = envDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second)

	c.Postgres.URL = envString("DATABASE_URL", "postgres://bc:bc@localhost:5432/bc?sslmode=disable")

	c.Redis.Addr = envString("REDIS_ADDR", "localhost:6379")
	if c.Redis.DB, err = envInt("REDIS_DB", 0); err != nil {
		errs = append(errs, err)
	}
	c.Redis.StatsTTL = envDuration("STATS_TTL", 30*24*time.Hour)

	c.Auth.Secret = envString("JWT_SECRET", defaultJWTSecret)
	c.Auth.TokenTTL = envDuration("JWT_TTL", 24*time.Hour)

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Game.CodeLength <= 0 {
		return fmt.Errorf("CODE_LENGTH must be positive, got %d", c.Game.CodeLength)
	}
	if c.Game.MaxAttempts <= 0 {
		return fmt.Errorf("MAX_ATTEMPTS must be positive, got %d", c.Game.MaxAttempts)
	}
	if c.Game.MinChar > c.Game.MaxChar {
		return fmt.Errorf("MIN_CHAR %q is after MAX_CHAR %q", c.Game.MinChar, c.Game.MaxChar)
	}
	if c.PlayerID == "" {
		return errors.New("PLAYER_ID is empty")
	}

	switch c.Store.Backend {
	case "none":
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return errors.New("SQLITE_PATH is empty")
		}
	case "postgres":
		if c.Postgres.URL == "" {
			return errors.New("DATABASE_URL is empty")
		}
	case "redis":
		if c.Redis.Addr == "" {
			return errors.New("REDIS_ADDR is empty")
		}
	default:
		return fmt.Errorf("unsupported STORE_BACKEND=%q (want none|sqlite|postgres|redis)", c.Store.Backend)
	}

	if c.HTTP.Addr == "" {
		return errors.New("HTTP addr is empty")
	}
	if c.Auth.Secret == "" {
		return errors.New("JWT_SECRET is empty")
	}
	if c.Env != "dev" && c.Auth.Secret == defaultJWTSecret {
		return fmt.Errorf("refuse to run with default JWT_SECRET in %s", c.Env)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unsupported LOG_FORMAT=%q (want text|json)", c.Log.Format)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported LOG_LEVEL=%q (want debug|info|warn|error)", c.Log.Level)
	}
	return nil
}

// GameOptions returns the options every game is played with.
func (c Config) GameOptions() game.Options {
	return game.Options{
		CodeLength:  c.Game.CodeLength,
		MinChar:     c.Game.MinChar,
		MaxChar:     c.Game.MaxChar,
		MaxAttempts: c.Game.MaxAttempts,
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func envUint(key string, def uint64) (uint64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}

// envChar reads a variable holding exactly one character.
func envChar(key string, def rune) (rune, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if utf8.RuneCountInString(v) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", key, v)
	}
	r, _ := utf8.DecodeRuneInString(v)
	return r, nil
}
