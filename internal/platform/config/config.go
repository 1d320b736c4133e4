package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	AdminToken      string
	ShutdownTimeout time.Duration
}

// Activity configures where the activity log comes from and how it is served.
type Activity struct {
	// Source is a file path, file://, http(s):// URL or redis://<key>.
	Source             string
	FetchTimeout       time.Duration
	AvatarsFile        string
	DecomposeCacheSize int
}

// Logging selects the slog handler.
type Logging struct {
	Level  string
	Format string
}

// RedisConfig is only needed for redis:// sources.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Config struct {
	Server   Server
	Activity Activity
	Logging  Logging
	Redis    RedisConfig
}

// FromEnv builds the configuration from environment variables so main stays
// lean. A .env file in the working directory is loaded first when present;
// variables already set in the environment win.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	e := env{lookup: lookup}

	cfg := Config{
		Server: Server{
			Addr:            e.str("ACTIVITY_ADDR", ":8080"),
			AdminToken:      e.str("ACTIVITY_ADMIN_TOKEN", ""),
			ShutdownTimeout: e.dur("ACTIVITY_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Activity: Activity{
			Source:             e.str("ACTIVITY_SOURCE", "public/Logs.csv"),
			FetchTimeout:       e.dur("ACTIVITY_FETCH_TIMEOUT", 10*time.Second),
			AvatarsFile:        e.str("ACTIVITY_AVATARS_FILE", ""),
			DecomposeCacheSize: e.integer("ACTIVITY_DECOMPOSE_CACHE_SIZE", 0),
		},
		Logging: Logging{
			Level:  e.str("LOG_LEVEL", "info"),
			Format: e.str("LOG_FORMAT", "json"),
		},
		Redis: RedisConfig{
			URL:          e.str("REDIS_URL", ""),
			PoolSize:     e.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: e.integer("REDIS_MIN_IDLE_CONNS", 1),
			DialTimeout:  e.dur("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  e.dur("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: e.dur("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
	if len(e.errs) > 0 {
		return Config{}, errors.Join(e.errs...)
	}
	if cfg.Activity.DecomposeCacheSize < 0 {
		return Config{}, fmt.Errorf("ACTIVITY_DECOMPOSE_CACHE_SIZE must not be negative")
	}
	return cfg, nil
}

// env reads typed values and collects parse errors so every bad variable is
// reported at once.
type env struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *env) str(key, def string) string {
	if v, ok := e.lookup(key); ok && v != "" {
		return v
	}
	return def
}

func (e *env) integer(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return def
	}
	return n
}

func (e *env) dur(key string, def time.Duration) time.Duration {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: invalid duration %q", key, v))
		return def
	}
	return d
}
