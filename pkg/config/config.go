package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	ShiftMap  ShiftMapConfig
	Generator GeneratorConfig
	Export    ExportConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ShiftMapConfig governs caching of reconciled month views.
type ShiftMapConfig struct {
	CacheEnabled      bool
	CacheTTL          time.Duration
	DefaultDepartment string
}

// GeneratorConfig tunes the month generator and its async queue.
type GeneratorConfig struct {
	Actor      string
	Workers    int
	Retries    int
	RetryDelay time.Duration
}

// ExportConfig locates files written by shiftctl export.
type ExportConfig struct {
	Dir    string
	MaxAge time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.ShiftMap = ShiftMapConfig{
		CacheEnabled:      v.GetBool("ENABLE_SHIFT_CACHE"),
		CacheTTL:          parseDuration(v.GetString("SHIFT_CACHE_TTL"), 5*time.Minute),
		DefaultDepartment: strings.TrimSpace(v.GetString("DEFAULT_DEPARTMENT")),
	}

	workers := v.GetInt("GENERATOR_WORKERS")
	if workers <= 0 {
		workers = 1
	}
	cfg.Generator = GeneratorConfig{
		Actor:      strings.TrimSpace(v.GetString("GENERATOR_ACTOR")),
		Workers:    workers,
		Retries:    v.GetInt("GENERATOR_RETRIES"),
		RetryDelay: parseDuration(v.GetString("GENERATOR_RETRY_DELAY"), 5*time.Second),
	}

	cfg.Export = ExportConfig{
		Dir:    v.GetString("EXPORT_DIR"),
		MaxAge: parseDuration(v.GetString("EXPORT_MAX_AGE"), 30*24*time.Hour),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "shift_roster")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_SHIFT_CACHE", false)
	v.SetDefault("SHIFT_CACHE_TTL", "5m")
	v.SetDefault("DEFAULT_DEPARTMENT", "amami")

	v.SetDefault("GENERATOR_ACTOR", "generator")
	v.SetDefault("GENERATOR_WORKERS", 1)
	v.SetDefault("GENERATOR_RETRIES", 2)
	v.SetDefault("GENERATOR_RETRY_DELAY", "5s")

	v.SetDefault("EXPORT_DIR", "./exports")
	v.SetDefault("EXPORT_MAX_AGE", "720h")
}

// isMissingFile reports a missing explicit .env file, which viper surfaces as a
// path error rather than ConfigFileNotFoundError when SetConfigFile is used.
func isMissingFile(err error) bool {
	return strings.Contains(err.Error(), "no such file or directory") ||
		strings.Contains(err.Error(), "cannot find the file")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
