package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/nitesh/content_service/internal/search"
)

// Config is the resolved service configuration.
type Config struct {
	Port           string
	RequestTimeout time.Duration

	LogLevel  string
	LogFormat string // json|text

	DBHost          string
	DBPort          string
	DBName          string
	DBUser          string
	DBPass          string
	DBRunMigrations bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Search          search.Limits
	SuggestCacheTTL time.Duration
}

// envBindings maps config keys to environment variables.
var envBindings = map[string]string{
	"server.port":            "PORT",
	"server.request_timeout": "REQUEST_TIMEOUT",
	"log.level":              "LOG_LEVEL",
	"log.format":             "LOG_FORMAT",
	"db.host":                "DB_HOST",
	"db.port":                "DB_PORT",
	"db.name":                "DB_NAME",
	"db.user":                "DB_USER",
	"db.pass":                "DB_PASS",
	"db.run_migrations":      "DB_RUN_MIGRATIONS",
	"redis.addr":             "REDIS_ADDR",
	"redis.password":         "REDIS_PASSWORD",
	"redis.db":               "REDIS_DB",
	"search.default_limit":   "SEARCH_DEFAULT_LIMIT",
	"search.max_limit":       "SEARCH_MAX_LIMIT",
	"search.max_candidates":  "SEARCH_MAX_CANDIDATES",
	"suggest.default_limit":  "SUGGEST_DEFAULT_LIMIT",
	"suggest.max_limit":      "SUGGEST_MAX_LIMIT",
	"suggest.per_type_limit": "SUGGEST_PER_TYPE_LIMIT",
	"suggest.cache_ttl":      "SUGGEST_CACHE_TTL",
}

func setDefaults(vp *viper.Viper) {
	limits := search.DefaultLimits()

	vp.SetDefault("server.port", "8080")
	vp.SetDefault("server.request_timeout", "10s")
	vp.SetDefault("log.level", "info")
	vp.SetDefault("log.format", "json")
	vp.SetDefault("db.host", "localhost")
	vp.SetDefault("db.port", "5432")
	vp.SetDefault("db.name", "content_db")
	vp.SetDefault("db.user", "content_user")
	vp.SetDefault("db.pass", "")
	vp.SetDefault("db.run_migrations", false)
	vp.SetDefault("redis.addr", "")
	vp.SetDefault("redis.password", "")
	vp.SetDefault("redis.db", 0)
	vp.SetDefault("search.default_limit", limits.SearchDefaultLimit)
	vp.SetDefault("search.max_limit", limits.SearchMaxLimit)
	vp.SetDefault("search.max_candidates", limits.MaxCandidates)
	vp.SetDefault("suggest.default_limit", limits.SuggestDefaultLimit)
	vp.SetDefault("suggest.max_limit", limits.SuggestMaxLimit)
	vp.SetDefault("suggest.per_type_limit", limits.SuggestPerTypeLimit)
	vp.SetDefault("suggest.cache_ttl", "30s")
}

// Load reads defaults, then the optional file at path (any format viper
// understands, chosen by extension), then the environment.
func Load(path string) (*Config, error) {
	vp := viper.New()
	setDefaults(vp)

	if path != "" {
		vp.SetConfigFile(path)
		if err := vp.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}
	for key, env := range envBindings {
		if err := vp.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	cfg := &Config{
		Port:            vp.GetString("server.port"),
		RequestTimeout:  vp.GetDuration("server.request_timeout"),
		LogLevel:        vp.GetString("log.level"),
		LogFormat:       vp.GetString("log.format"),
		DBHost:          vp.GetString("db.host"),
		DBPort:          vp.GetString("db.port"),
		DBName:          vp.GetString("db.name"),
		DBUser:          vp.GetString("db.user"),
		DBPass:          vp.GetString("db.pass"),
		DBRunMigrations: vp.GetBool("db.run_migrations"),
		RedisAddr:       vp.GetString("redis.addr"),
		RedisPassword:   vp.GetString("redis.password"),
		RedisDB:         vp.GetInt("redis.db"),
		Search: search.Limits{
			SearchDefaultLimit:  vp.GetInt("search.default_limit"),
			SearchMaxLimit:      vp.GetInt("search.max_limit"),
			MaxCandidates:       vp.GetInt("search.max_candidates"),
			SuggestDefaultLimit: vp.GetInt("suggest.default_limit"),
			SuggestMaxLimit:     vp.GetInt("suggest.max_limit"),
			SuggestPerTypeLimit: vp.GetInt("suggest.per_type_limit"),
		},
		SuggestCacheTTL: vp.GetDuration("suggest.cache_ttl"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	l := c.Search
	if l.SearchDefaultLimit <= 0 || l.SearchMaxLimit < l.SearchDefaultLimit {
		return fmt.Errorf("config: search limits must satisfy 0 < default_limit <= max_limit")
	}
	if l.SuggestDefaultLimit <= 0 || l.SuggestMaxLimit < l.SuggestDefaultLimit {
		return fmt.Errorf("config: suggest limits must satisfy 0 < default_limit <= max_limit")
	}
	if l.SuggestPerTypeLimit <= 0 || l.SuggestPerTypeLimit > l.SuggestMaxLimit {
		return fmt.Errorf("config: suggest per_type_limit must be in 1..max_limit")
	}
	if l.MaxCandidates < 0 {
		return fmt.Errorf("config: search max_candidates must not be negative")
	}
	return nil
}

// PostgresURL builds the lib/pq connection URL.
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}
