package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds every runtime setting of the API
type Config struct {
	Port          string
	Environment   string
	LogLevel      string
	MongoURI      string
	MongoDatabase string
	DBTimeout     time.Duration

	RedisAddress    string
	RedisPassword   string
	RequestLimitKey string
	RequestDailyCap int
	JWTSecret       string
	TokenTTL        time.Duration
	ResetTokenTTL   time.Duration
	AdminEmails     []string
	CORSOrigins     []string
	SentryDSN       string
	CookieDomain    string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("go_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("mongodb_database", "cleanup")
	v.SetDefault("db_timeout", "10s")
	v.SetDefault("redis_queue_for_request_limit", "request-limit")
	v.SetDefault("request_daily_limit", 10)
	v.SetDefault("token_ttl", "72h")
	v.SetDefault("reset_token_ttl", "1h")
	v.SetDefault("cors_origins", "*")
}

// Load reads .env, the optional yaml file and the environment, in increasing
// order of precedence
func Load(file string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.WithField("prefix", "config").Info("No .env file found")
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			log.WithField("prefix", "config").Infof("No config file at %s. Read config from env.", file)
		}
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		Port:            v.GetString("port"),
		Environment:     v.GetString("go_env"),
		LogLevel:        v.GetString("log_level"),
		MongoURI:        v.GetString("mongodb_uri"),
		MongoDatabase:   v.GetString("mongodb_database"),
		DBTimeout:       v.GetDuration("db_timeout"),
		RedisAddress:    v.GetString("redis_address"),
		RedisPassword:   v.GetString("redis_password"),
		RequestLimitKey: v.GetString("redis_queue_for_request_limit"),
		RequestDailyCap: v.GetInt("request_daily_limit"),
		JWTSecret:       v.GetString("jwt_secret"),
		TokenTTL:        v.GetDuration("token_ttl"),
		ResetTokenTTL:   v.GetDuration("reset_token_ttl"),
		AdminEmails:     splitList(v.GetString("admin_emails")),
		CORSOrigins:     splitList(v.GetString("cors_origins")),
		SentryDSN:       v.GetString("sentry_dsn"),
		CookieDomain:    v.GetString("domain"),
	}

	if cfg.MongoURI == "" {
		return nil, errors.New("please define the MONGODB_URI environment variable")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}
	return cfg, nil
}

// IsProduction reports whether GO_ENV is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
