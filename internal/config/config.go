package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// readSecret reads a Docker secret from a file path specified by an env var
// with _FILE suffix. If FOO is already set directly, the file is skipped.
// If FOO_FILE is set, reads the file content and sets FOO.
func readSecret(envKey string) {
	if os.Getenv(envKey) != "" {
		return
	}
	fileKey := envKey + "_FILE"
	filePath := os.Getenv(fileKey)
	if filePath == "" {
		return
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return
	}
	val := strings.TrimSpace(string(data))
	os.Setenv(envKey, val)
}

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	JWT        JWTConfig
	RateLimit  RateLimitConfig
	R2         R2Config
	Zitadel    ZitadelConfig
	Gateway    GatewayConfig
	Store      StoreConfig
	Generation GenerationConfig
	Webhook    WebhookConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	LogLevel  string
	ApiDomain string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration int // hours
}

type RateLimitConfig struct {
	GenerationsPerHour int
	UploadsPerHour     int
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
}

type ZitadelConfig struct {
	Domain   string
	ClientID string
	Issuer   string
}

type GatewayConfig struct {
	Enabled bool
}

// StoreConfig selects the record store driver: memory, redis or postgres
type StoreConfig struct {
	Driver      string
	PostgresURL string
}

type GenerationConfig struct {
	Timeout       time.Duration
	PollInterval  time.Duration
	StageTimeouts map[string]time.Duration
	WatchMode     string // poll or pubsub
	AwaitMax      time.Duration
	Concurrency   int
}

type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

func Load() (*Config, error) {
	// Read Docker Swarm secrets from _FILE env vars before Viper binds
	readSecret("REDIS_PASSWORD")
	readSecret("JWT_SECRET")
	readSecret("R2_ACCOUNT_ID")
	readSecret("R2_ACCESS_KEY_ID")
	readSecret("R2_SECRET_ACCESS_KEY")
	readSecret("ZITADEL_CLIENT_ID")
	readSecret("DATABASE_URL")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variables
	viper.AutomaticEnv()

	// Bind environment variables with underscores to nested config keys
	_ = viper.BindEnv("server.port", "SERVER_PORT")
	_ = viper.BindEnv("server.env", "SERVER_ENV")
	_ = viper.BindEnv("server.log_level", "LOG_LEVEL")
	_ = viper.BindEnv("server.api_domain", "API_DOMAIN")
	_ = viper.BindEnv("redis.addr", "REDIS_ADDR")
	_ = viper.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = viper.BindEnv("redis.db", "REDIS_DB")
	_ = viper.BindEnv("jwt.secret", "JWT_SECRET")
	_ = viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	_ = viper.BindEnv("ratelimit.generations_per_hour", "RATELIMIT_GENERATIONS_PER_HOUR")
	_ = viper.BindEnv("ratelimit.uploads_per_hour", "RATELIMIT_UPLOADS_PER_HOUR")
	_ = viper.BindEnv("r2.account_id", "R2_ACCOUNT_ID")
	_ = viper.BindEnv("r2.access_key_id", "R2_ACCESS_KEY_ID")
	_ = viper.BindEnv("r2.secret_access_key", "R2_SECRET_ACCESS_KEY")
	_ = viper.BindEnv("r2.bucket_name", "R2_BUCKET_NAME")
	_ = viper.BindEnv("r2.public_url", "R2_PUBLIC_URL")
	_ = viper.BindEnv("zitadel.domain", "ZITADEL_DOMAIN")
	_ = viper.BindEnv("zitadel.client_id", "ZITADEL_CLIENT_ID")
	_ = viper.BindEnv("zitadel.issuer", "ZITADEL_ISSUER")
	_ = viper.BindEnv("gateway.enabled", "GATEWAY_ENABLED")
	_ = viper.BindEnv("store.driver", "STORE_DRIVER")
	_ = viper.BindEnv("store.postgres_url", "DATABASE_URL")
	_ = viper.BindEnv("generation.timeout", "GENERATION_TIMEOUT")
	_ = viper.BindEnv("generation.poll_interval", "GENERATION_POLL_INTERVAL")
	_ = viper.BindEnv("generation.stage_timeouts", "GENERATION_STAGE_TIMEOUTS")
	_ = viper.BindEnv("generation.watch_mode", "GENERATION_WATCH_MODE")
	_ = viper.BindEnv("generation.await_max", "GENERATION_AWAIT_MAX")
	_ = viper.BindEnv("generation.concurrency", "GENERATION_CONCURRENCY")
	_ = viper.BindEnv("webhook.url", "WEBHOOK_URL")
	_ = viper.BindEnv("webhook.timeout", "WEBHOOK_TIMEOUT")

	// Defaults
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("server.log_level", "info")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("jwt.secret", "change-me-in-production")
	viper.SetDefault("jwt.expiration", 24)
	viper.SetDefault("ratelimit.generations_per_hour", 10)
	viper.SetDefault("ratelimit.uploads_per_hour", 50)

	// Gateway defaults
	viper.SetDefault("gateway.enabled", false)

	// Store defaults
	viper.SetDefault("store.driver", "redis")

	// Generation defaults
	viper.SetDefault("generation.timeout", "120s")
	viper.SetDefault("generation.poll_interval", "2s")
	viper.SetDefault("generation.watch_mode", "poll")
	viper.SetDefault("generation.await_max", "60s")
	viper.SetDefault("generation.concurrency", 10)

	// Webhook defaults, an empty URL disables delivery
	viper.SetDefault("webhook.url", "")
	viper.SetDefault("webhook.timeout", "10s")

	// Try to read config file (optional)
	_ = viper.ReadInConfig()

	stageTimeouts, err := parseStageTimeouts(viper.Get("generation.stage_timeouts"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      viper.GetString("server.port"),
			Env:       viper.GetString("server.env"),
			LogLevel:  viper.GetString("server.log_level"),
			ApiDomain: viper.GetString("server.api_domain"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:     viper.GetString("jwt.secret"),
			Expiration: viper.GetInt("jwt.expiration"),
		},
		RateLimit: RateLimitConfig{
			GenerationsPerHour: viper.GetInt("ratelimit.generations_per_hour"),
			UploadsPerHour:     viper.GetInt("ratelimit.uploads_per_hour"),
		},
		R2: R2Config{
			AccountID:       viper.GetString("r2.account_id"),
			AccessKeyID:     viper.GetString("r2.access_key_id"),
			SecretAccessKey: viper.GetString("r2.secret_access_key"),
			BucketName:      viper.GetString("r2.bucket_name"),
			PublicURL:       viper.GetString("r2.public_url"),
		},
		Zitadel: ZitadelConfig{
			Domain:   viper.GetString("zitadel.domain"),
			ClientID: viper.GetString("zitadel.client_id"),
			Issuer:   viper.GetString("zitadel.issuer"),
		},
		Gateway: GatewayConfig{
			Enabled: viper.GetBool("gateway.enabled"),
		},
		Store: StoreConfig{
			Driver:      viper.GetString("store.driver"),
			PostgresURL: viper.GetString("store.postgres_url"),
		},
		Generation: GenerationConfig{
			Timeout:       viper.GetDuration("generation.timeout"),
			PollInterval:  viper.GetDuration("generation.poll_interval"),
			StageTimeouts: stageTimeouts,
			WatchMode:     viper.GetString("generation.watch_mode"),
			AwaitMax:      viper.GetDuration("generation.await_max"),
			Concurrency:   viper.GetInt("generation.concurrency"),
		},
		Webhook: WebhookConfig{
			URL:     viper.GetString("webhook.url"),
			Timeout: viper.GetDuration("webhook.timeout"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "memory", "redis":
	case "postgres":
		if c.Store.PostgresURL == "" {
			return fmt.Errorf("store.postgres_url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Generation.WatchMode != "poll" && c.Generation.WatchMode != "pubsub" {
		return fmt.Errorf("unknown generation.watch_mode %q", c.Generation.WatchMode)
	}
	if c.Generation.Timeout <= 0 || c.Generation.PollInterval <= 0 {
		return fmt.Errorf("generation.timeout and generation.poll_interval must be positive")
	}
	return nil
}

// parseStageTimeouts accepts a yaml map (video: 300s) or the env form "video=300s,ads=180s"
func parseStageTimeouts(raw interface{}) (map[string]time.Duration, error) {
	out := map[string]time.Duration{}
	if raw == nil {
		return out, nil
	}

	pairs := map[string]string{}
	if s, ok := raw.(string); ok {
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			k, v, found := strings.Cut(part, "=")
			if !found {
				return nil, fmt.Errorf("invalid stage timeout %q", part)
			}
			pairs[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	} else {
		m, err := cast.ToStringMapStringE(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid generation.stage_timeouts: %w", err)
		}
		pairs = m
	}

	for k, v := range pairs {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid timeout for stage %s: %q", k, v)
		}
		out[k] = d
	}
	return out, nil
}
