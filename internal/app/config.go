package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "PERSX"

type Config struct {
	Env     string `mapstructure:"env"`
	Addr    string `mapstructure:"addr"`
	LogMode string `mapstructure:"log_mode"`

	Site       SiteConfig       `mapstructure:"site"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Neo4j      Neo4jConfig      `mapstructure:"neo4j"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	ConvertKit ConvertKitConfig `mapstructure:"convertkit"`
	Auth       AuthConfig       `mapstructure:"auth"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Metadata   MetadataConfig   `mapstructure:"metadata"`
	Otel       OtelConfig       `mapstructure:"otel"`
}

type SiteConfig struct {
	Name        string `mapstructure:"name"`
	BaseURL     string `mapstructure:"base_url"`
	Description string `mapstructure:"description"`
	StaticDir   string `mapstructure:"static_dir"`
}

type DatabaseConfig struct {
	Driver       string        `mapstructure:"driver"`
	DSN          string        `mapstructure:"dsn"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	SlowQuery    time.Duration `mapstructure:"slow_query"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type Neo4jConfig struct {
	URI      string `mapstructure:"uri"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

type OpenAIConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	Model      string        `mapstructure:"model"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

type ConvertKitConfig struct {
	APIKey       string           `mapstructure:"api_key"`
	FormID       string           `mapstructure:"form_id"`
	BaseURL      string           `mapstructure:"base_url"`
	IndustryTags map[string]int64 `mapstructure:"industry_tags"`
}

type AuthConfig struct {
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type CacheConfig struct {
	PageTTL   time.Duration `mapstructure:"page_ttl"`
	WizardTTL time.Duration `mapstructure:"wizard_ttl"`
}

type MetadataConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type OtelConfig struct {
	Enabled     bool              `mapstructure:"enabled"`
	ServiceName string            `mapstructure:"service_name"`
	Endpoint    string            `mapstructure:"endpoint"`
	Headers     map[string]string `mapstructure:"headers"`
	Insecure    bool              `mapstructure:"insecure"`
	SampleRatio float64           `mapstructure:"sample_ratio"`
}

const insecureDevSecret = "persx-dev-secret"

// defaults lists every key so that env overrides (PERSX_DATABASE_DSN etc.)
// are picked up by AutomaticEnv.
var defaults = map[string]any{
	"env":      "development",
	"addr":     ":8080",
	"log_mode": "development",

	"site.name":        "PersX",
	"site.base_url":    "",
	"site.description": "Personalization for B2B marketing teams.",
	"site.static_dir":  "",

	"database.driver":         "postgres",
	"database.dsn":            "",
	"database.max_open_conns": 20,
	"database.max_idle_conns": 10,
	"database.slow_query":     "500ms",

	"redis.addr":       "",
	"redis.password":   "",
	"redis.db":         0,
	"redis.key_prefix": "persx:",

	"neo4j.uri":      "",
	"neo4j.user":     "neo4j",
	"neo4j.password": "",
	"neo4j.database": "",

	"openai.api_key":     "",
	"openai.model":       "gpt-4o-mini",
	"openai.base_url":    "",
	"openai.timeout":     "30s",
	"openai.max_retries": 2,

	"convertkit.api_key":  "",
	"convertkit.form_id":  "",
	"convertkit.base_url": "",

	"auth.jwt_secret":    insecureDevSecret,
	"auth.token_ttl":     "12h",
	"auth.secure_cookie": false,

	"cors.allowed_origins": []string{},

	"cache.page_ttl":   "10m",
	"cache.wizard_ttl": "6h",

	"metadata.timeout": "10s",

	"otel.enabled":      false,
	"otel.service_name": "persx",
	"otel.endpoint":     "",
	"otel.insecure":     false,
	"otel.sample_ratio": 0.1,
}

// LoadConfig reads defaults, then the optional config file (persx.yaml in
// the working directory or $HOME/.persx unless path is set), then PERSX_*
// environment variables.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("persx")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.persx")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	e := strings.ToLower(strings.TrimSpace(c.Env))
	return e == "prod" || e == "production"
}

func (c Config) validate() error {
	if c.IsProduction() && (c.Auth.JWTSecret == "" || c.Auth.JWTSecret == insecureDevSecret) {
		return fmt.Errorf("auth.jwt_secret must be set in production")
	}
	if c.Otel.SampleRatio < 0 || c.Otel.SampleRatio > 1 {
		return fmt.Errorf("otel.sample_ratio must be within [0,1]")
	}
	return nil
}
