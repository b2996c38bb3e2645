package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"offerwall-sdk/pkg/offerwall"
)

// Config holds all configuration (file + env overrides)
type Config struct {
	Server struct {
		Addr                  string `mapstructure:"addr"`
		LogLevel              string `mapstructure:"log_level"`
		LogFormat             string `mapstructure:"log_format"`
		SanitizeHTML          bool   `mapstructure:"sanitize_html"`
		RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"`
	} `mapstructure:"server"`

	Offerwall struct {
		APIKey          string `mapstructure:"api_key"`
		PublisherID     string `mapstructure:"publisher_id"`
		APIDomain       string `mapstructure:"api_domain"`
		OfferwallDomain string `mapstructure:"offerwall_domain"`
		TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
		PublishersFile  string `mapstructure:"publishers_file"`
	} `mapstructure:"offerwall"`

	Postgres struct {
		Host         string `mapstructure:"host"`
		Port         int    `mapstructure:"port"`
		User         string `mapstructure:"user"`
		Password     string `mapstructure:"password"`
		DBName       string `mapstructure:"db_name"`
		SSLMode      string `mapstructure:"ssl_mode"`
		MaxOpenConns int    `mapstructure:"max_open_conns"`
		MaxIdleConns int    `mapstructure:"max_idle_conns"`
	} `mapstructure:"postgres"`

	Listener struct {
		Channel          string `mapstructure:"channel"`
		ReconnectSeconds int    `mapstructure:"reconnect_seconds"`
	} `mapstructure:"listener"`
}

func Load() Config {
	cfg, err := LoadFrom("configs")
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadFrom reads application.yaml from dir (optional) and APP_* env vars.
func LoadFrom(dir string) (Config, error) {
	v := viper.New()
	v.SetConfigName("application")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	_ = v.ReadInConfig() // optional; env can fully configure

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	validate(&cfg)
	return cfg, nil
}

// AutomaticEnv only resolves keys viper already knows about.
func bindEnv(v *viper.Viper) {
	for _, k := range []string{
		"server.addr", "server.log_level", "server.log_format", "server.sanitize_html", "server.request_timeout_seconds",
		"offerwall.api_key", "offerwall.publisher_id", "offerwall.api_domain",
		"offerwall.offerwall_domain", "offerwall.timeout_seconds", "offerwall.publishers_file",
		"postgres.host", "postgres.port", "postgres.user", "postgres.password", "postgres.db_name",
		"postgres.ssl_mode", "postgres.max_open_conns", "postgres.max_idle_conns",
		"listener.channel", "listener.reconnect_seconds",
	} {
		_ = v.BindEnv(k)
	}
}

func validate(c *Config) {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.RequestTimeoutSeconds <= 0 {
		c.Server.RequestTimeoutSeconds = 35
	}
	if c.Offerwall.APIDomain == "" {
		c.Offerwall.APIDomain = offerwall.DefaultAPIDomain
	}
	if c.Offerwall.OfferwallDomain == "" {
		c.Offerwall.OfferwallDomain = offerwall.DefaultOfferwallDomain
	}
	if c.Offerwall.TimeoutSeconds <= 0 {
		c.Offerwall.TimeoutSeconds = 30
	}
	if c.Postgres.Port == 0 {
		c.Postgres.Port = 5432
	}
	if c.Postgres.SSLMode == "" {
		c.Postgres.SSLMode = "disable"
	}
	if c.Postgres.MaxOpenConns == 0 {
		c.Postgres.MaxOpenConns = 10
	}
	if c.Postgres.MaxIdleConns == 0 {
		c.Postgres.MaxIdleConns = 2
	}
	if c.Listener.Channel == "" {
		c.Listener.Channel = "publishers_changed"
	}
	if c.Listener.ReconnectSeconds <= 0 {
		c.Listener.ReconnectSeconds = 5
	}
}

// DefaultPublisher is the publisher configured directly in the offerwall
// section, if any.
func (c Config) DefaultPublisher() (offerwall.Config, bool) {
	if c.Offerwall.PublisherID == "" {
		return offerwall.Config{}, false
	}
	return offerwall.Config{
		APIKey:          c.Offerwall.APIKey,
		PublisherID:     c.Offerwall.PublisherID,
		APIDomain:       c.Offerwall.APIDomain,
		OfferwallDomain: c.Offerwall.OfferwallDomain,
	}, true
}

// UsePostgres reports whether publishers are read from the database.
func (c Config) UsePostgres() bool { return c.Postgres.Host != "" }

func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Password,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.DBName,
		c.Postgres.SSLMode,
	)
}

func (c Config) Backoff() time.Duration { return time.Duration(c.Listener.ReconnectSeconds) * time.Second }

func (c Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Offerwall.TimeoutSeconds) * time.Second
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}
