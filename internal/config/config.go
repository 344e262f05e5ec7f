package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	LogLevel   string        `mapstructure:"log_level"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	PongWait   time.Duration `mapstructure:"pong_wait"`
	WriteWait  time.Duration `mapstructure:"write_wait"`
	SendBuffer int           `mapstructure:"send_buffer"`
	Secret     string        `mapstructure:"secret"`

	Room       RoomConfig       `mapstructure:"room"`
	Rate       RateConfig       `mapstructure:"rate"`
	ICE        ICEConfig        `mapstructure:"ice"`
	Repository RepositoryConfig `mapstructure:"repository"`
	Events     EventsConfig     `mapstructure:"events"`
}

type RoomConfig struct {
	CodeLength      int    `mapstructure:"code_length"`
	CodeAlphabet    string `mapstructure:"code_alphabet"`
	CodeMaxAttempts int    `mapstructure:"code_max_attempts"`
	MaxDisplayName  int    `mapstructure:"max_display_name"`
	MaxMessageLen   int    `mapstructure:"max_message_len"`
}

// RateConfig limits inbound events per connection.
type RateConfig struct {
	MessagesPerSecond float64 `mapstructure:"messages_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type ICEServer struct {
	URLs       []string `mapstructure:"urls"`
	Username   string   `mapstructure:"username"`
	Credential string   `mapstructure:"credential"`
}

type ICEConfig struct {
	Servers []ICEServer `mapstructure:"servers"`
}

// Repository drivers.
const (
	DriverNone     = "none"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type RepositoryConfig struct {
	Driver      string        `mapstructure:"driver"`
	RedisAddr   string        `mapstructure:"redis_addr"`
	RedisTTL    time.Duration `mapstructure:"redis_ttl"`
	PostgresDSN string        `mapstructure:"postgres_dsn"`
	QueueSize   int           `mapstructure:"queue_size"`
}

// EventsConfig enables the lifecycle stream when NATSURL is set.
type EventsConfig struct {
	NATSURL       string `mapstructure:"nats_url"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("pong_wait", "60s")
	v.SetDefault("write_wait", "10s")
	v.SetDefault("send_buffer", 64)
	v.SetDefault("secret", "huddle-dev-secret")

	v.SetDefault("room.code_length", 6)
	v.SetDefault("room.code_alphabet", "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	v.SetDefault("room.code_max_attempts", 16)
	v.SetDefault("room.max_display_name", 36)
	v.SetDefault("room.max_message_len", 2000)

	v.SetDefault("rate.messages_per_second", 20)
	v.SetDefault("rate.burst", 40)

	v.SetDefault("ice.servers", []map[string]any{
		{"urls": []string{"stun:stun.l.google.com:19302"}},
	})

	v.SetDefault("repository.driver", DriverNone)
	v.SetDefault("repository.redis_addr", "localhost:6379")
	v.SetDefault("repository.redis_ttl", "24h")
	v.SetDefault("repository.postgres_dsn", "")
	v.SetDefault("repository.queue_size", 1024)

	v.SetDefault("events.nats_url", "")
	v.SetDefault("events.subject_prefix", "huddle")
}

// Load reads config/config.<CONFIG_ENV>.yaml on top of the defaults.
// Environment variables prefixed HUDDLE_ win over both.
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

// LoadFile is Load with an explicit path. A missing file is not an error.
func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	v.SetEnvPrefix("HUDDLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", fileName, err)
		}
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Str("repository", cfg.Repository.Driver).Msg("config ready")
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Repository.Driver {
	case DriverNone, DriverMemory, DriverRedis, DriverPostgres:
	default:
		return fmt.Errorf("unknown repository driver %q", c.Repository.Driver)
	}
	if c.Repository.Driver == DriverPostgres && c.Repository.PostgresDSN == "" {
		return errors.New("repository.postgres_dsn is required for the postgres driver")
	}
	if c.Room.CodeLength <= 0 || c.Room.CodeAlphabet == "" {
		return errors.New("room code length and alphabet must be set")
	}
	if c.PingPeriod >= c.PongWait {
		return fmt.Errorf("ping_period (%s) must be shorter than pong_wait (%s)", c.PingPeriod, c.PongWait)
	}
	return nil
}
