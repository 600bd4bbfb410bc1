// Package config loads server configuration from defaults, an optional
// config file, a .env file and CODENAMES_* environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mcoot/codenames/internal/api"
	"github.com/mcoot/codenames/internal/services/clue"
	"github.com/mcoot/codenames/internal/services/game"
	redisstorage "github.com/mcoot/codenames/internal/storage/redis"
)

// EnvPrefix prefixes every environment variable, with dots in keys
// replaced by underscores: storage.redis.url is CODENAMES_STORAGE_REDIS_URL
const EnvPrefix = "CODENAMES"

// Storage types
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config is the full server configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	Words   WordsConfig   `mapstructure:"words"`
	Clue    ClueConfig    `mapstructure:"clue"`
	Engine  EngineConfig  `mapstructure:"engine"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

type StorageConfig struct {
	Type  string      `mapstructure:"type"`
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	ExportTTL    time.Duration `mapstructure:"export_ttl"`
	SummaryLimit int           `mapstructure:"summary_limit"`
}

// WordsConfig locates the vocabulary. With no path the stored
// vocabulary is used, falling back to the built-in list.
type WordsConfig struct {
	Path string `mapstructure:"path"`
}

type ClueConfig struct {
	Provider         string        `mapstructure:"provider"`
	Risk             string        `mapstructure:"risk"`
	AssociationsPath string        `mapstructure:"associations_path"`
	ScriptCommand    string        `mapstructure:"script_command"`
	ScriptArgs       []string      `mapstructure:"script_args"`
	LuaScript        string        `mapstructure:"lua_script"`
	NATSURL          string        `mapstructure:"nats_url"`
	NATSSubject      string        `mapstructure:"nats_subject"`
	HTTPURL          string        `mapstructure:"http_url"`
	HTTPTimeout      time.Duration `mapstructure:"http_timeout"`
	RetryAttempts    uint          `mapstructure:"retry_attempts"`
	RetryDelay       time.Duration `mapstructure:"retry_delay"`
}

type EngineConfig struct {
	ClueTimeout  time.Duration `mapstructure:"clue_timeout"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
	SaveTimeout  time.Duration `mapstructure:"save_timeout"`
	Seed         uint64        `mapstructure:"seed"` // Non-zero replays the same deals
}

// Options locate the optional files Load reads
type Options struct {
	EnvFile    string // Defaults to .env; a missing file is ignored
	ConfigFile string // Optional YAML, JSON or TOML file
}

// Load builds the configuration
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	server := api.DefaultServerConfig()
	v.SetDefault("server.host", server.Host)
	v.SetDefault("server.port", server.Port)
	v.SetDefault("server.read_timeout", server.ReadTimeout)
	v.SetDefault("server.shutdown_timeout", server.ShutdownTimeout)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	redis := redisstorage.DefaultConfig()
	v.SetDefault("storage.type", StorageMemory)
	v.SetDefault("storage.redis.url", redis.URL)
	v.SetDefault("storage.redis.pool_size", redis.PoolSize)
	v.SetDefault("storage.redis.min_idle_conns", redis.MinIdleConns)
	v.SetDefault("storage.redis.export_ttl", redis.ExportTTL)
	v.SetDefault("storage.redis.summary_limit", redis.SummaryLimit)

	v.SetDefault("words.path", "")

	c := clue.DefaultConfig()
	v.SetDefault("clue.provider", c.Provider)
	v.SetDefault("clue.risk", c.Risk)
	v.SetDefault("clue.associations_path", "")
	v.SetDefault("clue.script_command", "")
	v.SetDefault("clue.script_args", []string{})
	v.SetDefault("clue.lua_script", "")
	v.SetDefault("clue.nats_url", c.NATSURL)
	v.SetDefault("clue.nats_subject", c.NATSSubject)
	v.SetDefault("clue.http_url", "")
	v.SetDefault("clue.http_timeout", c.HTTPTimeout)
	v.SetDefault("clue.retry_attempts", c.RetryAttempts)
	v.SetDefault("clue.retry_delay", c.RetryDelay)

	engine := game.DefaultConfig()
	v.SetDefault("engine.clue_timeout", engine.ClueTimeout)
	v.SetDefault("engine.tick_interval", engine.TickInterval)
	v.SetDefault("engine.save_timeout", engine.SaveTimeout)
	v.SetDefault("engine.seed", 0)
}

// Validate checks values that would otherwise fail late at startup
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Storage.Type {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("storage.type must be %q or %q, got %q", StorageMemory, StorageRedis, c.Storage.Type)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, err := clue.ParseRiskMode(c.Clue.Risk); err != nil {
		return err
	}
	if c.Engine.ClueTimeout <= 0 || c.Engine.TickInterval <= 0 || c.Engine.SaveTimeout <= 0 {
		return errors.New("engine timeouts must be positive")
	}
	return nil
}

// LogLevel parses Log.Level
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// APIServer converts the server section
func (c *Config) APIServer() api.ServerConfig {
	return api.ServerConfig{
		Host:            c.Server.Host,
		Port:            c.Server.Port,
		ReadTimeout:     c.Server.ReadTimeout,
		ShutdownTimeout: c.Server.ShutdownTimeout,
	}
}

// RedisStorage converts the redis section
func (c *Config) RedisStorage() redisstorage.Config {
	r := c.Storage.Redis
	return redisstorage.Config{
		URL:          r.URL,
		PoolSize:     r.PoolSize,
		MinIdleConns: r.MinIdleConns,
		ExportTTL:    r.ExportTTL,
		SummaryLimit: r.SummaryLimit,
	}
}

// ClueProvider converts the clue section
func (c *Config) ClueProvider() clue.Config {
	k := c.Clue
	return clue.Config{
		Provider:         k.Provider,
		Risk:             k.Risk,
		AssociationsPath: k.AssociationsPath,
		ScriptCommand:    k.ScriptCommand,
		ScriptArgs:       k.ScriptArgs,
		LuaScript:        k.LuaScript,
		NATSURL:          k.NATSURL,
		NATSSubject:      k.NATSSubject,
		HTTPURL:          k.HTTPURL,
		HTTPTimeout:      k.HTTPTimeout,
		RetryAttempts:    k.RetryAttempts,
		RetryDelay:       k.RetryDelay,
	}
}

// GameEngine converts the engine section. Dispatch is left to the engine
// default.
func (c *Config) GameEngine() game.Config {
	return game.Config{
		ClueTimeout:  c.Engine.ClueTimeout,
		TickInterval: c.Engine.TickInterval,
		SaveTimeout:  c.Engine.SaveTimeout,
	}
}
