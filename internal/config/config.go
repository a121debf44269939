// Package config provides Viper-based configuration loading for tombs.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers accepted by StorageConfig.Driver.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds the redis save store settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// KeyPrefix namespaces every save key, e.g. "tombs:save:".
	KeyPrefix string `mapstructure:"key_prefix"`
	// TTL expires saves; zero keeps them forever.
	TTL time.Duration `mapstructure:"ttl"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout" or a file path.
	Output string `mapstructure:"output"`
}

// MapConfig sizes generated floors. Its layout matches procgen.Params.
type MapConfig struct {
	Width       int `mapstructure:"width"`
	Height      int `mapstructure:"height"`
	MaxRooms    int `mapstructure:"max_rooms"`
	RoomMinSize int `mapstructure:"room_min_size"`
	RoomMaxSize int `mapstructure:"room_max_size"`
}

// GameConfig holds the rules and content settings of a game.
type GameConfig struct {
	Map       MapConfig `mapstructure:"map"`
	FOVRadius int       `mapstructure:"fov_radius"`
	// Seed makes a game reproducible; zero picks a fresh random seed.
	Seed int64 `mapstructure:"seed"`
	// ContentDir, when set, overrides the built-in content. It may contain
	// items/, templates/, domains/ and scripts/ subdirectories.
	ContentDir string `mapstructure:"content_dir"`
	// LuaInstructionLimit bounds every AI precondition call; zero uses the
	// scripting default.
	LuaInstructionLimit int `mapstructure:"lua_instruction_limit"`
}

// StorageConfig selects where games are saved.
type StorageConfig struct {
	Driver  string `mapstructure:"driver"`
	SaveDir string `mapstructure:"save_dir"`
	Slot    string `mapstructure:"slot"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Game     GameConfig     `mapstructure:"game"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateStorage(c.Storage); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDatabase(c.Database); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Storage.Driver == DriverRedis {
		if err := validateRedis(c.Redis); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	m := g.Map
	if m.MaxRooms < 1 {
		errs = append(errs, fmt.Sprintf("game.map.max_rooms must be >= 1, got %d", m.MaxRooms))
	}
	if m.RoomMinSize < 3 {
		errs = append(errs, fmt.Sprintf("game.map.room_min_size must be >= 3, got %d", m.RoomMinSize))
	}
	if m.RoomMaxSize < m.RoomMinSize {
		errs = append(errs, "game.map.room_max_size must not be below game.map.room_min_size")
	}
	if m.Width <= m.RoomMaxSize || m.Height <= m.RoomMaxSize {
		errs = append(errs, fmt.Sprintf("game.map %dx%d cannot hold a room of size %d", m.Width, m.Height, m.RoomMaxSize))
	}
	if g.FOVRadius < 1 {
		errs = append(errs, fmt.Sprintf("game.fov_radius must be >= 1, got %d", g.FOVRadius))
	}
	if g.LuaInstructionLimit < 0 {
		errs = append(errs, "game.lua_instruction_limit must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateStorage(s StorageConfig) error {
	var errs []string
	switch s.Driver {
	case DriverFile:
		if s.SaveDir == "" {
			errs = append(errs, "storage.save_dir must not be empty for the file driver")
		}
	case DriverPostgres, DriverRedis:
	default:
		errs = append(errs, fmt.Sprintf("storage.driver must be one of [file, postgres, redis], got %q", s.Driver))
	}
	if s.Slot == "" {
		errs = append(errs, "storage.slot must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateRedis(r RedisConfig) error {
	var errs []string
	if r.Addr == "" {
		errs = append(errs, "redis.addr must not be empty")
	}
	if r.DB < 0 {
		errs = append(errs, fmt.Sprintf("redis.db must be >= 0, got %d", r.DB))
	}
	if r.TTL < 0 {
		errs = append(errs, "redis.ttl must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with TOMBS_ prefix
	v.SetEnvPrefix("TOMBS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	if v == nil {
		return Config{}, errors.New("config: nil viper instance")
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("game.map.width", 125)
	v.SetDefault("game.map.height", 125)
	v.SetDefault("game.map.max_rooms", 30)
	v.SetDefault("game.map.room_min_size", 6)
	v.SetDefault("game.map.room_max_size", 10)
	v.SetDefault("game.fov_radius", 8)
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.content_dir", "")
	v.SetDefault("game.lua_instruction_limit", 0)

	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.save_dir", "saves")
	v.SetDefault("storage.slot", "default")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "tombs")
	v.SetDefault("database.password", "tombs")
	v.SetDefault("database.name", "tombs")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "tombs:save:")
	v.SetDefault("redis.ttl", "0s")
}
