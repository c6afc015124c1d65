package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "PHOTOSHARE"
	configName     = "config"
	dotenvFile     = ".env"
	defaultMaxBody = 32 << 20 // 32 MiB
)

type Config struct {
	HTTP   HTTPConfig   `mapstructure:"http"`
	Log    LogConfig    `mapstructure:"log"`
	Store  StoreConfig  `mapstructure:"store"`
	Upload UploadConfig `mapstructure:"upload"`
	Live   LiveConfig   `mapstructure:"live"`
}

type HTTPConfig struct {
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	Swagger bool   `mapstructure:"swagger"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StoreConfig selects the entity store backend. Both backends are in-memory.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Seed   bool   `mapstructure:"seed"`
}

type UploadConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

type LiveConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Addr is the listen address built from host and port.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.HTTP.Host, c.HTTP.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.host", "127.0.0.1")
	v.SetDefault("http.port", "8000")
	v.SetDefault("http.swagger", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.seed", true)
	v.SetDefault("upload.max_bytes", defaultMaxBody)
	v.SetDefault("live.enabled", false)
}

// Load reads dir/config.yml when present, then .env and PHOTOSHARE_*
// environment variables. A missing config file is not an error.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, dotenvFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", dotenvFile, err)
	}

	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(dir)
	v.SetConfigName(configName)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Upload.MaxBytes <= 0 {
		cfg.Upload.MaxBytes = defaultMaxBody
	}
	return &cfg, nil
}
