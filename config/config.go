// Package config reads client settings from a TOML file and the environment.
package config

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

const (
	DefaultBaseAddress = "https://apps.usos.pwr.edu.pl/"
	DefaultTokenPath   = "usos_api_access_token.json"
	DefaultTimeout     = 30 * time.Second
)

var (
	ErrMissingBaseAddress = errors.New("config: api base address is required")
	ErrMissingConsumer    = errors.New("config: consumer key and secret are required")
)

// Config has the options required for talking to a USOS installation.
type Config struct {
	API     API           `toml:"api"`
	Scopes  []string      `toml:"scopes" env:"USOS_SCOPES, overwrite"`
	Timeout time.Duration `toml:"timeout" env:"USOS_TIMEOUT, overwrite, default=30s"`
	Token   Token         `toml:"token"`
	Logging Logging       `toml:"logging"`
}

// API identifies the installation and the registered consumer.
type API struct {
	BaseAddress    string `toml:"base_address" env:"USOS_API_BASE_ADDRESS, overwrite, default=https://apps.usos.pwr.edu.pl/"`
	ConsumerKey    string `toml:"consumer_key" env:"USOS_CONSUMER_KEY, overwrite"`
	ConsumerSecret string `toml:"consumer_secret" env:"USOS_CONSUMER_SECRET, overwrite"`
}

type Token struct {
	Path string `toml:"path" env:"USOS_TOKEN_PATH, overwrite, default=usos_api_access_token.json"`
}

type Logging struct {
	Level  string `toml:"level" env:"USOS_LOG_LEVEL, overwrite, default=info"`
	Format string `toml:"format" env:"USOS_LOG_FORMAT, overwrite, default=console"`
}

// Read a TOML formatted configuration file.
func Read(path string) (Config, error) {
	var conf Config
	_, err := toml.DecodeFile(path, &conf)
	return conf, err
}

// Load reads the file at path, if given and present, then applies the USOS_*
// environment variables over it and fills in defaults.
func Load(ctx context.Context, path string) (Config, error) {
	return load(ctx, path, envconfig.OsLookuper())
}

func load(ctx context.Context, path string, lookuper envconfig.Lookuper) (Config, error) {
	var conf Config

	if path != "" {
		var err error
		conf, err = Read(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return conf, err
		}
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &conf,
		Lookuper: lookuper,
	}); err != nil {
		return conf, err
	}

	if len(conf.Scopes) == 0 {
		conf.Scopes = []string{"offline_access", "studies"}
	}

	return conf, nil
}

// Validate checks that a client can be built from the configuration.
func (c Config) Validate() error {
	if c.API.BaseAddress == "" {
		return ErrMissingBaseAddress
	}
	if c.API.ConsumerKey == "" || c.API.ConsumerSecret == "" {
		return ErrMissingConsumer
	}

	return nil
}
