package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"hawx.me/code/assert"
)

const exampleConfig = `scopes = ["studies", "email"]
timeout = "5s"

[api]
base_address = "https://usos.example.edu/"
consumer_key = "file-key"
consumer_secret = "file-secret"

[token]
path = "tokens/mine.json"

[logging]
level = "debug"
format = "json"
`

func writeConfig(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "usos.toml")
	assert.Nil(t, os.WriteFile(path, []byte(exampleConfig), 0600))
	return path
}

func TestRead(t *testing.T) {
	assert := assert.Wrap(t)

	conf, err := Read(writeConfig(t))
	assert(err).Must.Nil()

	assert(conf.API.BaseAddress).Equal("https://usos.example.edu/")
	assert(conf.API.ConsumerKey).Equal("file-key")
	assert(conf.API.ConsumerSecret).Equal("file-secret")
	assert(conf.Scopes).Equal([]string{"studies", "email"})
	assert(conf.Timeout).Equal(5 * time.Second)
	assert(conf.Token.Path).Equal("tokens/mine.json")
	assert(conf.Logging.Level).Equal("debug")
	assert(conf.Logging.Format).Equal("json")
}

func TestLoadDefaults(t *testing.T) {
	assert := assert.Wrap(t)

	conf, err := load(context.Background(), "", envconfig.MapLookuper(map[string]string{}))
	assert(err).Must.Nil()

	assert(conf.API.BaseAddress).Equal(DefaultBaseAddress)
	assert(conf.Token.Path).Equal(DefaultTokenPath)
	assert(conf.Timeout).Equal(DefaultTimeout)
	assert(conf.Scopes).Equal([]string{"offline_access", "studies"})
	assert(conf.Logging.Level).Equal("info")

	assert(conf.Validate()).Equal(ErrMissingConsumer)
}

func TestLoadMissingFile(t *testing.T) {
	conf, err := load(context.Background(), filepath.Join(t.TempDir(), "nope.toml"), envconfig.MapLookuper(map[string]string{}))
	assert.Nil(t, err)
	assert.Equal(t, DefaultBaseAddress, conf.API.BaseAddress)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	assert := assert.Wrap(t)

	conf, err := load(context.Background(), writeConfig(t), envconfig.MapLookuper(map[string]string{
		"USOS_CONSUMER_KEY": "env-key",
		"USOS_TOKEN_PATH":   "env.json",
		"USOS_LOG_LEVEL":    "warn",
	}))
	assert(err).Must.Nil()

	assert(conf.API.ConsumerKey).Equal("env-key")
	assert(conf.API.ConsumerSecret).Equal("file-secret")
	assert(conf.API.BaseAddress).Equal("https://usos.example.edu/")
	assert(conf.Token.Path).Equal("env.json")
	assert(conf.Logging.Level).Equal("warn")
	assert(conf.Logging.Format).Equal("json")
	assert(conf.Timeout).Equal(5 * time.Second)

	assert(conf.Validate()).Nil()
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usos.toml")
	assert.Nil(t, os.WriteFile(path, []byte("[api\n"), 0600))

	_, err := load(context.Background(), path, envconfig.MapLookuper(map[string]string{}))
	assert.NotNil(t, err)
}

func TestValidate(t *testing.T) {
	conf := Config{API: API{ConsumerKey: "key", ConsumerSecret: "secret"}}
	assert.Equal(t, ErrMissingBaseAddress, conf.Validate())

	conf.API.BaseAddress = DefaultBaseAddress
	assert.Nil(t, conf.Validate())
}
