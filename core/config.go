package core

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultDaemonAddr = "http://127.0.0.1:18081"
	DefaultWalletAddr = "http://127.0.0.1:18083"
)

// ClientConfig describes how to reach one node process.
type ClientConfig struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr" env:"ADDR" validate:"required,url"`

	// Timeout bounds a whole HTTP exchange. Zero means no timeout besides
	// the caller's context.
	Timeout time.Duration `json:"timeout" yaml:"timeout" toml:"timeout" env:"TIMEOUT"`

	TLS TLSConfig `json:"tls" yaml:"tls" toml:"tls"`
}

func (c ClientConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &ConfigError{Field: "client", Err: err}
	}

	return nil
}

type Config struct {
	Daemon   ClientConfig `json:"daemon" yaml:"daemon" toml:"daemon" env-prefix:"MONERO_DAEMON_"`
	Wallet   ClientConfig `json:"wallet" yaml:"wallet" toml:"wallet" env-prefix:"MONERO_WALLET_"`
	LogLevel string       `json:"logLevel" yaml:"log_level" toml:"log_level" env:"MONERO_RPC_LOG_LEVEL" env-default:"info"`
}

// LoadConfig reads a json, yaml or toml file (chosen by extension) and then
// applies environment overrides. An empty path reads the environment only.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	var err error

	if path == "" {
		logrus.Debugf("load config from env")
		err = cleanenv.ReadEnv(&cfg)
	} else {
		logrus.Debugf("load config from file %s", path)
		err = cleanenv.ReadConfig(path, &cfg)
	}

	if err != nil {
		return nil, &ConfigError{Field: "file", Err: errors.Wrap(err, path)}
	}

	if cfg.Daemon.Addr == "" {
		cfg.Daemon.Addr = DefaultDaemonAddr
	}

	if cfg.Wallet.Addr == "" {
		cfg.Wallet.Addr = DefaultWalletAddr
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return nil, &ConfigError{Field: "logLevel", Err: err}
	}

	return &cfg, nil
}

// ApplyLogLevel sets the global logrus level from the config.
func (c *Config) ApplyLogLevel() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, keep %s", c.LogLevel, logrus.GetLevel())
		return
	}

	logrus.SetLevel(level)
}
