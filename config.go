package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/dotside-studios/nfc-status-agent/buildinfo"
	"github.com/dotside-studios/nfc-status-agent/nfc"
	"github.com/dotside-studios/nfc-status-agent/server"
)

// Config holds the agent configuration. Environment variables provide the
// defaults and command line flags override them.
type Config struct {
	Host     string `env:"NFC_STATUS_HOST" envDefault:"127.0.0.1"`
	Port     int    `env:"NFC_STATUS_PORT" envDefault:"18081"`
	Backend  string `env:"NFC_STATUS_BACKEND" envDefault:"pcsc"`
	MDNS     bool   `env:"NFC_STATUS_MDNS" envDefault:"false"`
	LogLevel string `env:"NFC_STATUS_LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"NFC_STATUS_LOG_JSON" envDefault:"false"`

	// Flag-only modes
	CLI     bool
	Check   bool
	Version bool
}

// loadConfig reads the environment, then parses args on top of it. A nil
// environ reads the process environment.
func loadConfig(args []string, environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}

	fs := pflag.NewFlagSet(buildinfo.Name, pflag.ContinueOnError)
	fs.StringVar(&cfg.Host, "host", cfg.Host, "Address to bind the status server to")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Port to listen on for the status server")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, fmt.Sprintf("Smart-card backend %v", nfc.Backends()))
	fs.BoolVar(&cfg.MDNS, "mdns", cfg.MDNS, "Advertise the status server over mDNS")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "Emit logs as JSON")
	fs.BoolVar(&cfg.CLI, "cli", false, "Run in CLI mode (default: system tray mode)")
	fs.BoolVar(&cfg.Check, "check", false, "Print reader availability as JSON and exit")
	fs.BoolVarP(&cfg.Version, "version", "v", false, "Print version information and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if _, err := nfc.NewService(c.Backend); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// serverConfig builds the status server configuration.
func (c Config) serverConfig(checker server.Checker, logger logrus.FieldLogger) server.Config {
	return server.Config{
		Checker:    checker,
		Host:       c.Host,
		Port:       c.Port,
		EnableMDNS: c.MDNS,
		Logger:     logger,
	}
}

// newLogger creates the root logger for the configured level and format.
func newLogger(c Config) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := logrus.New()
	logger.SetLevel(level)
	if c.LogJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
