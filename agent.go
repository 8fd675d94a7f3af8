package main

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dotside-studios/nfc-status-agent/nfc"
	"github.com/dotside-studios/nfc-status-agent/server"
)

// Agent wires the availability probe to the status server.
type Agent struct {
	Logger *logrus.Logger
	Probe  *nfc.Probe
	Server *server.Server

	config Config
	mu     sync.Mutex
}

// NewAgent creates an agent for the configured backend. It does not start
// the server.
func NewAgent(cfg Config, logger *logrus.Logger) (*Agent, error) {
	svc, err := nfc.NewService(cfg.Backend)
	if err != nil {
		return nil, err
	}
	return newAgentWithService(cfg, logger, svc), nil
}

func newAgentWithService(cfg Config, logger *logrus.Logger, svc nfc.Service) *Agent {
	probe := nfc.NewProbe(svc, nfc.WithLogger(logger.WithField("component", "nfc")))
	return &Agent{
		Logger: logger,
		Probe:  probe,
		config: cfg,
	}
}

// Check runs one availability check.
func (a *Agent) Check() nfc.Status {
	return a.Probe.CheckAvailability()
}

// Start starts the status server.
func (a *Agent) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Server != nil {
		return errors.New("agent is already running")
	}

	srv := server.New(a.config.serverConfig(a.Probe, a.Logger.WithField("component", "server")))
	if err := srv.Start(); err != nil {
		a.Logger.WithError(err).Error("Error starting status server")
		return err
	}

	a.Server = srv
	a.Logger.Infof("Status available at %s%s", srv.URL(), server.RouteNFCStatus)
	return nil
}

// Stop stops the status server if it is running.
func (a *Agent) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Server == nil {
		return
	}
	a.Logger.Info("Stopping agent...")
	a.Server.Stop()
	a.Server = nil
	a.Logger.Info("Agent stopped successfully")
}

// StatusURL returns the status endpoint URL, or "" when the server is not running.
func (a *Agent) StatusURL() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Server == nil {
		return ""
	}
	return a.Server.URL() + server.RouteNFCStatus
}
