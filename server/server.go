// Package server exposes NFC reader availability over HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dotside-studios/nfc-status-agent/buildinfo"
	"github.com/dotside-studios/nfc-status-agent/nfc"
	"github.com/dotside-studios/nfc-status-agent/protocol"
	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"
	"github.com/sirupsen/logrus"
)

// Checker runs a reader availability check. *nfc.Probe implements it.
type Checker interface {
	CheckAvailability() nfc.Status
}

// Config holds the server configuration
type Config struct {
	Checker    Checker
	Host       string
	Port       int
	EnableMDNS bool
	Logger     logrus.FieldLogger
}

// Addr returns the host:port the server listens on.
func (c Config) Addr() string {
	host := c.Host
	if host == "" {
		host = DefaultHost
	}
	return net.JoinHostPort(host, strconv.Itoa(c.Port))
}

// Server manages the HTTP and WebSocket server
type Server struct {
	config     Config
	logger     logrus.FieldLogger
	httpServer *http.Server
	listener   net.Listener
	mu         sync.Mutex

	clients         *WebsocketClientManager
	upgrader        websocket.Upgrader
	handlerRegistry *HandlerRegistry

	// mDNS service for auto-discovery
	mdnsServer *zeroconf.Server
}

// New creates a new server instance
func New(config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger().WithField("component", "server")
	}

	s := &Server{
		config:  config,
		logger:  logger,
		clients: NewClientManager(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins
			},
		},
		handlerRegistry: NewHandlerRegistry(),
	}

	s.handlerRegistry.Handle(protocol.WSTypeNFCStatus, s.handleNFCStatusMessage)
	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(RouteHealth, enableCORS(getOnly(s.handleHealthCheck)))
	mux.HandleFunc(RouteNFCStatus, enableCORS(getOnly(s.handleNFCStatus)))
	mux.HandleFunc(RouteWebSocket, enableCORS(s.handleWebSocket))
	mux.HandleFunc(RouteRoot, enableCORS(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != RouteRoot {
			http.NotFound(w, r)
			return
		}
		if _, err := w.Write([]byte(RootBannerText)); err != nil {
			s.logger.WithError(err).Debug("Failed to write response")
		}
	}))

	return mux
}

// Start begins listening and serving in the background. It returns once the
// listener is bound.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer != nil {
		return errors.New("server is already running")
	}

	addr := s.config.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	httpServer := s.httpServer
	go func() {
		s.logger.Infof("Starting server on %s", ln.Addr())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("HTTP server error")
		}
	}()

	if s.config.EnableMDNS {
		if err := s.startMDNS(); err != nil {
			s.logger.Warnf("Failed to start mDNS service: %v", err)
			s.logger.Warn("Auto-discovery will not be available, but server will continue normally")
		}
	}

	return nil
}

// Addr returns the bound listener address, or the configured one when the
// server is not running.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Addr()
}

// URL returns the base HTTP URL clients can use to reach the server.
func (s *Server) URL() string {
	addr := s.Addr()
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	return "http://" + net.JoinHostPort(reachableHost(host), port)
}

// Stop stops the HTTP server gracefully. The lock is released before
// waiting on in-flight requests.
func (s *Server) Stop() {
	s.mu.Lock()
	mdnsServer := s.mdnsServer
	httpServer := s.httpServer
	s.mdnsServer = nil
	s.httpServer = nil
	s.listener = nil
	s.mu.Unlock()

	if mdnsServer != nil {
		mdnsServer.Shutdown()
		s.logger.Info("mDNS service stopped")
	}

	s.clients.CloseAll()

	if httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			s.logger.WithError(err).Warn("Server shutdown error")
		}
	}
}

// startMDNS registers the agent as an mDNS service for auto-discovery
func (s *Server) startMDNS() error {
	_, portStr, err := net.SplitHostPort(s.listener.Addr().String())
	if err != nil {
		return fmt.Errorf("failed to resolve listener port: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid listener port %q: %w", portStr, err)
	}

	txtRecords := []string{
		"version=" + buildinfo.Version,
		"path=" + RouteNFCStatus,
		"ws=" + RouteWebSocket,
	}

	server, err := zeroconf.Register(MDNSServiceName, MDNSServiceType, MDNSDomain, port, txtRecords, nil)
	if err != nil {
		return fmt.Errorf("failed to register mDNS service: %w", err)
	}

	s.mdnsServer = server
	s.logger.Infof("mDNS service registered: %s on port %d", MDNSServiceName, port)
	return nil
}

// check runs the configured checker. A missing checker reports the probe's
// own session failure text so clients see a well-formed status.
func (s *Server) check() nfc.Status {
	if s.config.Checker == nil {
		return nfc.Report{Outcome: nfc.OutcomeSessionError, Err: nfc.NewSessionError(errors.New("no checker configured"))}.Status()
	}
	return s.config.Checker.CheckAvailability()
}

func statusPayload(status nfc.Status) protocol.StatusPayload {
	return protocol.StatusPayload{
		Available: status.Available,
		Message:   status.Message,
	}
}

// handleNFCStatus runs a check (GET /api/v1/nfc/status)
func (s *Server) handleNFCStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, statusPayload(s.check()))
}

// handleHealthCheck provides a health check endpoint (GET /api/v1/health)
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, protocol.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   buildinfo.FullVersion(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Debug("Failed to write response")
	}
}

// enableCORS is a middleware that adds CORS headers to responses
func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", CORSAllowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", CORSAllowMethods)
		w.Header().Set("Access-Control-Allow-Headers", CORSAllowHeaders)

		// Handle preflight OPTIONS requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}
