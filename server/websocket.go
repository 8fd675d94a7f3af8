package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/dotside-studios/nfc-status-agent/protocol"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WebsocketClientManager tracks connected WebSocket clients.
type WebsocketClientManager struct {
	clients map[*websocket.Conn]string
	mu      sync.RWMutex
}

// NewClientManager creates a new WebsocketClientManager instance.
func NewClientManager() *WebsocketClientManager {
	return &WebsocketClientManager{
		clients: make(map[*websocket.Conn]string),
	}
}

// Register adds a new client connection and returns its ID.
func (cm *WebsocketClientManager) Register(conn *websocket.Conn) string {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	clientID := uuid.New().String()
	cm.clients[conn] = clientID
	return clientID
}

// Unregister removes a client connection.
func (cm *WebsocketClientManager) Unregister(conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	delete(cm.clients, conn)
}

// Count returns the number of connected clients.
func (cm *WebsocketClientManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.clients)
}

// CloseAll closes all client connections.
func (cm *WebsocketClientManager) CloseAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for client := range cm.clients {
		client.Close()
		delete(cm.clients, client)
	}
}

// handleWebSocket upgrades HTTP connections to WebSocket connections and
// answers requests until the client disconnects.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Warn("WebSocket upgrade error")
		return
	}

	clientID := s.clients.Register(conn)
	logger := s.logger.WithField("client", clientID)
	logger.Infof("WebSocket connected from %s", r.RemoteAddr)

	defer func() {
		s.clients.Unregister(conn)
		conn.Close()
		logger.Info("WebSocket disconnected")
	}()

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var req protocol.WebSocketRequest
		if err := json.Unmarshal(message, &req); err != nil {
			logger.WithError(err).Debug("Failed to parse WebSocket message")
			s.sendErrorResponse(conn, "", protocol.ErrCodeParseError, "Invalid message format")
			continue
		}
		if req.ID == "" {
			req.ID = uuid.New().String()
		}

		handler, ok := s.handlerRegistry.Get(req.Type)
		if !ok {
			logger.Debugf("Unknown message type: %s", req.Type)
			s.sendErrorResponse(conn, req.ID, protocol.ErrCodeUnknownType, fmt.Sprintf("Unknown message type: %s", req.Type))
			continue
		}

		if err := handler(r.Context(), conn, req); err != nil {
			logger.WithError(err).Warnf("Handler error for message type '%s'", req.Type)
			s.sendErrorResponse(conn, req.ID, protocol.ErrCodeInternalError, err.Error())
		}
	}
}

// handleNFCStatusMessage runs a check in response to an "nfcStatus" request.
func (s *Server) handleNFCStatusMessage(ctx context.Context, conn *websocket.Conn, req protocol.WebSocketRequest) error {
	return conn.WriteJSON(protocol.WebSocketResponse{
		ID:      req.ID,
		Type:    protocol.WSTypeNFCStatus,
		Success: true,
		Payload: statusPayload(s.check()),
	})
}

// sendErrorResponse sends a structured error response to a WebSocket client
func (s *Server) sendErrorResponse(conn *websocket.Conn, requestID string, errorCode string, message string) {
	response := protocol.WebSocketResponse{
		ID:      requestID,
		Type:    protocol.WSTypeError,
		Success: false,
		Error:   message,
		Payload: protocol.ErrorPayload{Code: errorCode},
	}

	if err := conn.WriteJSON(response); err != nil {
		s.logger.WithError(err).Warn("Failed to send error response")
	}
}
