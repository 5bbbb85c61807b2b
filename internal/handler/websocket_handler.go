package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// TokenResolver turns a raw access token into the user it belongs to
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (uuid.UUID, error)
}

// WebSocketHandler upgrades authenticated requests into live update streams
type WebSocketHandler struct {
	hub      *websocket.Hub
	tokens   TokenResolver
	origins  map[string]struct{}
	anyOrig  bool
	upgrader ws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler; origins follows the CORS list and may hold "*"
func NewWebSocketHandler(hub *websocket.Hub, tokens TokenResolver, origins []string) *WebSocketHandler {
	h := &WebSocketHandler{
		hub:     hub,
		tokens:  tokens,
		origins: make(map[string]struct{}, len(origins)),
	}
	for _, o := range origins {
		if o == "*" {
			h.anyOrig = true
		}
		h.origins[o] = struct{}{}
	}
	h.upgrader = ws.Upgrader{
		ReadBufferSize:  512,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin admits non-browser clients (no Origin) and the configured frontends
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || h.anyOrig {
		return true
	}
	if _, ok := h.origins[origin]; ok {
		return true
	}
	log.Warn().Str("origin", origin).Msg("WebSocket origin rejected")
	return false
}

// HandleWS handles GET /api/v1/ws?token=...
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return NewUnauthorizedError(c, "Missing token")
	}

	userID, err := h.tokens.ResolveToken(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewUnauthorizedError(c, "User is not provisioned")
		}
		log.Debug().Err(err).Msg("WebSocket token rejected")
		return NewUnauthorizedError(c, "Invalid token")
	}

	// Upgrade writes its own error response on failure
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Debug().Err(err).Str("user_id", userID.String()).Msg("WebSocket upgrade failed")
		return nil
	}

	client := websocket.NewClient(conn, userID, h.hub)
	h.hub.Register(client)
	log.Info().Str("user_id", userID.String()).Str("client_id", client.ID()).Msg("WebSocket client connected")

	go client.Serve()
	return nil
}
