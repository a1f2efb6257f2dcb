package handler

import (
	"intellilab-gc-be/internal/pkg/logger"
	internalWS "intellilab-gc-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// LiveFeedHandler upgrades /ws/lab connections and hands them to the hub.
type LiveFeedHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewLiveFeedHandler(hub *internalWS.Hub, log logger.ILogger) *LiveFeedHandler {
	return &LiveFeedHandler{hub: hub, logger: log}
}

func (h *LiveFeedHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	remote := c.IP()
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("LiveFeed", "Starting WebSocket session", map[string]interface{}{"remote": remote})
		internalWS.ServeWs(h.hub, conn)
		h.logger.Info("LiveFeed", "WebSocket session ended", map[string]interface{}{"remote": remote})
	})(c)
}

func (h *LiveFeedHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/lab", h.ServeWs)
}
