package handler

import (
	"net/http"

	"auction-engine/internal/auth"
	"auction-engine/internal/broadcast"
	model "auction-engine/internal/models"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

// AdminSocketHandler handles GET /ws. Admins receive the full stream,
// team accounts the redacted one.
func (h *AuctionHandler) AdminSocketHandler(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		// the auth middleware guards this route
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	ch := model.ChannelPublic
	if identity.IsAdmin() {
		ch = model.ChannelAdmin
	}
	h.serveSocket(c, "AdminSocketHandler", ch, &identity)
}

// PublicSocketHandler handles GET /ws-public
func (h *AuctionHandler) PublicSocketHandler(c *gin.Context) {
	h.serveSocket(c, "PublicSocketHandler", model.ChannelPublic, nil)
}

func (h *AuctionHandler) serveSocket(c *gin.Context, handlerName string, ch model.Channel, identity *auth.Identity) {
	conn, err := broadcast.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		utils.Warn(handlerName+": upgrade failed", map[string]any{"error": err.Error()})
		return
	}

	client, err := h.registry.ServeConn(conn, ch, identity)
	if err != nil {
		utils.Error(handlerName+": failed to register connection", map[string]any{"error": err.Error()})
		return
	}
	utils.Debug(handlerName+": connection accepted", map[string]any{"connection_id": client.ID, "channel": ch})
}
