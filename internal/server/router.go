package server

import (
	"auction-engine/internal/auth"
	handler "auction-engine/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(service handler.AuctionServiceInterface, registry handler.ConnectionRegistry, parser TokenParser) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(service, registry)

	authenticated := JWTAuthMiddleware(parser, false)
	adminOnly := RoleAuthMiddleware(auth.RoleAdmin)

	public := router.Group("/public")
	{
		public.GET("/auction/state", auctionHandler.GetPublicStateHandler)
		public.GET("/stream-url", auctionHandler.GetStreamURLHandler)
		public.GET("/teams", auctionHandler.GetTeamsHandler)
	}

	router.GET("/ws-public", auctionHandler.PublicSocketHandler)
	router.GET("/ws", JWTAuthMiddleware(parser, true), auctionHandler.AdminSocketHandler)

	bids := router.Group("/bids", authenticated)
	{
		bids.POST("", auctionHandler.RecordBidHandler)
		bids.GET("/history/:playerId", auctionHandler.GetBidHistoryHandler)
	}

	auctionGroup := router.Group("/auction", authenticated)
	{
		auctionGroup.GET("/state", auctionHandler.GetStateHandler)
	}

	admin := auctionGroup.Group("", adminOnly)
	{
		admin.POST("/start", auctionHandler.StartAuctionHandler)
		admin.POST("/pause", auctionHandler.PauseAuctionHandler)
		admin.POST("/resume", auctionHandler.ResumeAuctionHandler)
		admin.POST("/end", auctionHandler.EndAuctionHandler)
		admin.POST("/reset", auctionHandler.ResetAuctionHandler)
		admin.POST("/reset-everything", auctionHandler.ResetEverythingHandler)
		admin.POST("/next-player", auctionHandler.NextPlayerHandler)
		admin.POST("/start-player/:playerId", auctionHandler.StartPlayerHandler)
		admin.POST("/skip-player", auctionHandler.SkipPlayerHandler)
		admin.POST("/sell", auctionHandler.SellHandler)
		admin.POST("/sell-to-team/:teamId", auctionHandler.SellToTeamHandler)
		admin.POST("/unsold", auctionHandler.MarkUnsoldHandler)
		admin.POST("/reset-timer", auctionHandler.ResetTimerHandler)
		admin.POST("/undo-bid", auctionHandler.UndoBidHandler)
		admin.POST("/broadcast-live", auctionHandler.SetBroadcastLiveHandler)
		admin.POST("/stream-url", auctionHandler.SetStreamURLHandler)
		admin.GET("/players", auctionHandler.GetPlayersHandler)
		admin.GET("/connections", auctionHandler.GetConnectionsHandler)
	}

	return router
}
