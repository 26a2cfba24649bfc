package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	auction "auction-engine/internal/auctionService"
	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/auth"
	"auction-engine/internal/broadcast"
	model "auction-engine/internal/models"
	"auction-engine/services/auction/helpers"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

//go:generate mockgen -source=auction_handler.go -destination=mock_handler.go -package=handler

type AuctionServiceInterface interface {
	Snapshot() model.Snapshot
	PublicSnapshot() model.PublicSnapshot
	StreamInfo() model.StreamInfo
	BidHistory(playerID string) ([]model.Bid, error)

	SubmitBid(ctx context.Context, req model.BidRequest) (model.Bid, error)
	UndoBid(ctx context.Context) (model.Snapshot, error)

	Start(ctx context.Context) (model.Snapshot, error)
	Pause(ctx context.Context) (model.Snapshot, error)
	Resume(ctx context.Context) (model.Snapshot, error)
	End(ctx context.Context) (model.Snapshot, error)
	Reset(ctx context.Context) (model.Snapshot, error)
	ResetEverything(ctx context.Context) (model.Snapshot, error)
	NextPlayer(ctx context.Context) (model.Snapshot, error)
	StartPlayer(ctx context.Context, playerID string) (model.Snapshot, error)
	SkipPlayer(ctx context.Context) (model.Snapshot, error)
	Sell(ctx context.Context) (model.Snapshot, error)
	SellToTeam(ctx context.Context, teamID string) (model.Snapshot, error)
	MarkUnsold(ctx context.Context) (model.Snapshot, error)
	ResetTimer(ctx context.Context) (model.Snapshot, error)

	SetStreamURL(ctx context.Context, url string) (model.Snapshot, error)
	SetBroadcastLive(ctx context.Context, live bool) (model.Snapshot, error)
}

type ConnectionRegistry interface {
	ServeConn(conn *websocket.Conn, ch model.Channel, identity *auth.Identity) (*broadcast.Client, error)
	Stats() broadcast.Stats
}

type AuctionHandler struct {
	service  AuctionServiceInterface
	registry ConnectionRegistry
}

func NewAuctionHandler(service AuctionServiceInterface, registry ConnectionRegistry) *AuctionHandler {
	return &AuctionHandler{service: service, registry: registry}
}

type transitionFunc func(ctx context.Context) (model.Snapshot, error)

// runTransition applies an admin transition, honouring X-Expected-Seq
func (h *AuctionHandler) runTransition(c *gin.Context, handlerName, success string, fn transitionFunc, fields map[string]any) {
	seq, ok, err := helpers.ParseExpectedSeq(c)
	if err != nil {
		helpers.HandleBindError(c, handlerName, err)
		return
	}
	ctx := c.Request.Context()
	if ok {
		ctx = auction.WithExpectedSeq(ctx, seq)
	}

	snap, err := fn(ctx)
	if err != nil {
		helpers.HandleServiceError(c, handlerName, err, fields)
		return
	}

	utils.JSONResponse(c, http.StatusOK, snap, success)
	if fields == nil {
		fields = map[string]any{}
	}
	fields["seq"] = snap.Seq
	fields["phase"] = snap.Phase
	helpers.LogSuccess(handlerName, success, fields)
}

// StartAuctionHandler handles POST /auction/start
func (h *AuctionHandler) StartAuctionHandler(c *gin.Context) {
	h.runTransition(c, "StartAuctionHandler", "auction started", h.service.Start, nil)
}

// PauseAuctionHandler handles POST /auction/pause
func (h *AuctionHandler) PauseAuctionHandler(c *gin.Context) {
	h.runTransition(c, "PauseAuctionHandler", "auction paused", h.service.Pause, nil)
}

// ResumeAuctionHandler handles POST /auction/resume
func (h *AuctionHandler) ResumeAuctionHandler(c *gin.Context) {
	h.runTransition(c, "ResumeAuctionHandler", "auction resumed", h.service.Resume, nil)
}

// EndAuctionHandler handles POST /auction/end
func (h *AuctionHandler) EndAuctionHandler(c *gin.Context) {
	h.runTransition(c, "EndAuctionHandler", "auction ended", h.service.End, nil)
}

// ResetAuctionHandler handles POST /auction/reset
func (h *AuctionHandler) ResetAuctionHandler(c *gin.Context) {
	h.runTransition(c, "ResetAuctionHandler", "auction reset", h.service.Reset, nil)
}

// ResetEverythingHandler handles POST /auction/reset-everything
func (h *AuctionHandler) ResetEverythingHandler(c *gin.Context) {
	h.runTransition(c, "ResetEverythingHandler", "auction and sales reset", h.service.ResetEverything, nil)
}

// NextPlayerHandler handles POST /auction/next-player
func (h *AuctionHandler) NextPlayerHandler(c *gin.Context) {
	h.runTransition(c, "NextPlayerHandler", "next player in auction", h.service.NextPlayer, nil)
}

// StartPlayerHandler handles POST /auction/start-player/:playerId
func (h *AuctionHandler) StartPlayerHandler(c *gin.Context) {
	playerID := c.Param("playerId")
	h.runTransition(c, "StartPlayerHandler", "player in auction", func(ctx context.Context) (model.Snapshot, error) {
		return h.service.StartPlayer(ctx, playerID)
	}, map[string]any{"player_id": playerID})
}

// SkipPlayerHandler handles POST /auction/skip-player
func (h *AuctionHandler) SkipPlayerHandler(c *gin.Context) {
	h.runTransition(c, "SkipPlayerHandler", "player skipped", h.service.SkipPlayer, nil)
}

// SellHandler handles POST /auction/sell
func (h *AuctionHandler) SellHandler(c *gin.Context) {
	h.runTransition(c, "SellHandler", "player sold", h.service.Sell, nil)
}

// SellToTeamHandler handles POST /auction/sell-to-team/:teamId
func (h *AuctionHandler) SellToTeamHandler(c *gin.Context) {
	teamID := c.Param("teamId")
	h.runTransition(c, "SellToTeamHandler", "player sold", func(ctx context.Context) (model.Snapshot, error) {
		return h.service.SellToTeam(ctx, teamID)
	}, map[string]any{"team_id": teamID})
}

// MarkUnsoldHandler handles POST /auction/unsold
func (h *AuctionHandler) MarkUnsoldHandler(c *gin.Context) {
	h.runTransition(c, "MarkUnsoldHandler", "player unsold", h.service.MarkUnsold, nil)
}

// ResetTimerHandler handles POST /auction/reset-timer
func (h *AuctionHandler) ResetTimerHandler(c *gin.Context) {
	h.runTransition(c, "ResetTimerHandler", "timer reset", h.service.ResetTimer, nil)
}

// UndoBidHandler handles POST /auction/undo-bid
func (h *AuctionHandler) UndoBidHandler(c *gin.Context) {
	h.runTransition(c, "UndoBidHandler", "last bid undone", h.service.UndoBid, nil)
}

// GetStateHandler handles GET /auction/state. Admins get the full snapshot;
// team accounts get the public projection, the same one /ws streams to them.
func (h *AuctionHandler) GetStateHandler(c *gin.Context) {
	if identity, ok := auth.IdentityFrom(c); ok && identity.IsAdmin() {
		utils.JSONResponse(c, http.StatusOK, h.service.Snapshot(), "auction state retrieved successfully")
		return
	}
	utils.JSONResponse(c, http.StatusOK, h.service.PublicSnapshot(), "auction state retrieved successfully")
}

// GetPublicStateHandler handles GET /public/auction/state
func (h *AuctionHandler) GetPublicStateHandler(c *gin.Context) {
	snap := h.service.PublicSnapshot()
	utils.JSONResponse(c, http.StatusOK, snap, "auction state retrieved successfully")
}

// RecordBidHandler handles POST /bids
func (h *AuctionHandler) RecordBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RecordBidHandler", err)
		return
	}

	identity, ok := auth.IdentityFrom(c)
	if !ok {
		helpers.HandleServiceError(c, "RecordBidHandler", auctionerrors.ErrUnauthorized, nil)
		return
	}

	teamID := req.TeamID
	switch identity.Role {
	case auth.RoleTeam:
		if teamID != "" && teamID != identity.TeamID {
			err := fmt.Errorf("team %s may not bid as %s", identity.TeamID, teamID)
			utils.JSONErrorKind(c, http.StatusForbidden, err, "forbidden", "forbidden")
			utils.Warn("RecordBidHandler: team impersonation rejected", map[string]any{"user_id": identity.UserID, "team_id": teamID})
			return
		}
		teamID = identity.TeamID
	case auth.RoleAdmin:
		if teamID == "" {
			helpers.HandleBindError(c, "RecordBidHandler", errors.New("team_id is required when bidding as admin"))
			return
		}
	}

	playerID := req.PlayerID
	if playerID == "" {
		current := h.service.Snapshot().CurrentPlayer
		if current == nil {
			helpers.HandleServiceError(c, "RecordBidHandler", fmt.Errorf("handler: %w - no player in auction", auctionerrors.ErrAuctionNotActive), nil)
			return
		}
		playerID = current.PlayerID
	}

	bid, err := h.service.SubmitBid(c.Request.Context(), model.BidRequest{
		PlayerID:     playerID,
		TeamID:       teamID,
		Amount:       req.Amount,
		ConnectionID: c.GetHeader(helpers.HeaderConnectionID),
	})
	if err != nil {
		helpers.HandleServiceError(c, "RecordBidHandler", err, map[string]any{
			"player_id": playerID,
			"team_id":   teamID,
			"amount":    req.Amount,
		})
		return
	}

	resp := helpers.BidResponse{
		BidID:     bid.BidID,
		PlayerID:  bid.PlayerID,
		TeamID:    bid.TeamID,
		Seq:       bid.Seq,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid recorded successfully")
	helpers.LogSuccess("RecordBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":    bid.BidID,
		"player_id": bid.PlayerID,
		"team_id":   bid.TeamID,
		"amount":    bid.Amount,
	})
}

// GetBidHistoryHandler handles GET /bids/history/:playerId
func (h *AuctionHandler) GetBidHistoryHandler(c *gin.Context) {
	playerID := c.Param("playerId")
	bids, err := h.service.BidHistory(playerID)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		helpers.HandleServiceError(c, "GetBidHistoryHandler", err, map[string]any{"player_id": playerID})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetBidHistoryHandler", "bids retrieved successfully", map[string]any{
		"player_id": playerID,
		"count":     len(bids),
	})
}

// SetStreamURLHandler handles POST /auction/stream-url
func (h *AuctionHandler) SetStreamURLHandler(c *gin.Context) {
	var req helpers.StreamURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SetStreamURLHandler", err)
		return
	}
	h.runTransition(c, "SetStreamURLHandler", "stream url updated", func(ctx context.Context) (model.Snapshot, error) {
		return h.service.SetStreamURL(ctx, req.URL)
	}, map[string]any{"url": req.URL})
}

// SetBroadcastLiveHandler handles POST /auction/broadcast-live
func (h *AuctionHandler) SetBroadcastLiveHandler(c *gin.Context) {
	var req helpers.BroadcastLiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SetBroadcastLiveHandler", err)
		return
	}
	live := *req.Live
	h.runTransition(c, "SetBroadcastLiveHandler", "broadcast status updated", func(ctx context.Context) (model.Snapshot, error) {
		return h.service.SetBroadcastLive(ctx, live)
	}, map[string]any{"live": live})
}

// GetStreamURLHandler handles GET /public/stream-url
func (h *AuctionHandler) GetStreamURLHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, h.service.StreamInfo(), "stream info retrieved successfully")
}

// GetTeamsHandler handles GET /public/teams
func (h *AuctionHandler) GetTeamsHandler(c *gin.Context) {
	teams := h.service.PublicSnapshot().Teams
	utils.JSONResponse(c, http.StatusOK, teams, "teams retrieved successfully")
}

// GetPlayersHandler handles GET /auction/players
func (h *AuctionHandler) GetPlayersHandler(c *gin.Context) {
	players := h.service.Snapshot().Players
	utils.JSONResponse(c, http.StatusOK, players, "players retrieved successfully")
}

// GetConnectionsHandler handles GET /auction/connections
func (h *AuctionHandler) GetConnectionsHandler(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, h.registry.Stats(), "connections retrieved successfully")
}
