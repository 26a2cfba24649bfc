package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"auction-engine/internal/auctionerrors"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

const (
	HeaderExpectedSeq  = "X-Expected-Seq"
	HeaderConnectionID = "X-Connection-ID"

	retryAfterSeconds = "1"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONErrorKind(c, http.StatusBadRequest, wrappedErr, "invalid request payload", "invalid_request")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code, message and error kind
func MapErrorToHTTP(err error) (int, string, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrPlayerNotFound):
		return http.StatusNotFound, "player not found", "player_not_found"
	case errors.Is(err, auctionerrors.ErrTeamNotFound):
		return http.StatusNotFound, "team not found", "team_not_found"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for player", "no_bids"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details", "invalid_bid"
	case errors.Is(err, auctionerrors.ErrWrongLot):
		return http.StatusConflict, "bid is not for the current lot", "wrong_lot"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid too low", "bid_too_low"
	case errors.Is(err, auctionerrors.ErrInsufficientBudget):
		return http.StatusUnprocessableEntity, "insufficient budget", "insufficient_budget"
	case errors.Is(err, auctionerrors.ErrAuctionNotActive):
		return http.StatusConflict, "auction not active", "auction_not_active"
	case errors.Is(err, auctionerrors.ErrNoBidToUndo):
		return http.StatusConflict, "no bid to undo", "no_bid_to_undo"
	case errors.Is(err, auctionerrors.ErrAlreadyLeading):
		return http.StatusConflict, "team already holds the highest bid", "already_leading"
	case errors.Is(err, auctionerrors.ErrInvalidStateTransition):
		return http.StatusConflict, "invalid state transition", "invalid_state_transition"
	case errors.Is(err, auctionerrors.ErrConflict):
		return http.StatusConflict, "auction state changed, refresh and retry", "conflict"
	case errors.Is(err, auctionerrors.ErrEngineBusy):
		return http.StatusServiceUnavailable, "auction engine busy, retry shortly", "engine_busy"
	case errors.Is(err, auctionerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized", "unauthorized"
	default:
		return http.StatusInternalServerError, "internal server error", "internal"
	}
}

// HandleServiceError maps err onto the error envelope and logs it with ctx
func HandleServiceError(c *gin.Context, handlerName string, err error, ctx map[string]any) {
	status, message, kind := MapErrorToHTTP(err)
	if status == http.StatusServiceUnavailable {
		c.Header("Retry-After", retryAfterSeconds)
	}
	utils.JSONErrorKind(c, status, fmt.Errorf("%s: %w", message, err), message, kind)

	fields := map[string]any{"handler": handlerName, "kind": kind, "error": err.Error()}
	for k, v := range ctx {
		fields[k] = v
	}
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// ParseExpectedSeq reads the optional optimistic-concurrency header
func ParseExpectedSeq(c *gin.Context) (uint64, bool, error) {
	raw := c.GetHeader(HeaderExpectedSeq)
	if raw == "" {
		return 0, false, nil
	}
	seq, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s header %q: %w", HeaderExpectedSeq, raw, err)
	}
	return seq, true, nil
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
