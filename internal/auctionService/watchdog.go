package auction

import (
	"context"
	"errors"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/models"
	"auction-engine/utils"
)

// Watchdog resolves lots whose countdown has expired. It goes through the
// same serialized transition path as any admin action.
type Watchdog struct {
	svc      *AuctionService
	interval time.Duration
}

func NewWatchdog(svc *AuctionService, interval time.Duration) *Watchdog {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watchdog{svc: svc, interval: interval}
}

// Run polls until ctx is cancelled.
func (w *Watchdog) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	utils.Info("watchdog started", map[string]any{"interval": w.interval.String()})
	for {
		select {
		case <-ctx.Done():
			utils.Info("watchdog stopped", nil)
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick checks the latest snapshot once and expires the lot if due.
// It reports whether a transition was applied.
func (w *Watchdog) Tick(ctx context.Context) bool {
	snap := w.svc.Snapshot()
	if snap.Phase != models.PhaseRunning || snap.CurrentPlayer == nil ||
		snap.CurrentPlayer.Status != models.StatusInAuction || snap.Deadline == nil {
		return false
	}
	if w.svc.now().Before(*snap.Deadline) {
		return false
	}

	next, err := w.svc.ExpireLot(ctx)
	if err != nil {
		// an admin acting first is an expected race
		if errors.Is(err, auctionerrors.ErrInvalidStateTransition) || errors.Is(err, auctionerrors.ErrEngineBusy) {
			utils.Debug("watchdog: expiry skipped", map[string]any{"player_id": snap.CurrentPlayer.PlayerID, "error": err.Error()})
			return false
		}
		utils.Warn("watchdog: expiry failed", map[string]any{"player_id": snap.CurrentPlayer.PlayerID, "error": err.Error()})
		return false
	}

	fields := map[string]any{"player_id": snap.CurrentPlayer.PlayerID, "seq": next.Seq}
	if next.CurrentPlayer != nil {
		fields["status"] = next.CurrentPlayer.Status
	}
	utils.Info("watchdog: lot expired", fields)
	return true
}
