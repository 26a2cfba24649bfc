package auction

import (
	"context"
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/models"
)

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func invalid(transition string, st *sessionState, reason string) error {
	return auctionerrors.NewTransitionError(transition, string(st.phase), reason)
}

// beginLot puts a queued player under the hammer with a fresh countdown
func beginLot(tx *txn, p *models.Player) {
	st := tx.st
	st.removeFromQueue(p.PlayerID)
	p.Status = models.StatusInAuction
	st.currentID = p.PlayerID
	deadline := tx.now.Add(tx.timer)
	st.deadline = &deadline
	st.pausedRemaining = 0
	if len(st.ledger[p.PlayerID]) > 0 {
		delete(st.ledger, p.PlayerID)
		tx.clearBids(p.PlayerID)
	}
	tx.savePlayer(p)
}

// closeLot records a sale of the current lot to team at price
func closeLot(tx *txn, p *models.Player, team *models.Team, price int64) models.LotDetail {
	teamID := team.TeamID
	soldPrice := price
	p.Status = models.StatusSold
	p.WinningTeamID = &teamID
	p.SoldPrice = &soldPrice
	team.Spent += price
	team.Squad = append(team.Squad, p.PlayerID)
	tx.st.deadline = nil
	tx.st.pausedRemaining = 0
	tx.savePlayer(p)
	tx.saveTeam(team)

	teamCopy := *team
	teamCopy.Squad = append([]string(nil), team.Squad...)
	return models.LotDetail{Player: *p, Team: &teamCopy, Price: price}
}

func phaseDetail(from models.Phase, st *sessionState) models.PhaseDetail {
	return models.PhaseDetail{
		From:              from,
		To:                st.phase,
		Deadline:          copyTime(st.deadline),
		PausedRemainingMs: st.pausedRemaining.Milliseconds(),
	}
}

func (s *AuctionService) apply(ctx context.Context, name string, fn transitionFunc) (models.Snapshot, error) {
	snap, _, err := s.store.Apply(ctx, name, fn)
	return snap, err
}

// Start opens the auction and pulls the first queued player
func (s *AuctionService) Start(ctx context.Context) (models.Snapshot, error) {
	return s.apply(ctx, "start", func(tx *txn) (models.EventType, any, error) {
		st := tx.st
		if st.phase != models.PhaseNotStarted {
			return "", nil, invalid("start", st, "")
		}
		st.phase = models.PhaseRunning
		if len(st.queue) > 0 {
			beginLot(tx, st.players[st.queue[0]])
		}
		return models.EventPhaseChanged, phaseDetail(models.PhaseNotStarted, st), nil
	})
}

// Pause freezes the countdown of the current lot
func (s *AuctionService) Pause(ctx context.Context) (models.Snapshot, error) {
	return s.apply(ctx, "pause", func(tx *txn) (models.EventType, any, error) {
		st := tx.st
		if st.phase != models.PhaseRunning {
			return "", nil, invalid("pause", st, "")
		}
		if st.deadline != nil {
			remaining := st.deadline.Sub(tx.now)
			if remaining < 0 {
				remaining = 0
			}
			st.pausedRemaining = remaining
			st.deadline = nil
		}
		st.phase = models.PhasePaused
		return models.EventPhaseChanged, phaseDetail(models.PhaseRunning, st), nil
	})
}

// Resume restarts the countdown from the frozen remaining time
func (s *AuctionService) Resume(ctx context.Context) (models.Snapshot, error) {
	return s.apply(ctx, "resume", func(tx *txn) (models.EventType, any, error) {
		st := tx.st
		if st.phase != models.PhasePaused {
			return "", nil, invalid("resume", st, "")
		}
		if st.lotInAuction() != nil {
			deadline := tx.now.Add(st.pausedRemaining)
			st.deadline = &deadline
		}
		st.pausedRemaining = 0
		st.phase = models.PhaseRunning
		return models.EventPhaseChanged, phaseDetail(models.PhasePaused, st), nil
	})
}

// NextPlayer advances the queue once the current lot is resolved
func (s *AuctionService) NextPlayer(ctx context.Context) (models.Snapshot, error) {
	return s.apply(ctx, "next-player", func(tx *txn) (models.EventType, any, error) {
		st := tx.st
		if st.phase != models.PhaseRunning {
			return "", nil, invalid("next-player", st, "auction not running")
		}
		if st.lotInAuction() != nil {
			return "", nil, invalid("next-player", st, fmt.Sprintf("player %s is still in auction", st.currentID))
		}
		if len(st.queue) == 0 {
			return "", nil, invalid("next-player", st, "queue is empty")
		}
		next := st.players[st.queue[0]]
		beginLot(tx, next)
		return models.EventPlayerChanged, models.LotDetail{Player: *next, Deadline: copyTime(st.deadline)}, nil
	})
}

// StartPlayer puts a specific queued player up, bypassing queue order
func (s *AuctionService) StartPlayer(ctx context.Context, playerID string) (models.Snapshot, error) {
	return s.apply(ctx, "start-player", func(tx *txn) (models.EventType, any, error) {
		st := tx.st
		if st.phase != models.PhaseRunning {
			return "", nil, invalid("start-player", st, "auction not running")
		}
		p, ok := st.players[playerID]
		if !ok {
			return "", nil, fmt.Errorf("service: player %s: %w", playerID, auctionerrors.ErrPlayerNotFound)
		}
		if p.Status != models.StatusQueued {
			return "", nil, invalid("start-player", st, fmt.Sprintf("player %s is %s", playerID, p.Status))
		}
		if st.lotInAuction() != nil {
			return "", nil, invalid("start-player", st, fmt.Sprintf("player %s is still in auction", st.currentID))
		}
		beginLot(tx, p)
		return models.EventPlayerChanged, models.LotDetail{Player: *p, Deadline: copyTime(st.deadline)}, nil
	})
}

// Sell awards the current lot to the highest bidder
func (s *AuctionService) Sell(ctx context.Context) (models.Snapshot, error) {
	return s.apply(ctx, "sell", func(tx *txn) (models.EventType, any, error) {
		return sellToHighest(tx, "sell")
	})
}

func sellToHighest(tx *txn, name string) (models.EventType, any, error) {
	st := tx.st
	if st.phase != models.PhaseRunning && st.phase != models.PhasePaused {
		return "", nil, invalid(name, st, "auction not in progress")
	}
	lot := st.lotInAuction()
	if lot == nil {
		return "", nil, invalid(name, st, "no player in auction")
	}
	top := st.highest(lot.PlayerID)
	if top == nil {
		return "", nil, invalid(name, st, fmt.Sprintf("player %s has no bids", lot.PlayerID))
	}
	team, ok := st.teams[top.TeamID]
	if !ok {
		return "", nil, fmt.Errorf("service: team %s: %w", top.TeamID, auctionerrors.ErrTeamNotFound)
	}
	if team.Remaining() < top.Amount {
		return "", nil, fmt.Errorf("service: %w - %s has %d remaining", auctionerrors.ErrInsufficientBudget, team.TeamID, team.Remaining())
	}
	return models.EventPlayerSold, closeLot(tx, lot, team, top.Amount), nil
}

// SellToTeam forces the current lot to teamID at the highest bid, or base price without bids
func (s *AuctionService) SellToTeam(ctx context.Context, teamID string) (models.Snapshot, error) {
	return s.apply(ctx, "sell-to-team", func(tx *txn) (models.EventType, any, error) {
		st := tx.st
		if st.phase != models.PhaseRunning && st.phase != models.PhasePaused {
			return "", nil, invalid("sell-to-team", st, "auction not in progress")
		}
		lot := st.lotInAuction()
		if lot == nil {
			return "", nil, invalid("sell-to-team", st, "no player in auction")
		}
		team, ok := st.teams[teamID]
		if !ok {
			return "", nil, fmt.Errorf("service: team %s: %w", teamID, auctionerrors.ErrTeamNotFound)
		}
		price := lot.BasePrice
		if top := st.highest(lot.PlayerID); top != nil {
			price = top.Amount
		}
		if team.Remaining() < price {
			return "", nil, fmt.Errorf("service: %w - %s has %d remaining", auctionerrors.ErrInsufficientBudget, team.TeamID, team.Remaining())
		}
		return models.EventPlayerSold, closeLot(tx, lot, team, price), nil
	})
}

// MarkUnsold closes the current lot without a sale
func (s *AuctionService) MarkUnsold(ctx context.Context) (models.Snapshot, error) {
	return s.apply(ctx, "unsold", func(tx *txn) (models.EventType, any, error) {
		return markUnsold(tx, "unsold")
	})
}

func markUnsold(tx *txn, name string) (models.EventType, any, error) {
	st := tx.st
	if st.phase != models.PhaseRunning && st.phase != models.PhasePaused {
		return "", nil, invalid(name, st, "auction not in progress")
	}
	lot := st.lotInAuction()
	if lot == nil {
		return "", nil, invalid(name, st, "no player in auction")
	}
	lot.Status = models.StatusUnsold
	st.deadline = nil
	st.pausedRemaining = 0
	tx.savePlayer(lot)
	return models.EventPlayerUnsold, models.LotDetail{Player: *lot}, nil
}

// SkipPlayer sends the current lot to the back of the queue and advances
func (s *AuctionService) SkipPlayer(ctx context.Context) (models.Snapshot, error) {
	return s.apply(ctx, "skip-player", func(tx *txn) (models.EventType, any, error) {
		st := tx.st
		if st.phase != models.PhaseRunning {
			return "", nil, invalid("skip-player", st, "auction not running")
		}
		lot := st.lotInAuction()
		if lot == nil {
			return "", nil, invalid("skip-player", st, "no player in auction")
		}
		lot.Status = models.StatusQueued
		st.queue = append(st.queue, lot.PlayerID)
		if len(st.ledger[lot.PlayerID]) > 0 {
			delete(st.ledger, lot.PlayerID)
			tx.clearBids(lot.PlayerID)
		}
		tx.savePlayer(lot)

		next := st.players[st.queue[0]]
		beginLot(tx, next)
		return models.EventPlayerChanged, models.LotDetail{Player: *next, Deadline: copyTime(st.deadline)}, nil
	})
}

// ResetTimer restarts the countdown of the current lot
func (s *AuctionService) ResetTimer(ctx context.Context) (models.Snapshot, error) {
	return s.apply(ctx, "reset-timer", func(tx *txn) (models.EventType, any, error) {
		st := tx.st
		lot := st.lotInAuction()
		if lot == nil || (st.phase != models.PhaseRunning && st.phase != models.PhasePaused) {
			return "", nil, invalid("reset-timer", st, "no player in auction")
		}
		if st.phase == models.PhasePaused {
			st.pausedRemaining = tx.timer
		} else {
			deadline := tx.now.Add(tx.timer)
			st.deadline = &deadline
		}
		return models.EventTimerReset, models.TimerDetail{
			PlayerID:          lot.PlayerID,
			Deadline:          copyTime(st.deadline),
			PausedRemainingMs: st.pausedRemaining.Milliseconds(),
		}, nil
	})
}

// End closes the auction; an open lot goes back to the head of the queue
func (s *AuctionService) End(ctx context.Context) (models.Snapshot, error) {
	return s.apply(ctx, "end", func(tx *txn) (models.EventType, any, error) {
		st := tx.st
		from := st.phase
		if from != models.PhaseRunning && from != models.PhasePaused {
			return "", nil, invalid("end", st, "")
		}
		if lot := st.lotInAuction(); lot != nil {
			lot.Status = models.StatusQueued
			st.queue = append([]string{lot.PlayerID}, st.queue...)
			tx.savePlayer(lot)
		}
		st.phase = models.PhaseEnded
		st.currentID = ""
		st.deadline = nil
		st.pausedRemaining = 0
		return models.EventPhaseChanged, phaseDetail(from, st), nil
	})
}

// Reset returns the session to NOT_STARTED keeping sales and budgets
func (s *AuctionService) Reset(ctx context.Context) (models.Snapshot, error) {
	return s.apply(ctx, "reset", func(tx *txn) (models.EventType, any, error) {
		st := tx.st
		if lot := st.lotInAuction(); lot != nil {
			lot.Status = models.StatusQueued
			tx.savePlayer(lot)
		}
		st.phase = models.PhaseNotStarted
		st.currentID = ""
		st.deadline = nil
		st.pausedRemaining = 0
		st.rebuildQueue()
		return models.EventStateSnapshot, nil, nil
	})
}

// ResetEverything clears the session, every bid and sale, and restores budgets
func (s *AuctionService) ResetEverything(ctx context.Context) (models.Snapshot, error) {
	return s.apply(ctx, "reset-everything", func(tx *txn) (models.EventType, any, error) {
		st := tx.st
		for _, id := range st.playerOrder {
			p := st.players[id]
			p.Status = models.StatusQueued
			p.WinningTeamID = nil
			p.SoldPrice = nil
			tx.savePlayer(p)
		}
		for _, id := range st.teamOrder {
			t := st.teams[id]
			t.Spent = 0
			t.Squad = nil
			tx.saveTeam(t)
		}
		st.ledger = make(map[string][]models.Bid)
		st.bidSeq = make(map[string]uint64)
		tx.clearBids("")

		st.phase = models.PhaseNotStarted
		st.currentID = ""
		st.deadline = nil
		st.pausedRemaining = 0
		st.rebuildQueue()
		return models.EventStateSnapshot, nil, nil
	})
}

// ExpireLot resolves the current lot once its countdown has passed: sold to
// the highest bidder if there is one, unsold otherwise.
func (s *AuctionService) ExpireLot(ctx context.Context) (models.Snapshot, error) {
	return s.apply(ctx, "expire", func(tx *txn) (models.EventType, any, error) {
		st := tx.st
		if st.phase != models.PhaseRunning {
			return "", nil, invalid("expire", st, "auction not running")
		}
		lot := st.lotInAuction()
		if lot == nil {
			return "", nil, invalid("expire", st, "no player in auction")
		}
		if st.deadline == nil || tx.now.Before(*st.deadline) {
			return "", nil, invalid("expire", st, "countdown still running")
		}
		if st.highest(lot.PlayerID) != nil {
			return sellToHighest(tx, "expire")
		}
		return markUnsold(tx, "expire")
	})
}
