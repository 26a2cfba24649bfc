package auction

import (
	"context"
	"fmt"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/models"
	"auction-engine/utils"
)

// SubmitBid validates and records a team's bid on the current lot.
// Validation and commit happen atomically under the store, so of two equal
// concurrent bids only the first one through is accepted.
func (s *AuctionService) SubmitBid(ctx context.Context, req models.BidRequest) (models.Bid, error) {
	if err := validateBidRequest(req); err != nil {
		return models.Bid{}, err
	}

	_, event, err := s.store.Apply(ctx, "bid", func(tx *txn) (models.EventType, any, error) {
		return acceptBid(tx, req)
	})
	if err != nil {
		return models.Bid{}, err
	}
	return event.Detail.(models.BidDetail).Bid, nil
}

// validateBidRequest checks input validity before queueing on the store
func validateBidRequest(req models.BidRequest) error {
	if req.PlayerID == "" || req.TeamID == "" {
		return fmt.Errorf("service: %w - missing playerID or teamID", auctionerrors.ErrInvalidBid)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}
	return nil
}

func acceptBid(tx *txn, req models.BidRequest) (models.EventType, any, error) {
	st := tx.st
	if st.phase != models.PhaseRunning {
		return "", nil, fmt.Errorf("service: %w - phase is %s", auctionerrors.ErrAuctionNotActive, st.phase)
	}
	lot := st.lotInAuction()
	if lot == nil {
		return "", nil, fmt.Errorf("service: %w - no player in auction", auctionerrors.ErrAuctionNotActive)
	}
	if req.PlayerID != lot.PlayerID {
		return "", nil, fmt.Errorf("service: %w - bid for %s, current lot is %s", auctionerrors.ErrWrongLot, req.PlayerID, lot.PlayerID)
	}
	if st.deadline != nil && !tx.now.Before(*st.deadline) {
		return "", nil, fmt.Errorf("service: %w - countdown expired for %s", auctionerrors.ErrAuctionNotActive, lot.PlayerID)
	}

	team, ok := st.teams[req.TeamID]
	if !ok {
		return "", nil, fmt.Errorf("service: team %s: %w", req.TeamID, auctionerrors.ErrTeamNotFound)
	}

	top := st.highest(lot.PlayerID)
	if top != nil && top.TeamID == team.TeamID {
		return "", nil, fmt.Errorf("service: %w - %s leads at %d", auctionerrors.ErrAlreadyLeading, team.TeamID, top.Amount)
	}
	if minBid := st.minimumBid(lot, tx.minIncrement); req.Amount < minBid {
		return "", nil, fmt.Errorf("service: %w - minimum acceptable bid is %d", auctionerrors.ErrBidTooLow, minBid)
	}
	if req.Amount > team.Remaining() {
		return "", nil, fmt.Errorf("service: %w - %s has %d remaining", auctionerrors.ErrInsufficientBudget, team.TeamID, team.Remaining())
	}

	st.bidSeq[lot.PlayerID]++
	bid := models.Bid{
		BidID:        utils.GenerateID(),
		PlayerID:     lot.PlayerID,
		TeamID:       team.TeamID,
		Seq:          st.bidSeq[lot.PlayerID],
		Amount:       req.Amount,
		ConnectionID: req.ConnectionID,
		CreatedAt:    tx.now,
	}
	st.ledger[lot.PlayerID] = append(st.ledger[lot.PlayerID], bid)
	deadline := tx.now.Add(tx.timer)
	st.deadline = &deadline
	tx.recordBid(bid)

	leading := bid
	return models.EventBidAccepted, models.BidDetail{Bid: bid, HighestBid: &leading, Deadline: &deadline}, nil
}

// UndoBid pops the most recent bid on the current lot
func (s *AuctionService) UndoBid(ctx context.Context) (models.Snapshot, error) {
	snap, _, err := s.store.Apply(ctx, "undo-bid", func(tx *txn) (models.EventType, any, error) {
		st := tx.st
		if st.phase != models.PhaseRunning && st.phase != models.PhasePaused {
			return "", nil, auctionerrors.NewTransitionError("undo-bid", string(st.phase), "auction not in progress")
		}
		lot := st.lotInAuction()
		if lot == nil {
			return "", nil, auctionerrors.NewTransitionError("undo-bid", string(st.phase), "no player in auction")
		}
		bids := st.ledger[lot.PlayerID]
		if len(bids) == 0 {
			return "", nil, fmt.Errorf("service: %w - ledger for %s is empty", auctionerrors.ErrNoBidToUndo, lot.PlayerID)
		}

		popped := bids[len(bids)-1]
		st.ledger[lot.PlayerID] = bids[:len(bids)-1]
		tx.deleteBid(lot.PlayerID, popped.BidID)

		return models.EventBidUndone, models.BidDetail{
			Bid:        popped,
			HighestBid: st.highest(lot.PlayerID),
			Deadline:   copyTime(st.deadline),
		}, nil
	})
	return snap, err
}
