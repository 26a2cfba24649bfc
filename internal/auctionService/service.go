package auction

import (
	"context"
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/models"
	"auction-engine/internal/repository"
)

// Options tune the bidding rules and the serialization point
type Options struct {
	MinIncrement  int64
	TimerDuration time.Duration
	LockTimeout   time.Duration
	Now           func() time.Time
}

func (o Options) withDefaults() Options {
	if o.MinIncrement <= 0 {
		o.MinIncrement = 100
	}
	if o.TimerDuration <= 0 {
		o.TimerDuration = 30 * time.Second
	}
	if o.LockTimeout <= 0 {
		o.LockTimeout = 2 * time.Second
	}
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	return o
}

// AuctionService is the live auction engine: bid acceptance plus the
// auction state machine, both serialized through one Store.
type AuctionService struct {
	store *Store
	repo  repository.AuctionDB
	now   func() time.Time
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(repo repository.AuctionDB, publisher Publisher, opts Options) (*AuctionService, error) {
	opts = opts.withDefaults()
	store, err := NewStore(repo, publisher, opts)
	if err != nil {
		return nil, err
	}
	return &AuctionService{store: store, repo: repo, now: opts.Now}, nil
}

// Snapshot returns the latest committed session state
func (s *AuctionService) Snapshot() models.Snapshot {
	return s.store.Snapshot()
}

// PublicSnapshot returns the redacted projection of the latest session state
func (s *AuctionService) PublicSnapshot() models.PublicSnapshot {
	return s.store.Snapshot().Public()
}

// BidHistory returns the recorded ledger for a player
func (s *AuctionService) BidHistory(playerID string) ([]models.Bid, error) {
	if playerID == "" {
		return nil, fmt.Errorf("service: %w - empty player ID", auctionerrors.ErrInvalidBid)
	}
	if _, ok := s.store.Snapshot().FindPlayer(playerID); !ok {
		return nil, fmt.Errorf("service: player %s: %w", playerID, auctionerrors.ErrPlayerNotFound)
	}

	bids, err := s.repo.GetBidsByPlayer(playerID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for player %s: %w", playerID, err)
	}
	return bids, nil
}

// SetStreamURL updates the live video pointer shown next to the auction
func (s *AuctionService) SetStreamURL(ctx context.Context, url string) (models.Snapshot, error) {
	snap, _, err := s.store.Apply(ctx, "stream-url", func(tx *txn) (models.EventType, any, error) {
		tx.st.stream.URL = url
		tx.st.stream.UpdatedAt = tx.now
		return models.EventStreamChanged, tx.st.stream, nil
	})
	return snap, err
}

// SetBroadcastLive marks the live video as on air or off air
func (s *AuctionService) SetBroadcastLive(ctx context.Context, live bool) (models.Snapshot, error) {
	snap, _, err := s.store.Apply(ctx, "broadcast-live", func(tx *txn) (models.EventType, any, error) {
		tx.st.stream.Live = live
		tx.st.stream.UpdatedAt = tx.now
		return models.EventStreamChanged, tx.st.stream, nil
	})
	return snap, err
}

// StreamInfo returns the current live video pointer
func (s *AuctionService) StreamInfo() models.StreamInfo {
	return s.store.Snapshot().Stream
}
