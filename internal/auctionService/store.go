package auction

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/models"
	"auction-engine/internal/repository"
)

// Publisher receives every committed event in sequence order.
// Publish is called while the store holds its serialization slot and must not block.
type Publisher interface {
	Publish(event models.Event)
}

// txn is the working copy a transition mutates. Writes queued on it are
// flushed to the repository only if the transition succeeds.
type txn struct {
	st           *sessionState
	now          time.Time
	minIncrement int64
	timer        time.Duration
	writes       []func(repository.AuctionDB) error
}

func (tx *txn) saveTeam(t *models.Team) {
	team := *t
	team.Squad = append([]string(nil), t.Squad...)
	tx.writes = append(tx.writes, func(db repository.AuctionDB) error { return db.SaveTeam(team) })
}

func (tx *txn) savePlayer(p *models.Player) {
	player := *p
	tx.writes = append(tx.writes, func(db repository.AuctionDB) error { return db.SavePlayer(player) })
}

func (tx *txn) recordBid(bid models.Bid) {
	tx.writes = append(tx.writes, func(db repository.AuctionDB) error { return db.RecordBid(bid) })
}

func (tx *txn) deleteBid(playerID, bidID string) {
	tx.writes = append(tx.writes, func(db repository.AuctionDB) error { return db.DeleteBid(playerID, bidID) })
}

func (tx *txn) clearBids(playerID string) {
	tx.writes = append(tx.writes, func(db repository.AuctionDB) error { return db.ClearBids(playerID) })
}

// transitionFunc mutates the working copy and names the event to emit.
type transitionFunc func(tx *txn) (models.EventType, any, error)

// Store is the single serialization point for all auction mutations.
type Store struct {
	sem          chan struct{}
	lockTimeout  time.Duration
	minIncrement int64
	timer        time.Duration
	now          func() time.Time

	// guarded by sem
	state *sessionState
	seq   uint64

	latest    atomic.Pointer[models.Snapshot]
	db        repository.AuctionDB
	publisher Publisher
}

// NewStore loads the catalog and ledger from db and prepares an idle session.
func NewStore(db repository.AuctionDB, publisher Publisher, opts Options) (*Store, error) {
	opts = opts.withDefaults()

	teams, err := db.ListTeams()
	if err != nil {
		return nil, fmt.Errorf("service: failed to load teams: %w", err)
	}
	players, err := db.ListPlayers()
	if err != nil {
		return nil, fmt.Errorf("service: failed to load players: %w", err)
	}

	st := newSessionState(teams, players)
	for _, p := range players {
		bids, err := db.GetBidsByPlayer(p.PlayerID)
		if err != nil {
			if errors.Is(err, auctionerrors.ErrNoBids) {
				continue
			}
			return nil, fmt.Errorf("service: failed to load bids for player %s: %w", p.PlayerID, err)
		}
		st.ledger[p.PlayerID] = bids
		for _, b := range bids {
			if b.Seq > st.bidSeq[p.PlayerID] {
				st.bidSeq[p.PlayerID] = b.Seq
			}
		}
	}

	s := &Store{
		sem:          make(chan struct{}, 1),
		lockTimeout:  opts.LockTimeout,
		minIncrement: opts.MinIncrement,
		timer:        opts.TimerDuration,
		now:          opts.Now,
		state:        st,
		db:           db,
		publisher:    publisher,
	}
	snap := st.snapshot(0, s.now(), s.minIncrement)
	s.latest.Store(&snap)
	return s, nil
}

// Snapshot returns the last committed snapshot without waiting for writers.
func (s *Store) Snapshot() models.Snapshot {
	return *s.latest.Load()
}

// Apply runs fn under the serialization slot. Either the whole transition
// commits, advancing the broadcast sequence by exactly one, or nothing changes.
func (s *Store) Apply(ctx context.Context, name string, fn transitionFunc) (models.Snapshot, models.Event, error) {
	if err := s.acquire(ctx); err != nil {
		return models.Snapshot{}, models.Event{}, err
	}
	defer s.release()

	if expected, ok := expectedSeqFrom(ctx); ok && expected != s.seq {
		return models.Snapshot{}, models.Event{}, fmt.Errorf("service: %w - expected seq %d, current seq %d", auctionerrors.ErrConflict, expected, s.seq)
	}

	tx := &txn{
		st:           s.state.clone(),
		now:          s.now(),
		minIncrement: s.minIncrement,
		timer:        s.timer,
	}
	eventType, detail, err := fn(tx)
	if err != nil {
		return models.Snapshot{}, models.Event{}, err
	}

	for _, write := range tx.writes {
		if err := write(s.db); err != nil {
			return models.Snapshot{}, models.Event{}, fmt.Errorf("service: failed to persist %s: %w", name, err)
		}
	}

	s.seq++
	s.state = tx.st
	snap := s.state.snapshot(s.seq, tx.now, s.minIncrement)
	s.latest.Store(&snap)

	event := models.Event{
		Seq:        s.seq,
		Type:       eventType,
		Transition: name,
		Detail:     detail,
		State:      snap,
		CreatedAt:  tx.now,
	}
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
	return snap, event, nil
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	default:
	}

	timer := time.NewTimer(s.lockTimeout)
	defer timer.Stop()

	select {
	case s.sem <- struct{}{}:
		return nil
	case <-timer.C:
		return fmt.Errorf("service: %w - waited %s for the auction lock", auctionerrors.ErrEngineBusy, s.lockTimeout)
	case <-ctx.Done():
		return fmt.Errorf("service: %w - %w", auctionerrors.ErrEngineBusy, ctx.Err())
	}
}

func (s *Store) release() {
	<-s.sem
}

type expectedSeqKey struct{}

// WithExpectedSeq makes the next transition fail with ErrConflict unless
// the committed broadcast sequence still equals seq.
func WithExpectedSeq(ctx context.Context, seq uint64) context.Context {
	return context.WithValue(ctx, expectedSeqKey{}, seq)
}

func expectedSeqFrom(ctx context.Context) (uint64, bool) {
	seq, ok := ctx.Value(expectedSeqKey{}).(uint64)
	return seq, ok
}
