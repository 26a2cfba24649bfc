package auction

import (
	"context"
	"errors"
	"testing"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/models"

	"github.com/stretchr/testify/require"
)

func TestStore_SeqAdvancesByOnePerCommit(t *testing.T) {
	f := newDefaultFixture(t)
	ctx := context.Background()

	f.start(t)
	_, err := f.bid(t, "team-a", 1000)
	require.NoError(t, err)
	_, err = f.bid(t, "team-b", 900) // rejected
	require.Error(t, err)
	_, err = f.svc.NextPlayer(ctx) // rejected
	require.Error(t, err)
	_, err = f.bid(t, "team-b", 1100)
	require.NoError(t, err)
	_, err = f.svc.Sell(ctx)
	require.NoError(t, err)

	events := f.pub.Events()
	require.Len(t, events, 4)
	for i, ev := range events {
		require.Equal(t, uint64(i+1), ev.Seq)
		require.Equal(t, ev.Seq, ev.State.Seq)
	}
	require.Equal(t, []models.EventType{
		models.EventPhaseChanged,
		models.EventBidAccepted,
		models.EventBidAccepted,
		models.EventPlayerSold,
	}, []models.EventType{events[0].Type, events[1].Type, events[2].Type, events[3].Type})
	require.Equal(t, uint64(4), f.svc.Snapshot().Seq)
}

func TestStore_SnapshotsAreImmutable(t *testing.T) {
	f := newDefaultFixture(t)
	f.start(t)

	_, err := f.bid(t, "team-a", 1000)
	require.NoError(t, err)
	held := f.svc.Snapshot()

	_, err = f.bid(t, "team-b", 1100)
	require.NoError(t, err)
	_, err = f.svc.Sell(context.Background())
	require.NoError(t, err)

	require.Len(t, held.Bids, 1)
	require.Equal(t, models.StatusInAuction, held.CurrentPlayer.Status)
	teamB, _ := held.FindTeam("team-b")
	require.Zero(t, teamB.Spent)
	require.Empty(t, teamB.Squad)
}

func TestStore_EngineBusy(t *testing.T) {
	f := newDefaultFixture(t)
	f.start(t)

	// hold the serialization slot as a slow writer would
	f.svc.store.sem <- struct{}{}

	started := time.Now()
	_, err := f.bid(t, "team-a", 1000)
	require.True(t, errors.Is(err, auctionerrors.ErrEngineBusy), "got %v", err)
	require.GreaterOrEqual(t, time.Since(started), 200*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.svc.Pause(ctx)
	require.True(t, errors.Is(err, auctionerrors.ErrEngineBusy), "got %v", err)
	require.True(t, errors.Is(err, context.Canceled), "got %v", err)

	<-f.svc.store.sem
	_, err = f.bid(t, "team-a", 1000)
	require.NoError(t, err)
	require.Equal(t, uint64(2), f.svc.Snapshot().Seq)
}

func TestStore_ExpectedSeqConflict(t *testing.T) {
	f := newDefaultFixture(t)
	f.start(t)
	seq := f.svc.Snapshot().Seq

	_, err := f.svc.Pause(WithExpectedSeq(context.Background(), seq+1))
	require.True(t, errors.Is(err, auctionerrors.ErrConflict), "got %v", err)
	require.Equal(t, models.PhaseRunning, f.svc.Snapshot().Phase)

	snap, err := f.svc.Pause(WithExpectedSeq(context.Background(), seq))
	require.NoError(t, err)
	require.Equal(t, models.PhasePaused, snap.Phase)
}

func TestStore_RestoresLedgerFromRepository(t *testing.T) {
	f := newDefaultFixture(t)
	f.start(t)
	_, err := f.bid(t, "team-a", 1000)
	require.NoError(t, err)
	_, err = f.bid(t, "team-b", 1100)
	require.NoError(t, err)

	// a fresh engine over the same repository picks up where it left off
	restarted, err := NewAuctionService(f.repo, nil, Options{Now: f.clock.Now})
	require.NoError(t, err)

	snap := restarted.Snapshot()
	require.Equal(t, models.PhaseNotStarted, snap.Phase)
	p1, ok := snap.FindPlayer("p1")
	require.True(t, ok)
	require.Equal(t, models.StatusQueued, p1.Status)
	require.Equal(t, []string{"p1", "p2", "p3"}, snap.Queue)

	// beginning the lot again discards the stale ledger
	snap, err = restarted.Start(context.Background())
	require.NoError(t, err)
	require.Empty(t, snap.Bids)

	bid, err := restarted.SubmitBid(context.Background(), models.BidRequest{PlayerID: "p1", TeamID: "team-a", Amount: 1000})
	require.NoError(t, err)
	require.Equal(t, uint64(3), bid.Seq)
}
