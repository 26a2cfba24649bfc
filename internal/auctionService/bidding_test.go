package auction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/models"
	"auction-engine/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// base price 1000, increment 100: bid, reject, raise, undo, sell
func TestAuctionService_BidUndoSellScenario(t *testing.T) {
	f := newDefaultFixture(t)
	ctx := context.Background()
	f.start(t)

	bid, err := f.bid(t, "team-a", 1000)
	require.NoError(t, err)
	_, parseErr := uuid.Parse(bid.BidID)
	require.NoError(t, parseErr, "BidID should be a valid UUID")
	require.Equal(t, int64(1000), f.svc.Snapshot().HighestBid.Amount)

	_, err = f.bid(t, "team-b", 1050)
	require.True(t, errors.Is(err, auctionerrors.ErrBidTooLow), "got %v", err)

	_, err = f.bid(t, "team-b", 1100)
	require.NoError(t, err)
	require.Equal(t, "team-b", f.svc.Snapshot().HighestBid.TeamID)

	snap, err := f.svc.UndoBid(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1000), snap.HighestBid.Amount)
	require.Equal(t, "team-a", snap.HighestBid.TeamID)

	snap, err = f.svc.Sell(ctx)
	require.NoError(t, err)

	p1, ok := snap.FindPlayer("p1")
	require.True(t, ok)
	require.Equal(t, models.StatusSold, p1.Status)
	require.Equal(t, "team-a", *p1.WinningTeamID)
	require.Equal(t, int64(1000), *p1.SoldPrice)

	teamA, _ := snap.FindTeam("team-a")
	require.Equal(t, int64(1000), teamA.Spent)
	require.Contains(t, teamA.Squad, "p1")

	teamB, _ := snap.FindTeam("team-b")
	require.Zero(t, teamB.Spent)
}

func TestAuctionService_SubmitBid_Validation(t *testing.T) {
	f := newDefaultFixture(t)
	ctx := context.Background()
	f.start(t)
	_, err := f.bid(t, "team-a", 1000)
	require.NoError(t, err)

	tests := []struct {
		name          string
		req           models.BidRequest
		expectedError error
	}{
		{
			name:          "empty_playerID",
			req:           models.BidRequest{TeamID: "team-b", Amount: 1100},
			expectedError: auctionerrors.ErrInvalidBid,
		},
		{
			name:          "empty_teamID",
			req:           models.BidRequest{PlayerID: "p1", Amount: 1100},
			expectedError: auctionerrors.ErrInvalidBid,
		},
		{
			name:          "zero_amount",
			req:           models.BidRequest{PlayerID: "p1", TeamID: "team-b"},
			expectedError: auctionerrors.ErrInvalidBid,
		},
		{
			name:          "wrong_lot",
			req:           models.BidRequest{PlayerID: "p2", TeamID: "team-b", Amount: 1100},
			expectedError: auctionerrors.ErrWrongLot,
		},
		{
			name:          "unknown_team",
			req:           models.BidRequest{PlayerID: "p1", TeamID: "team-x", Amount: 1100},
			expectedError: auctionerrors.ErrTeamNotFound,
		},
		{
			name:          "leader_cannot_raise_itself",
			req:           models.BidRequest{PlayerID: "p1", TeamID: "team-a", Amount: 1500},
			expectedError: auctionerrors.ErrAlreadyLeading,
		},
		{
			name:          "equal_to_highest",
			req:           models.BidRequest{PlayerID: "p1", TeamID: "team-b", Amount: 1000},
			expectedError: auctionerrors.ErrBidTooLow,
		},
		{
			name:          "over_budget",
			req:           models.BidRequest{PlayerID: "p1", TeamID: "team-b", Amount: 10001},
			expectedError: auctionerrors.ErrInsufficientBudget,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			before := f.svc.Snapshot()
			_, err := f.svc.SubmitBid(ctx, tc.req)
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.expectedError), "expected error: %v, got: %v", tc.expectedError, err)
			require.Equal(t, before.HighestBid, f.svc.Snapshot().HighestBid)
		})
	}
}

func TestAuctionService_InsufficientBudgetLeavesLedgerUntouched(t *testing.T) {
	f := newDefaultFixture(t)
	ctx := context.Background()
	f.start(t)
	_, err := f.svc.StartPlayer(ctx, "p2")
	require.True(t, errors.Is(err, auctionerrors.ErrInvalidStateTransition), "p1 is still open")
	_, err = f.svc.MarkUnsold(ctx)
	require.NoError(t, err)
	_, err = f.svc.NextPlayer(ctx)
	require.NoError(t, err)
	require.Equal(t, "p2", f.svc.Snapshot().CurrentPlayer.PlayerID)

	seq := f.svc.Snapshot().Seq
	_, err = f.bid(t, "team-c", 600)
	require.True(t, errors.Is(err, auctionerrors.ErrInsufficientBudget), "got %v", err)

	snap := f.svc.Snapshot()
	require.Nil(t, snap.HighestBid)
	require.Empty(t, snap.Bids)
	require.Equal(t, seq, snap.Seq)

	_, err = f.repo.GetBidsByPlayer("p2")
	require.True(t, errors.Is(err, auctionerrors.ErrNoBids))
}

func TestAuctionService_PauseBlocksBids(t *testing.T) {
	f := newDefaultFixture(t)
	ctx := context.Background()
	f.start(t)

	_, err := f.svc.Pause(ctx)
	require.NoError(t, err)

	_, err = f.bid(t, "team-a", 1000)
	require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotActive), "got %v", err)

	_, err = f.svc.Resume(ctx)
	require.NoError(t, err)

	bid, err := f.bid(t, "team-a", 1000)
	require.NoError(t, err)
	require.Equal(t, uint64(1), bid.Seq)
}

func TestAuctionService_BidAfterDeadline(t *testing.T) {
	f := newDefaultFixture(t)
	f.start(t)

	_, err := f.bid(t, "team-a", 1000)
	require.NoError(t, err)

	// each accepted bid restarts the countdown
	f.clock.Advance(20 * time.Second)
	_, err = f.bid(t, "team-b", 1100)
	require.NoError(t, err)
	require.Equal(t, f.clock.Now().Add(30*time.Second), *f.svc.Snapshot().Deadline)

	f.clock.Advance(30 * time.Second)
	_, err = f.bid(t, "team-a", 1200)
	require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotActive), "got %v", err)
}

func TestAuctionService_UndoThenResubmit(t *testing.T) {
	f := newDefaultFixture(t)
	ctx := context.Background()
	f.start(t)

	_, err := f.bid(t, "team-a", 1000)
	require.NoError(t, err)
	_, err = f.bid(t, "team-b", 1200)
	require.NoError(t, err)
	before := f.svc.Snapshot()

	_, err = f.svc.UndoBid(ctx)
	require.NoError(t, err)
	_, err = f.bid(t, "team-b", 1200)
	require.NoError(t, err)

	after := f.svc.Snapshot()
	require.Len(t, after.Bids, len(before.Bids))
	require.Equal(t, before.HighestBid.Amount, after.HighestBid.Amount)
	require.Equal(t, before.HighestBid.TeamID, after.HighestBid.TeamID)
	require.Greater(t, after.HighestBid.Seq, before.HighestBid.Seq)

	bids, err := f.repo.GetBidsByPlayer("p1")
	require.NoError(t, err)
	require.Len(t, bids, 2)
}

func TestAuctionService_UndoBid_Errors(t *testing.T) {
	f := newDefaultFixture(t)
	ctx := context.Background()

	_, err := f.svc.UndoBid(ctx)
	require.True(t, errors.Is(err, auctionerrors.ErrInvalidStateTransition), "got %v", err)

	f.start(t)
	_, err = f.svc.UndoBid(ctx)
	require.True(t, errors.Is(err, auctionerrors.ErrNoBidToUndo), "got %v", err)
}

func TestAuctionService_ConcurrentBids(t *testing.T) {
	teams := make([]models.Team, 0, 8)
	for i := 0; i < 8; i++ {
		teams = append(teams, models.Team{TeamID: fmt.Sprintf("team-%d", i), Name: fmt.Sprintf("Team %d", i), Budget: 1_000_000})
	}
	f := newFixture(t, teams, []models.Player{{PlayerID: "star", BasePrice: 1000}})
	f.start(t)

	var wg sync.WaitGroup
	concurrentCount := 200
	for i := 0; i < concurrentCount; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			_, err := f.svc.SubmitBid(context.Background(), models.BidRequest{
				PlayerID: "star",
				TeamID:   fmt.Sprintf("team-%d", i%len(teams)),
				// many goroutines share an amount so ties are contested
				Amount: 1000 + int64(i/4)*100,
			})
			if err != nil {
				assert.True(t,
					errors.Is(err, auctionerrors.ErrBidTooLow) ||
						errors.Is(err, auctionerrors.ErrAlreadyLeading) ||
						errors.Is(err, auctionerrors.ErrEngineBusy),
					"unexpected error %v", err)
			}
		}()
	}
	wg.Wait()

	snap := f.svc.Snapshot()
	require.NotEmpty(t, snap.Bids)
	seen := make(map[uint64]bool)
	for i, b := range snap.Bids {
		require.False(t, seen[b.Seq], "duplicate bid seq %d", b.Seq)
		seen[b.Seq] = true
		if i > 0 {
			require.Greater(t, b.Amount, snap.Bids[i-1].Amount)
			require.Greater(t, b.Seq, snap.Bids[i-1].Seq)
			require.NotEqual(t, b.TeamID, snap.Bids[i-1].TeamID)
		}
	}

	events := f.pub.Events()
	require.Len(t, events, int(snap.Seq))
	for i, ev := range events {
		require.Equal(t, uint64(i+1), ev.Seq)
	}
}

func TestAuctionService_PersistFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	mockRepo.EXPECT().ListTeams().Return(defaultTeams(), nil)
	mockRepo.EXPECT().ListPlayers().Return([]models.Player{{PlayerID: "p1", LotNumber: 1, BasePrice: 1000, Status: models.StatusQueued}}, nil)
	mockRepo.EXPECT().GetBidsByPlayer("p1").Return(nil, auctionerrors.ErrNoBids)
	mockRepo.EXPECT().SavePlayer(gomock.Any()).Return(nil)
	mockRepo.EXPECT().RecordBid(gomock.Any()).Return(errors.New("repo write failed"))

	pub := &recordingPublisher{}
	svc, err := NewAuctionService(mockRepo, pub, Options{})
	require.NoError(t, err)

	_, err = svc.Start(context.Background())
	require.NoError(t, err)

	_, err = svc.SubmitBid(context.Background(), models.BidRequest{PlayerID: "p1", TeamID: "team-a", Amount: 1000})
	require.Error(t, err)

	snap := svc.Snapshot()
	require.Nil(t, snap.HighestBid)
	require.Equal(t, uint64(1), snap.Seq)
	require.Len(t, pub.Events(), 1)
}

func TestAuctionService_LoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	mockRepo.EXPECT().ListTeams().Return(nil, errors.New("db down"))

	_, err := NewAuctionService(mockRepo, nil, Options{})
	require.Error(t, err)
}

func TestAuctionService_BidHistory(t *testing.T) {
	f := newDefaultFixture(t)
	f.start(t)
	_, err := f.bid(t, "team-a", 1000)
	require.NoError(t, err)
	_, err = f.bid(t, "team-b", 1100)
	require.NoError(t, err)

	bids, err := f.svc.BidHistory("p1")
	require.NoError(t, err)
	require.Len(t, bids, 2)
	require.Equal(t, uint64(1), bids[0].Seq)
	require.Equal(t, uint64(2), bids[1].Seq)

	_, err = f.svc.BidHistory("p2")
	require.True(t, errors.Is(err, auctionerrors.ErrNoBids))

	_, err = f.svc.BidHistory("nobody")
	require.True(t, errors.Is(err, auctionerrors.ErrPlayerNotFound))
}
