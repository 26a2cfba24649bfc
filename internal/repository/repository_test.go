package repository

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"

	"github.com/stretchr/testify/require"
)

// Helper to create a seeded repo with two teams and two players
func newSeededRepo() *MemoryRepo {
	repo := NewMemoryRepo()
	repo.AddTeam(model.Team{TeamID: "team-a", Name: "Team A", Budget: 10000})
	repo.AddTeam(model.Team{TeamID: "team-b", Name: "Team B", Budget: 10000})
	repo.AddPlayer(model.Player{PlayerID: "p1", Name: "Player 1", BasePrice: 1000})
	repo.AddPlayer(model.Player{PlayerID: "p2", Name: "Player 2", BasePrice: 500})
	return repo
}

// Helper to create a new Bid
func newBid(bidID, playerID, teamID string, seq uint64, amount int64) model.Bid {
	return model.Bid{
		BidID:     bidID,
		PlayerID:  playerID,
		TeamID:    teamID,
		Seq:       seq,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
}

func TestMemoryRepo_Catalog(t *testing.T) {
	t.Parallel()

	repo := newSeededRepo()

	teams, err := repo.ListTeams()
	require.NoError(t, err)
	require.Len(t, teams, 2)
	require.Equal(t, "team-a", teams[0].TeamID)
	require.Equal(t, "team-b", teams[1].TeamID)

	players, err := repo.ListPlayers()
	require.NoError(t, err)
	require.Len(t, players, 2)
	require.Equal(t, 1, players[0].LotNumber)
	require.Equal(t, 2, players[1].LotNumber)
	require.Equal(t, model.StatusQueued, players[0].Status)

	// re-adding keeps the original order
	repo.AddTeam(model.Team{TeamID: "team-a", Name: "Renamed", Budget: 10000})
	teams, err = repo.ListTeams()
	require.NoError(t, err)
	require.Len(t, teams, 2)
	require.Equal(t, "Renamed", teams[0].Name)
}

func TestMemoryRepo_ListTeamsReturnsCopies(t *testing.T) {
	t.Parallel()

	repo := newSeededRepo()
	require.NoError(t, repo.SaveTeam(model.Team{TeamID: "team-a", Budget: 10000, Spent: 1000, Squad: []string{"p1"}}))

	teams, err := repo.ListTeams()
	require.NoError(t, err)
	teams[0].Squad[0] = "mutated"

	again, err := repo.ListTeams()
	require.NoError(t, err)
	require.Equal(t, []string{"p1"}, again[0].Squad)
}

func TestMemoryRepo_Save(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		save    func(r *MemoryRepo) error
		wantErr error
	}{
		{
			name:    "save_team",
			save:    func(r *MemoryRepo) error { return r.SaveTeam(model.Team{TeamID: "team-a", Budget: 10000, Spent: 2000}) },
			wantErr: nil,
		},
		{
			name:    "save_unknown_team",
			save:    func(r *MemoryRepo) error { return r.SaveTeam(model.Team{TeamID: "team-x"}) },
			wantErr: auctionerrors.ErrTeamNotFound,
		},
		{
			name: "save_player",
			save: func(r *MemoryRepo) error {
				return r.SavePlayer(model.Player{PlayerID: "p1", Status: model.StatusInAuction, BasePrice: 1000})
			},
			wantErr: nil,
		},
		{
			name:    "save_unknown_player",
			save:    func(r *MemoryRepo) error { return r.SavePlayer(model.Player{PlayerID: "p9"}) },
			wantErr: auctionerrors.ErrPlayerNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.save(newSeededRepo())
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMemoryRepo_BidLedger(t *testing.T) {
	t.Parallel()

	repo := newSeededRepo()

	_, err := repo.GetBidsByPlayer("p1")
	require.ErrorIs(t, err, auctionerrors.ErrNoBids)

	require.NoError(t, repo.RecordBid(newBid("b1", "p1", "team-a", 1, 1000)))
	require.NoError(t, repo.RecordBid(newBid("b2", "p1", "team-b", 2, 1100)))
	require.NoError(t, repo.RecordBid(newBid("b3", "p2", "team-a", 3, 500)))
	require.ErrorIs(t, repo.RecordBid(newBid("b4", "p9", "team-a", 4, 500)), auctionerrors.ErrPlayerNotFound)

	bids, err := repo.GetBidsByPlayer("p1")
	require.NoError(t, err)
	require.Len(t, bids, 2)
	require.Equal(t, "b1", bids[0].BidID)
	require.Equal(t, "b2", bids[1].BidID)

	// returned ledger is a copy
	bids[0].Amount = 1
	bids, err = repo.GetBidsByPlayer("p1")
	require.NoError(t, err)
	require.Equal(t, int64(1000), bids[0].Amount)

	require.NoError(t, repo.DeleteBid("p1", "b2"))
	require.ErrorIs(t, repo.DeleteBid("p1", "b2"), auctionerrors.ErrNoBids)
	bids, err = repo.GetBidsByPlayer("p1")
	require.NoError(t, err)
	require.Len(t, bids, 1)

	require.NoError(t, repo.ClearBids("p1"))
	_, err = repo.GetBidsByPlayer("p1")
	require.ErrorIs(t, err, auctionerrors.ErrNoBids)

	// p2 is untouched until everything is cleared
	_, err = repo.GetBidsByPlayer("p2")
	require.NoError(t, err)
	require.NoError(t, repo.ClearBids(""))
	_, err = repo.GetBidsByPlayer("p2")
	require.ErrorIs(t, err, auctionerrors.ErrNoBids)
}

func TestMemoryRepo_ConcurrentBids(t *testing.T) {
	t.Parallel()

	repo := newSeededRepo()

	var wg sync.WaitGroup
	concurrentCount := 50

	for i := 0; i < concurrentCount; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			b := newBid(fmt.Sprintf("bid-%d", i), "p1", "team-a", uint64(i+1), int64(1000+i))
			require.NoError(t, repo.RecordBid(b))
		}()
	}

	wg.Wait()

	bids, err := repo.GetBidsByPlayer("p1")
	require.NoError(t, err)
	require.Len(t, bids, concurrentCount)
}

func TestSampleCatalog(t *testing.T) {
	t.Parallel()

	teams, players := SampleCatalog()
	require.NotEmpty(t, teams)
	require.NotEmpty(t, players)

	seen := make(map[string]bool)
	for i, p := range players {
		require.False(t, seen[p.PlayerID], "duplicate player %s", p.PlayerID)
		seen[p.PlayerID] = true
		require.Equal(t, i+1, p.LotNumber)
		require.Positive(t, p.BasePrice)
	}
	for _, team := range teams {
		require.Positive(t, team.Budget)
	}
}
