package auction

import (
	"context"
	"sync"
	"testing"
	"time"

	"auction-engine/internal/models"
	"auction-engine/internal/repository"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.Event
}

func (p *recordingPublisher) Publish(event models.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Events() []models.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Event(nil), p.events...)
}

type fixture struct {
	svc   *AuctionService
	repo  *repository.MemoryRepo
	clock *fakeClock
	pub   *recordingPublisher
}

func defaultTeams() []models.Team {
	return []models.Team{
		{TeamID: "team-a", Name: "Team A", Budget: 10000},
		{TeamID: "team-b", Name: "Team B", Budget: 10000},
		{TeamID: "team-c", Name: "Team C", Budget: 500},
	}
}

func defaultPlayers() []models.Player {
	return []models.Player{
		{PlayerID: "p1", Name: "Opener", Role: "batter", BasePrice: 1000},
		{PlayerID: "p2", Name: "Spinner", Role: "bowler", BasePrice: 500},
		{PlayerID: "p3", Name: "Keeper", Role: "wicketkeeper", BasePrice: 200},
	}
}

func newFixture(t *testing.T, teams []models.Team, players []models.Player) *fixture {
	t.Helper()

	repo := repository.NewMemoryRepo()
	for _, team := range teams {
		repo.AddTeam(team)
	}
	for _, p := range players {
		repo.AddPlayer(p)
	}

	clock := newFakeClock()
	pub := &recordingPublisher{}
	svc, err := NewAuctionService(repo, pub, Options{
		MinIncrement:  100,
		TimerDuration: 30 * time.Second,
		LockTimeout:   200 * time.Millisecond,
		Now:           clock.Now,
	})
	require.NoError(t, err)
	return &fixture{svc: svc, repo: repo, clock: clock, pub: pub}
}

func newDefaultFixture(t *testing.T) *fixture {
	return newFixture(t, defaultTeams(), defaultPlayers())
}

func (f *fixture) bid(t *testing.T, teamID string, amount int64) (models.Bid, error) {
	t.Helper()
	snap := f.svc.Snapshot()
	require.NotNil(t, snap.CurrentPlayer, "no current player")
	return f.svc.SubmitBid(context.Background(), models.BidRequest{
		PlayerID: snap.CurrentPlayer.PlayerID,
		TeamID:   teamID,
		Amount:   amount,
	})
}

func (f *fixture) start(t *testing.T) models.Snapshot {
	t.Helper()
	snap, err := f.svc.Start(context.Background())
	require.NoError(t, err)
	return snap
}
