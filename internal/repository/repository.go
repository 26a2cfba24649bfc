package repository

import (
	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"fmt"
	"sync"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionDB defines the catalog and bid ledger storage used by the auction engine.
// The engine is the only writer while a session is active.
type AuctionDB interface {
	ListTeams() ([]model.Team, error)
	ListPlayers() ([]model.Player, error)
	SaveTeam(team model.Team) error
	SavePlayer(player model.Player) error
	RecordBid(bid model.Bid) error
	DeleteBid(playerID, bidID string) error
	GetBidsByPlayer(playerID string) ([]model.Bid, error)
	ClearBids(playerID string) error
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu          sync.RWMutex
	teams       map[string]model.Team   // key: teamID -> value: team
	teamOrder   []string                // insertion order of team IDs
	players     map[string]model.Player // key: playerID -> value: player
	playerOrder []string                // insertion order of player IDs
	bids        map[string][]model.Bid  // key: playerID -> value: ledger
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		teams:   make(map[string]model.Team),
		players: make(map[string]model.Player),
		bids:    make(map[string][]model.Bid),
	}
}

// ListTeams returns all teams in insertion order
func (r *MemoryRepo) ListTeams() ([]model.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := make([]model.Team, 0, len(r.teamOrder))
	for _, id := range r.teamOrder {
		t := r.teams[id]
		t.Squad = append([]string(nil), t.Squad...)
		teams = append(teams, t)
	}
	return teams, nil
}

// ListPlayers returns all players in insertion order
func (r *MemoryRepo) ListPlayers() ([]model.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := make([]model.Player, 0, len(r.playerOrder))
	for _, id := range r.playerOrder {
		players = append(players, r.players[id])
	}
	return players, nil
}

// SaveTeam updates an existing team
func (r *MemoryRepo) SaveTeam(team model.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[team.TeamID]; !ok {
		return fmt.Errorf("save team %s: %w", team.TeamID, auctionerrors.ErrTeamNotFound)
	}
	team.Squad = append([]string(nil), team.Squad...)
	r.teams[team.TeamID] = team
	return nil
}

// SavePlayer updates an existing player
func (r *MemoryRepo) SavePlayer(player model.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[player.PlayerID]; !ok {
		return fmt.Errorf("save player %s: %w", player.PlayerID, auctionerrors.ErrPlayerNotFound)
	}
	r.players[player.PlayerID] = player
	return nil
}

// RecordBid appends a bid to the player's ledger
func (r *MemoryRepo) RecordBid(bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[bid.PlayerID]; !ok {
		return fmt.Errorf("record bid for player %s: %w", bid.PlayerID, auctionerrors.ErrPlayerNotFound)
	}
	r.bids[bid.PlayerID] = append(r.bids[bid.PlayerID], bid)
	return nil
}

// DeleteBid removes a single bid from the player's ledger
func (r *MemoryRepo) DeleteBid(playerID, bidID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bids := r.bids[playerID]
	for i := len(bids) - 1; i >= 0; i-- {
		if bids[i].BidID == bidID {
			r.bids[playerID] = append(bids[:i:i], bids[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete bid %s for player %s: %w", bidID, playerID, auctionerrors.ErrNoBids)
}

// GetBidsByPlayer returns the ledger for a player
func (r *MemoryRepo) GetBidsByPlayer(playerID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids, ok := r.bids[playerID]
	if !ok || len(bids) == 0 {
		return nil, fmt.Errorf("get bids for player %s: %w", playerID, auctionerrors.ErrNoBids)
	}
	return append([]model.Bid(nil), bids...), nil
}

// ClearBids drops the ledger of one player, or of every player when playerID is empty
func (r *MemoryRepo) ClearBids(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID == "" {
		r.bids = make(map[string][]model.Bid)
		return nil
	}
	delete(r.bids, playerID)
	return nil
}

// AddTeam seeds a team into the catalog. Used at startup and in tests.
func (r *MemoryRepo) AddTeam(team model.Team) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[team.TeamID]; !ok {
		r.teamOrder = append(r.teamOrder, team.TeamID)
	}
	r.teams[team.TeamID] = team
}

// AddPlayer seeds a player into the catalog. Used at startup and in tests.
func (r *MemoryRepo) AddPlayer(player model.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[player.PlayerID]; !ok {
		r.playerOrder = append(r.playerOrder, player.PlayerID)
	}
	if player.LotNumber == 0 {
		player.LotNumber = len(r.playerOrder)
	}
	if player.Status == "" {
		player.Status = model.StatusQueued
	}
	r.players[player.PlayerID] = player
}
