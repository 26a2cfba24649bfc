package auction

import (
	"sort"
	"time"

	"auction-engine/internal/models"
)

// sessionState is the mutable auction session. It is only touched by the
// goroutine holding the store's serialization slot, and only ever through
// a clone that is swapped in when a transition commits.
type sessionState struct {
	phase           models.Phase
	currentID       string
	deadline        *time.Time
	pausedRemaining time.Duration

	teams       map[string]*models.Team
	teamOrder   []string
	players     map[string]*models.Player
	playerOrder []string
	queue       []string
	ledger      map[string][]models.Bid
	bidSeq      map[string]uint64
	stream      models.StreamInfo
}

func newSessionState(teams []models.Team, players []models.Player) *sessionState {
	st := &sessionState{
		phase:   models.PhaseNotStarted,
		teams:   make(map[string]*models.Team, len(teams)),
		players: make(map[string]*models.Player, len(players)),
		ledger:  make(map[string][]models.Bid),
		bidSeq:  make(map[string]uint64),
	}
	for _, t := range teams {
		t := t
		t.Squad = append([]string(nil), t.Squad...)
		st.teams[t.TeamID] = &t
		st.teamOrder = append(st.teamOrder, t.TeamID)
	}

	sorted := append([]models.Player(nil), players...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].LotNumber < sorted[j].LotNumber })
	for _, p := range sorted {
		p := p
		// a lot left open by a previous process goes back to the queue
		if p.Status == models.StatusInAuction || p.Status == "" {
			p.Status = models.StatusQueued
		}
		st.players[p.PlayerID] = &p
		st.playerOrder = append(st.playerOrder, p.PlayerID)
	}
	st.rebuildQueue()
	return st
}

func (st *sessionState) clone() *sessionState {
	out := &sessionState{
		phase:           st.phase,
		currentID:       st.currentID,
		pausedRemaining: st.pausedRemaining,
		teams:           make(map[string]*models.Team, len(st.teams)),
		teamOrder:       st.teamOrder,
		players:         make(map[string]*models.Player, len(st.players)),
		playerOrder:     st.playerOrder,
		queue:           append([]string(nil), st.queue...),
		ledger:          make(map[string][]models.Bid, len(st.ledger)),
		bidSeq:          make(map[string]uint64, len(st.bidSeq)),
		stream:          st.stream,
	}
	if st.deadline != nil {
		d := *st.deadline
		out.deadline = &d
	}
	for id, t := range st.teams {
		cp := *t
		cp.Squad = append([]string(nil), t.Squad...)
		out.teams[id] = &cp
	}
	for id, p := range st.players {
		cp := *p
		out.players[id] = &cp
	}
	for id, bids := range st.ledger {
		out.ledger[id] = append([]models.Bid(nil), bids...)
	}
	for id, seq := range st.bidSeq {
		out.bidSeq[id] = seq
	}
	return out
}

// current returns the player the session points at, if any.
func (st *sessionState) current() *models.Player {
	if st.currentID == "" {
		return nil
	}
	return st.players[st.currentID]
}

// lotInAuction returns the current player when it is IN_AUCTION.
func (st *sessionState) lotInAuction() *models.Player {
	p := st.current()
	if p == nil || p.Status != models.StatusInAuction {
		return nil
	}
	return p
}

func (st *sessionState) highest(playerID string) *models.Bid {
	bids := st.ledger[playerID]
	if len(bids) == 0 {
		return nil
	}
	b := bids[len(bids)-1]
	return &b
}

// minimumBid is the smallest amount the current lot accepts next.
func (st *sessionState) minimumBid(p *models.Player, increment int64) int64 {
	if p == nil {
		return 0
	}
	if top := st.highest(p.PlayerID); top != nil {
		return top.Amount + increment
	}
	return p.BasePrice
}

func (st *sessionState) rebuildQueue() {
	st.queue = st.queue[:0]
	for _, id := range st.playerOrder {
		if st.players[id].Status == models.StatusQueued {
			st.queue = append(st.queue, id)
		}
	}
}

func (st *sessionState) removeFromQueue(playerID string) {
	out := st.queue[:0]
	for _, id := range st.queue {
		if id != playerID {
			out = append(out, id)
		}
	}
	st.queue = out
}

func (st *sessionState) snapshot(seq uint64, now time.Time, increment int64) models.Snapshot {
	snap := models.Snapshot{
		Seq:               seq,
		Phase:             st.phase,
		PausedRemainingMs: st.pausedRemaining.Milliseconds(),
		MinIncrement:      increment,
		Queue:             append([]string{}, st.queue...),
		Stream:            st.stream,
		UpdatedAt:         now,
		Teams:             make([]models.Team, 0, len(st.teamOrder)),
		Players:           make([]models.Player, 0, len(st.playerOrder)),
		Bids:              []models.Bid{},
	}
	if st.deadline != nil {
		d := *st.deadline
		snap.Deadline = &d
	}
	if p := st.current(); p != nil {
		cp := *p
		snap.CurrentPlayer = &cp
		snap.Bids = append(snap.Bids, st.ledger[p.PlayerID]...)
		snap.HighestBid = st.highest(p.PlayerID)
		if p.Status == models.StatusInAuction {
			snap.NextMinBid = st.minimumBid(p, increment)
		}
	}
	for _, id := range st.teamOrder {
		t := *st.teams[id]
		t.Squad = append([]string{}, t.Squad...)
		snap.Teams = append(snap.Teams, t)
	}
	for _, id := range st.playerOrder {
		snap.Players = append(snap.Players, *st.players[id])
	}
	return snap
}
