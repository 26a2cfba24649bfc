package models

import "time"

// Snapshot is an immutable point-in-time copy of the auction session.
// Values handed out by the engine are never modified afterwards.
type Snapshot struct {
	Seq               uint64     `json:"seq"`
	Phase             Phase      `json:"phase"`
	CurrentPlayer     *Player    `json:"current_player"`
	HighestBid        *Bid       `json:"highest_bid"`
	Deadline          *time.Time `json:"deadline"`
	PausedRemainingMs int64      `json:"paused_remaining_ms"`
	MinIncrement      int64      `json:"min_increment"`
	NextMinBid        int64      `json:"next_min_bid"`
	Bids              []Bid      `json:"bids"`
	Teams             []Team     `json:"teams"`
	Players           []Player   `json:"players"`
	Queue             []string   `json:"queue"`
	Stream            StreamInfo `json:"stream"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// PublicTeam is what spectators may see about a team
type PublicTeam struct {
	TeamID    string   `json:"team_id"`
	Name      string   `json:"name"`
	Remaining int64    `json:"remaining"`
	Squad     []string `json:"squad"`
}

// PublicSnapshot is the redacted projection sent on the public channel
type PublicSnapshot struct {
	Seq               uint64       `json:"seq"`
	Phase             Phase        `json:"phase"`
	CurrentPlayer     *Player      `json:"current_player"`
	HighestBid        *Bid         `json:"highest_bid"`
	Deadline          *time.Time   `json:"deadline"`
	PausedRemainingMs int64        `json:"paused_remaining_ms"`
	NextMinBid        int64        `json:"next_min_bid"`
	Bids              []Bid        `json:"bids"`
	Teams             []PublicTeam `json:"teams"`
	Stream            StreamInfo   `json:"stream"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// PublicTeamView strips the budget breakdown from a team.
func PublicTeamView(t Team) PublicTeam {
	return PublicTeam{
		TeamID:    t.TeamID,
		Name:      t.Name,
		Remaining: t.Remaining(),
		Squad:     append([]string(nil), t.Squad...),
	}
}

// PublicBidView strips submitter details from a bid.
func PublicBidView(b *Bid) *Bid {
	if b == nil {
		return nil
	}
	out := *b
	out.ConnectionID = ""
	return &out
}

// Public returns the redacted projection of the snapshot.
func (s Snapshot) Public() PublicSnapshot {
	teams := make([]PublicTeam, 0, len(s.Teams))
	for _, t := range s.Teams {
		teams = append(teams, PublicTeamView(t))
	}
	bids := make([]Bid, 0, len(s.Bids))
	for _, b := range s.Bids {
		b.ConnectionID = ""
		bids = append(bids, b)
	}
	return PublicSnapshot{
		Seq:               s.Seq,
		Phase:             s.Phase,
		CurrentPlayer:     s.CurrentPlayer,
		HighestBid:        PublicBidView(s.HighestBid),
		Deadline:          s.Deadline,
		PausedRemainingMs: s.PausedRemainingMs,
		NextMinBid:        s.NextMinBid,
		Bids:              bids,
		Teams:             teams,
		Stream:            s.Stream,
		UpdatedAt:         s.UpdatedAt,
	}
}

// FindTeam returns the team with the given ID from the snapshot.
func (s Snapshot) FindTeam(teamID string) (Team, bool) {
	for _, t := range s.Teams {
		if t.TeamID == teamID {
			return t, true
		}
	}
	return Team{}, false
}

// FindPlayer returns the player with the given ID from the snapshot.
func (s Snapshot) FindPlayer(playerID string) (Player, bool) {
	for _, p := range s.Players {
		if p.PlayerID == playerID {
			return p, true
		}
	}
	return Player{}, false
}
