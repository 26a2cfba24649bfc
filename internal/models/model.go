package models

import "time"

// Phase is the auction-wide lifecycle state
type Phase string

const (
	PhaseNotStarted Phase = "NOT_STARTED"
	PhaseRunning    Phase = "RUNNING"
	PhasePaused     Phase = "PAUSED"
	PhaseEnded      Phase = "ENDED"
)

// PlayerStatus is the per-lot lifecycle state
type PlayerStatus string

const (
	StatusQueued    PlayerStatus = "QUEUED"
	StatusInAuction PlayerStatus = "IN_AUCTION"
	StatusSold      PlayerStatus = "SOLD"
	StatusUnsold    PlayerStatus = "UNSOLD"
)

// Team represents a franchise bidding in the auction
type Team struct {
	TeamID string   `json:"team_id" bson:"_id"`
	Name   string   `json:"name" bson:"name"`
	Budget int64    `json:"budget" bson:"budget"`
	Spent  int64    `json:"spent" bson:"spent"`
	Squad  []string `json:"squad" bson:"squad"`
}

// Remaining returns the purse left to spend.
func (t Team) Remaining() int64 {
	return t.Budget - t.Spent
}

// Player represents a lot in the auction catalog
type Player struct {
	PlayerID      string       `json:"player_id" bson:"_id"`
	LotNumber     int          `json:"lot_number" bson:"lot_number"`
	Name          string       `json:"name" bson:"name"`
	Role          string       `json:"role" bson:"role"`
	Category      string       `json:"category" bson:"category"`
	BasePrice     int64        `json:"base_price" bson:"base_price"`
	Status        PlayerStatus `json:"status" bson:"status"`
	WinningTeamID *string      `json:"winning_team_id" bson:"winning_team_id,omitempty"`
	SoldPrice     *int64       `json:"sold_price" bson:"sold_price,omitempty"`
}

// Bid represents an accepted bid on a lot
type Bid struct {
	BidID        string    `json:"bid_id" bson:"_id"`
	PlayerID     string    `json:"player_id" bson:"player_id"`
	TeamID       string    `json:"team_id" bson:"team_id"`
	Seq          uint64    `json:"seq" bson:"seq"`
	Amount       int64     `json:"amount" bson:"amount"`
	ConnectionID string    `json:"connection_id,omitempty" bson:"connection_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// BidRequest is a team's request to raise the current lot
type BidRequest struct {
	PlayerID     string
	TeamID       string
	Amount       int64
	ConnectionID string
}

// StreamInfo is the out-of-band live video pointer shown next to the auction
type StreamInfo struct {
	URL       string    `json:"url"`
	Live      bool      `json:"live"`
	UpdatedAt time.Time `json:"updated_at"`
}
