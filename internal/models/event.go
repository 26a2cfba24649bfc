package models

import "time"

// EventType names a message on the real-time channels
type EventType string

const (
	EventStateSnapshot EventType = "state_snapshot"
	EventBidAccepted   EventType = "bid_accepted"
	EventBidUndone     EventType = "bid_undone"
	EventPlayerChanged EventType = "player_changed"
	EventPlayerSold    EventType = "player_sold"
	EventPlayerUnsold  EventType = "player_unsold"
	EventPhaseChanged  EventType = "phase_changed"
	EventTimerReset    EventType = "timer_reset"
	EventStreamChanged EventType = "stream_changed"

	EventPing   EventType = "ping"
	EventPong   EventType = "pong"
	EventAck    EventType = "ack"
	EventResync EventType = "resync"
)

// Channel selects which audience receives a broadcast
type Channel string

const (
	ChannelAdmin  Channel = "admin"
	ChannelPublic Channel = "public"
)

// Event is emitted by every committed transition. Seq is gap-free.
type Event struct {
	Seq        uint64
	Type       EventType
	Transition string
	Detail     any
	State      Snapshot
	CreatedAt  time.Time
}

// EventPayload is the data part of a broadcast message
type EventPayload struct {
	Transition string `json:"transition,omitempty"`
	Detail     any    `json:"detail,omitempty"`
	State      any    `json:"state"`
}

// Message is the websocket wire frame
type Message struct {
	Event EventType `json:"event"`
	Seq   uint64    `json:"seq,omitempty"`
	Data  any       `json:"data"`
}

// Redactor is implemented by event details that carry admin-only fields.
type Redactor interface {
	Redact() any
}

// Payload renders the event for the given channel.
func (e Event) Payload(ch Channel) EventPayload {
	if ch == ChannelAdmin {
		return EventPayload{Transition: e.Transition, Detail: e.Detail, State: e.State}
	}
	detail := e.Detail
	if r, ok := detail.(Redactor); ok {
		detail = r.Redact()
	}
	return EventPayload{Transition: e.Transition, Detail: detail, State: e.State.Public()}
}

// Message renders the event as a wire frame for the given channel.
func (e Event) Message(ch Channel) Message {
	return Message{Event: e.Type, Seq: e.Seq, Data: e.Payload(ch)}
}

// BidDetail accompanies bid_accepted and bid_undone
type BidDetail struct {
	Bid        Bid        `json:"bid"`
	HighestBid *Bid       `json:"highest_bid"`
	Deadline   *time.Time `json:"deadline"`
}

func (d BidDetail) Redact() any {
	d.Bid.ConnectionID = ""
	d.HighestBid = PublicBidView(d.HighestBid)
	return d
}

// LotDetail accompanies player_changed, player_sold and player_unsold
type LotDetail struct {
	Player   Player     `json:"player"`
	Team     *Team      `json:"team,omitempty"`
	Price    int64      `json:"price,omitempty"`
	Deadline *time.Time `json:"deadline"`
}

// PublicLotDetail is LotDetail without the team budget breakdown
type PublicLotDetail struct {
	Player   Player      `json:"player"`
	Team     *PublicTeam `json:"team,omitempty"`
	Price    int64       `json:"price,omitempty"`
	Deadline *time.Time  `json:"deadline"`
}

func (d LotDetail) Redact() any {
	out := PublicLotDetail{Player: d.Player, Price: d.Price, Deadline: d.Deadline}
	if d.Team != nil {
		pt := PublicTeamView(*d.Team)
		out.Team = &pt
	}
	return out
}

// PhaseDetail accompanies phase_changed
type PhaseDetail struct {
	From              Phase      `json:"from"`
	To                Phase      `json:"to"`
	Deadline          *time.Time `json:"deadline"`
	PausedRemainingMs int64      `json:"paused_remaining_ms"`
}

// TimerDetail accompanies timer_reset
type TimerDetail struct {
	PlayerID          string     `json:"player_id"`
	Deadline          *time.Time `json:"deadline"`
	PausedRemainingMs int64      `json:"paused_remaining_ms"`
}
