package auctionerrors

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrNoBids         = errors.New("no bids found for player")
)

// bid acceptance errors
var (
	ErrInvalidBid         = errors.New("invalid bid")
	ErrWrongLot           = errors.New("player is not the current lot")
	ErrBidTooLow          = errors.New("bid amount too low")
	ErrInsufficientBudget = errors.New("insufficient budget")
	ErrAuctionNotActive   = errors.New("auction not active")
	ErrNoBidToUndo        = errors.New("no bid to undo")
	ErrAlreadyLeading     = errors.New("team already holds the highest bid")
)

// state machine errors
var ErrInvalidStateTransition = errors.New("invalid state transition")

// engine and transport errors
var (
	ErrEngineBusy   = errors.New("engine busy")
	ErrConflict     = errors.New("state changed since expected sequence")
	ErrConnection   = errors.New("connection error")
	ErrUnauthorized = errors.New("unauthorized")
)

// TransitionError reports a state-machine transition whose precondition did not hold.
type TransitionError struct {
	Transition string
	Phase      string
	Reason     string
}

func (e *TransitionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid state transition %q in phase %s", e.Transition, e.Phase)
	}
	return fmt.Sprintf("invalid state transition %q in phase %s: %s", e.Transition, e.Phase, e.Reason)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// NewTransitionError builds a TransitionError for the given transition and phase.
func NewTransitionError(transition, phase, reason string) error {
	return &TransitionError{Transition: transition, Phase: phase, Reason: reason}
}
