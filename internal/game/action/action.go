// Package action implements the moves available to the player and to AI
// policies. Every action acts through a world.Engine.
package action

import (
	"errors"

	"github.com/cory-johannsen/tombs/internal/game/world"
)

// ErrImpossible classifies expected in-world failures such as walking into a
// wall. The orchestrator discards it for enemies and reports it to the player.
var ErrImpossible = errors.New("impossible action")

// ImpossibleError carries the user-visible reason an action could not happen.
type ImpossibleError struct {
	Msg string
}

func (e *ImpossibleError) Error() string { return e.Msg }

// Unwrap makes errors.Is(err, ErrImpossible) hold.
func (e *ImpossibleError) Unwrap() error { return ErrImpossible }

// Impossible returns an *ImpossibleError with msg.
func Impossible(msg string) error {
	return &ImpossibleError{Msg: msg}
}

// Message extracts the user-visible text of an impossible action, or ""
// when err is not one.
func Message(err error) string {
	var ie *ImpossibleError
	if errors.As(err, &ie) {
		return ie.Msg
	}
	return ""
}

// Action is one turn's worth of behaviour.
type Action interface {
	Perform(e world.Engine) error
}

// Wait passes the turn.
type Wait struct {
	Actor *world.Actor
}

// Perform implements Action.
func (Wait) Perform(world.Engine) error { return nil }
