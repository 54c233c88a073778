package topic

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// State is the execution context a topic instance is created under.
type State struct {
	ID      string
	Actor   string
	Created time.Time
}

// NewState returns a State with a fresh random ID.
func NewState(actor string) *State {
	return &State{
		ID:      uuid.NewString(),
		Actor:   actor,
		Created: time.Now(),
	}
}

func (s *State) String() string {
	if s == nil {
		return "<no state>"
	}
	if s.Actor == "" {
		return s.ID
	}
	return fmt.Sprintf("%s (%s)", s.ID, s.Actor)
}
