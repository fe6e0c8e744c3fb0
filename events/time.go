package events

import (
	"context"
)

// Time event indicating a change in block tick (ie time update).
type Time struct {
	*Base
	tick uint64
}

// NewTime returns a new time update event.
func NewTime(ctx context.Context, tick uint64) *Time {
	return &Time{
		Base: newBase(ctx, TimeUpdate),
		tick: tick,
	}
}

// Tick returns the new block tick.
func (t Time) Tick() uint64 {
	return t.tick
}
