package events

import (
	"context"

	"github.com/funny-code66/substrate-erc20-staking-contract/libs/contextutil"

	"github.com/pkg/errors"
)

var (
	ErrUnsupportedEvent = errors.New("unknown payload for event")
)

type Type int

// Base common denominator all event-bus events share.
type Base struct {
	ctx     context.Context
	traceID string
	et      Type
}

type Event interface {
	Type() Type
	Context() context.Context
	TraceID() string
}

const (
	// All event type -> used by subscribers to just receive all events, has no actual corresponding event payload
	All Type = iota
	// other event types that DO have corresponding event types
	TimeUpdate
	StakeDepositedEvent
	StakeClaimedEvent
	PartyEvent
)

var eventStrings = map[Type]string{
	All:                 "ALL",
	TimeUpdate:          "TimeUpdate",
	StakeDepositedEvent: "StakeDeposited",
	StakeClaimedEvent:   "StakeClaimed",
	PartyEvent:          "PartyEvent",
}

// A base event holds no data, so the constructor will not be called directly.
func newBase(ctx context.Context, t Type) *Base {
	ctx, tID := contextutil.TraceIDFromContext(ctx)
	return &Base{
		ctx:     ctx,
		traceID: tID,
		et:      t,
	}
}

// TraceID returns the... traceID obviously.
func (b Base) TraceID() string {
	return b.traceID
}

// Context returns context.
func (b Base) Context() context.Context {
	return b.ctx
}

// Type returns the event type.
func (b Base) Type() Type {
	return b.et
}

// String get string representation of event type.
func (t Type) String() string {
	s, ok := eventStrings[t]
	if !ok {
		return "UNKNOWN EVENT"
	}
	return s
}
