package blocktime

import (
	"context"
	"sync"

	"github.com/funny-code66/substrate-erc20-staking-contract/events"
	"github.com/funny-code66/substrate-erc20-staking-contract/logging"
)

type Broker interface {
	Send(e events.Event)
}

// Svc represents the service tracking the host chain's logical clock.
// The tick is a block number, or whatever monotonically increasing counter
// the execution environment exposes.
type Svc struct {
	config Config

	mu          sync.Mutex
	currentTick uint64

	listeners []func(context.Context, uint64)

	log *logging.Logger

	broker Broker
}

// New instantiates a new blocktime service.
func New(l *logging.Logger, conf Config, broker Broker) *Svc {
	l = l.Named(namedLogger)
	l.SetLevel(conf.Level.Get())

	return &Svc{
		config: conf,
		log:    l,
		broker: broker,
	}
}

// ReloadConf reloads the configuration for the blocktime service.
func (s *Svc) ReloadConf(conf Config) {
	s.log.SetLevel(conf.Level.Get())
	s.config = conf
}

// SetTick moves the clock to the given tick, notifying every listener.
// The clock never goes backwards; a lower tick than the current one is
// ignored and logged.
func (s *Svc) SetTick(ctx context.Context, tick uint64) {
	s.mu.Lock()
	if tick < s.currentTick {
		s.mu.Unlock()
		s.log.Warn("tick lower than current clock, ignoring",
			logging.Uint64("tick", tick),
			logging.Uint64("current-tick", s.currentTick),
		)
		return
	}
	s.currentTick = tick
	listeners := s.listeners
	s.mu.Unlock()

	for _, f := range listeners {
		f(ctx, tick)
	}

	s.broker.Send(events.NewTime(ctx, tick))
}

// CurrentTick returns the current tick of the chain clock.
func (s *Svc) CurrentTick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTick
}

// NotifyOnTick allows other services to register a callback function
// which will be called once the clock is updated.
func (s *Svc) NotifyOnTick(f func(context.Context, uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, f)
}
