package main

import (
	"github.com/funny-code66/substrate-erc20-staking-contract/events"
	"github.com/funny-code66/substrate-erc20-staking-contract/logging"
)

// logSub is a broker subscriber logging every event it sees.
type logSub struct {
	log *logging.Logger
	id  int
}

func newLogSub(log *logging.Logger) *logSub {
	return &logSub{log: log.Named("events")}
}

func (s *logSub) Push(evts ...events.Event) {
	for _, e := range evts {
		switch evt := e.(type) {
		case *events.StakeDeposited:
			s.log.Info("stake deposited",
				logging.PartyID(evt.Party()),
				logging.BigUint("amount", evt.Amount()),
				logging.Uint64("tick", evt.Tick()),
			)
		case *events.StakeClaimed:
			s.log.Info("stake claimed",
				logging.PartyID(evt.Party()),
				logging.BigUint("amount", evt.Amount()),
				logging.Uint64("tick", evt.Tick()),
			)
		case *events.Time:
			s.log.Info("clock moved", logging.Uint64("tick", evt.Tick()))
		case *events.Party:
			s.log.Info("new party", logging.PartyID(evt.ID()))
		default:
			s.log.Info("event", logging.String("type", e.Type().String()))
		}
	}
}

// Types returns nil so the subscriber receives every event type.
func (s *logSub) Types() []events.Type {
	return nil
}

func (s *logSub) SetID(id int) {
	s.id = id
}

func (s *logSub) ID() int {
	return s.id
}
