package broker

import (
	"sync"

	"github.com/funny-code66/substrate-erc20-staking-contract/events"
	"github.com/funny-code66/substrate-erc20-staking-contract/logging"
)

// Subscriber interface allows pushing events to subscribers. Subscribers
// receive events synchronously, in the order the engines produced them:
// the ledger runs under a serialized-transaction model, so there is no
// in-flight batching or reordering to worry about.
type Subscriber interface {
	Push(evts ...events.Event)
	Types() []events.Type
	SetID(id int)
	ID() int
}

type subscription struct {
	Subscriber
}

// Broker - the base broker type, dispatching events to subscribers
// registered for their type.
type Broker struct {
	log *logging.Logger
	mu  sync.Mutex

	tSubs map[events.Type]map[int]*subscription
	// these fields ensure a unique ID for all subscribers, regardless of
	// what event types they subscribe to
	subs map[int]subscription
	keys []int
}

// New creates a new base broker.
func New(log *logging.Logger, config Config) *Broker {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Broker{
		log:   log,
		tSubs: map[events.Type]map[int]*subscription{},
		subs:  map[int]subscription{},
		keys:  []int{},
	}
}

// Send sends an event to all subscribers.
func (b *Broker) Send(event events.Event) {
	b.mu.Lock()
	subs := b.getSubsByType(event.Type())
	b.mu.Unlock()
	for _, sub := range subs {
		sub.Push(event)
	}
}

// SendBatch sends a slice of events to all subscribers registered for the
// type of the first event. An empty batch is a no-op.
func (b *Broker) SendBatch(evts []events.Event) {
	if len(evts) == 0 {
		return
	}
	b.mu.Lock()
	subs := b.getSubsByType(evts[0].Type())
	b.mu.Unlock()
	for _, sub := range subs {
		sub.Push(evts...)
	}
}

// we add the entire ALL map to type-specific maps, so if set, we can return
// this map directly; a copy is still made to keep the race detector happy.
func (b *Broker) getSubsByType(t events.Type) map[int]*subscription {
	subs, ok := b.tSubs[t]
	if !ok {
		// if a typed map isn't set (yet), we can return
		// ALL subscribers directly instead
		subs = b.tSubs[events.All]
	}
	cpy := make(map[int]*subscription, len(subs))
	for k, v := range subs {
		cpy[k] = v
	}
	return cpy
}

// Subscribe registers a new subscriber, returning the key.
func (b *Broker) Subscribe(s Subscriber) int {
	b.mu.Lock()
	k := b.subscribe(s)
	s.SetID(k)
	b.mu.Unlock()
	return k
}

func (b *Broker) SubscribeBatch(subs ...Subscriber) {
	b.mu.Lock()
	for _, s := range subs {
		k := b.subscribe(s)
		s.SetID(k)
	}
	b.mu.Unlock()
}

func (b *Broker) subscribe(s Subscriber) int {
	k := b.getKey()
	sub := subscription{
		Subscriber: s,
	}
	b.subs[k] = sub
	types := sub.Types()
	// a subscriber with no types, or with the All type anywhere in its list,
	// subscribes to every event no matter what
	isAll := false
	if len(types) == 0 {
		isAll = true
		types = []events.Type{events.All}
	} else {
		for _, t := range types {
			if t == events.All {
				types = []events.Type{events.All}
				isAll = true
				break
			}
		}
	}
	for _, t := range types {
		if _, ok := b.tSubs[t]; !ok {
			b.tSubs[t] = map[int]*subscription{}
			if !isAll {
				// not the ALL event, so the "all" subscribers should be added
				for ak, as := range b.tSubs[events.All] {
					b.tSubs[t][ak] = as
				}
			}
		}
		b.tSubs[t][k] = &sub
	}
	if isAll {
		for t := range b.tSubs {
			// don't add ALL subs to the map they're already in
			if t != events.All {
				b.tSubs[t][k] = &sub
			}
		}
	}
	return k
}

// Unsubscribe removes subscriber from broker
// this does not change the state of the subscriber.
func (b *Broker) Unsubscribe(k int) {
	b.mu.Lock()
	b.rmSubs(k)
	b.mu.Unlock()
}

func (b *Broker) getKey() int {
	if len(b.keys) > 0 {
		k := b.keys[0]
		b.keys = b.keys[1:] // pop first element
		return k
	}
	return len(b.subs) + 1 // add 1 to avoid zero value
}

func (b *Broker) rmSubs(keys ...int) {
	for _, k := range keys {
		// if the sub doesn't exist, this could be a duplicate call
		// we do not want the keys slice to contain duplicate values
		// and so we have to check this first
		s, ok := b.subs[k]
		if !ok {
			return
		}
		types := s.Types()
		if len(types) == 0 {
			types = nil
		}
		for _, t := range types {
			if t == events.All {
				types = nil
				break
			}
		}
		if types == nil {
			// remove in all maps
			for t := range b.tSubs {
				delete(b.tSubs[t], k)
			}
		} else {
			for _, t := range types {
				delete(b.tSubs[t], k)
			}
		}
		delete(b.subs, k)
		b.keys = append(b.keys, k)
	}
}
