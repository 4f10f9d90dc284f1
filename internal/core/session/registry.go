package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/loccar/loccar-web/internal/api/metrics"
)

// Registry holds the State of every client seen by this process. A client's
// State is rehydrated from its Store the first time it is requested.
type Registry struct {
	factory StoreFactory
	log     zerolog.Logger

	mu     sync.Mutex
	states map[string]*State
}

func NewRegistry(factory StoreFactory, log zerolog.Logger) *Registry {
	return &Registry{
		factory: factory,
		log:     log,
		states:  make(map[string]*State),
	}
}

// Get returns the State for clientID, creating it on first use.
func (r *Registry) Get(ctx context.Context, clientID string) *State {
	r.mu.Lock()
	st, ok := r.states[clientID]
	r.mu.Unlock()
	if ok {
		st.touch(time.Now())
		return st
	}

	// Rehydrate outside the registry lock; the store may be remote.
	fresh := New(ctx, clientID, r.factory(clientID), r.log)

	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.states[clientID]; ok {
		st.touch(time.Now())
		return st
	}
	r.states[clientID] = fresh
	metrics.ResidentSessions.Set(float64(len(r.states)))
	return fresh
}

// Len returns the number of resident states.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

// Sweep evicts states idle for longer than idle that nobody is subscribed
// to. Evicted clients are rehydrated from their Store on their next request.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, st := range r.states {
		if st.idleSince(cutoff) {
			delete(r.states, id)
			n++
		}
	}
	metrics.ResidentSessions.Set(float64(len(r.states)))
	return n
}

// Run sweeps idle states every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval, idle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(idle); n > 0 {
				r.log.Debug().Int("evicted", n).Int("resident", r.Len()).Msg("swept idle sessions")
			}
		}
	}
}
