package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/loccar/loccar-web/internal/core/domain"
)

var errEmptyToken = errors.New("session: empty token")

// Snapshot is an immutable view of a State at one point in time.
type Snapshot struct {
	Authenticated bool
	User          *domain.User
	Epoch         uint64
}

// Role returns the role of the snapshot's user, RoleUnknown when absent.
func (s Snapshot) Role() domain.Role {
	if s.User == nil {
		return domain.RoleUnknown
	}
	return s.User.Role
}

// Listener receives every change of a State.
type Listener func(Snapshot)

// State is the authentication state of one client. It is built from its
// Store and afterwards only changes through SetSession, ApplyProfile and
// ClearSession. Listeners run synchronously after each change, in
// subscription order, and must not mutate the State themselves.
type State struct {
	id    string
	store Store
	log   zerolog.Logger

	// notifyMu serialises mutation+broadcast so listeners observe changes
	// in the order they were made.
	notifyMu sync.Mutex

	mu        sync.Mutex
	sess      domain.Session
	epoch     uint64
	listeners []listenerEntry
	nextID    int
	lastSeen  time.Time

	submitting atomic.Bool
}

type listenerEntry struct {
	id int
	fn Listener
}

// New rehydrates the state of client id from store. A store failure is
// logged and treated as "no session".
func New(ctx context.Context, id string, store Store, log zerolog.Logger) *State {
	s := &State{
		id:       id,
		store:    store,
		log:      log.With().Str("client_id", id).Logger(),
		lastSeen: time.Now(),
	}

	sess, err := store.Read(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session rehydration failed, starting unauthenticated")
		return s
	}
	s.sess = sess.Normalize()
	return s
}

// ID returns the client id the state belongs to.
func (s *State) ID() string { return s.id }

// IsAuthenticated reports whether a non-empty token is held.
func (s *State) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Token != ""
}

// CurrentUser returns a copy of the cached profile, or nil.
func (s *State) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.User.Clone()
}

// Token returns the bearer token, or "" when there is none.
func (s *State) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Token
}

// Epoch identifies the current session incarnation. It changes every time a
// session is set or cleared.
func (s *State) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Snapshot returns the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{
		Authenticated: s.sess.Token != "",
		User:          s.sess.User.Clone(),
		Epoch:         s.epoch,
	}
}

// SetSession persists token and user, then marks the state authenticated.
// If persisting fails the state is left untouched.
func (s *State) SetSession(ctx context.Context, token string, user *domain.User) error {
	if token == "" {
		return errEmptyToken
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if err := s.store.Save(ctx, token, user); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("session: save: %w", err)
	}
	s.sess = domain.Session{Token: token, User: user.Clone()}
	s.epoch++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.broadcast(snap)
	return nil
}

// ApplyProfile replaces the cached profile in place, but only when the
// session that was live at epoch is still live. It reports whether the
// profile was applied.
func (s *State) ApplyProfile(ctx context.Context, epoch uint64, user *domain.User) (bool, error) {
	if user == nil {
		return false, nil
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.epoch != epoch || s.sess.Token == "" {
		s.mu.Unlock()
		return false, nil
	}
	if err := s.store.Save(ctx, s.sess.Token, user); err != nil {
		s.mu.Unlock()
		return false, fmt.Errorf("session: save profile: %w", err)
	}
	s.sess.User = user.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.broadcast(snap)
	return true, nil
}

// KeepProfile is ApplyProfile without the Store: the profile lives in memory
// only and is lost on rehydration. Used when persisting the profile failed.
func (s *State) KeepProfile(epoch uint64, user *domain.User) bool {
	if user == nil {
		return false
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.epoch != epoch || s.sess.Token == "" {
		s.mu.Unlock()
		return false
	}
	s.sess.User = user.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.broadcast(snap)
	return true
}

// ClearSession drops the session. The in-memory state is always cleared;
// the returned error only reports a failure to clear the Store.
func (s *State) ClearSession(ctx context.Context) error {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	err := s.store.Clear(ctx)
	s.sess = domain.Session{}
	s.epoch++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.broadcast(snap)
	if err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

// Subscribe registers fn for every future change. The returned function
// removes the subscription.
func (s *State) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, l := range s.listeners {
				if l.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *State) broadcast(snap Snapshot) {
	s.mu.Lock()
	ls := make([]listenerEntry, len(s.listeners))
	copy(ls, s.listeners)
	s.mu.Unlock()

	for _, l := range ls {
		l.fn(snap)
	}
}

// BeginSubmit marks a login or register as pending. It returns false when one
// is already pending.
func (s *State) BeginSubmit() bool {
	return s.submitting.CompareAndSwap(false, true)
}

// EndSubmit clears the pending flag.
func (s *State) EndSubmit() {
	s.submitting.Store(false)
}

func (s *State) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *State) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners) == 0 && s.lastSeen.Before(cutoff) && !s.submitting.Load()
}
