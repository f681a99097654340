package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Registry maps a channel key to its single active session. The registry lock
// only guards the key space; transitions take the session's own lock.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	rules   Rules
	dir     PlayerDirectory
	newRand func() *rand.Rand
}

type Option func(*Registry)

// WithRandSeed makes role dealing and flavour texts reproducible. Each new
// session gets its own source derived from seed.
func WithRandSeed(seed int64) Option {
	return func(r *Registry) {
		var mu sync.Mutex
		seeds := rand.New(rand.NewSource(seed))
		r.newRand = func() *rand.Rand {
			mu.Lock()
			defer mu.Unlock()
			return rand.New(rand.NewSource(seeds.Int63()))
		}
	}
}

func NewRegistry(rules Rules, dir PlayerDirectory, opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[string]*Session),
		rules:    rules,
		dir:      dir,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lookup returns the active session of a channel.
func (r *Registry) Lookup(channelKey string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[channelKey]
	return s, ok
}

func (r *Registry) lookup(channelKey string) (*Session, error) {
	s, ok := r.Lookup(channelKey)
	if !ok {
		return nil, ErrNoActiveSession
	}
	return s, nil
}

// remove drops s only if it is still the session registered under its key.
func (r *Registry) remove(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.sessions[s.ChannelKey]; ok && cur == s {
		delete(r.sessions, s.ChannelKey)
	}
}

// Len is the number of active sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// SessionsOf returns the channel keys of every active session playerID is in.
func (r *Registry) SessionsOf(playerID string) []string {
	r.mu.RLock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.RUnlock()

	var keys []string
	for _, s := range sessions {
		if s.HasMember(playerID) {
			keys = append(keys, s.ChannelKey)
		}
	}
	return keys
}

// CreateSession opens a session in channelKey with the creator as first player.
func (r *Registry) CreateSession(channelKey, creatorID string, targetPlayerCount int) (Result, error) {
	s, err := newSession(channelKey, creatorID, targetPlayerCount, r.rules, r.dir, r.newRand())
	if err != nil {
		return Result{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[channelKey]; ok {
		return Result{}, ErrSessionAlreadyExists
	}
	r.sessions[channelKey] = s

	return Result{
		Reply: fmt.Sprintf("Ведётся набор в игру на %d игроков. Игроков: 1/%d", targetPlayerCount, targetPlayerCount),
	}, nil
}

func (r *Registry) JoinSession(channelKey, playerID, displayName string) (Result, error) {
	s, err := r.lookup(channelKey)
	if err != nil {
		return Result{}, err
	}
	return s.Join(playerID, displayName)
}

func (r *Registry) LeaveSession(channelKey, playerID string) (Result, error) {
	s, err := r.lookup(channelKey)
	if err != nil {
		return Result{}, err
	}
	return s.Leave(playerID)
}

func (r *Registry) CastNightVote(channelKey, mafiosoID, targetText string) (Result, error) {
	return r.CastNightAction(channelKey, mafiosoID, KillAction, targetText)
}

func (r *Registry) CastNightAction(channelKey, actorID string, action NightAction, targetText string) (Result, error) {
	s, err := r.lookup(channelKey)
	if err != nil {
		return Result{}, err
	}
	return s.CastNightAction(actorID, action, targetText)
}

func (r *Registry) CastLynchVote(channelKey, playerID, targetText string) (Result, error) {
	s, err := r.lookup(channelKey)
	if err != nil {
		return Result{}, err
	}
	return s.CastLynchVote(playerID, targetText)
}

// AdvancePhase advances the session and unregisters it once a faction has won.
func (r *Registry) AdvancePhase(channelKey, requesterID string, requesterIsModerator bool) (Result, error) {
	s, err := r.lookup(channelKey)
	if err != nil {
		return Result{}, err
	}

	res, err := s.Advance(requesterID, requesterIsModerator)
	if err != nil {
		return Result{}, err
	}
	if s.Phase().IsOver() {
		r.remove(s)
	}
	return res, nil
}

// DestroySession stops a session without a winner and unregisters it.
func (r *Registry) DestroySession(channelKey, requesterID string, requesterIsModerator bool) (Result, error) {
	s, err := r.lookup(channelKey)
	if err != nil {
		return Result{}, err
	}
	if !requesterIsModerator {
		return Result{}, ErrNotAuthorized
	}

	r.remove(s)
	return s.stop(), nil
}

func (r *Registry) Status(channelKey string) (Result, error) {
	s, err := r.lookup(channelKey)
	if err != nil {
		return Result{}, err
	}
	return s.Status(), nil
}
