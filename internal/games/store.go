package games

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrRoundNotFound is returned when a round does not exist or is owned by a
// different principal.
var ErrRoundNotFound = errors.New("round not found")

// Round is one in-flight game round. State carries the game-specific state
// machine and is only mutated through Store.Update.
type Round struct {
	ID        string
	Owner     string
	Game      string
	Stake     int64
	Status    Status
	State     any
	CreatedAt time.Time
}

// Store keeps active rounds in memory. Single-step games never enter the
// store; multi-decision games (blackjack, mines, poker) live here between
// player actions.
type Store struct {
	mu     sync.Mutex
	rounds map[string]*Round
}

func NewStore() *Store {
	return &Store{rounds: make(map[string]*Round)}
}

// Open registers a new round in AwaitingAction and returns it.
func (s *Store) Open(owner, game string, stake int64, state any) *Round {
	r := &Round{
		ID:        uuid.NewString(),
		Owner:     owner,
		Game:      game,
		Stake:     stake,
		Status:    StatusAwaitingAction,
		State:     state,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.rounds[r.ID] = r
	s.mu.Unlock()
	return r
}

// Update runs fn against the round while holding the store lock, so player
// actions on the same round are serialized. Ownership is checked before fn
// runs. If fn leaves the round Settled it is removed from the store.
func (s *Store) Update(id, owner string, fn func(*Round) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rounds[id]
	if !ok || r.Owner != owner {
		return ErrRoundNotFound
	}
	if err := fn(r); err != nil {
		return err
	}
	if r.Status == StatusSettled {
		delete(s.rounds, id)
	}
	return nil
}

// Abandon drops a round without settling it.
func (s *Store) Abandon(id string) {
	s.mu.Lock()
	delete(s.rounds, id)
	s.mu.Unlock()
}
