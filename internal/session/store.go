// Package session keeps authenticated sessions and their master secrets in
// memory. Nothing here is ever persisted: a restart logs everyone out, which
// is the intended failure mode for secret material.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mzaytsev/passguard/internal/common"
)

// DefaultTTL is the session lifetime when none is configured.
const DefaultTTL = 24 * time.Hour

type session struct {
	userID    int64
	master    []byte
	expiresAt time.Time
}

// Store is a mutex-guarded in-memory session table.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*session
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*session),
	}
}

// Create registers a new session holding the user's master secret and
// returns its ID.
func (s *Store) Create(userID int64, master string) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &session{
		userID:    userID,
		master:    []byte(master),
		expiresAt: time.Now().Add(s.ttl),
	}
	return id
}

// Get returns the user and master secret of a live session. A missing or
// expired session yields ErrorSessionExpired; expired entries are removed
// and their secret wiped on the spot.
func (s *Store) Get(id string) (int64, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return 0, "", common.ErrorSessionExpired
	}
	if time.Now().After(sess.expiresAt) {
		s.remove(id)
		return 0, "", common.ErrorSessionExpired
	}
	return sess.userID, string(sess.master), nil
}

// Refresh re-arms the expiry of a session and replaces its master secret,
// used after the client re-proves the master password. A session that aged
// out or was purged is recreated under the same ID: the caller has already
// verified the secret, and an aged-out session must be recoverable without a
// full re-login.
func (s *Store) Refresh(id string, userID int64, master string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		common.WipeByteArray(sess.master)
	}
	s.sessions[id] = &session{
		userID:    userID,
		master:    []byte(master),
		expiresAt: time.Now().Add(s.ttl),
	}
}

// Delete removes a session and wipes its master secret. Deleting an unknown
// ID is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(id)
}

// Purge drops every expired session and reports how many were removed.
// Intended to run on a timer so abandoned sessions do not keep secrets in
// memory for longer than the TTL.
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			s.remove(id)
			removed++
		}
	}
	return removed
}

// remove must be called with the mutex held.
func (s *Store) remove(id string) {
	if sess, ok := s.sessions[id]; ok {
		common.WipeByteArray(sess.master)
		delete(s.sessions, id)
	}
}
