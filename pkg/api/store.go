package api

import (
	"strconv"
	"sync"

	"jcuts/pkg/paper"
)

// session is one paper being cut. Its lock serializes requests on the paper.
type session struct {
	mu    sync.Mutex
	paper *paper.Paper
}

// Store holds the papers of all sessions in memory.
type Store struct {
	mu       sync.Mutex
	next     int
	sessions map[string]*session
}

func NewStore() *Store {
	return &Store{sessions: map[string]*session{}}
}

// Create adds a paper and returns its session id.
func (s *Store) Create(p *paper.Paper) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := strconv.Itoa(s.next)
	s.sessions[id] = &session{paper: p}
	return id
}

// With runs fn on the session's paper while holding its lock. It reports whether
// the session exists.
func (s *Store) With(id string, fn func(p *paper.Paper)) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return false
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	fn(sess.paper)
	return true
}

// Delete removes a session and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}
