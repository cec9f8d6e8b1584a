package engine

import (
	"context"
	"sync"

	"github.com/vytor/chessprofile/internal/logger"
)

// Pool manages a fixed set of engine sessions. A request acquires one session
// for the duration of a game batch, which serializes access to the shared
// engine state: with the default size of 1, concurrent requests queue.
type Pool struct {
	path     string
	size     int
	sessions chan *Session
	mu       sync.Mutex
	closed   bool
	log      *logger.Logger
}

// NewPool creates a pool with the specified number of sessions.
func NewPool(path string, size int) (*Pool, error) {
	if size <= 0 {
		size = 1
	}
	log := logger.Default().WithPrefix("engine-pool")

	pool := &Pool{
		path:     path,
		size:     size,
		sessions: make(chan *Session, size),
		log:      log,
	}

	// Pre-warm the pool
	log.Info("initializing engine pool with %d sessions", size)
	for i := 0; i < size; i++ {
		session, err := NewSession(path)
		if err != nil {
			pool.Close() // Clean up any already-created sessions
			return nil, err
		}
		pool.sessions <- session
	}
	log.Info("engine pool ready")
	return pool, nil
}

// Acquire gets a session from the pool, blocking if none are available.
func (p *Pool) Acquire(ctx context.Context) (*Session, error) {
	select {
	case session := <-p.sessions:
		return session, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a session to the pool.
func (p *Pool) Release(session *Session) {
	if session == nil {
		return
	}
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		session.Close()
		return
	}
	select {
	case p.sessions <- session:
		// Returned to pool
	default:
		// Pool full, close the session
		session.Close()
	}
}

// Close shuts down all sessions in the pool.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	p.log.Info("closing engine pool")
	close(p.sessions)
	for session := range p.sessions {
		session.Close()
	}
}

// Available returns how many sessions are currently idle.
func (p *Pool) Available() int {
	return len(p.sessions)
}
