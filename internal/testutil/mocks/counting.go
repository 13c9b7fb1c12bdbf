package mocks

import (
	"context"
	"sync"

	"github.com/chatroom/chat-service/internal/core/docdb"
)

// CountingProvider wraps a provider and counts sessions opened and closed.
type CountingProvider struct {
	Provider docdb.Provider

	mu       sync.Mutex
	acquired int
	closed   int
}

// NewCountingProvider wraps provider.
func NewCountingProvider(provider docdb.Provider) *CountingProvider {
	return &CountingProvider{Provider: provider}
}

// Acquire opens a session through the wrapped provider.
func (p *CountingProvider) Acquire(ctx context.Context) (docdb.Session, error) {
	session, err := p.Provider.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()
	return &countingSession{Session: session, provider: p}, nil
}

// Acquired returns the number of sessions opened.
func (p *CountingProvider) Acquired() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acquired
}

// Closed returns the number of Close calls across all sessions.
func (p *CountingProvider) Closed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Reset zeroes both counters.
func (p *CountingProvider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.acquired = 0
	p.closed = 0
}

type countingSession struct {
	docdb.Session
	provider *CountingProvider
}

func (s *countingSession) Close(ctx context.Context) error {
	s.provider.mu.Lock()
	s.provider.closed++
	s.provider.mu.Unlock()
	return s.Session.Close(ctx)
}
