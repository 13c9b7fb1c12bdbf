package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/chatroom/chat-service/internal/core/docdb"
)

// Provider hands out sessions on a shared Store.
type Provider struct {
	store *Store
}

// NewProvider creates a provider over store. A nil store gets a fresh one.
func NewProvider(store *Store) *Provider {
	if store == nil {
		store = NewStore()
	}
	return &Provider{store: store}
}

// Store returns the backing store.
func (p *Provider) Store() *Store {
	return p.store
}

// Acquire opens a new session.
func (p *Provider) Acquire(ctx context.Context) (docdb.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Session{
		store: p.store,
		id:    uuid.NewString(),
	}, nil
}

// Session implements docdb.Session over a Store.
type Session struct {
	store  *Store
	id     string
	mu     sync.Mutex
	closed bool
}

// ID returns the correlation identifier.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("session %s is closed", s.id)
	}
	return nil
}

// CreateDatabase creates a database.
func (s *Session) CreateDatabase(ctx context.Context, name string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.store.createDatabase(name)
}

// CreateTable creates a table with the given primary key.
func (s *Session) CreateTable(ctx context.Context, database, table, primaryKey string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.store.createTable(database, table, primaryKey)
}

// Table returns a table handle.
func (s *Session) Table(database, table string) docdb.Table {
	return &Table{session: s, database: database, name: table}
}

// Close closes the session.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Table implements docdb.Table.
type Table struct {
	session  *Session
	database string
	name     string
}

// Get looks up a document by primary key.
func (t *Table) Get(ctx context.Context, key interface{}) docdb.SingleResult {
	if err := t.session.checkOpen(); err != nil {
		return &SingleResult{err: err}
	}
	raw, err := t.session.store.get(t.database, t.name, key)
	return &SingleResult{raw: raw, err: err}
}

// Find returns matching documents.
func (t *Table) Find(ctx context.Context, filter map[string]interface{}, opts *docdb.FindOptions) (docdb.Cursor, error) {
	if err := t.session.checkOpen(); err != nil {
		return nil, err
	}
	docs, err := t.session.store.find(t.database, t.name, filter, opts)
	if err != nil {
		return nil, err
	}
	return &Cursor{docs: docs, pos: -1}, nil
}

// Insert inserts a document.
func (t *Table) Insert(ctx context.Context, document interface{}) (*docdb.InsertResult, error) {
	if err := t.session.checkOpen(); err != nil {
		return nil, err
	}
	return t.session.store.insert(t.database, t.name, document)
}
