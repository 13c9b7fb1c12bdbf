// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/chatroom/chat-service/internal/core/docdb"
)

// MockProvider is a mock implementation of docdb.Provider.
type MockProvider struct {
	mock.Mock
}

// Acquire opens a session.
func (m *MockProvider) Acquire(ctx context.Context) (docdb.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(docdb.Session), args.Error(1)
}

// MockSession is a mock implementation of docdb.Session.
type MockSession struct {
	mock.Mock
}

// ID returns the correlation identifier.
func (m *MockSession) ID() string {
	args := m.Called()
	return args.String(0)
}

// CreateDatabase creates a database.
func (m *MockSession) CreateDatabase(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// CreateTable creates a table.
func (m *MockSession) CreateTable(ctx context.Context, database, table, primaryKey string) error {
	args := m.Called(ctx, database, table, primaryKey)
	return args.Error(0)
}

// Table returns a table handle.
func (m *MockSession) Table(database, table string) docdb.Table {
	args := m.Called(database, table)
	return args.Get(0).(docdb.Table)
}

// Close closes the session.
func (m *MockSession) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTable is a mock implementation of docdb.Table.
type MockTable struct {
	mock.Mock
}

// Get looks up a document by key.
func (m *MockTable) Get(ctx context.Context, key interface{}) docdb.SingleResult {
	args := m.Called(ctx, key)
	return args.Get(0).(docdb.SingleResult)
}

// Find finds documents.
func (m *MockTable) Find(ctx context.Context, filter map[string]interface{}, opts *docdb.FindOptions) (docdb.Cursor, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(docdb.Cursor), args.Error(1)
}

// Insert inserts a document.
func (m *MockTable) Insert(ctx context.Context, document interface{}) (*docdb.InsertResult, error) {
	args := m.Called(ctx, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*docdb.InsertResult), args.Error(1)
}

// MockSingleResult is a mock implementation of docdb.SingleResult.
type MockSingleResult struct {
	mock.Mock
}

// Decode decodes the result.
func (m *MockSingleResult) Decode(v interface{}) error {
	args := m.Called(v)
	return args.Error(0)
}

// Err returns the lookup error.
func (m *MockSingleResult) Err() error {
	args := m.Called()
	return args.Error(0)
}

// MockCursor is a mock implementation of docdb.Cursor.
type MockCursor struct {
	mock.Mock
}

// Next advances the cursor.
func (m *MockCursor) Next(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// Decode decodes the current document.
func (m *MockCursor) Decode(v interface{}) error {
	args := m.Called(v)
	return args.Error(0)
}

// All decodes all remaining documents.
func (m *MockCursor) All(ctx context.Context, results interface{}) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

// Err returns the cursor error.
func (m *MockCursor) Err() error {
	args := m.Called()
	return args.Error(0)
}

// Close closes the cursor.
func (m *MockCursor) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
