// Package docdb defines the document store primitives used by the chat repository.
package docdb

import (
	"context"
	"errors"
)

var (
	// ErrDatabaseExists is returned by CreateDatabase when the database already exists.
	ErrDatabaseExists = errors.New("database already exists")
	// ErrTableExists is returned by CreateTable when the table already exists.
	ErrTableExists = errors.New("table already exists")
	// ErrNoDocuments is returned by SingleResult when nothing matched.
	ErrNoDocuments = errors.New("no documents in result")
)

// SortOrder represents the sort direction.
type SortOrder string

const (
	// SortOrderAsc represents ascending order.
	SortOrderAsc SortOrder = "asc"
	// SortOrderDesc represents descending order.
	SortOrderDesc SortOrder = "desc"
)

// SortField orders results by a single field.
type SortField struct {
	Field string
	Order SortOrder
}

// Desc orders by field, largest first.
func Desc(field string) SortField {
	return SortField{Field: field, Order: SortOrderDesc}
}

// FindOptions represents options for Find operations.
// A zero Limit means no limit.
type FindOptions struct {
	Limit int64
	Sort  []SortField
}

// InsertResult reports what an insert did.
type InsertResult struct {
	Inserted   int
	Errors     int
	FirstError string
}

// SingleResult represents the result of a point lookup.
type SingleResult interface {
	// Decode decodes the result into the provided interface.
	Decode(v interface{}) error
	// Err returns any error from the operation.
	Err() error
}

// Cursor represents a cursor for iterating over query results.
type Cursor interface {
	// Next advances the cursor to the next document.
	Next(ctx context.Context) bool
	// Decode decodes the current document.
	Decode(v interface{}) error
	// All decodes all remaining documents.
	All(ctx context.Context, results interface{}) error
	// Err returns any cursor error.
	Err() error
	// Close closes the cursor.
	Close(ctx context.Context) error
}

// Table defines the query primitives of a single table.
type Table interface {
	// Get looks up a document by primary key.
	Get(ctx context.Context, key interface{}) SingleResult

	// Find returns documents whose fields equal every entry of filter.
	Find(ctx context.Context, filter map[string]interface{}, opts *FindOptions) (Cursor, error)

	// Insert inserts a single document. A primary key conflict is
	// reported through InsertResult, not as an error.
	Insert(ctx context.Context, document interface{}) (*InsertResult, error)
}

// Session is a live connection to the store. It is owned by a single
// operation and must be closed exactly once.
type Session interface {
	// ID returns the correlation identifier used in log lines.
	ID() string

	// CreateDatabase creates a database, failing if it exists.
	CreateDatabase(ctx context.Context, name string) error

	// CreateTable creates a table with the given primary key, failing if it exists.
	CreateTable(ctx context.Context, database, table, primaryKey string) error

	// Table returns a handle on a table of a database.
	Table(database, table string) Table

	// Close releases the session. Calls after the first are no-ops.
	Close(ctx context.Context) error
}

// Provider opens sessions to the store.
type Provider interface {
	// Acquire opens a new session.
	Acquire(ctx context.Context) (Session, error)
}

// KeyField returns the document field that stores a primary key.
// The "id" key lives in the native document identifier.
func KeyField(primaryKey string) string {
	if primaryKey == "" || primaryKey == "id" {
		return "_id"
	}
	return primaryKey
}
