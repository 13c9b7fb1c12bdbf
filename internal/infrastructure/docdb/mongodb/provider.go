// Package mongodb provides the MongoDB implementation of the store primitives.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chatroom/chat-service/internal/config"
	"github.com/chatroom/chat-service/internal/core/docdb"
)

const defaultConnectTimeout = 5 * time.Second

// Provider opens one MongoDB client per session.
type Provider struct {
	uri     string
	address string
	timeout time.Duration
	schema  config.Schema
}

// NewProvider creates a provider for the configured store.
func NewProvider(cfg config.StoreConfig) (*Provider, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("store host is required")
	}
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("invalid store port: %d", cfg.Port)
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	schema := maps.Clone(cfg.Schema)
	if schema == nil {
		schema = config.DefaultSchema()
	}

	return &Provider{
		uri:     ConnectionURI(cfg),
		address: cfg.Address(),
		timeout: timeout,
		schema:  schema,
	}, nil
}

// ConnectionURI builds the MongoDB connection string for cfg.
func ConnectionURI(cfg config.StoreConfig) string {
	return "mongodb://" + cfg.Address()
}

// Acquire connects a new client and verifies it with a ping.
func (p *Provider) Acquire(ctx context.Context) (docdb.Session, error) {
	connectCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(p.uri).
		SetMaxPoolSize(1).
		SetConnectTimeout(p.timeout).
		SetServerSelectionTimeout(p.timeout)

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, &docdb.ConnectError{Address: p.address, Err: err}
	}

	// Verify connection
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, &docdb.ConnectError{Address: p.address, Err: err}
	}

	return &Session{
		client: client,
		id:     uuid.NewString(),
		schema: p.schema,
	}, nil
}

// Session implements docdb.Session on a dedicated mongo.Client.
type Session struct {
	client    *mongo.Client
	id        string
	schema    config.Schema
	closeOnce sync.Once
	closeErr  error
}

// ID returns the correlation identifier.
func (s *Session) ID() string {
	return s.id
}

// CreateDatabase reports ErrDatabaseExists when the database is already
// present. MongoDB materialises a database with its first collection, so
// there is nothing else to do here.
func (s *Session) CreateDatabase(ctx context.Context, name string) error {
	names, err := s.client.ListDatabaseNames(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("failed to list databases: %w", err)
	}
	if len(names) > 0 {
		return fmt.Errorf("database %q: %w", name, docdb.ErrDatabaseExists)
	}
	return nil
}

// CreateTable creates a collection. Primary keys other than "id" get a
// unique index since MongoDB always keys documents by _id.
func (s *Session) CreateTable(ctx context.Context, database, table, primaryKey string) error {
	db := s.client.Database(database)
	if err := db.CreateCollection(ctx, table); err != nil {
		if isNamespaceExists(err) {
			return fmt.Errorf("%w: %w", docdb.ErrTableExists, err)
		}
		return fmt.Errorf("failed to create collection %s: %w", table, err)
	}

	field := docdb.KeyField(primaryKey)
	if field == "_id" {
		return nil
	}

	_, err := db.Collection(table).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetName("pk_" + field).SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create primary key index on %s.%s: %w", table, field, err)
	}
	return nil
}

// Table returns a collection wrapper keyed by the schema's primary key.
func (s *Session) Table(database, table string) docdb.Table {
	return NewTable(
		s.client.Database(database).Collection(table),
		docdb.KeyField(s.schema.PrimaryKey(table)),
	)
}

// Close disconnects the client.
func (s *Session) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		if err := s.client.Disconnect(ctx); err != nil {
			s.closeErr = fmt.Errorf("failed to disconnect from mongodb: %w", err)
		}
	})
	return s.closeErr
}

// namespaceExistsCode is the server error code for an existing collection.
const namespaceExistsCode = 48

func isNamespaceExists(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == namespaceExistsCode || cmdErr.Name == "NamespaceExists"
	}
	return false
}
