package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chatroom/chat-service/internal/core/docdb"
)

// Table implements the docdb.Table interface for a MongoDB collection.
type Table struct {
	collection *mongo.Collection
	keyField   string
}

// NewTable creates a new MongoDB collection wrapper.
func NewTable(collection *mongo.Collection, keyField string) *Table {
	return &Table{
		collection: collection,
		keyField:   keyField,
	}
}

// Get finds the document with the given primary key.
func (t *Table) Get(ctx context.Context, key interface{}) docdb.SingleResult {
	return &SingleResult{
		result: t.collection.FindOne(ctx, bson.M{t.keyField: key}),
	}
}

// Find finds all documents matching the filter.
func (t *Table) Find(ctx context.Context, filter map[string]interface{}, opts *docdb.FindOptions) (docdb.Cursor, error) {
	findOpts := options.Find()
	if opts != nil {
		if opts.Limit > 0 {
			findOpts.SetLimit(opts.Limit)
		}
		if len(opts.Sort) > 0 {
			findOpts.SetSort(SortDocument(opts.Sort))
		}
	}

	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	cursor, err := t.collection.Find(ctx, query, findOpts)
	if err != nil {
		return nil, err
	}

	return &Cursor{cursor: cursor}, nil
}

// Insert inserts a single document. Duplicate keys count as zero insertions.
func (t *Table) Insert(ctx context.Context, document interface{}) (*docdb.InsertResult, error) {
	_, err := t.collection.InsertOne(ctx, document)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &docdb.InsertResult{Errors: 1, FirstError: err.Error()}, nil
		}
		return nil, err
	}
	return &docdb.InsertResult{Inserted: 1}, nil
}

// SortDocument converts sort fields into a MongoDB sort specification.
func SortDocument(fields []docdb.SortField) bson.D {
	sort := make(bson.D, 0, len(fields))
	for _, f := range fields {
		order := 1
		if f.Order == docdb.SortOrderDesc {
			order = -1
		}
		sort = append(sort, bson.E{Key: f.Field, Value: order})
	}
	return sort
}

// SingleResult wraps a MongoDB single result.
type SingleResult struct {
	result *mongo.SingleResult
}

// Decode decodes the single result into the provided interface.
func (r *SingleResult) Decode(v interface{}) error {
	if err := r.Err(); err != nil {
		return err
	}
	return r.result.Decode(v)
}

// Err returns any error from the single result.
func (r *SingleResult) Err() error {
	err := r.result.Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return docdb.ErrNoDocuments
	}
	return err
}

// Cursor wraps a MongoDB cursor.
type Cursor struct {
	cursor *mongo.Cursor
}

// Next advances the cursor.
func (c *Cursor) Next(ctx context.Context) bool {
	return c.cursor.Next(ctx)
}

// Decode decodes the current document.
func (c *Cursor) Decode(v interface{}) error {
	return c.cursor.Decode(v)
}

// All decodes all remaining documents.
func (c *Cursor) All(ctx context.Context, results interface{}) error {
	return c.cursor.All(ctx, results)
}

// Err returns any cursor error.
func (c *Cursor) Err() error {
	return c.cursor.Err()
}

// Close closes the cursor.
func (c *Cursor) Close(ctx context.Context) error {
	return c.cursor.Close(ctx)
}
