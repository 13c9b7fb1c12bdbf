package memory

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/chatroom/chat-service/internal/core/docdb"
)

// SingleResult holds a point lookup result.
type SingleResult struct {
	raw bson.Raw
	err error
}

// Decode decodes the document into v.
func (r *SingleResult) Decode(v interface{}) error {
	if r.err != nil {
		return r.err
	}
	return bson.Unmarshal(r.raw, v)
}

// Err returns the lookup error, docdb.ErrNoDocuments when nothing matched.
func (r *SingleResult) Err() error {
	return r.err
}

// Cursor iterates over a materialised result set.
type Cursor struct {
	docs   []bson.Raw
	pos    int
	err    error
	closed bool
}

var errCursorClosed = errors.New("cursor is closed")

// Next advances to the next document.
func (c *Cursor) Next(ctx context.Context) bool {
	if c.closed {
		c.err = errCursorClosed
		return false
	}
	if err := ctx.Err(); err != nil {
		c.err = err
		return false
	}
	if c.pos+1 >= len(c.docs) {
		return false
	}
	c.pos++
	return true
}

// Decode decodes the current document.
func (c *Cursor) Decode(v interface{}) error {
	if c.pos < 0 || c.pos >= len(c.docs) {
		return docdb.ErrNoDocuments
	}
	return bson.Unmarshal(c.docs[c.pos], v)
}

// All decodes every remaining document into results, a pointer to a slice,
// and closes the cursor.
func (c *Cursor) All(ctx context.Context, results interface{}) error {
	defer c.Close(ctx)

	sliceVal := reflect.ValueOf(results)
	if sliceVal.Kind() != reflect.Ptr || sliceVal.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("results argument must be a pointer to a slice, got %T", results)
	}
	slice := sliceVal.Elem()
	elemType := slice.Type().Elem()
	out := reflect.MakeSlice(slice.Type(), 0, len(c.docs))

	for c.Next(ctx) {
		var elem reflect.Value
		if elemType.Kind() == reflect.Ptr {
			elem = reflect.New(elemType.Elem())
			if err := bson.Unmarshal(c.docs[c.pos], elem.Interface()); err != nil {
				return err
			}
		} else {
			ptr := reflect.New(elemType)
			if err := bson.Unmarshal(c.docs[c.pos], ptr.Interface()); err != nil {
				return err
			}
			elem = ptr.Elem()
		}
		out = reflect.Append(out, elem)
	}
	if c.err != nil {
		return c.err
	}

	slice.Set(out)
	return nil
}

// Err returns the cursor error.
func (c *Cursor) Err() error {
	return c.err
}

// Close closes the cursor.
func (c *Cursor) Close(ctx context.Context) error {
	c.closed = true
	return nil
}
