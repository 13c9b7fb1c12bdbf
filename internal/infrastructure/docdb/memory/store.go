// Package memory provides an in-process document store with the semantics
// the chat repository expects from a real server.
package memory

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/chatroom/chat-service/internal/core/docdb"
)

// Store holds databases in memory. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	databases map[string]*database
}

type database struct {
	tables map[string]*table
}

type table struct {
	keyField string
	docs     []bson.Raw
	keys     map[string]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		databases: make(map[string]*database),
	}
}

func (s *Store) createDatabase(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.databases[name]; ok {
		return fmt.Errorf("database %q: %w", name, docdb.ErrDatabaseExists)
	}
	s.databases[name] = &database{tables: make(map[string]*table)}
	return nil
}

func (s *Store) createTable(dbName, name, primaryKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, ok := s.databases[dbName]
	if !ok {
		return fmt.Errorf("database %q does not exist", dbName)
	}
	if _, ok := db.tables[name]; ok {
		return fmt.Errorf("table %q: %w", name, docdb.ErrTableExists)
	}
	db.tables[name] = &table{
		keyField: docdb.KeyField(primaryKey),
		keys:     make(map[string]int),
	}
	return nil
}

// lookup must be called with s.mu held.
func (s *Store) lookup(dbName, name string) (*table, error) {
	db, ok := s.databases[dbName]
	if !ok {
		return nil, fmt.Errorf("database %q does not exist", dbName)
	}
	t, ok := db.tables[name]
	if !ok {
		return nil, fmt.Errorf("table %q does not exist in database %q", name, dbName)
	}
	return t, nil
}

func (s *Store) get(dbName, name string, key interface{}) (bson.Raw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.lookup(dbName, name)
	if err != nil {
		return nil, err
	}
	idx, ok := t.keys[keyString(key)]
	if !ok {
		return nil, docdb.ErrNoDocuments
	}
	return t.docs[idx], nil
}

func (s *Store) insert(dbName, name string, document interface{}) (*docdb.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.lookup(dbName, name)
	if err != nil {
		return nil, err
	}

	data, err := bson.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	raw := bson.Raw(data)

	keyValue, err := raw.LookupErr(t.keyField)
	if err != nil || isEmptyKey(keyValue) {
		raw, keyValue, err = withGeneratedKey(raw, t.keyField)
		if err != nil {
			return nil, err
		}
	}

	key := keyString(rawValueInterface(keyValue))
	if _, exists := t.keys[key]; exists {
		return &docdb.InsertResult{
			Errors:     1,
			FirstError: fmt.Sprintf("duplicate primary key `%s`: %s", t.keyField, key),
		}, nil
	}

	t.keys[key] = len(t.docs)
	t.docs = append(t.docs, raw)
	return &docdb.InsertResult{Inserted: 1}, nil
}

func (s *Store) find(dbName, name string, filter map[string]interface{}, opts *docdb.FindOptions) ([]bson.Raw, error) {
	s.mu.RLock()
	t, err := s.lookup(dbName, name)
	if err != nil {
		s.mu.RUnlock()
		return nil, err
	}
	docs := make([]bson.Raw, len(t.docs))
	copy(docs, t.docs)
	s.mu.RUnlock()

	matched := make([]bson.Raw, 0, len(docs))
	for _, raw := range docs {
		ok, err := matches(raw, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, raw)
		}
	}

	if opts == nil {
		return matched, nil
	}
	if len(opts.Sort) > 0 {
		sortDocs(matched, opts.Sort)
	}
	if opts.Limit > 0 && int64(len(matched)) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func matches(raw bson.Raw, filter map[string]interface{}) (bool, error) {
	for field, want := range filter {
		value, err := raw.LookupErr(field)
		if err != nil {
			return false, nil
		}
		if !equalValues(rawValueInterface(value), want) {
			return false, nil
		}
	}
	return true, nil
}

func sortDocs(docs []bson.Raw, fields []docdb.SortField) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, f := range fields {
			a := lookupInterface(docs[i], f.Field)
			b := lookupInterface(docs[j], f.Field)
			c := compareValues(a, b)
			if c == 0 {
				continue
			}
			if f.Order == docdb.SortOrderDesc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func lookupInterface(raw bson.Raw, field string) interface{} {
	value, err := raw.LookupErr(field)
	if err != nil {
		return nil
	}
	return rawValueInterface(value)
}

func rawValueInterface(value bson.RawValue) interface{} {
	var out interface{}
	if err := value.Unmarshal(&out); err != nil {
		return nil
	}
	return out
}

func isEmptyKey(value bson.RawValue) bool {
	s, ok := value.StringValueOK()
	return ok && s == ""
}

func withGeneratedKey(raw bson.Raw, keyField string) (bson.Raw, bson.RawValue, error) {
	var doc bson.D
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, bson.RawValue{}, fmt.Errorf("failed to decode document: %w", err)
	}

	id := uuid.NewString()
	replaced := false
	for i := range doc {
		if doc[i].Key == keyField {
			doc[i].Value = id
			replaced = true
		}
	}
	if !replaced {
		doc = append(bson.D{{Key: keyField, Value: id}}, doc...)
	}

	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, bson.RawValue{}, fmt.Errorf("failed to encode document: %w", err)
	}
	out := bson.Raw(data)
	return out, out.Lookup(keyField), nil
}

func keyString(key interface{}) string {
	if f, ok := toFloat(key); ok {
		return fmt.Sprintf("n:%v", f)
	}
	return fmt.Sprintf("%T:%v", key, key)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func equalValues(a, b interface{}) bool {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB {
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

func compareValues(a, b interface{}) int {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	switch {
	case okA && okB:
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}
