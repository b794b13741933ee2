package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctor-portfolio-api/internal/apperrors"
)

// MemoryGateway keeps documents in process, in insertion order.
// Safe for concurrent use.
type MemoryGateway struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
	failure     error
	now         func() time.Time
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		collections: make(map[string][]bson.M),
		now:         time.Now,
	}
}

// SetFailure makes every subsequent call fail with err, as an unreachable
// store would. Pass nil to recover.
func (m *MemoryGateway) SetFailure(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = err
}

// Len returns the number of documents in the named collection.
func (m *MemoryGateway) Len(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.collections[name])
}

func (m *MemoryGateway) Insert(_ context.Context, coll Collection, record any) (string, error) {
	doc, err := toDocument(record)
	if err != nil {
		return "", apperrors.NewStorageError("insert", coll.Name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return "", apperrors.NewStorageError("insert", coll.Name, m.failure)
	}

	oid := primitive.NewObjectID()
	now := m.now().UTC()
	doc[KeyID] = oid
	doc[KeyCreatedAt] = now
	doc[KeyUpdatedAt] = now
	m.collections[coll.Name] = append(m.collections[coll.Name], doc)
	return oid.Hex(), nil
}

func (m *MemoryGateway) Query(_ context.Context, coll Collection, filter Filter, out any) error {
	if err := filter.Validate(coll); err != nil {
		return err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failure != nil {
		return apperrors.NewStorageError("query", coll.Name, m.failure)
	}

	var matched []bson.M
	for _, doc := range m.collections[coll.Name] {
		if filter.Matches(doc) {
			matched = append(matched, doc)
		}
	}
	if err := decodeAll(matched, out); err != nil {
		return apperrors.NewStorageError("query", coll.Name, err)
	}
	return nil
}

func (m *MemoryGateway) ReplaceFields(_ context.Context, coll Collection, id string, fields any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NewStorageError("replace", coll.Name, fmt.Errorf("%w: %q", ErrInvalidID, id))
	}
	update, err := toDocument(fields)
	if err != nil {
		return apperrors.NewStorageError("replace", coll.Name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return apperrors.NewStorageError("replace", coll.Name, m.failure)
	}

	for _, doc := range m.collections[coll.Name] {
		if doc[KeyID] != oid {
			continue
		}
		for k, v := range update {
			doc[k] = v
		}
		doc[KeyUpdatedAt] = m.now().UTC()
		return nil
	}
	return apperrors.NewStorageError("replace", coll.Name, ErrNotFound)
}

func (m *MemoryGateway) Ping(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.failure
}

func (m *MemoryGateway) CollectionNames(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failure != nil {
		return nil, m.failure
	}

	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
