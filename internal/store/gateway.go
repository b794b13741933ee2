package store

import (
	"context"
	"errors"
)

var (
	// ErrUnknownField is returned when a filter names a field the target
	// collection does not declare.
	ErrUnknownField = errors.New("unknown filter field")
	// ErrNotFound is returned by ReplaceFields when no document has the id.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID is returned when an identifier is not a valid ObjectID.
	ErrInvalidID = errors.New("invalid document id")
)

// Reserved document keys written by the gateway itself.
const (
	KeyID        = "_id"
	KeyCreatedAt = "created_at"
	KeyUpdatedAt = "updated_at"
)

// Field is the stored name of a record field.
type Field string

// Collection describes one store partition and the fields that may be
// used to filter it.
type Collection struct {
	Name   string
	Fields []Field
}

// Has reports whether f is a declared field of the collection.
func (c Collection) Has(f Field) bool {
	for _, known := range c.Fields {
		if known == f {
			return true
		}
	}
	return false
}

// Gateway is the narrow contract the API layer has with the document store.
// Implementations do not validate records and never retry.
type Gateway interface {
	// Insert writes record plus server-assigned created_at/updated_at and
	// returns the new identifier as text.
	Insert(ctx context.Context, coll Collection, record any) (string, error)

	// Query decodes every document matching filter into out, which must be
	// a pointer to a slice. Results come back in store order.
	Query(ctx context.Context, coll Collection, filter Filter, out any) error

	// ReplaceFields overwrites the fields of the document with the given id
	// and refreshes updated_at. The id and created_at are left alone.
	ReplaceFields(ctx context.Context, coll Collection, id string, fields any) error

	Ping(ctx context.Context) error
	CollectionNames(ctx context.Context) ([]string, error)
}
