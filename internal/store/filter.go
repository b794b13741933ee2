package store

import (
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
)

// Condition is a single field-equality constraint.
type Condition struct {
	Field Field
	Value any
}

// FieldEquals matches documents whose field is exactly value.
func FieldEquals(field Field, value any) Condition {
	return Condition{Field: field, Value: value}
}

// Filter is a conjunction of conditions. The zero Filter matches everything.
type Filter struct {
	conds []Condition
}

// Where builds a filter requiring all of conds.
func Where(conds ...Condition) Filter {
	return Filter{conds: append([]Condition(nil), conds...)}
}

// And returns a copy of f with c added.
func (f Filter) And(c Condition) Filter {
	next := make([]Condition, 0, len(f.conds)+1)
	next = append(next, f.conds...)
	return Filter{conds: append(next, c)}
}

func (f Filter) Conditions() []Condition {
	return f.conds
}

func (f Filter) Empty() bool {
	return len(f.conds) == 0
}

// Validate checks every condition against the collection's field set.
func (f Filter) Validate(coll Collection) error {
	for _, c := range f.conds {
		if !coll.Has(c.Field) {
			return fmt.Errorf("%w %q for collection %s", ErrUnknownField, c.Field, coll.Name)
		}
	}
	return nil
}

// BSON renders the filter as a MongoDB query document.
func (f Filter) BSON() bson.D {
	d := bson.D{}
	for _, c := range f.conds {
		d = append(d, bson.E{Key: string(c.Field), Value: c.Value})
	}
	return d
}

// Matches evaluates the filter against an already decoded document.
func (f Filter) Matches(doc bson.M) bool {
	for _, c := range f.conds {
		v, ok := doc[string(c.Field)]
		if !ok || !reflect.DeepEqual(v, c.Value) {
			return false
		}
	}
	return true
}
