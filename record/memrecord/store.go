// Package memrecord provides an in-process virtuals.Record implementation.
// It backs examples and tests; nothing survives the process.
package memrecord

import (
	"context"

	"github.com/goliatone/go-virtuals"
	"github.com/google/uuid"
)

// Option configures a Record at construction.
type Option func(*Record)

// WithIDAttribute names the attribute carrying the record identity. Defaults
// to "id".
func WithIDAttribute(name string) Option {
	return func(r *Record) {
		if name != "" {
			r.idAttr = name
		}
	}
}

// Record stores attributes in a plain map and assigns a UUID identity on the
// first insert.
type Record struct {
	attrs  map[string]any
	idAttr string
}

// New constructs a Record seeded with attrs. The map is copied so the record
// owns its attribute set.
func New(attrs map[string]any, opts ...Option) *Record {
	r := &Record{
		attrs:  make(map[string]any, len(attrs)),
		idAttr: "id",
	}
	for key, value := range attrs {
		r.attrs[key] = value
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Get returns the current attribute value; unknown names return nil. Args
// are accepted for interface compatibility and ignored.
func (r *Record) Get(name string, _ ...any) any {
	return r.attrs[name]
}

// Set assigns or, per opts, unsets one attribute.
func (r *Record) Set(name string, value any, opts virtuals.SetOptions) error {
	if opts.Unset {
		delete(r.attrs, name)
		return nil
	}
	r.attrs[name] = value
	return nil
}

// SetAll applies a bag of attribute writes.
func (r *Record) SetAll(values map[string]any, opts virtuals.SetOptions) error {
	for name, value := range values {
		if err := r.Set(name, value, opts); err != nil {
			return err
		}
	}
	return nil
}

// ToJSON returns a copy of the attribute mapping.
func (r *Record) ToJSON() map[string]any {
	out := make(map[string]any, len(r.attrs))
	for key, value := range r.attrs {
		out[key] = value
	}
	return out
}

// IsNew reports whether the record has been assigned an identity.
func (r *Record) IsNew() bool {
	return r.attrs[r.idAttr] == nil
}

// Save applies values to the attribute set, assigning a UUID identity when
// inserting. Patch and full saves behave identically here since the whole
// attribute set lives in memory.
func (r *Record) Save(ctx context.Context, values map[string]any, opts virtuals.SaveOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for name, value := range values {
		r.attrs[name] = value
	}
	insert := opts.Method == virtuals.MethodInsert ||
		(opts.Method == virtuals.MethodAuto && r.IsNew())
	if insert && r.attrs[r.idAttr] == nil {
		r.attrs[r.idAttr] = uuid.NewString()
	}
	return nil
}
