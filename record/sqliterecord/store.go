// Package sqliterecord provides a virtuals.Record implementation persisting
// each record as a JSON blob row in SQLite.
package sqliterecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-virtuals"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// ErrNotFound indicates no row exists for the requested identity.
var ErrNotFound = errors.New("sqliterecord: record not found")

// Store owns the database handle shared by the records it hands out.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the database at path and ensures the records
// table exists. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "records.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		object_type TEXT NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create records table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewRecord constructs an unsaved record of objectType seeded with attrs.
func (s *Store) NewRecord(objectType string, attrs map[string]any) *Record {
	copied := make(map[string]any, len(attrs))
	for key, value := range attrs {
		copied[key] = value
	}
	return &Record{
		store:      s,
		objectType: objectType,
		attrs:      copied,
	}
}

// Load fetches the record identified by id, or ErrNotFound.
func (s *Store) Load(ctx context.Context, objectType, id string) (*Record, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM records WHERE id = ? AND object_type = ?`,
		id, objectType,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select record: %w", err)
	}
	var attrs map[string]any
	if err := json.Unmarshal(payload, &attrs); err != nil {
		return nil, fmt.Errorf("unmarshal record %s: %w", id, err)
	}
	return &Record{
		store:      s,
		objectType: objectType,
		id:         id,
		attrs:      attrs,
	}, nil
}

// Record implements virtuals.Record over a single JSON blob row.
type Record struct {
	store      *Store
	objectType string
	id         string
	attrs      map[string]any
}

// ID returns the persisted identity, empty until the first insert.
func (r *Record) ID() string {
	return r.id
}

// Get returns the current attribute value; unknown names return nil. The
// "id" attribute reflects the persisted identity.
func (r *Record) Get(name string, _ ...any) any {
	if name == "id" && r.id != "" {
		return r.id
	}
	return r.attrs[name]
}

// Set assigns or, per opts, unsets one attribute in memory. The change is
// persisted on the next Save.
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
	out := make(map[string]any, len(r.attrs)+1)
	for key, value := range r.attrs {
		out[key] = value
	}
	if r.id != "" {
		out["id"] = r.id
	}
	return out
}

// IsNew reports whether the record has been inserted yet.
func (r *Record) IsNew() bool {
	return r.id == ""
}

// Save applies values to the attribute set and rewrites the row. Inserts
// assign a UUID identity, committed to the record only once the row exists;
// a failed insert leaves the record new.
func (r *Record) Save(ctx context.Context, values map[string]any, opts virtuals.SaveOptions) error {
	for name, value := range values {
		r.attrs[name] = value
	}
	id := r.id
	insert := opts.Method == virtuals.MethodInsert ||
		(opts.Method == virtuals.MethodAuto && r.IsNew())
	if insert && id == "" {
		id = uuid.NewString()
	}
	payload, err := json.Marshal(r.attrs)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", id, err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, err := r.store.db.ExecContext(ctx,
		`INSERT INTO records (id, object_type, payload) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`,
		id, r.objectType, payload,
	); err != nil {
		return fmt.Errorf("persist record %s: %w", id, err)
	}
	r.id = id
	return nil
}
