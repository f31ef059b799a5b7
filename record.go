package virtuals

import "context"

// Method selects the persistence operation a save performs.
type Method int

const (
	// MethodAuto derives the method from Record.IsNew at save time.
	MethodAuto Method = iota
	// MethodInsert creates a new row for the record.
	MethodInsert
	// MethodUpdate rewrites an existing row.
	MethodUpdate
)

func (m Method) String() string {
	switch m {
	case MethodInsert:
		return "insert"
	case MethodUpdate:
		return "update"
	default:
		return "auto"
	}
}

// SetOptions passes through to the underlying record's attribute setter.
type SetOptions struct {
	// Unset removes the attribute instead of assigning it.
	Unset bool
}

// SaveOptions controls how a save is forwarded to the underlying record.
type SaveOptions struct {
	Method Method
	// Patch selects partial-update semantics: only the keys in the save
	// payload are sent downstream, and virtual setters run against a
	// capture buffer first.
	Patch bool
}

// Record is the persistence collaborator a Model decorates. Implementations
// own attribute storage, plain serialization, and save mechanics; the
// virtuals layer never reaches around this interface.
type Record interface {
	// Get returns the current value of a real attribute. Unknown names
	// return nil. Trailing args are forwarded for implementations that
	// support parameterized reads.
	Get(name string, args ...any) any

	// Set assigns (or, per opts, unsets) a single real attribute.
	Set(name string, value any, opts SetOptions) error

	// SetAll assigns a bag of real attributes in one call.
	SetAll(values map[string]any, opts SetOptions) error

	// ToJSON returns a plain mapping of the persisted attributes. Callers
	// may mutate the returned map.
	ToJSON() map[string]any

	// Save persists values according to opts and resolves the record's
	// identity when inserting.
	Save(ctx context.Context, values map[string]any, opts SaveOptions) error

	// IsNew reports whether the record has no persisted identity yet.
	IsNew() bool
}
