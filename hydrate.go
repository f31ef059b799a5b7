package virtuals

import (
	"fmt"

	"github.com/goliatone/go-virtuals/internal/hydrate"
)

// As serializes m through ToJSON and decodes the result into T via a JSON
// round trip. Virtual inclusion follows the same rules as ToJSON, so the
// typed view can carry computed fields alongside persisted ones.
func As[T any](m *Model, opts ...JSONOption) (T, error) {
	var zero T
	payload, err := m.ToJSON(opts...)
	if err != nil {
		return zero, err
	}
	decoder := hydrate.NewDecoder[T]()
	return decoder.Decode(m.hydrateContext(), payload)
}

func (m *Model) hydrateContext() hydrate.Context {
	ctx := hydrate.Context{ObjectType: m.cfg.objectType}
	if ctx.ObjectType == "" {
		ctx.ObjectType = "model"
	}
	if value := m.rec.Get(m.cfg.idAttribute); value != nil {
		ctx.ObjectID = fmt.Sprint(value)
	}
	return ctx
}
