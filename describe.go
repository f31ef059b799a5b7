package virtuals

import (
	"fmt"
	"sort"
	"strings"
)

// FieldDescriptor describes a path in a serialized model and the inferred
// type of the value found there.
type FieldDescriptor struct {
	Path string
	Type string
}

// DescribeJSON serializes m (honoring the supplied JSON options) and derives
// flattened field descriptors for the output, virtuals included when the
// serialization rules include them.
func DescribeJSON(m *Model, opts ...JSONOption) ([]FieldDescriptor, error) {
	payload, err := m.ToJSON(opts...)
	if err != nil {
		return nil, err
	}
	descriptors := deriveFieldDescriptors(payload, "")
	if descriptors == nil {
		descriptors = []FieldDescriptor{}
	}
	return descriptors, nil
}

func deriveFieldDescriptors(value any, prefix string) []FieldDescriptor {
	if value == nil {
		return nil
	}

	switch typed := value.(type) {
	case map[string]any:
		if len(typed) == 0 {
			return []FieldDescriptor{{
				Path: prefix,
				Type: "map[string]any",
			}}
		}
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var fields []FieldDescriptor
		for _, key := range keys {
			nextPrefix := joinPath(prefix, key)
			fields = append(fields, deriveFieldDescriptors(typed[key], nextPrefix)...)
		}
		return fields
	case []any:
		elementType := "any"
		if len(typed) > 0 {
			elementType = typeName(typed[0])
		}
		return []FieldDescriptor{{
			Path: prefix,
			Type: "[]" + elementType,
		}}
	default:
		if prefix == "" {
			return nil
		}
		return []FieldDescriptor{{
			Path: prefix,
			Type: typeName(typed),
		}}
	}
}

func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}

func joinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return strings.Join([]string{prefix, segment}, ".")
}
