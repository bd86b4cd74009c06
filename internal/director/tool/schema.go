// Package tool declares the director's bounded action catalogue: every
// tool the pipeline's agentic action node may name, its argument schema,
// its fracture/aura cost, and whether it is reachable from the chat fast
// path.
package tool

import "fmt"

// FieldType enumerates the primitive JSON types a tool argument may take.
// This mirrors the shape of a JSON-schema fragment without depending on
// jsonschema-go's validation machinery directly; the registry validates
// arguments against Schema itself, keeping the declared shape auditable
// without trusting an unexercised third-party validator.
type FieldType string

const (
	FieldString FieldType = "string"
	FieldNumber FieldType = "number"
	FieldBool   FieldType = "boolean"
)

// Field describes one named, typed, optionally required tool argument.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
}

// Schema is the declared shape of a tool's argument map.
type Schema struct {
	Fields []Field
}

// Validate checks args against the schema, returning the first violation.
func (s Schema) Validate(args map[string]any) error {
	for _, f := range s.Fields {
		v, present := args[f.Name]
		if !present {
			if f.Required {
				return fmt.Errorf("missing required argument %q", f.Name)
			}
			continue
		}
		if !matchesType(v, f.Type) {
			return fmt.Errorf("argument %q: expected %s, got %T", f.Name, f.Type, v)
		}
	}
	return nil
}

func matchesType(v any, t FieldType) bool {
	switch t {
	case FieldString:
		_, ok := v.(string)
		return ok
	case FieldNumber:
		switch v.(type) {
		case float64, int, int64:
			return true
		}
		return false
	case FieldBool:
		_, ok := v.(bool)
		return ok
	default:
		return false
	}
}
