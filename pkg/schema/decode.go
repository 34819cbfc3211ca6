package schema

import (
	"math"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

type kind uint8

const (
	kindString kind = iota
	kindNumber
	kindInteger
)

// field declares one accepted key of a payload.
type field struct {
	// name is the canonical JSON key.
	name string
	// alias is the snake_case key older site forms post.
	alias string
	kind  kind
}

// values holds the type-checked fields of a payload, keyed by canonical name.
// Numbers are float64, strings are string; absent and null fields are missing.
type values map[string]any

func (v values) str(name string) *string {
	s, ok := v[name].(string)
	if !ok {
		return nil
	}

	return &s
}

func (v values) num(name string) *float64 {
	f, ok := v[name].(float64)
	if !ok {
		return nil
	}

	return &f
}

// decodeObject reads body as a JSON object and type-checks every declared key.
// Unknown keys are skipped. Type mismatches are returned as violations, while a
// payload that is not a well-formed object is returned as an error.
func decodeObject(body []byte, fields []field) (values, []Violation, error) {
	byKey := make(map[string]field, len(fields)*2)
	for _, f := range fields {
		byKey[f.name] = f
		if f.alias != "" {
			byKey[f.alias] = f
		}
	}

	d := jx.DecodeBytes(body)
	if d.Next() != jx.Object {
		return nil, nil, errors.New("payload is not a JSON object")
	}

	out := values{}
	mismatched := map[string]Violation{}
	err := d.Obj(func(d *jx.Decoder, key string) error {
		f, ok := byKey[key]
		if !ok {
			return d.Skip()
		}

		delete(out, f.name)
		delete(mismatched, f.name)

		if d.Next() == jx.Null {
			return d.Null()
		}

		v, violation, err := decodeValue(d, f)
		if err != nil {
			return errors.Wrapf(err, "decode %q", key)
		}
		if violation != nil {
			mismatched[f.name] = *violation

			return nil
		}
		out[f.name] = v

		return nil
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "read object")
	}
	if d.Next() != jx.Invalid {
		return nil, nil, errors.New("unexpected data after JSON object")
	}

	violations := make([]Violation, 0, len(mismatched))
	for _, f := range fields {
		if v, ok := mismatched[f.name]; ok {
			violations = append(violations, v)
		}
	}

	return out, violations, nil
}

func decodeValue(d *jx.Decoder, f field) (any, *Violation, error) {
	switch f.kind {
	case kindString:
		if d.Next() != jx.String {
			return nil, &Violation{Field: f.name, Constraint: "string", Message: "must be a string"}, d.Skip()
		}
		s, err := d.Str()

		return s, nil, err
	default:
		if d.Next() != jx.Number {
			return nil, typeViolation(f), d.Skip()
		}
		n, err := d.Float64()
		if err != nil {
			return nil, nil, err
		}
		if f.kind == kindInteger && n != math.Trunc(n) {
			return nil, typeViolation(f), nil
		}

		return n, nil, nil
	}
}

func typeViolation(f field) *Violation {
	if f.kind == kindInteger {
		return &Violation{Field: f.name, Constraint: "integer", Message: "must be an integer"}
	}

	return &Violation{Field: f.name, Constraint: "number", Message: "must be a number"}
}
