// Package storage defines the field-keyed record store shapes are saved to
// and loaded from, and the document format holding one record per shape.
//
// A record is a flat set of named fields. Field values are integers, floats,
// strings or float slices. Readers convert between integer and float values
// where that loses nothing, so records survive encodings that don't
// distinguish the two.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrMissingField is returned when a record lacks a requested field.
	ErrMissingField = errors.New("missing field")
	// ErrFieldType is returned when a field can't be converted to the
	// requested type.
	ErrFieldType = errors.New("wrong field type")
)

// Reader reads the fields of a single record.
type Reader interface {
	Has(name string) bool
	Int(name string) (int, error)
	Float(name string) (float64, error)
	String(name string) (string, error)
	Floats(name string) ([]float64, error)
}

// Writer writes the fields of a single record. Setting a field that already
// exists replaces it.
type Writer interface {
	SetInt(name string, v int)
	SetFloat(name string, v float64)
	SetString(name string, v string)
	SetFloats(name string, v []float64)
}

// Record is an in-memory record. It implements both [Reader] and [Writer] and
// is what documents hold.
type Record map[string]any

var (
	_ Reader = Record(nil)
	_ Writer = Record(nil)
)

func (r Record) SetInt(name string, v int)          { r[name] = v }
func (r Record) SetFloat(name string, v float64)    { r[name] = v }
func (r Record) SetString(name string, v string)    { r[name] = v }
func (r Record) SetFloats(name string, v []float64) { r[name] = slices.Clone(v) }

func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

func (r Record) get(name string) (any, error) {
	v, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrMissingField)
	}
	return v, nil
}

// Int returns an integer field. Float values are accepted if they are
// integral.
func (r Record) Int(name string) (int, error) {
	v, err := r.get(name)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			break
		}
		return int(v), nil
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("%q: %T is not an integer: %w", name, v, ErrFieldType)
	}
	return int(f), nil
}

func (r Record) Float(name string) (float64, error) {
	v, err := r.get(name)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("%q: %T is not a number: %w", name, v, ErrFieldType)
	}
	return f, nil
}

func (r Record) String(name string) (string, error) {
	v, err := r.get(name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%q: %T is not a string: %w", name, v, ErrFieldType)
	}
	return s, nil
}

// Floats returns a copy of a float slice field. Slices of any numeric values
// are accepted.
func (r Record) Floats(name string) ([]float64, error) {
	v, err := r.get(name)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case []float64:
		return slices.Clone(v), nil
	case []any:
		out := make([]float64, len(v))
		for i, e := range v {
			f, ok := toFloat(e)
			if !ok {
				return nil, fmt.Errorf("%q[%d]: %T is not a number: %w", name, i, e, ErrFieldType)
			}
			out[i] = f
		}
		return out, nil
	}
	return nil, fmt.Errorf("%q: %T is not a list of numbers: %w", name, v, ErrFieldType)
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		switch v := v.(type) {
		case []float64:
			out[k] = slices.Clone(v)
		case []any:
			out[k] = slices.Clone(v)
		default:
			out[k] = v
		}
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
