package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Package pipeline translates a logical step name plus a parameter map into
// one external tool invocation. Flag synthesis order follows the caller's
// JSON object key order, so Args cannot be a Go map: it decodes the object
// token-by-token into an ordered parameter list.

// ErrNestedValue is returned when a parameter value is an object or array.
// Parameter values are scalars only: boolean, number, string, or null.
var ErrNestedValue = errors.New("parameter values must be scalar")

// Param is one named parameter. Value is bool, json.Number, string, or nil.
type Param struct {
	Key   string
	Value any
}

// Args is an ordered parameter list preserving JSON object insertion order.
type Args []Param

// UnmarshalJSON decodes a JSON object into an ordered list of parameters.
func (a *Args) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("args: expected JSON object, got %v", tok)
	}

	out := Args{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		if _, nested := valTok.(json.Delim); nested {
			return fmt.Errorf("args: key %q: %w", key, ErrNestedValue)
		}
		out = append(out, Param{Key: key, Value: valTok})
	}
	// Consume closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = out
	return nil
}

// MarshalJSON re-encodes the parameters as a JSON object in original order.
func (a Args) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
