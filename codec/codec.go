// Package codec decodes the documents compared by the deepdist command and
// encodes its reports.
//
// Documents are decoded into plain Go values (map[string]any, []any,
// string, bool, nil and numbers). Integral numbers become int and all other
// numbers float64, so 1 and 1.0 stay distinguishable.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	// Document decodes data into a plain Go value.
	Document(data []byte) (any, error)
	Name() string
}

// Default is the codec used by the deepdist command.
var Default Codec = GoJSON{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for internal tests/benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}

type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
}

// normalize replaces decoded number literals with int or float64.
func normalize(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			n, err := normalize(e)
			if err != nil {
				return nil, err
			}
			t[k] = n
		}
		return t, nil
	case []any:
		for i, e := range t {
			n, err := normalize(e)
			if err != nil {
				return nil, err
			}
			t[i] = n
		}
		return t, nil
	case number:
		if i, err := t.Int64(); err == nil {
			return int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %v: %w", t, err)
		}
		return f, nil
	default:
		return v, nil
	}
}
