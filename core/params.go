package core

import (
	"bytes"
	"encoding/json"
	"iter"
	"maps"

	"github.com/pkg/errors"
)

type ParamsKind int

const (
	ParamsNone ParamsKind = iota
	ParamsPositional
	ParamsNamed
)

func (k ParamsKind) String() string {
	switch k {
	case ParamsPositional:
		return "positional"
	case ParamsNamed:
		return "named"
	default:
		return "none"
	}
}

// Params is the argument set of one call. It is either empty, an ordered
// sequence of positional values, or a sequence of named values. Nothing is
// collected until the params are marshalled into the request body.
type Params struct {
	kind       ParamsKind
	positional iter.Seq[any]
	named      iter.Seq2[string, any]
}

// Pair is one named argument.
type Pair struct {
	Name  string
	Value any
}

func NoParams() Params {
	return Params{kind: ParamsNone}
}

func Positional(values ...any) Params {
	return PositionalSeq(func(yield func(any) bool) {
		for _, v := range values {
			if !yield(v) {
				return
			}
		}
	})
}

func PositionalSeq(seq iter.Seq[any]) Params {
	return Params{kind: ParamsPositional, positional: seq}
}

// Named builds named params from pairs. Names must be unique.
func Named(pairs ...Pair) Params {
	return NamedSeq(func(yield func(string, any) bool) {
		for _, p := range pairs {
			if !yield(p.Name, p.Value) {
				return
			}
		}
	})
}

func NamedSeq(seq iter.Seq2[string, any]) Params {
	return Params{kind: ParamsNamed, named: seq}
}

func NamedMap(m map[string]any) Params {
	return NamedSeq(maps.All(m))
}

func (p Params) Kind() ParamsKind {
	return p.kind
}

// IsZero reports an empty param set; the envelope omits params entirely.
func (p Params) IsZero() bool {
	return p.kind == ParamsNone
}

// MarshalJSON converts the params into their wire shape: a JSON array for
// positional params, a JSON object for named params and null for none.
func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch p.kind {
	case ParamsPositional:
		buf.WriteByte('[')
		i := 0
		for v := range p.positional {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err = writeJSON(&buf, v); err != nil {
				return nil, errors.Wrapf(err, "positional param %d", i)
			}
			i++
		}
		buf.WriteByte(']')
	case ParamsNamed:
		buf.WriteByte('{')
		i := 0
		for name, v := range p.named {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err = writeJSON(&buf, name); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			if err = writeJSON(&buf, v); err != nil {
				return nil, errors.Wrapf(err, "named param %q", name)
			}
			i++
		}
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}

	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	bts, err := json.Marshal(v)
	if err != nil {
		return err
	}

	buf.Write(bts)
	return nil
}
