// Package value defines the in-memory document model accepted by the RODB encoder.
//
// A document is a tree of Value. The variant set is closed: Bool, Int, Float,
// Str, Array and Map are the only implementations of Value, which lets the
// encoder match exhaustively with a type switch. There is no null, date,
// binary or object variant; loaders must reject such input while building the
// tree.
//
// Map keys are stored as Value rather than string so that a loader can
// represent a source mapping with a non-string key faithfully. The encoder is
// the single place that enforces the string-key rule.
package value

import (
	"fmt"
	"strings"

	"github.com/arloliu/rodb/errs"
)

// Kind identifies the variant of a Value.
type Kind uint8

const (
	KindBool Kind = iota + 1
	KindInt
	KindFloat
	KindStr
	KindArray
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindStr:
		return "Str"
	case KindArray:
		return "Array"
	case KindMap:
		return "Map"
	default:
		return "Unknown"
	}
}

// Value is a node of a document tree.
type Value interface {
	// Kind returns the variant of the value.
	Kind() Kind

	isValue()
}

type (
	// Bool is a boolean value.
	Bool bool
	// Int is a 32-bit signed integer value.
	Int int32
	// Float is an IEEE-754 binary32 value.
	Float float32
	// Str is a byte string without embedded NUL bytes.
	Str string
	// Array is an ordered sequence of values.
	Array []Value
	// Map is a collection of key/value entries. Entry order carries no meaning.
	Map []Entry
)

// Entry is a single key/value pair of a Map.
type Entry struct {
	Key Value
	Val Value
}

var (
	_ Value = Bool(false)
	_ Value = Int(0)
	_ Value = Float(0)
	_ Value = Str("")
	_ Value = Array(nil)
	_ Value = Map(nil)
)

func (Bool) Kind() Kind  { return KindBool }
func (Int) Kind() Kind   { return KindInt }
func (Float) Kind() Kind { return KindFloat }
func (Str) Kind() Kind   { return KindStr }
func (Array) Kind() Kind { return KindArray }
func (Map) Kind() Kind   { return KindMap }

func (Bool) isValue()  {}
func (Int) isValue()   {}
func (Float) isValue() {}
func (Str) isValue()   {}
func (Array) isValue() {}
func (Map) isValue()   {}

// NewStr returns s as a Str, rejecting strings with an embedded NUL byte.
func NewStr(s string) (Str, error) {
	if err := CheckStr(s); err != nil {
		return "", err
	}

	return Str(s), nil
}

// CheckStr returns ErrEmbeddedNUL if s contains a NUL byte.
func CheckStr(s string) error {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return fmt.Errorf("%w at byte %d", errs.ErrEmbeddedNUL, i)
	}

	return nil
}

// StrMap builds a Map from a Go map with string keys.
//
// The resulting entry order follows Go map iteration and is therefore
// unspecified; the encoder sorts keys, so the encoded bytes are deterministic.
func StrMap(m map[string]Value) Map {
	out := make(Map, 0, len(m))
	for k, v := range m {
		out = append(out, Entry{Key: Str(k), Val: v})
	}

	return out
}

// KindOf returns the kind of v, or 0 when v is nil.
func KindOf(v Value) Kind {
	if v == nil {
		return 0
	}

	return v.Kind()
}

// IsContainer reports whether v is an Array or a Map.
func IsContainer(v Value) bool {
	k := KindOf(v)
	return k == KindArray || k == KindMap
}
