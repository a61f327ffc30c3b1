// Package value implements the tagged value model shared by the VM and the
// tree-walking interpreter, and the builtin operations defined over it.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is one of Number, Boolean, None, or *Array.
type Value interface {
	TypeName() string
	String() string
}

// Number is a double-precision numeric value.
type Number float64

func (Number) TypeName() string { return "number" }
func (n Number) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }
func (n Number) IsWhole() bool  { return float64(n) == float64(int64(n)) }
func (n Number) AsInt() int64   { return int64(n) }

// Boolean is a truth value.
type Boolean bool

func (Boolean) TypeName() string { return "bool" }
func (b Boolean) String() string { return strconv.FormatBool(bool(b)) }

// None is the singleton absence-of-value.
type None struct{}

func (None) TypeName() string { return "none" }
func (None) String() string   { return "None" }

// Array is shared, mutable, reference-counted-by-nature state: every holder
// of the same *Array pointer observes the same elements and heapsize, which
// is how the language's only aliasing shows up in Go (a pointer to a small
// struct standing in for the reference-counted interior-mutable cell called
// for by the value model's ownership notes).
type Array struct {
	Elements []Value
	Heapsize Value
}

// NewArray builds an array with the given elements and heapsize initialized
// to Number(0), per the Array builtin's contract.
func NewArray(elements []Value) *Array {
	return &Array{Elements: elements, Heapsize: Number(0)}
}

func (*Array) TypeName() string { return "array" }

func (a *Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range a.Elements {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
	return b.String()
}

// IsNumeric reports whether v is a Number.
func IsNumeric(v Value) bool {
	_, ok := v.(Number)
	return ok
}

// Equal implements the value model's structural equality: two arrays
// compare equal when their elements and heapsize compare equal, regardless
// of identity; two empty arrays are always equal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case None:
		_, ok := b.(None)
		return ok
	case *Array:
		bv, ok := b.(*Array)
		if !ok {
			return false
		}
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return Equal(av.Heapsize, bv.Heapsize)
	default:
		return false
	}
}

// Error is a plain value-level failure (type mismatch, bad index, and so
// on). Callers that have a token on hand wrap it into a diag.Diagnostic;
// builtins themselves stay location-agnostic, mirroring the reference
// implementation's builtins returning a tokenless GenericError that its
// caller ".finish()"-es with a token.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func errorf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}
