package value

import "math"

// arity helpers, mirroring the reference implementation's get_args1/get_args2.

func args2(name string, args []Value) (Value, Value, error) {
	if len(args) != 2 {
		return nil, nil, errorf("%s expects 2 arguments, got %d", name, len(args))
	}
	return args[0], args[1], nil
}

func args1(name string, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, errorf("%s expects 1 argument, got %d", name, len(args))
	}
	return args[0], nil
}

func numericPair(name string, args []Value) (Number, Number, error) {
	a, b, err := args2(name, args)
	if err != nil {
		return 0, 0, err
	}
	an, ok := a.(Number)
	if !ok {
		return 0, 0, errorf("%s expects numbers, got %s", name, a.TypeName())
	}
	bn, ok := b.(Number)
	if !ok {
		return 0, 0, errorf("%s expects numbers, got %s", name, b.TypeName())
	}
	return an, bn, nil
}

func Add(args []Value) (Value, error) {
	a, b, err := numericPair("add", args)
	if err != nil {
		return nil, err
	}
	return a + b, nil
}

func Sub(args []Value) (Value, error) {
	a, b, err := numericPair("sub", args)
	if err != nil {
		return nil, err
	}
	return a - b, nil
}

func Mul(args []Value) (Value, error) {
	a, b, err := numericPair("mul", args)
	if err != nil {
		return nil, err
	}
	return a * b, nil
}

func Div(args []Value) (Value, error) {
	a, b, err := numericPair("div", args)
	if err != nil {
		return nil, err
	}
	return a / b, nil
}

func Lt(args []Value) (Value, error) {
	a, b, err := numericPair("lt", args)
	if err != nil {
		return nil, err
	}
	return Boolean(a < b), nil
}

func Gt(args []Value) (Value, error) {
	a, b, err := numericPair("gt", args)
	if err != nil {
		return nil, err
	}
	return Boolean(a > b), nil
}

func Lte(args []Value) (Value, error) {
	a, b, err := numericPair("lte", args)
	if err != nil {
		return nil, err
	}
	return Boolean(a <= b), nil
}

func Gte(args []Value) (Value, error) {
	a, b, err := numericPair("gte", args)
	if err != nil {
		return nil, err
	}
	return Boolean(a >= b), nil
}

func Eq(args []Value) (Value, error) {
	a, b, err := args2("eq", args)
	if err != nil {
		return nil, err
	}
	return Boolean(Equal(a, b)), nil
}

func Neq(args []Value) (Value, error) {
	a, b, err := args2("neq", args)
	if err != nil {
		return nil, err
	}
	return Boolean(!Equal(a, b)), nil
}

func Floor(args []Value) (Value, error) {
	v, err := args1("floor", args)
	if err != nil {
		return nil, err
	}
	n, ok := v.(Number)
	if !ok {
		return nil, errorf("floor expects a number, got %s", v.TypeName())
	}
	return Number(math.Floor(float64(n))), nil
}

func Ceil(args []Value) (Value, error) {
	v, err := args1("ceil", args)
	if err != nil {
		return nil, err
	}
	n, ok := v.(Number)
	if !ok {
		return nil, errorf("ceil expects a number, got %s", v.TypeName())
	}
	return Number(math.Ceil(float64(n))), nil
}

// ArrayNew builds a new shared Array from the given elements.
func ArrayNew(args []Value) (Value, error) {
	elements := make([]Value, len(args))
	copy(elements, args)
	return NewArray(elements), nil
}

// AssertEqual returns None if a == b, otherwise an error carrying both
// representations (the diagnostic wrapping layer attaches the call token).
func AssertEqual(args []Value) (Value, error) {
	a, b, err := args2("AssertEqual", args)
	if err != nil {
		return nil, err
	}
	if !Equal(a, b) {
		return nil, errorf("assertion failed: %s != %s", a, b)
	}
	return None{}, nil
}

// Index implements 1-based, validated array indexing.
func Index(base, index Value) (Value, error) {
	arr, ok := base.(*Array)
	if !ok {
		return nil, errorf("cannot index a value of type %s", base.TypeName())
	}
	n, ok := index.(Number)
	if !ok {
		return nil, errorf("array index must be a number, got %s", index.TypeName())
	}
	if !n.IsWhole() || n <= 0 {
		return nil, errorf("array index must be a positive whole number, got %s", n)
	}
	i := int(n) - 1
	if i < 0 || i >= len(arr.Elements) {
		return nil, errorf("array index %d out of range (length %d)", int(n), len(arr.Elements))
	}
	return arr.Elements[i], nil
}

// MutableIndex stores to into base[index], with the same validation as Index.
func MutableIndex(base Value, index Value, to Value) error {
	arr, ok := base.(*Array)
	if !ok {
		return errorf("cannot index a value of type %s", base.TypeName())
	}
	n, ok := index.(Number)
	if !ok {
		return errorf("array index must be a number, got %s", index.TypeName())
	}
	if !n.IsWhole() || n <= 0 {
		return errorf("array index must be a positive whole number, got %s", n)
	}
	i := int(n) - 1
	if i < 0 || i >= len(arr.Elements) {
		return errorf("array index %d out of range (length %d)", int(n), len(arr.Elements))
	}
	arr.Elements[i] = to
	return nil
}

// MemberAccess implements read-only .length and read/write .heapsize on
// arrays; every other member name on any type is an error.
func MemberAccess(base Value, member string) (Value, error) {
	arr, ok := base.(*Array)
	if !ok {
		return nil, errorf("cannot access member '%s' of %s", member, base.TypeName())
	}
	switch member {
	case "length":
		return Number(len(arr.Elements)), nil
	case "heapsize":
		return arr.Heapsize, nil
	default:
		return nil, errorf("cannot access member '%s' of %s", member, base.TypeName())
	}
}

// MutableMemberAccess stores to base.member; only .heapsize is writable.
func MutableMemberAccess(base Value, member string, to Value) error {
	arr, ok := base.(*Array)
	if !ok {
		return errorf("cannot access member '%s' of %s", member, base.TypeName())
	}
	switch member {
	case "length":
		return errorf("'.length' is read-only")
	case "heapsize":
		arr.Heapsize = to
		return nil
	default:
		return errorf("cannot access member '%s' of %s", member, base.TypeName())
	}
}
