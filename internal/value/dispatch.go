package value

// BinaryFn is a two-argument builtin, the shape shared by all of the
// arithmetic/comparison builtins plus eq/neq.
type BinaryFn func([]Value) (Value, error)

// binaryOps lists every BinaryOp builtin name next to its implementation, in
// the same table-plus-index-map shape as the teacher's opcode table
// (asm.opcodes / asm.opcodeIndex): a flat ordered list built once, then an
// init()-populated map for name lookup.
var binaryOps = [...]struct {
	name string
	fn   BinaryFn
}{
	{"add", Add},
	{"sub", Sub},
	{"mul", Mul},
	{"div", Div},
	{"lt", Lt},
	{"gt", Gt},
	{"lte", Lte},
	{"gte", Gte},
	{"equal", Eq},
	{"nequal", Neq},
}

var binaryOpIndex = make(map[string]BinaryFn, len(binaryOps))

func init() {
	for _, op := range binaryOps {
		binaryOpIndex[op.name] = op.fn
	}
}

// LookupBinaryOp returns the builtin implementing the named binary op.
func LookupBinaryOp(name string) (BinaryFn, bool) {
	fn, ok := binaryOpIndex[name]
	return fn, ok
}

// CallableFn is a builtin invoked as Name(args...) from source.
type CallableFn func([]Value) (Value, error)

var callables = map[string]CallableFn{
	"Array": ArrayNew,
	"floor": Floor,
	"ceil":  Ceil,
}

// LookupCallable returns the builtin implementing the named free function,
// excluding Print and AssertEqual which need side-channel access (an
// io.Writer, a call-site token) that a plain CallableFn signature can't
// carry.
func LookupCallable(name string) (CallableFn, bool) {
	fn, ok := callables[name]
	return fn, ok
}

// IsBuiltinName reports whether name names any builtin callable at all
// (including Print and AssertEqual). The VM and interpreter do not call it;
// they test for Print and AssertEqual by name and then use LookupCallable.
func IsBuiltinName(name string) bool {
	if name == "Print" || name == "AssertEqual" {
		return true
	}
	_, ok := callables[name]
	return ok
}
