// Package ir defines the register-style linear intermediate representation
// that the lowering pass produces and the VM executes: IR values (places),
// instructions, and per-function instruction listings with a temporary
// counter.
package ir

import (
	"fmt"
	"strings"

	"github.com/AshTS/CLRSPseudocode/internal/token"
	"github.com/AshTS/CLRSPseudocode/internal/value"
)

// Value is an IR operand: an immediate, a variable reference, or a
// member/index wrapper around another Value. Member/index wrappers carry no
// instruction of their own — they are resolved at the point of use.
type Value interface {
	fmt.Stringer
	irValue()
}

// Immediate is a constant value, optionally remembering the token it came
// from (for diagnostics).
type Immediate struct {
	Value value.Value
	Token *token.Token
}

func (Immediate) irValue()        {}
func (i Immediate) String() string { return i.Value.String() }

// Variable is a named place: either a source identifier token or a
// synthesized name (a compiler temporary).
type Variable struct {
	Name  string
	Token *token.Token // nil for synthesized temporaries
}

func (Variable) irValue()        {}
func (v Variable) String() string { return v.Name }

// IsTemp reports whether the variable is a compiler-synthesized temporary —
// the "$" rule the visualizer's visible-name filter relies on.
func (v Variable) IsTemp() bool { return strings.Contains(v.Name, "$") }

// MemberAccess wraps base.member; Member is always a Variable naming the
// member identifier.
type MemberAccess struct {
	Base   Value
	Member Value
}

func (MemberAccess) irValue()        {}
func (m MemberAccess) String() string { return fmt.Sprintf("%s.%s", m.Base, m.Member) }

// Indexing wraps base[index].
type Indexing struct {
	Base  Value
	Index Value
}

func (Indexing) irValue()        {}
func (ix Indexing) String() string { return fmt.Sprintf("%s[%s]", ix.Base, ix.Index) }

// BinaryOp names a BinaryOp instruction's operator.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Lt
	Gt
	Lte
	Gte
	Eq
	Neq
)

var binaryOpNames = [...]string{"add", "sub", "mul", "div", "lt", "gt", "lte", "gte", "equal", "nequal"}

func (op BinaryOp) String() string { return binaryOpNames[op] }

// BuiltinName is the value-package dispatch name for op, used by the VM and
// interpreter to invoke the shared builtin implementation.
func (op BinaryOp) BuiltinName() string { return binaryOpNames[op] }

// InstructionKind is the payload of one IR Instruction.
type InstructionKind interface {
	fmt.Stringer
	instructionKind()
}

// Return sets the frame's return value; does not itself pop the frame.
type Return struct{ Value Value }

func (Return) instructionKind()  {}
func (r Return) String() string { return render("return", r.Value.String()) }

// Assign evaluates Src and stores it into the place Dest.
type Assign struct{ Dest, Src Value }

func (Assign) instructionKind()  {}
func (a Assign) String() string { return render("assign", a.Dest.String(), a.Src.String()) }

// BinaryOpInst applies Op to Lhs/Rhs and stores the result into Dest.
type BinaryOpInst struct {
	Op       BinaryOp
	Dest     Value
	Lhs, Rhs Value
}

func (BinaryOpInst) instructionKind() {}
func (b BinaryOpInst) String() string {
	return render(b.Op.String(), b.Dest.String(), b.Lhs.String(), b.Rhs.String())
}

// Call invokes Callee (a Variable naming a function) with Args and stores
// the result into Dest.
type Call struct {
	Callee Value
	Dest   Value
	Args   []Value
}

func (Call) instructionKind() {}
func (c Call) String() string {
	args := make([]string, 0, len(c.Args)+2)
	args = append(args, c.Callee.String(), c.Dest.String())
	for _, a := range c.Args {
		args = append(args, a.String())
	}
	return render("call", args...)
}

// Branch evaluates Cond (must be Boolean) and jumps to True or False.
type Branch struct {
	Cond        Value
	True, False int
}

func (Branch) instructionKind() {}
func (b Branch) String() string {
	return render("branch", b.Cond.String(), fmt.Sprint(b.True), fmt.Sprint(b.False))
}

// Goto unconditionally jumps to Target.
type Goto struct{ Target int }

func (Goto) instructionKind()  {}
func (g Goto) String() string { return render("goto", fmt.Sprint(g.Target)) }

func render(opcode string, args ...string) string {
	return fmt.Sprintf("%-10s %s", opcode, strings.Join(args, ", "))
}

// Instruction is one IR instruction, annotated with the source line that
// produced it.
type Instruction struct {
	Line int
	Kind InstructionKind
}

func (i Instruction) String() string {
	return fmt.Sprintf("[%3d]  %s", i.Line, i.Kind)
}

// Function is a lowered function: its parameter list and flat instruction
// stream.
type Function struct {
	Name       token.Token
	Parameters []token.Token
	Instructions []Instruction
	nextTemp   int
	Source     string
}

// NewFunction creates an empty Function ready to receive instructions.
func NewFunction(name token.Token, params []token.Token, source string) *Function {
	return &Function{Name: name, Parameters: params, Source: source}
}

// AddInstruction appends an instruction and returns its index.
func (f *Function) AddInstruction(line int, kind InstructionKind) int {
	f.Instructions = append(f.Instructions, Instruction{Line: line, Kind: kind})
	return len(f.Instructions) - 1
}

// NextIndex returns the index the next AddInstruction call will occupy.
func (f *Function) NextIndex() int { return len(f.Instructions) }

// NewTemp synthesizes a fresh temp$<n> variable, bumping the per-function
// counter.
func (f *Function) NewTemp() Variable {
	name := fmt.Sprintf("temp$%d", f.nextTemp)
	f.nextTemp++
	return Variable{Name: name}
}

func (f *Function) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(", f.Name.Text)
	for i, p := range f.Parameters {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Text)
	}
	b.WriteString(")\n")
	for i, inst := range f.Instructions {
		fmt.Fprintf(&b, "  %-3d %s\n", i, inst)
	}
	return b.String()
}
