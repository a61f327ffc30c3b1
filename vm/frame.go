package vm

import (
	"github.com/AshTS/CLRSPseudocode/internal/diag"
	"github.com/AshTS/CLRSPseudocode/internal/ir"
	"github.com/AshTS/CLRSPseudocode/internal/value"
)

// Touch is one read/write audit entry: a variable name, and an optional
// 1-based index when the touch was to an array element.
type Touch struct {
	Name  string
	Index *int
}

// Frame is one VM call activation: the function it's executing, its
// variable bindings, the instruction cursor, and the visualizer's
// read/write audit trail.
type Frame struct {
	Function     *ir.Function
	Variables    map[string]value.Value
	Line         int
	LastLine     *int
	LastUpdated  []Touch
	LastRead     []Touch
	ReturnValue  *value.Value
	PassedReturn *value.Value
	LastLines    []int
}

// NewFrame creates a frame ready to execute fn with the given argument
// values bound to its parameters, and lastLines recording the call chain
// (used only for the visualizer's ancestor-lines display).
func NewFrame(fn *ir.Function, args []value.Value, lastLines []int) *Frame {
	f := &Frame{
		Function:  fn,
		Variables: make(map[string]value.Value),
		LastLines: lastLines,
	}
	for i, param := range fn.Parameters {
		if i < len(args) {
			f.Variables[param.Text] = args[i]
		}
	}
	return f
}

// Clear empties the read/write audit lists, ready for the next visible step.
func (f *Frame) Clear() {
	f.LastUpdated = nil
	f.LastRead = nil
}

// NextInstruction returns the instruction at the cursor, or nil if the
// cursor has run off the end (should not happen in well-formed IR, since
// every function ends with an explicit Return).
func (f *Frame) NextInstruction() *ir.Instruction {
	if f.Line < 0 || f.Line >= len(f.Function.Instructions) {
		return nil
	}
	return &f.Function.Instructions[f.Line]
}

func (f *Frame) touchUpdated(name string, index *int) {
	f.LastUpdated = append(f.LastUpdated, Touch{Name: name, Index: index})
}

func (f *Frame) touchRead(name string, index *int) {
	f.LastRead = append(f.LastRead, Touch{Name: name, Index: index})
}

// loadValue evaluates an IR value against this frame's variable bindings,
// performing read auditing when report is true (report is false for the
// base of a MemberAccess/Indexing, which is touched via the member/index
// read itself, per §4.5).
func (f *Frame) loadValue(v ir.Value, report bool) (value.Value, error) {
	switch iv := v.(type) {
	case ir.Immediate:
		return iv.Value, nil

	case ir.Variable:
		val, ok := f.Variables[iv.Name]
		if !ok {
			return nil, f.undefinedVariable(iv)
		}
		if report {
			f.touchRead(iv.Name, nil)
		}
		return val, nil

	case ir.MemberAccess:
		baseName := baseVariableName(iv.Base)
		base, err := f.loadValue(iv.Base, false)
		if err != nil {
			return nil, err
		}
		if report {
			f.touchRead(baseName, nil)
		}
		result, err := value.MemberAccess(base, memberName(iv.Member))
		if err != nil {
			return nil, &DiagError{diag.Errorf(nil, "%s", err)}
		}
		return result, nil

	case ir.Indexing:
		baseName := baseVariableName(iv.Base)
		base, err := f.loadValue(iv.Base, false)
		if err != nil {
			return nil, err
		}
		idx, err := f.loadValue(iv.Index, report)
		if err != nil {
			return nil, err
		}
		if n, ok := idx.(value.Number); ok && report {
			i := int(n)
			f.touchRead(baseName, &i)
		}
		result, err := value.Index(base, idx)
		if err != nil {
			return nil, &DiagError{diag.Errorf(nil, "%s", err)}
		}
		return result, nil

	default:
		return nil, &DiagError{diag.Errorf(nil, "internal error: cannot evaluate IR value")}
	}
}

// storeValueInto stores to the place described by v, with the same auditing
// rules as loadValue.
func (f *Frame) storeValueInto(v ir.Value, to value.Value) error {
	switch iv := v.(type) {
	case ir.Variable:
		f.Variables[iv.Name] = to
		f.touchUpdated(iv.Name, nil)
		return nil

	case ir.MemberAccess:
		baseName := baseVariableName(iv.Base)
		base, err := f.loadValue(iv.Base, false)
		if err != nil {
			return err
		}
		f.touchUpdated(baseName, nil)
		if err := value.MutableMemberAccess(base, memberName(iv.Member), to); err != nil {
			return &DiagError{diag.Errorf(nil, "%s", err)}
		}
		return nil

	case ir.Indexing:
		baseName := baseVariableName(iv.Base)
		base, err := f.loadValue(iv.Base, false)
		if err != nil {
			return err
		}
		idx, err := f.loadValue(iv.Index, true)
		if err != nil {
			return err
		}
		if n, ok := idx.(value.Number); ok {
			i := int(n)
			f.touchUpdated(baseName, &i)
		}
		if err := value.MutableIndex(base, idx, to); err != nil {
			return &DiagError{diag.Errorf(nil, "%s", err)}
		}
		return nil

	case ir.Immediate:
		return &DiagError{diag.Errorf(iv.Token, "cannot assign to an immutable value '%s'", iv.Value)}

	default:
		return &DiagError{diag.Errorf(nil, "internal error: cannot assign to this place")}
	}
}

func (f *Frame) undefinedVariable(v ir.Variable) error {
	names := make([]string, 0, len(f.Variables))
	for n := range f.Variables {
		names = append(names, n)
	}
	d := diag.Errorf(v.Token, "variable '%s' is not defined", v.Name)
	if suggestion, ok := diag.Suggest(v.Name, names); ok {
		d = d.WithHelp("did you mean '" + suggestion + "'?")
	}
	return &DiagError{d}
}

func baseVariableName(v ir.Value) string {
	switch iv := v.(type) {
	case ir.Variable:
		return iv.Name
	case ir.MemberAccess:
		return baseVariableName(iv.Base)
	case ir.Indexing:
		return baseVariableName(iv.Base)
	default:
		return ""
	}
}

func memberName(v ir.Value) string {
	if variable, ok := v.(ir.Variable); ok {
		return variable.Name
	}
	return ""
}
