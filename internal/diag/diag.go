// Package diag implements the structured diagnostics shared by the
// tokenizer, parser, lowering pass, and both execution back ends: severity,
// an optional anchoring token, a message, and optional arrow/help
// annotations. Diagnostics are data, not Go errors — they accumulate during
// a pass and are rendered or inspected by the host, the same split the
// teacher draws between asm.ErrAsm (an accumulated list) and an ad-hoc
// wrapped error for host-level failures.
package diag

import (
	"fmt"
	"strings"

	"github.com/AshTS/CLRSPseudocode/internal/token"
)

// Severity classifies a Diagnostic. Only Error fails the containing pass.
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Diagnostic is a single structured message, optionally anchored to a token.
type Diagnostic struct {
	Severity Severity
	Token    *token.Token
	Message  string
	Arrow    string
	Help     []string
}

func newDiag(sev Severity, tok *token.Token, message string) Diagnostic {
	return Diagnostic{Severity: sev, Token: tok, Message: message}
}

// Errorf builds an error-severity diagnostic anchored to tok (may be nil).
func Errorf(tok *token.Token, format string, args ...any) Diagnostic {
	return newDiag(Error, tok, fmt.Sprintf(format, args...))
}

// Warningf builds a warning-severity diagnostic anchored to tok (may be nil).
func Warningf(tok *token.Token, format string, args ...any) Diagnostic {
	return newDiag(Warning, tok, fmt.Sprintf(format, args...))
}

// Infof builds an info-severity diagnostic anchored to tok (may be nil).
func Infof(tok *token.Token, format string, args ...any) Diagnostic {
	return newDiag(Info, tok, fmt.Sprintf(format, args...))
}

// WithArrow attaches a caret annotation note and returns the receiver.
func (d Diagnostic) WithArrow(note string) Diagnostic {
	d.Arrow = note
	return d
}

// WithHelp appends a help line and returns the receiver.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = append(d.Help, help)
	return d
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", d.Severity, d.Message)
	if d.Token != nil {
		fmt.Fprintf(&b, "\n  --> %s", d.Token.Loc)
		if src := d.Token.Loc.Source; src != "" {
			lines := strings.Split(src, "\n")
			idx := d.Token.Loc.Line
			if idx >= 0 && idx < len(lines) {
				fmt.Fprintf(&b, "\n%4d | %s", idx+1, lines[idx])
				pad := strings.Repeat(" ", d.Token.Loc.Column)
				caret := strings.Repeat("^", maxInt(1, len([]rune(d.Token.Text))))
				fmt.Fprintf(&b, "\n     | %s%s", pad, caret)
				if d.Arrow != "" {
					fmt.Fprintf(&b, " %s", d.Arrow)
				}
			}
		}
	}
	for _, h := range d.Help {
		fmt.Fprintf(&b, "\n     = help: %s", h)
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// List is an accumulated, ordered sequence of diagnostics produced by one
// pass (tokenizing, parsing, lowering).
type List []Diagnostic

// Add appends d to the list in place, mirroring the reference
// implementation's ParserContext::add_error.
func (l *List) Add(d Diagnostic) {
	*l = append(*l, d)
}

// Failed reports whether any diagnostic in the list is Error severity.
func (l List) Failed() bool {
	for _, d := range l {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, d := range l {
		parts[i] = d.String()
	}
	return strings.Join(parts, "\n\n")
}
