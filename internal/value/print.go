package value

import (
	"fmt"
	"io"
)

// Print writes args comma-separated followed by a newline to w and returns
// None. It takes an explicit writer (rather than living in the Callable
// table) because it is the one builtin with a side channel to the host.
func Print(w io.Writer, args []Value) (Value, error) {
	for i, a := range args {
		if i != 0 {
			fmt.Fprint(w, ", ")
		}
		fmt.Fprint(w, a.String())
	}
	fmt.Fprintln(w)
	return None{}, nil
}
