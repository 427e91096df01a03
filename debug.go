package bango

import (
	"fmt"
	"io"
	"os"
)

// debugOut is where debug diagnostics are written.
var debugOut io.Writer = os.Stderr

// globalDebug mirrors the most recently set Surface debug flag so that element
// operations (which lack a Surface pointer) can check it cheaply. Only valid
// with a single Surface; multiple Surfaces with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugf prints a prefixed diagnostic line.
func debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(debugOut, "[bango] "+format+"\n", args...)
}

// elementLabel formats an element for diagnostics.
func elementLabel(e *Element) string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%q#%d", e.Name, e.ID)
}

// debugCheckDisposed panics with a descriptive message when a disposed element
// is used in a tree operation. Only called in debug mode.
func debugCheckDisposed(e *Element, op string) {
	if e.disposed {
		panic(fmt.Sprintf("bango debug: %s on disposed element %q", op, e.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(e *Element) {
	depth := 0
	for p := e; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugf("warning: tree depth %d exceeds %d (element %q)", depth, debugMaxTreeDepth, e.Name)
	}
}

// debugCheckChildCount warns if an element has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(e *Element) {
	if len(e.children) > debugMaxChildCount {
		debugf("warning: element %q has %d children (threshold %d)",
			e.Name, len(e.children), debugMaxChildCount)
	}
}
