// Package core implements the layout optimizer: keyboard geometry, the
// character/frequency interning of a corpus, trigram-type classification,
// weight tables, layouts, and the greedy hill-climb optimizer that ties
// them together.
package core

import (
	"fmt"
	"io"
	"log"
)

// Must unwraps val if err is nil, and panics otherwise. Useful for values
// that are only ever invalid due to a programming error (e.g. a baked-in
// keyboard geometry failing its own invariant check).
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustFprintf writes a formatted string to w, logging and exiting on error.
// Used by the reporting helpers where a write failure (e.g. a closed pipe)
// is not something the caller can meaningfully recover from.
func MustFprintf(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		log.Fatalf("Fprintf failed: %v", err)
	}
}
