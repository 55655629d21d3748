package engine

import (
	"log"
	"strings"
)

// logContext carries the current recursion depth for indented trace output.
// It is passed by value down the call chain so independent passes never
// leak indentation into each other.
type logContext struct {
	depth int
}

func (l logContext) deeper() logContext {
	return logContext{depth: l.depth + 1}
}

func (l logContext) printf(format string, args ...any) {
	indent := strings.Repeat("  ", l.depth)
	log.Printf(indent+format, args...)
}
