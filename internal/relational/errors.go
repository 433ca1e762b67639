package relational

import (
	"fmt"
	"strings"
)

// RecursionLimitError aborts a run whose traversal exceeded the configured
// depth ceiling.
type RecursionLimitError struct {
	Element string
	Limit   int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("recursion limit %d exceeded at %q", e.Limit, e.Element)
}

// UnknownTypeError reports an unresolvable type in strict mode.
type UnknownTypeError struct {
	Element  string
	TypeName string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("element %q has unknown type %q", e.Element, e.TypeName)
}

// CycleError reports dependency cycles that survived the edge-removal
// budget. No DDL is emitted when this is returned.
type CycleError struct {
	Cycles [][]string
}

func (e *CycleError) Error() string {
	names := make([]string, len(e.Cycles))
	for i, cycle := range e.Cycles {
		names[i] = strings.Join(cycle, " -> ")
	}
	return fmt.Sprintf("dependency cycles could not be broken: %s", strings.Join(names, "; "))
}

// InconsistentStateError reports a relationship whose foreign key column is
// missing from its owning table. It indicates an internal invariant
// violation and must never occur in correct operation.
type InconsistentStateError struct {
	Table  string
	Column string
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("relationship references column %s.%s which is not in the table's column set", e.Table, e.Column)
}
