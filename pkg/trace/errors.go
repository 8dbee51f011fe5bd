package trace

import (
	"errors"
	"fmt"
)

// ErrLocationNotPublished is returned by PrintLabel when no node in the
// context's Store that carries the requested label has been credited yet.
var ErrLocationNotPublished = errors.New("trace: location not published")

// MismatchError reports that a TRACE call's per-site execution counter has
// diverged from its nearest enclosing SCOPE's counter, meaning the TRACE is
// not lexically inside that SCOPE's block (e.g. SCOPE for{ TRACE }, where
// the TRACE counter runs ahead of the scope counter once the loop iterates
// a second time).
type MismatchError struct {
	Label      string
	File       string
	Line       int
	ScopeCount int
	TraceCount int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf(
		"TRACE %s missing TRACE_SCOPE declaration in SAME block scope. "+
			"TRACE_SCOPE count %d < TRACE count %d. "+
			"Possible cause: TRACE_SCOPE for { TRACE }. (%s:%d)",
		e.Label, e.ScopeCount, e.TraceCount, e.File, e.Line,
	)
}
