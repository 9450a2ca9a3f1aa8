package finder

import (
	"fmt"
	"time"
)

// NotFoundError reports that no element matched the criteria within the wait
// budget. It carries the attempted criteria and scope for diagnostics.
type NotFoundError struct {
	Criteria Criteria
	Scope    string // description of the searched scope
	Timeout  time.Duration
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find control (%s) under %s within %v",
		e.Criteria.Describe(), e.Scope, e.Timeout)
}

// Transient makes a missing control count as "false this tick" when a lookup
// runs inside an enclosing polling loop.
func (e *NotFoundError) Transient() bool { return true }

// AmbiguousMatchError reports that more elements matched than the criteria's
// duplicate policy allows. This fails fast instead of blindly picking one,
// since an unintended duplicate control is itself a UI regression.
type AmbiguousMatchError struct {
	Criteria Criteria
	Count    int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("%d controls match (%s) but duplicates are not allowed",
		e.Count, e.Criteria.Describe())
}
