package domain

import (
	"fmt"
	"time"
)

// InvariantViolation reports an operation that would break a structural
// invariant of the tree, such as deleting the last department of a phase.
// The operation is rejected with no partial mutation; the caller is
// expected to have disabled the triggering action.
type InvariantViolation struct {
	Op     string
	Reason string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// DuplicateNameError reports a case-insensitive naming collision among
// sibling phases or sibling departments.
type DuplicateNameError struct {
	Entity string // "phase" or "department"
	Name   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s name %q is already in use", e.Entity, e.Name)
}

// DateOrderError reports a phase whose end date is not strictly after its
// start date.
type DateOrderError struct {
	Start time.Time
	End   time.Time
}

func (e *DateOrderError) Error() string {
	return fmt.Sprintf("end date %s must be after start date %s",
		e.End.Format("2006-01-02"), e.Start.Format("2006-01-02"))
}

// DateRangeError reports a phase starting before the project's planned
// start date.
type DateRangeError struct {
	Start        time.Time
	PlannedStart time.Time
}

func (e *DateRangeError) Error() string {
	return fmt.Sprintf("start date %s precedes the project planned date %s",
		e.Start.Format("2006-01-02"), e.PlannedStart.Format("2006-01-02"))
}
