package schedule

import "errors"

var (
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrNotParticipant    = errors.New("caller is not a participant of this schedule")
	ErrInvalidTransition = errors.New("schedule status does not allow this operation")
	// ErrStaleStatus means the status changed between read and write; the
	// concurrent winner's transition stands.
	ErrStaleStatus          = errors.New("schedule status changed concurrently")
	ErrCounterpartyNotFound = errors.New("counterparty not found")
)

// ValidationError reports which proposal field failed checking.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
