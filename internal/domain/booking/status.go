package booking

import "github.com/BruksfildServices01/appointment-booking/internal/httperr"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	// StatusNoShow is accepted in stored data; no transition produces it.
	StatusNoShow Status = "no-show"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func InitialStatus() Status {
	return StatusPending
}

func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}
