package domain

import "fmt"

// BookingStatus represents the status of a booking. It is a closed
// enumeration: boundary adapters must normalize into it via
// ParseBookingStatus before any transition is requested.
type BookingStatus string

const (
	StatusPending            BookingStatus = "pending"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusInProgress         BookingStatus = "in_progress"
	StatusCompleted          BookingStatus = "completed"
	StatusCancelledByClient  BookingStatus = "cancelled_by_client"
	StatusCancelledByPartner BookingStatus = "cancelled_by_partner"
	StatusNoShow             BookingStatus = "no_show"
)

// allowedTransitions is the single source of truth for legal status
// changes. Statuses absent from the map are terminal.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending: {
		StatusConfirmed,
		StatusCancelledByClient,
		StatusCancelledByPartner,
	},
	StatusConfirmed: {
		StatusInProgress,
		StatusCancelledByClient,
		StatusCancelledByPartner,
		StatusNoShow,
	},
	StatusInProgress: {
		StatusCompleted,
		StatusCancelledByPartner,
	},
}

// InvalidTransitionError is returned when a requested status change is
// not in the transition table. The persisted status stays unchanged.
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid booking status transition %s -> %s", e.From, e.To)
}

// ParseBookingStatus normalizes a raw string into the enumeration.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelledByClient, StatusCancelledByPartner, StatusNoShow:
		return BookingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown booking status %q", s)
	}
}

// IsValid reports whether s is a member of the enumeration.
func (s BookingStatus) IsValid() bool {
	_, err := ParseBookingStatus(string(s))
	return err == nil
}

// IsTerminal reports whether no further transitions are permitted.
func (s BookingStatus) IsTerminal() bool {
	targets, ok := allowedTransitions[s]
	return !ok || len(targets) == 0
}

// Cancellable reports whether a cancel (or reschedule) action may be
// offered for a booking in this status.
func (s BookingStatus) Cancellable() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransition reports whether the transition from s to target is in
// the allowed set.
func (s BookingStatus) CanTransition(target BookingStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Transition validates the requested status change and returns the new
// status, or *InvalidTransitionError when the change is not allowed.
func Transition(current, requested BookingStatus) (BookingStatus, error) {
	if !current.CanTransition(requested) {
		return current, &InvalidTransitionError{From: current, To: requested}
	}
	return requested, nil
}
