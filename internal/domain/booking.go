package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Booking represents a client booking on a specific post of a service
// point. Rows are created by the booking-mutation service; this service
// reads them and changes their status through the transition table in
// status.go.
type Booking struct {
	ID              int64
	ClientID        int64
	PartnerID       int64
	PointID         int64
	PostID          int64
	CategoryID      int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByClient &&
		b.Status != StatusCancelledByPartner &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can still be cancelled.
// This predicate also gates the reschedule action in the clients.
func (b *Booking) CanBeCancelled() bool {
	return b.Status.Cancellable()
}

// IsCancelled returns true if either side has cancelled the booking.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByClient || b.Status == StatusCancelledByPartner
}

// PointBookingsFilter narrows booking listings for a service point.
type PointBookingsFilter struct {
	PointID         int64
	PostID          *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool
}

// ConflictReason explains why a booking conflicts with a proposed
// schedule change.
type ConflictReason string

const (
	// ConflictNoWindow: the booking's post resolves no window on the
	// booking's weekday under the proposal (deactivated or closed).
	ConflictNoWindow ConflictReason = "no_window"

	// ConflictOutsideWindow: the post still operates that weekday, but
	// the booking's start time falls outside the proposed window.
	ConflictOutsideWindow ConflictReason = "outside_window"

	// ConflictPostRemoved: the booking's post is absent from the
	// proposed post list.
	ConflictPostRemoved ConflictReason = "post_removed"
)

// ConflictedBooking is an advisory flag produced by the schedule
// conflict estimator. It never mutates the underlying booking.
type ConflictedBooking struct {
	BookingID   int64
	PostID      int64
	BookingDate time.Time
	StartTime   types.TimeString
	Reason      ConflictReason
}
