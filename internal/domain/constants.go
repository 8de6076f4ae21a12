package domain

// GridTickMinutes is the fixed step of the availability grid. It is a
// platform constant for browsing/preview purposes and is independent of
// any post's own slot_duration_minutes.
const GridTickMinutes = 15

// Business validation constants for schedule and post editing.
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours

	MaxPostNameLength           = 100
	MaxPostsPerPoint            = 100
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных бронирований
// Используется при выборке бронирований, занимающих слоты
var InactiveStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledByPartner,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
