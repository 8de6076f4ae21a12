package slotgrid

import (
	"testing"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

func booking(id, postID int64, date string, start string, status domain.BookingStatus) *domain.Booking {
	parsed, _ := time.Parse(domain.DateFormat, date)
	return &domain.Booking{
		ID:          id,
		PostID:      postID,
		BookingDate: parsed,
		StartTime:   types.TimeString(start),
		Status:      status,
	}
}

func TestEstimateConflicts(t *testing.T) {
	// Предлагаемое расписание: Пн-Пт 10:00-16:00
	proposed := weekdaySchedule("10:00", "16:00",
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
	posts := []domain.Post{
		{ID: 1, Name: "Пост 1", IsActive: true, SlotDurationMinutes: 30},
		{ID: 2, Name: "Пост 2", IsActive: false, SlotDurationMinutes: 30},
	}

	bookings := []*domain.Booking{
		// 2025-10-15 - среда
		booking(101, 1, "2025-10-15", "11:00", domain.StatusConfirmed), // внутри окна
		booking(102, 1, "2025-10-15", "09:00", domain.StatusConfirmed), // раньше нового открытия
		booking(103, 1, "2025-10-18", "11:00", domain.StatusPending),   // суббота стала выходным
		booking(104, 2, "2025-10-15", "11:00", domain.StatusConfirmed), // пост деактивирован
		booking(105, 9, "2025-10-15", "11:00", domain.StatusConfirmed), // пост удалён
		booking(106, 1, "2025-10-15", "09:00", domain.StatusCancelledByClient), // неактивное не проверяется
	}

	conflicts := EstimateConflicts(proposed, posts, bookings)

	want := map[int64]domain.ConflictReason{
		102: domain.ConflictOutsideWindow,
		103: domain.ConflictNoWindow,
		104: domain.ConflictNoWindow,
		105: domain.ConflictPostRemoved,
	}

	if len(conflicts) != len(want) {
		t.Fatalf("expected %d conflicts, got %d: %+v", len(want), len(conflicts), conflicts)
	}

	for _, conflict := range conflicts {
		reason, ok := want[conflict.BookingID]
		if !ok {
			t.Errorf("unexpected conflict for booking %d", conflict.BookingID)
			continue
		}
		if conflict.Reason != reason {
			t.Errorf("booking %d: expected reason %s, got %s", conflict.BookingID, reason, conflict.Reason)
		}
	}
}

func TestEstimateConflictsBoundary(t *testing.T) {
	proposed := weekdaySchedule("10:00", "16:00", time.Wednesday)
	posts := []domain.Post{
		{ID: 1, Name: "Пост 1", IsActive: true, SlotDurationMinutes: 30},
	}

	bookings := []*domain.Booking{
		booking(201, 1, "2025-10-15", "10:00", domain.StatusConfirmed), // начало окна - внутри
		booking(202, 1, "2025-10-15", "16:00", domain.StatusConfirmed), // конец окна - снаружи
	}

	conflicts := EstimateConflicts(proposed, posts, bookings)

	if len(conflicts) != 1 {
		t.Fatalf("expected exactly one conflict, got %d: %+v", len(conflicts), conflicts)
	}
	if conflicts[0].BookingID != 202 || conflicts[0].Reason != domain.ConflictOutsideWindow {
		t.Errorf("expected booking 202 outside_window, got %+v", conflicts[0])
	}
}

func TestEstimateConflictsEmptyInput(t *testing.T) {
	proposed := weekdaySchedule("10:00", "16:00", time.Wednesday)

	conflicts := EstimateConflicts(proposed, nil, nil)

	if conflicts == nil || len(conflicts) != 0 {
		t.Fatalf("expected empty conflict list, got %v", conflicts)
	}
}
