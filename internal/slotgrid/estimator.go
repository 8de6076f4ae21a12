package slotgrid

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// EstimateConflicts сравнивает предложенное расписание и список постов
// с существующими будущими бронированиями и помечает те, которые при
// сохранении изменений окажутся вне эффективных окон.
//
// Результат чисто справочный: он показывается оператору перед
// сохранением и никогда сам не изменяет и не отменяет бронирования.
// Неактивные бронирования (отменённые, no-show) не проверяются.
func EstimateConflicts(
	proposedSchedule domain.WeeklySchedule,
	proposedPosts []domain.Post,
	bookings []*domain.Booking,
) []domain.ConflictedBooking {
	postsByID := make(map[int64]domain.Post, len(proposedPosts))
	for _, post := range proposedPosts {
		postsByID[post.ID] = post
	}

	conflicts := make([]domain.ConflictedBooking, 0)

	for _, booking := range bookings {
		if booking == nil || !booking.IsActive() {
			continue
		}

		post, ok := postsByID[booking.PostID]
		if !ok {
			conflicts = append(conflicts, conflicted(booking, domain.ConflictPostRemoved))
			continue
		}

		window := ResolveWindow(post, booking.BookingDate.Weekday(), proposedSchedule)
		if window == nil {
			conflicts = append(conflicts, conflicted(booking, domain.ConflictNoWindow))
			continue
		}

		startMin, err := booking.StartTime.Minutes()
		if err != nil {
			// Некорректное время в хранилище; не можем сравнить - пропускаем
			continue
		}

		if !window.Contains(startMin) {
			conflicts = append(conflicts, conflicted(booking, domain.ConflictOutsideWindow))
		}
	}

	return conflicts
}

func conflicted(b *domain.Booking, reason domain.ConflictReason) domain.ConflictedBooking {
	return domain.ConflictedBooking{
		BookingID:   b.ID,
		PostID:      b.PostID,
		BookingDate: b.BookingDate,
		StartTime:   b.StartTime,
		Reason:      reason,
	}
}
