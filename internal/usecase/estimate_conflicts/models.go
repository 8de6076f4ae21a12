package estimate_conflicts

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса оценки конфликтов: предлагаемое расписание и
// посты до сохранения сравниваются с будущими бронированиями точки
type Request struct {
	UserID   int64
	PointID  int64
	Schedule domain.WeeklySchedule
	Posts    []domain.Post
}

// Response модель ответа со списком конфликтующих бронирований.
// Список чисто справочный: показывается оператору перед сохранением
type Response struct {
	PointID   int64
	Conflicts []domain.ConflictedBooking
}

// weekdays перечисляет дни недели, обязательные в недельном расписании
var weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// hoursOrdered проверяет, что обе границы валидны и start < end
func hoursOrdered(start, end types.TimeString) bool {
	if start.Validate() != nil || end.Validate() != nil {
		return false
	}
	return start.IsBefore(end)
}
