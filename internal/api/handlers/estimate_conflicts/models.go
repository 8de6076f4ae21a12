package estimate_conflicts

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	estimateConflicts "github.com/m04kA/SMC-ScheduleService/internal/usecase/estimate_conflicts"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// EstimateConflictsRequest HTTP request model: предлагаемое расписание
// и состав постов до сохранения
type EstimateConflictsRequest struct {
	Schedule WeekSchedule `json:"schedule"`
	Posts    []Post       `json:"posts"`
}

// DaySchedule расписание на один день недели
type DaySchedule struct {
	IsWorkingDay bool    `json:"isWorkingDay"`
	Start        *string `json:"start,omitempty"` // "HH:MM", nil если день нерабочий
	End          *string `json:"end,omitempty"`
}

// WeekSchedule недельное расписание точки
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// WeekFlags флаги рабочих дней кастомного расписания поста
type WeekFlags struct {
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`
}

// Hours часы работы кастомного расписания
type Hours struct {
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`
}

// CustomSchedule индивидуальное расписание поста
type CustomSchedule struct {
	WorkingDays WeekFlags `json:"workingDays"`
	Hours       Hours     `json:"hours"`
}

// Post черновик поста
type Post struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	IsActive            bool            `json:"isActive"`
	CategoryID          int64           `json:"categoryId"`
	SlotDurationMinutes int             `json:"slotDurationMinutes"`
	CustomSchedule      *CustomSchedule `json:"customSchedule,omitempty"`
}

// EstimateConflictsResponse HTTP response model
type EstimateConflictsResponse struct {
	PointID   int64              `json:"pointId"`
	Conflicts []ConflictedBooking `json:"conflicts"`
}

// ConflictedBooking бронирование, конфликтующее с предлагаемым расписанием
type ConflictedBooking struct {
	BookingID   int64  `json:"bookingId"`
	PostID      int64  `json:"postId"`
	BookingDate string `json:"bookingDate"` // YYYY-MM-DD
	StartTime   string `json:"startTime"`   // "HH:MM"
	Reason      string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *EstimateConflictsRequest) ToUseCaseRequest(userID, pointID int64) *estimateConflicts.Request {
	posts := make([]domain.Post, len(r.Posts))
	for i, post := range r.Posts {
		posts[i] = post.ToDomain()
	}

	return &estimateConflicts.Request{
		UserID:   userID,
		PointID:  pointID,
		Schedule: r.Schedule.ToDomain(),
		Posts:    posts,
	}
}

// ToDomain конвертирует недельное расписание в доменную модель
func (w WeekSchedule) ToDomain() domain.WeeklySchedule {
	days := map[time.Weekday]DaySchedule{
		time.Monday:    w.Monday,
		time.Tuesday:   w.Tuesday,
		time.Wednesday: w.Wednesday,
		time.Thursday:  w.Thursday,
		time.Friday:    w.Friday,
		time.Saturday:  w.Saturday,
		time.Sunday:    w.Sunday,
	}

	result := domain.WeeklySchedule{Days: make(map[time.Weekday]domain.DaySchedule, 7)}
	for weekday, day := range days {
		entry := domain.DaySchedule{IsWorkingDay: day.IsWorkingDay}
		if day.Start != nil {
			entry.Start = types.TimeString(*day.Start)
		}
		if day.End != nil {
			entry.End = types.TimeString(*day.End)
		}
		result.Days[weekday] = entry
	}
	return result
}

// ToDomain конвертирует черновик поста в доменную модель
func (p Post) ToDomain() domain.Post {
	result := domain.Post{
		ID:                  p.ID,
		Name:                p.Name,
		IsActive:            p.IsActive,
		CategoryID:          p.CategoryID,
		SlotDurationMinutes: p.SlotDurationMinutes,
	}

	if p.CustomSchedule != nil {
		result.CustomSchedule = &domain.CustomSchedule{
			WorkingDays: map[time.Weekday]bool{
				time.Monday:    p.CustomSchedule.WorkingDays.Monday,
				time.Tuesday:   p.CustomSchedule.WorkingDays.Tuesday,
				time.Wednesday: p.CustomSchedule.WorkingDays.Wednesday,
				time.Thursday:  p.CustomSchedule.WorkingDays.Thursday,
				time.Friday:    p.CustomSchedule.WorkingDays.Friday,
				time.Saturday:  p.CustomSchedule.WorkingDays.Saturday,
				time.Sunday:    p.CustomSchedule.WorkingDays.Sunday,
			},
			Hours: domain.HoursRange{
				Start: types.TimeString(p.CustomSchedule.Hours.Start),
				End:   types.TimeString(p.CustomSchedule.Hours.End),
			},
		}
	}

	return result
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *estimateConflicts.Response) *EstimateConflictsResponse {
	conflicts := make([]ConflictedBooking, len(resp.Conflicts))
	for i, conflict := range resp.Conflicts {
		conflicts[i] = ConflictedBooking{
			BookingID:   conflict.BookingID,
			PostID:      conflict.PostID,
			BookingDate: conflict.BookingDate.Format(domain.DateFormat),
			StartTime:   conflict.StartTime.String(),
			Reason:      string(conflict.Reason),
		}
	}

	return &EstimateConflictsResponse{
		PointID:   resp.PointID,
		Conflicts: conflicts,
	}
}
