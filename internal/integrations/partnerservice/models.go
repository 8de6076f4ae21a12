package partnerservice

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// DaySchedule расписание сервисной точки на один день недели
type DaySchedule struct {
	IsWorkingDay bool    `json:"isWorkingDay"`
	Start        *string `json:"start,omitempty"` // "HH:MM", nil если день нерабочий
	End          *string `json:"end,omitempty"`
}

// WeekSchedule недельное расписание сервисной точки
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

// Post пост (рабочий бокс) сервисной точки
type Post struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	IsActive            bool            `json:"isActive"`
	CategoryID          int64           `json:"categoryId"`
	SlotDurationMinutes int             `json:"slotDurationMinutes"`
	CustomSchedule      *CustomSchedule `json:"customSchedule,omitempty"`
}

// ServicePoint сервисная точка партнёра из PartnerService
type ServicePoint struct {
	ID         int64        `json:"id"`
	PartnerID  int64        `json:"partnerId"`
	Name       string       `json:"name"`
	ManagerIDs []int64      `json:"managerIds"`
	Schedule   WeekSchedule `json:"schedule"`
	Posts      []Post       `json:"posts"`
}

// ErrorResponse модель ошибки от PartnerService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HasManager проверяет, является ли пользователь менеджером точки
func (p *ServicePoint) HasManager(userID int64) bool {
	for _, id := range p.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ToDomain конвертирует снапшот точки в доменную модель
func (p *ServicePoint) ToDomain() *domain.ServicePoint {
	posts := make([]domain.Post, len(p.Posts))
	for i, post := range p.Posts {
		posts[i] = post.ToDomain()
	}

	return &domain.ServicePoint{
		ID:        p.ID,
		PartnerID: p.PartnerID,
		Name:      p.Name,
		Schedule:  p.Schedule.ToDomain(),
		Posts:     posts,
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

// ToDomain конвертирует пост в доменную модель
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
