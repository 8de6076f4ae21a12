package preview_slot_grid

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	previewSlotGrid "github.com/m04kA/SMC-ScheduleService/internal/usecase/preview_slot_grid"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// PreviewRequest HTTP request model: черновик расписания целиком в теле
type PreviewRequest struct {
	Seq        int64        `json:"seq"`
	Date       string       `json:"date"` // YYYY-MM-DD
	Schedule   WeekSchedule `json:"schedule"`
	Posts      []Post       `json:"posts"`
	CategoryID *int64       `json:"categoryId,omitempty"`
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

// PreviewResponse HTTP response model
type PreviewResponse struct {
	PointID    int64  `json:"pointId"`
	Seq        int64  `json:"seq"`
	Date       string `json:"date"`
	CategoryID *int64 `json:"categoryId,omitempty"`
	Slots      []Slot `json:"slots"`
}

// Slot модель тика сетки доступности
type Slot struct {
	Time           string         `json:"time"`
	AvailablePosts int            `json:"availablePosts"`
	TotalPosts     int            `json:"totalPosts"`
	IsAvailable    bool           `json:"isAvailable"`
	CoveringPosts  []CoveringPost `json:"coveringPosts"`
}

// CoveringPost пост, окно которого покрывает слот
type CoveringPost struct {
	PostID            int64  `json:"postId"`
	Name              string `json:"name"`
	HasCustomSchedule bool   `json:"hasCustomSchedule"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *PreviewRequest) ToUseCaseRequest(pointID int64) (*previewSlotGrid.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	posts := make([]domain.Post, len(r.Posts))
	for i, post := range r.Posts {
		posts[i] = post.ToDomain()
	}

	return &previewSlotGrid.Request{
		PointID:    pointID,
		Seq:        r.Seq,
		Date:       date,
		Schedule:   r.Schedule.ToDomain(),
		Posts:      posts,
		CategoryID: r.CategoryID,
	}, nil
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
func FromUseCaseResponse(resp *previewSlotGrid.Response) *PreviewResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		covering := make([]CoveringPost, len(slot.CoveringPosts))
		for j, post := range slot.CoveringPosts {
			covering[j] = CoveringPost{
				PostID:            post.PostID,
				Name:              post.Name,
				HasCustomSchedule: post.HasCustomSchedule,
			}
		}
		slots[i] = Slot{
			Time:           slot.Time.String(),
			AvailablePosts: slot.AvailablePosts,
			TotalPosts:     slot.TotalPosts,
			IsAvailable:    slot.IsAvailable,
			CoveringPosts:  covering,
		}
	}

	return &PreviewResponse{
		PointID:    resp.PointID,
		Seq:        resp.Seq,
		Date:       resp.Date.Format(domain.DateFormat),
		CategoryID: resp.CategoryID,
		Slots:      slots,
	}
}
