package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// DaySchedule describes the working window of a service point for one
// weekday. Start and End are meaningful only when IsWorkingDay is true.
type DaySchedule struct {
	Start        types.TimeString
	End          types.TimeString
	IsWorkingDay bool
}

// WeeklySchedule is the default Sunday-Saturday schedule of a service
// point. All seven weekdays are always present.
type WeeklySchedule struct {
	Days map[time.Weekday]DaySchedule
}

// Day returns the schedule entry for the given weekday. A missing entry
// counts as a non-working day.
func (s *WeeklySchedule) Day(weekday time.Weekday) DaySchedule {
	if s == nil || s.Days == nil {
		return DaySchedule{}
	}
	return s.Days[weekday]
}

// HoursRange is a start/end pair of a custom post window.
type HoursRange struct {
	Start types.TimeString
	End   types.TimeString
}

// CustomSchedule is a post-level override of the point's default weekly
// schedule. When WorkingDays[weekday] is true the post operates within
// Hours on that weekday regardless of the point's own schedule; when it
// is false the post is closed that weekday even if the point is open.
type CustomSchedule struct {
	WorkingDays map[time.Weekday]bool
	Hours       HoursRange
}

// WorksOn reports whether the override enables the post on weekday.
func (c *CustomSchedule) WorksOn(weekday time.Weekday) bool {
	if c == nil || c.WorkingDays == nil {
		return false
	}
	return c.WorkingDays[weekday]
}

// ServicePoint is a snapshot of a partner's service point as served by
// PartnerService: the default weekly schedule plus its posts. The
// snapshot is read-only for this service.
type ServicePoint struct {
	ID        int64
	PartnerID int64
	Name      string
	Schedule  WeeklySchedule
	Posts     []Post
}
