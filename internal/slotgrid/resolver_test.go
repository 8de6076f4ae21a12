package slotgrid

import (
	"testing"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

func weekdaySchedule(start, end string, workdays ...time.Weekday) domain.WeeklySchedule {
	schedule := domain.WeeklySchedule{Days: make(map[time.Weekday]domain.DaySchedule, 7)}
	for d := time.Sunday; d <= time.Saturday; d++ {
		schedule.Days[d] = domain.DaySchedule{IsWorkingDay: false}
	}
	for _, d := range workdays {
		schedule.Days[d] = domain.DaySchedule{
			Start:        types.TimeString(start),
			End:          types.TimeString(end),
			IsWorkingDay: true,
		}
	}
	return schedule
}

func allWeekFlags(value bool) map[time.Weekday]bool {
	flags := make(map[time.Weekday]bool, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		flags[d] = value
	}
	return flags
}

func TestResolveWindow(t *testing.T) {
	defaultSchedule := weekdaySchedule("09:00", "18:00",
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)

	customSunday := &domain.CustomSchedule{
		WorkingDays: map[time.Weekday]bool{time.Sunday: true},
		Hours:       domain.HoursRange{Start: "09:00", End: "12:00"},
	}

	customClosedWednesday := &domain.CustomSchedule{
		WorkingDays: map[time.Weekday]bool{
			time.Monday:  true,
			time.Tuesday: true,
			// среда намеренно нерабочая
			time.Thursday: true,
			time.Friday:   true,
		},
		Hours: domain.HoursRange{Start: "10:00", End: "16:00"},
	}

	tests := []struct {
		name    string
		post    domain.Post
		weekday time.Weekday
		want    *Window
	}{
		{
			name:    "default schedule on working day",
			post:    domain.Post{ID: 1, IsActive: true},
			weekday: time.Wednesday,
			want:    &Window{Start: 540, End: 1080},
		},
		{
			name:    "default schedule on day off",
			post:    domain.Post{ID: 1, IsActive: true},
			weekday: time.Saturday,
			want:    nil,
		},
		{
			name:    "inactive post never operates",
			post:    domain.Post{ID: 1, IsActive: false},
			weekday: time.Wednesday,
			want:    nil,
		},
		{
			name:    "inactive post with custom schedule still never operates",
			post:    domain.Post{ID: 1, IsActive: false, CustomSchedule: customSunday},
			weekday: time.Sunday,
			want:    nil,
		},
		{
			name:    "custom schedule opens a day the point is closed",
			post:    domain.Post{ID: 1, IsActive: true, CustomSchedule: customSunday},
			weekday: time.Sunday,
			want:    &Window{Start: 540, End: 720},
		},
		{
			name:    "custom schedule shadows default hours",
			post:    domain.Post{ID: 1, IsActive: true, CustomSchedule: customClosedWednesday},
			weekday: time.Monday,
			want:    &Window{Start: 600, End: 960},
		},
		{
			name:    "custom non-working day does not fall back to default",
			post:    domain.Post{ID: 1, IsActive: true, CustomSchedule: customClosedWednesday},
			weekday: time.Wednesday,
			want:    nil,
		},
		{
			name:    "custom schedule working only sunday closes monday",
			post:    domain.Post{ID: 1, IsActive: true, CustomSchedule: customSunday},
			weekday: time.Monday,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveWindow(tt.post, tt.weekday, defaultSchedule)

			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected no window, got [%d, %d)", got.Start, got.End)
				}
				return
			}

			if got == nil {
				t.Fatalf("expected window [%d, %d), got nil", tt.want.Start, tt.want.End)
			}
			if *got != *tt.want {
				t.Errorf("expected window [%d, %d), got [%d, %d)",
					tt.want.Start, tt.want.End, got.Start, got.End)
			}
		})
	}
}

func TestResolveWindowMalformedTimes(t *testing.T) {
	schedule := weekdaySchedule("9am", "6pm", time.Monday)

	got := ResolveWindow(domain.Post{ID: 1, IsActive: true}, time.Monday, schedule)
	if got != nil {
		t.Errorf("malformed schedule times must yield no window, got [%d, %d)", got.Start, got.End)
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{Start: 540, End: 1080}

	if !w.Contains(540) {
		t.Error("window start must be inclusive")
	}
	if w.Contains(1080) {
		t.Error("window end must be exclusive")
	}
	if w.Contains(539) || w.Contains(1081) {
		t.Error("minutes outside the window must not be contained")
	}
}
