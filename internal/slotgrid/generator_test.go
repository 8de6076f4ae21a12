package slotgrid

import (
	"testing"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// date helper: 2025-10-15 is a Wednesday, 2025-10-18 a Saturday,
// 2025-10-19 a Sunday
func day(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return date
}

func TestGenerateSinglePostWorkingDay(t *testing.T) {
	schedule := weekdaySchedule("09:00", "18:00",
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
	posts := []domain.Post{
		{ID: 1, Name: "Пост 1", IsActive: true, CategoryID: 1, SlotDurationMinutes: 30},
	}

	slots := Generate(day(t, "2025-10-15"), schedule, posts, nil, domain.GridTickMinutes)

	// 09:00..18:00 с шагом 15 минут = 36 тиков
	if len(slots) != 36 {
		t.Fatalf("expected 36 slots, got %d", len(slots))
	}

	if slots[0].Time.String() != "09:00" {
		t.Errorf("first slot must start at 09:00, got %s", slots[0].Time)
	}
	if slots[len(slots)-1].Time.String() != "17:45" {
		t.Errorf("last slot must start at 17:45, got %s", slots[len(slots)-1].Time)
	}

	for _, slot := range slots {
		if slot.TotalPosts != 1 || slot.AvailablePosts != 1 || !slot.IsAvailable {
			t.Errorf("slot %s: expected full availability, got available=%d total=%d",
				slot.Time, slot.AvailablePosts, slot.TotalPosts)
		}
	}
}

func TestGenerateDayOffIsEmpty(t *testing.T) {
	schedule := weekdaySchedule("09:00", "18:00",
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
	posts := []domain.Post{
		{ID: 1, Name: "Пост 1", IsActive: true, SlotDurationMinutes: 30},
	}

	slots := Generate(day(t, "2025-10-18"), schedule, posts, nil, domain.GridTickMinutes)

	if slots == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(slots) != 0 {
		t.Fatalf("saturday is a day off, expected 0 slots, got %d", len(slots))
	}
}

func TestGenerateCustomScheduleOpensSunday(t *testing.T) {
	schedule := weekdaySchedule("09:00", "18:00",
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
	posts := []domain.Post{
		{ID: 1, Name: "Обычный", IsActive: true, SlotDurationMinutes: 30},
		{
			ID: 2, Name: "Воскресный", IsActive: true, SlotDurationMinutes: 30,
			CustomSchedule: &domain.CustomSchedule{
				WorkingDays: map[time.Weekday]bool{time.Sunday: true},
				Hours:       domain.HoursRange{Start: "09:00", End: "12:00"},
			},
		},
	}

	slots := Generate(day(t, "2025-10-19"), schedule, posts, nil, domain.GridTickMinutes)

	// Работает только пост с кастомным расписанием: 09:00..12:00 = 12 тиков
	if len(slots) != 12 {
		t.Fatalf("expected 12 slots, got %d", len(slots))
	}

	for _, slot := range slots {
		if slot.TotalPosts != 1 {
			t.Errorf("slot %s: only the custom-schedule post operates, total=%d", slot.Time, slot.TotalPosts)
		}
		if len(slot.CoveringPosts) != 1 || slot.CoveringPosts[0].PostID != 2 {
			t.Errorf("slot %s: expected covering post 2, got %+v", slot.Time, slot.CoveringPosts)
		}
		if !slot.CoveringPosts[0].HasCustomSchedule {
			t.Errorf("slot %s: covering post must be flagged as custom-scheduled", slot.Time)
		}
	}
}

func TestGenerateOverlayWindows(t *testing.T) {
	schedule := weekdaySchedule("09:00", "18:00", time.Wednesday)
	posts := []domain.Post{
		{ID: 1, Name: "Полный день", IsActive: true, SlotDurationMinutes: 30},
		{
			ID: 2, Name: "Короткий", IsActive: true, SlotDurationMinutes: 30,
			CustomSchedule: &domain.CustomSchedule{
				WorkingDays: allWeekFlags(true),
				Hours:       domain.HoursRange{Start: "14:00", End: "16:00"},
			},
		},
	}

	slots := Generate(day(t, "2025-10-15"), schedule, posts, nil, domain.GridTickMinutes)

	if len(slots) != 36 {
		t.Fatalf("expected 36 slots, got %d", len(slots))
	}

	for _, slot := range slots {
		minutes, err := slot.Time.Minutes()
		if err != nil {
			t.Fatalf("slot %s: %v", slot.Time, err)
		}

		inOverlay := minutes >= 14*60 && minutes < 16*60
		wantAvailable := 1
		if inOverlay {
			wantAvailable = 2
		}

		if slot.TotalPosts != 2 {
			t.Errorf("slot %s: expected total=2, got %d", slot.Time, slot.TotalPosts)
		}
		if slot.AvailablePosts != wantAvailable {
			t.Errorf("slot %s: expected available=%d, got %d", slot.Time, wantAvailable, slot.AvailablePosts)
		}
	}
}

func TestGenerateZeroAvailabilityGap(t *testing.T) {
	// Два поста с непересекающимися окнами: 09:00-11:00 и 15:00-17:00.
	// Тики между окнами обязаны присутствовать с нулевой доступностью
	schedule := weekdaySchedule("09:00", "18:00", time.Wednesday)
	posts := []domain.Post{
		{
			ID: 1, Name: "Утро", IsActive: true, SlotDurationMinutes: 30,
			CustomSchedule: &domain.CustomSchedule{
				WorkingDays: allWeekFlags(true),
				Hours:       domain.HoursRange{Start: "09:00", End: "11:00"},
			},
		},
		{
			ID: 2, Name: "Вечер", IsActive: true, SlotDurationMinutes: 30,
			CustomSchedule: &domain.CustomSchedule{
				WorkingDays: allWeekFlags(true),
				Hours:       domain.HoursRange{Start: "15:00", End: "17:00"},
			},
		},
	}

	slots := Generate(day(t, "2025-10-15"), schedule, posts, nil, domain.GridTickMinutes)

	// 09:00..17:00 = 32 тика
	if len(slots) != 32 {
		t.Fatalf("expected 32 slots, got %d", len(slots))
	}

	var gaps int
	for _, slot := range slots {
		minutes, _ := slot.Time.Minutes()
		inGap := minutes >= 11*60 && minutes < 15*60

		if inGap {
			gaps++
			if slot.IsAvailable || slot.AvailablePosts != 0 {
				t.Errorf("slot %s: gap tick must have zero availability", slot.Time)
			}
		} else if !slot.IsAvailable {
			t.Errorf("slot %s: expected availability inside a window", slot.Time)
		}
	}

	if gaps != 16 {
		t.Errorf("expected 16 zero-availability ticks, got %d", gaps)
	}
}

func TestGenerateContiguousTicks(t *testing.T) {
	schedule := weekdaySchedule("08:30", "20:15", time.Wednesday)
	posts := []domain.Post{
		{ID: 1, Name: "Пост", IsActive: true, SlotDurationMinutes: 45},
	}

	slots := Generate(day(t, "2025-10-15"), schedule, posts, nil, domain.GridTickMinutes)

	if len(slots) == 0 {
		t.Fatal("expected a non-empty grid")
	}

	prev, _ := slots[0].Time.Minutes()
	for _, slot := range slots[1:] {
		minutes, _ := slot.Time.Minutes()
		if minutes != prev+domain.GridTickMinutes {
			t.Fatalf("ticks are not contiguous: %d follows %d", minutes, prev)
		}
		prev = minutes
	}
}

func TestGenerateCategoryFilter(t *testing.T) {
	schedule := weekdaySchedule("09:00", "18:00", time.Wednesday)
	posts := []domain.Post{
		{ID: 1, Name: "Мойка", IsActive: true, CategoryID: 1, SlotDurationMinutes: 30},
		{ID: 2, Name: "Шиномонтаж", IsActive: true, CategoryID: 2, SlotDurationMinutes: 60},
	}

	categoryID := int64(2)
	slots := Generate(day(t, "2025-10-15"), schedule, posts, &categoryID, domain.GridTickMinutes)

	if len(slots) != 36 {
		t.Fatalf("expected 36 slots, got %d", len(slots))
	}

	for _, slot := range slots {
		if slot.TotalPosts != 1 {
			t.Errorf("slot %s: category filter must exclude post 1, total=%d", slot.Time, slot.TotalPosts)
		}
		if len(slot.CoveringPosts) != 1 || slot.CoveringPosts[0].PostID != 2 {
			t.Errorf("slot %s: expected only post 2, got %+v", slot.Time, slot.CoveringPosts)
		}
	}
}

func TestGenerateInactivePostsExcluded(t *testing.T) {
	schedule := weekdaySchedule("09:00", "18:00", time.Wednesday)
	posts := []domain.Post{
		{ID: 1, Name: "Активный", IsActive: true, SlotDurationMinutes: 30},
		{ID: 2, Name: "Выключенный", IsActive: false, SlotDurationMinutes: 30},
	}

	slots := Generate(day(t, "2025-10-15"), schedule, posts, nil, domain.GridTickMinutes)

	for _, slot := range slots {
		if slot.TotalPosts != 1 {
			t.Fatalf("slot %s: inactive post must not count, total=%d", slot.Time, slot.TotalPosts)
		}
	}
}

func TestGenerateNoPostsIsEmpty(t *testing.T) {
	schedule := weekdaySchedule("09:00", "18:00", time.Wednesday)

	slots := Generate(day(t, "2025-10-15"), schedule, nil, nil, domain.GridTickMinutes)

	if slots == nil || len(slots) != 0 {
		t.Fatalf("expected empty slice for a point without posts, got %v", slots)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	schedule := weekdaySchedule("09:00", "18:00", time.Wednesday)
	posts := []domain.Post{
		{ID: 1, Name: "Пост 1", IsActive: true, SlotDurationMinutes: 30},
		{
			ID: 2, Name: "Пост 2", IsActive: true, SlotDurationMinutes: 30,
			CustomSchedule: &domain.CustomSchedule{
				WorkingDays: allWeekFlags(true),
				Hours:       domain.HoursRange{Start: "10:00", End: "14:00"},
			},
		},
	}

	first := Generate(day(t, "2025-10-15"), schedule, posts, nil, domain.GridTickMinutes)
	second := Generate(day(t, "2025-10-15"), schedule, posts, nil, domain.GridTickMinutes)

	if len(first) != len(second) {
		t.Fatalf("repeated generation differs in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Time != second[i].Time ||
			first[i].AvailablePosts != second[i].AvailablePosts ||
			first[i].TotalPosts != second[i].TotalPosts {
			t.Fatalf("slot %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
