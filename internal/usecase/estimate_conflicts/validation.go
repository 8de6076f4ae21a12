package estimate_conflicts

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest валидирует запрос оценки конфликтов
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.PointID <= 0 {
		return fmt.Errorf("%w: pointID must be positive", ErrInvalidInput)
	}

	if err := validateSchedule(req.Schedule); err != nil {
		return err
	}

	return validatePosts(req.Posts)
}

// validateSchedule проверяет черновик недельного расписания
func validateSchedule(schedule domain.WeeklySchedule) error {
	for _, weekday := range weekdays {
		day, ok := schedule.Days[weekday]
		if !ok {
			return fmt.Errorf("%w: schedule entry for %s is missing", ErrInvalidSchedule, weekday)
		}

		if !day.IsWorkingDay {
			continue
		}

		if !hoursOrdered(day.Start, day.End) {
			return fmt.Errorf("%w: %s working hours must satisfy start < end", ErrInvalidSchedule, weekday)
		}
	}

	return nil
}

// validatePosts проверяет черновики постов
func validatePosts(posts []domain.Post) error {
	if len(posts) > domain.MaxPostsPerPoint {
		return fmt.Errorf("%w: at most %d posts per point", ErrInvalidSchedule, domain.MaxPostsPerPoint)
	}

	for i, post := range posts {
		if post.ID <= 0 {
			return fmt.Errorf("%w: post #%d id must be positive", ErrInvalidSchedule, i+1)
		}

		if post.Name == "" {
			return fmt.Errorf("%w: post #%d name is required", ErrInvalidSchedule, i+1)
		}
		if len(post.Name) > domain.MaxPostNameLength {
			return fmt.Errorf("%w: post %q name is too long", ErrInvalidSchedule, post.Name)
		}

		if post.SlotDurationMinutes < domain.MinSlotDurationMinutes ||
			post.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
			return fmt.Errorf("%w: post %q slot duration must be %d..%d minutes",
				ErrInvalidSchedule, post.Name, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}

		if post.CustomSchedule != nil {
			hours := post.CustomSchedule.Hours
			if !hoursOrdered(hours.Start, hours.End) {
				return fmt.Errorf("%w: post %q custom hours must satisfy start < end",
					ErrInvalidSchedule, post.Name)
			}
		}
	}

	return nil
}
