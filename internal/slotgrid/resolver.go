// Package slotgrid computes the availability grid of a service point:
// effective window resolution per post, discrete slot generation for a
// calendar date and advisory conflict estimation against proposed
// schedule edits. All functions are pure and safe for concurrent use.
package slotgrid

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Window is a resolved operating window in minutes since midnight,
// half-open: [Start, End).
type Window struct {
	Start int
	End   int
}

// Contains reports whether minute t lies inside the window.
func (w Window) Contains(t int) bool {
	return w.Start <= t && t < w.End
}

// ResolveWindow returns the effective operating window of a post for a
// weekday, or nil when the post does not operate that day.
//
// Precedence is fixed: inactive post < default schedule < custom
// schedule. A custom schedule fully shadows the default one: when it
// marks the weekday as non-working the point's own schedule is NOT
// consulted, and when it marks it as working the post operates within
// the custom hours even on a day the point itself is closed.
func ResolveWindow(post domain.Post, weekday time.Weekday, defaultSchedule domain.WeeklySchedule) *Window {
	if !post.IsActive {
		return nil
	}

	if post.CustomSchedule != nil {
		if !post.CustomSchedule.WorksOn(weekday) {
			return nil
		}
		return windowFromTimes(post.CustomSchedule.Hours.Start, post.CustomSchedule.Hours.End)
	}

	day := defaultSchedule.Day(weekday)
	if !day.IsWorkingDay {
		return nil
	}
	return windowFromTimes(day.Start, day.End)
}

// windowFromTimes converts an HH:MM pair into a Window. Malformed times
// yield nil: validation belongs to the editing boundary, here the post
// simply contributes no window.
func windowFromTimes(start, end types.TimeString) *Window {
	startMin, err := start.Minutes()
	if err != nil {
		return nil
	}
	endMin, err := end.Minutes()
	if err != nil {
		return nil
	}
	return &Window{Start: startMin, End: endMin}
}
