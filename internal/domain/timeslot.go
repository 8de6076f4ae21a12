package domain

import "github.com/m04kA/SMC-ScheduleService/pkg/types"

// CoveringPost identifies a post whose effective window covers a slot.
type CoveringPost struct {
	PostID            int64
	Name              string
	HasCustomSchedule bool
}

// TimeSlot is one tick of the generated availability grid.
type TimeSlot struct {
	Time           types.TimeString
	AvailablePosts int
	TotalPosts     int
	IsAvailable    bool
	CoveringPosts  []CoveringPost
}

// IsFull returns true if no post covers the slot.
func (s *TimeSlot) IsFull() bool {
	return s.AvailablePosts <= 0
}

// IsPartiallyCovered returns true if some but not all considered posts
// cover the slot.
func (s *TimeSlot) IsPartiallyCovered() bool {
	return s.AvailablePosts > 0 && s.AvailablePosts < s.TotalPosts
}

// OccupancyRate returns the share of considered posts NOT covering the
// slot, as a percentage (0-100).
func (s *TimeSlot) OccupancyRate() float64 {
	if s.TotalPosts == 0 {
		return 0
	}
	uncovered := s.TotalPosts - s.AvailablePosts
	return float64(uncovered) / float64(s.TotalPosts) * 100
}
