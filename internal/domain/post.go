package domain

// Post represents a work bay of a service point. A post serves one
// booking at a time during its effective window.
type Post struct {
	ID                  int64
	Name                string
	IsActive            bool
	CategoryID          int64
	SlotDurationMinutes int
	CustomSchedule      *CustomSchedule
}

// HasCustomSchedule returns true if the post overrides the point's
// default weekly schedule.
func (p *Post) HasCustomSchedule() bool {
	return p.CustomSchedule != nil
}

// MatchesCategory reports whether the post passes the optional category
// filter. A nil filter matches every post.
func (p *Post) MatchesCategory(categoryID *int64) bool {
	return categoryID == nil || p.CategoryID == *categoryID
}
