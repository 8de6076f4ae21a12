package estimate_conflicts

import "errors"

var (
	ErrPointNotFound   = errors.New("estimate_conflicts.usecase: service point not found")
	ErrAccessDenied    = errors.New("estimate_conflicts.usecase: access denied")
	ErrInvalidInput    = errors.New("estimate_conflicts.usecase: invalid input data")
	ErrInvalidSchedule = errors.New("estimate_conflicts.usecase: invalid schedule")
	ErrInternal        = errors.New("estimate_conflicts.usecase: internal error")
)
