package preview_slot_grid

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidSchedule возвращается, когда черновик расписания не
	// проходит валидацию границы редактирования (start >= end на
	// рабочем дне, некорректная длительность слота и т.п.)
	ErrInvalidSchedule = errors.New("invalid schedule draft")
)
