package estimate_conflicts

import (
	"context"

	estimateConflicts "github.com/m04kA/SMC-ScheduleService/internal/usecase/estimate_conflicts"
)

type EstimateConflictsUseCase interface {
	Execute(ctx context.Context, req *estimateConflicts.Request) (*estimateConflicts.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
