package preview_slot_grid

import (
	"context"

	previewSlotGrid "github.com/m04kA/SMC-ScheduleService/internal/usecase/preview_slot_grid"
)

type PreviewSlotGridUseCase interface {
	Execute(ctx context.Context, req *previewSlotGrid.Request) (*previewSlotGrid.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
