package preview_slot_grid

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/slotgrid"
)

// UseCase use case предпросмотра сетки слотов по несохранённому
// черновику расписания. Выполняет тот же алгоритм, что и построение
// сетки для сохранённого состояния, но без обращений к хранилищу
type UseCase struct {
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(logger Logger) *UseCase {
	return &UseCase{logger: logger}
}

// Execute выполняет пересчёт сетки по черновику
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PreviewSlotGrid: point=%d, seq=%d, date=%s, posts=%d",
		req.PointID, req.Seq, req.Date.Format(domain.DateFormat), len(req.Posts))

	// Граница валидации: генератор предполагает корректный вход
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PreviewSlotGrid: validation failed for point=%d, seq=%d: %v",
			req.PointID, req.Seq, err)
		return nil, err
	}

	slots := slotgrid.Generate(
		req.Date,
		req.Schedule,
		req.Posts,
		req.CategoryID,
		domain.GridTickMinutes,
	)

	uc.logger.Info("PreviewSlotGrid: generated %d slots for point=%d, seq=%d",
		len(slots), req.PointID, req.Seq)

	return &Response{
		PointID:    req.PointID,
		Seq:        req.Seq,
		Date:       req.Date,
		CategoryID: req.CategoryID,
		Slots:      slots,
	}, nil
}
