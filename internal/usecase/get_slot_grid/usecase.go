package get_slot_grid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	partnerClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/partnerservice"
	"github.com/m04kA/SMC-ScheduleService/internal/slotgrid"
)

// UseCase use case построения сетки слотов для сохранённого состояния точки
type UseCase struct {
	partnerClient PartnerServiceClient
	cache         SlotGridCache
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	partnerClient PartnerServiceClient,
	cache SlotGridCache,
	logger Logger,
) *UseCase {
	if cache == nil {
		cache = NopCache{}
	}
	return &UseCase{
		partnerClient: partnerClient,
		cache:         cache,
		logger:        logger,
	}
}

// Execute выполняет use case построения сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlotGrid: user=%d, point=%d, date=%s, category=%v",
		req.UserID, req.PointID, req.Date.Format(domain.DateFormat), req.CategoryID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlotGrid: validation failed: %v", err)
		return nil, err
	}

	dateStr := req.Date.Format(domain.DateFormat)

	// 2. Пробуем отдать сетку из кэша
	if payload, ok := uc.cache.Get(ctx, req.PointID, dateStr, req.CategoryID); ok {
		var cached Response
		if err := json.Unmarshal(payload, &cached); err == nil {
			uc.logger.Info("GetSlotGrid: cache hit for point=%d, date=%s", req.PointID, dateStr)
			return &cached, nil
		}
		uc.logger.Warn("GetSlotGrid: corrupted cache entry for point=%d, date=%s", req.PointID, dateStr)
	}

	// 3. Получаем снапшот точки (расписание + посты)
	point, err := uc.partnerClient.GetServicePoint(ctx, req.PointID)
	if err != nil {
		if errors.Is(err, partnerClient.ErrPointNotFound) {
			uc.logger.Warn("GetSlotGrid: point id=%d not found", req.PointID)
			return nil, ErrPointNotFound
		}
		uc.logger.Error("GetSlotGrid: failed to get point id=%d: %v", req.PointID, err)
		return nil, fmt.Errorf("%w: failed to get service point: %v", ErrInternal, err)
	}

	domainPoint := point.ToDomain()

	// 4. Генерируем сетку с фиксированным шагом
	slots := slotgrid.Generate(
		req.Date,
		domainPoint.Schedule,
		domainPoint.Posts,
		req.CategoryID,
		domain.GridTickMinutes,
	)

	response := &Response{
		PointID:    req.PointID,
		Date:       dateStr,
		CategoryID: req.CategoryID,
		Slots:      FromDomainSlots(slots),
	}

	// 5. Кэшируем результат; ошибки кэша не влияют на ответ
	if payload, err := json.Marshal(response); err == nil {
		uc.cache.Set(ctx, req.PointID, dateStr, req.CategoryID, payload)
	}

	uc.logger.Info("GetSlotGrid: generated %d slots for point=%d, date=%s",
		len(response.Slots), req.PointID, dateStr)

	return response, nil
}
