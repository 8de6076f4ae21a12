package estimate_conflicts

import (
	"context"
	"errors"
	"fmt"
	"time"

	partnerClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/partnerservice"
	"github.com/m04kA/SMC-ScheduleService/internal/slotgrid"
)

// UseCase use case оценки конфликтов: предлагаемое расписание и состав
// постов сравниваются с уже существующими будущими бронированиями точки
type UseCase struct {
	repo          BookingRepository
	partnerClient PartnerServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo BookingRepository,
	partnerClient PartnerServiceClient,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		repo:          repo,
		partnerClient: partnerClient,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Execute выполняет оценку конфликтов для черновика расписания точки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EstimateConflicts: user=%d, point=%d, posts=%d",
		req.UserID, req.PointID, len(req.Posts))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("EstimateConflicts: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что пользователь управляет точкой
	point, err := uc.partnerClient.GetServicePoint(ctx, req.PointID)
	if err != nil {
		if errors.Is(err, partnerClient.ErrPointNotFound) {
			uc.logger.Warn("EstimateConflicts: point %d not found", req.PointID)
			return nil, fmt.Errorf("%w: point %d", ErrPointNotFound, req.PointID)
		}
		uc.logger.Error("EstimateConflicts: failed to fetch point %d: %v", req.PointID, err)
		return nil, fmt.Errorf("%w: failed to fetch service point: %v", ErrInternal, err)
	}

	if !point.HasManager(req.UserID) {
		uc.logger.Warn("EstimateConflicts: user %d is not a manager of point %d",
			req.UserID, req.PointID)
		return nil, fmt.Errorf("%w: user %d has no access to point %d",
			ErrAccessDenied, req.UserID, req.PointID)
	}

	// 3. Загружаем будущие активные бронирования, начиная с сегодняшнего дня
	now := uc.timeProvider.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	bookings, err := uc.repo.GetFutureActiveByPoint(ctx, req.PointID, from)
	if err != nil {
		uc.logger.Error("EstimateConflicts: failed to load bookings for point %d: %v",
			req.PointID, err)
		return nil, fmt.Errorf("%w: failed to load bookings: %v", ErrInternal, err)
	}

	// 4. Сопоставляем бронирования с предлагаемым расписанием
	conflicts := slotgrid.EstimateConflicts(req.Schedule, req.Posts, bookings)

	uc.logger.Info("EstimateConflicts: point=%d, bookings=%d, conflicts=%d",
		req.PointID, len(bookings), len(conflicts))

	return &Response{
		PointID:   req.PointID,
		Conflicts: conflicts,
	}, nil
}
