package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/events"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	partnerClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/partnerservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	partnerClient PartnerServiceClient
	publisher     EventPublisher
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	partnerClient PartnerServiceClient,
	publisher EventPublisher,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Service{
		bookingRepo:   bookingRepo,
		partnerClient: partnerClient,
		publisher:     publisher,
		txManager:     txManager,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование
// или если он является менеджером точки обслуживания
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetPointBookings получает бронирования точки обслуживания с гибкой фильтрацией
// Поддерживает фильтрацию по посту, периоду, статусу и включению неактивных бронирований
// Доступно только менеджерам точки
//
// Примеры использования:
// - Все активные бронирования: GetPointBookings(ctx, &GetPointBookingsRequest{PointID: 123, UserID: 456})
// - Бронирования на конкретном посту: указать PostID
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetPointBookings(ctx context.Context, req *models.GetPointBookingsRequest) (*models.BookingListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetPointBookings: fetching bookings for point=%d, user=%d", req.PointID, req.UserID)
	if req.PostID != nil {
		logMsg += fmt.Sprintf(", post=%d", *req.PostID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.PointID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPointBookings: invalid filter for point=%d: %v", req.PointID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем бронирования с фильтрацией
	bookings, err := s.bookingRepo.GetByPointWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPointBookings: repository error for point=%d: %v", req.PointID, err)
		return nil, fmt.Errorf("%w: GetPointBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPointBookings: successfully fetched %d bookings for point=%d", len(bookings), req.PointID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент может отменить только своё бронирование (cancelled_by_client)
// Менеджер может отменить любое бронирование точки (cancelled_by_partner)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	var event events.BookingStatusChangedEvent

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Получаем бронирование (FOR UPDATE внутри транзакции)
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// Проверяем, можно ли отменить бронирование
		if !booking.Status.Cancellable() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		// Определяем статус отмены в зависимости от прав доступа
		var cancelStatus domain.BookingStatus

		// Проверяем, является ли пользователь владельцем бронирования
		if booking.ClientID == req.UserID {
			cancelStatus = domain.StatusCancelledByClient
		} else {
			// Проверяем, является ли пользователь менеджером точки
			if err := s.checkManagerAccess(ctx, booking.PointID, req.UserID); err != nil {
				s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
				return ErrAccessDenied
			}
			cancelStatus = domain.StatusCancelledByPartner
		}

		// Отменяем бронирование
		if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		event = events.BookingStatusChangedEvent{
			BookingID: bookingID,
			PointID:   booking.PointID,
			ClientID:  booking.ClientID,
			OldStatus: booking.Status,
			NewStatus: cancelStatus,
			ChangedAt: s.timeProvider.Now(),
		}
		if req.CancellationReason != "" {
			reason := req.CancellationReason
			event.Reason = &reason
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Публикуем событие только после фиксации транзакции
	s.publishStatusChanged(ctx, event)

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, event.NewStatus)
	return nil
}

// UpdateStatus обновляет статус бронирования по правилам переходов
// Доступно только менеджерам точки обслуживания
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	// Валидируем и конвертируем статус до открытия транзакции
	requested, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	var event events.BookingStatusChangedEvent

	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Получаем бронирование (FOR UPDATE внутри транзакции)
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		// Проверяем права доступа (только менеджер точки)
		if err := s.checkManagerAccess(ctx, booking.PointID, req.UserID); err != nil {
			return err
		}

		// Проверяем переход по таблице допустимых переходов
		newStatus, err := domain.Transition(booking.Status, requested)
		if err != nil {
			s.logger.Warn("UpdateStatus: transition %s -> %s rejected for booking id=%d",
				booking.Status, requested, bookingID)
			return err
		}

		// Обновляем статус
		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		event = events.BookingStatusChangedEvent{
			BookingID: bookingID,
			PointID:   booking.PointID,
			ClientID:  booking.ClientID,
			OldStatus: booking.Status,
			NewStatus: newStatus,
			ChangedAt: s.timeProvider.Now(),
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Публикуем событие только после фиксации транзакции
	s.publishStatusChanged(ctx, event)

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, event.NewStatus)
	return nil
}

// Вспомогательные методы

// publishStatusChanged публикует событие смены статуса.
// Ошибка публикации не откатывает уже зафиксированное изменение
func (s *Service) publishStatusChanged(ctx context.Context, event events.BookingStatusChangedEvent) {
	if err := s.publisher.PublishStatusChanged(ctx, event); err != nil {
		s.logger.Warn("publishStatusChanged: failed to publish event for booking id=%d: %v",
			event.BookingID, err)
	}
}

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь может видеть своё бронирование или если он менеджер точки
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	// Если пользователь владелец бронирования - доступ разрешён
	if booking.ClientID == userID {
		return nil
	}

	// Проверяем, является ли пользователь менеджером точки
	if err := s.checkManagerAccess(ctx, booking.PointID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером точки
func (s *Service) checkManagerAccess(ctx context.Context, pointID int64, userID int64) error {
	// Получаем точку через PartnerService
	point, err := s.partnerClient.GetServicePoint(ctx, pointID)
	if err != nil {
		if errors.Is(err, partnerClient.ErrPointNotFound) {
			s.logger.Warn("checkManagerAccess: point id=%d not found", pointID)
			return ErrPointNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get point id=%d: %v", pointID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get point: %v", ErrInternal, err)
	}

	// Проверяем, что userID в списке менеджеров
	if !point.HasManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of point=%d", userID, pointID)
		return ErrAccessDenied
	}

	s.logger.Info("checkManagerAccess: user=%d is manager of point=%d", userID, pointID)
	return nil
}
