package get_point_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings"
)

const (
	msgInvalidPointID = "некорректный ID точки обслуживания"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidParams  = "некорректные параметры запроса"
	msgPointNotFound  = "точка обслуживания не найдена"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/service-points/{pointId}/bookings
// Query params: postId, status, startDate, endDate, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем pointId из URL
	vars := mux.Vars(r)
	pointIDStr := vars["pointId"]

	pointID, err := strconv.ParseInt(pointIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /service-points/{id}/bookings - Invalid point ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPointID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /service-points/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем опциональные query параметры
	postIDStr := r.URL.Query().Get("postId")
	statusStr := r.URL.Query().Get("status")
	startDateStr := r.URL.Query().Get("startDate")
	endDateStr := r.URL.Query().Get("endDate")
	includeInactiveStr := r.URL.Query().Get("includeInactive")

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(pointID, userID, postIDStr, statusStr, startDateStr, endDateStr, includeInactiveStr)
	if err != nil {
		h.logger.Warn("GET /service-points/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем бронирования точки (сервис сам проверит права менеджера)
	result, err := h.service.GetPointBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrPointNotFound):
			h.logger.Warn("GET /service-points/{id}/bookings - Point not found: point_id=%d", pointID)
			handlers.RespondNotFound(w, msgPointNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /service-points/{id}/bookings - Access denied: point_id=%d, user_id=%d",
				pointID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /service-points/{id}/bookings - Invalid filter: point_id=%d, error=%v",
				pointID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /service-points/{id}/bookings - Failed to get bookings: point_id=%d, error=%v",
				pointID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /service-points/{id}/bookings - Bookings retrieved successfully: point_id=%d, count=%d",
		pointID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
