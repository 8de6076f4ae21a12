package estimate_conflicts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	estimateConflicts "github.com/m04kA/SMC-ScheduleService/internal/usecase/estimate_conflicts"
)

const (
	msgInvalidPointID     = "некорректный ID точки обслуживания"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректное расписание"
	msgInvalidInput       = "некорректные параметры запроса"
	msgPointNotFound      = "точка обслуживания не найдена"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase EstimateConflictsUseCase
	logger  Logger
}

func NewHandler(useCase EstimateConflictsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/service-points/{pointId}/schedule/conflicts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем pointId из URL
	vars := mux.Vars(r)
	pointIDStr := vars["pointId"]

	pointID, err := strconv.ParseInt(pointIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /service-points/{id}/schedule/conflicts - Invalid point ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPointID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /service-points/{id}/schedule/conflicts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req EstimateConflictsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /service-points/{id}/schedule/conflicts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, pointID))
	if err != nil {
		switch {
		case errors.Is(err, estimateConflicts.ErrPointNotFound):
			h.logger.Warn("POST /service-points/{id}/schedule/conflicts - Point not found: point_id=%d", pointID)
			handlers.RespondNotFound(w, msgPointNotFound)

		case errors.Is(err, estimateConflicts.ErrAccessDenied):
			h.logger.Warn("POST /service-points/{id}/schedule/conflicts - Access denied: point_id=%d, user_id=%d",
				pointID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, estimateConflicts.ErrInvalidSchedule):
			h.logger.Warn("POST /service-points/{id}/schedule/conflicts - Invalid schedule: point_id=%d, error=%v",
				pointID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, estimateConflicts.ErrInvalidInput):
			h.logger.Warn("POST /service-points/{id}/schedule/conflicts - Invalid input: point_id=%d, error=%v",
				pointID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /service-points/{id}/schedule/conflicts - Failed to estimate conflicts: point_id=%d, error=%v",
				pointID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /service-points/{id}/schedule/conflicts - Conflicts estimated: point_id=%d, conflicts_count=%d",
		pointID, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, response)
}
