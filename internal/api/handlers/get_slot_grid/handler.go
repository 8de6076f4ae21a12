package get_slot_grid

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	getSlotGrid "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_slot_grid"
)

const (
	msgInvalidPointID    = "некорректный ID точки обслуживания"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidCategoryID = "некорректный ID категории"
	msgPointNotFound     = "точка обслуживания не найдена"
	msgInvalidInput      = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetSlotGridUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/service-points/{pointId}/slot-grid
// Query params: date (required, YYYY-MM-DD), categoryId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем pointId из URL
	pointIDStr := vars["pointId"]
	pointID, err := strconv.ParseInt(pointIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /service-points/{id}/slot-grid - Invalid point ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPointID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /service-points/{id}/slot-grid - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /service-points/{id}/slot-grid - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем опциональный categoryId
	var categoryID *int64
	if categoryIDStr := r.URL.Query().Get("categoryId"); categoryIDStr != "" {
		id, err := strconv.ParseInt(categoryIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /service-points/{id}/slot-grid - Invalid category ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCategoryID)
			return
		}
		categoryID = &id
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(userID, pointID, dateStr, categoryID)
	if err != nil {
		h.logger.Warn("GET /service-points/{id}/slot-grid - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getSlotGrid.ErrPointNotFound):
			h.logger.Warn("GET /service-points/{id}/slot-grid - Point not found: point_id=%d", pointID)
			handlers.RespondNotFound(w, msgPointNotFound)

		case errors.Is(err, getSlotGrid.ErrInvalidInput):
			h.logger.Warn("GET /service-points/{id}/slot-grid - Invalid input: point_id=%d, error=%v", pointID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /service-points/{id}/slot-grid - Failed to build grid: point_id=%d, error=%v",
				pointID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /service-points/{id}/slot-grid - Grid built successfully: point_id=%d, date=%s, slots_count=%d",
		pointID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
