package preview_slot_grid

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	previewSlotGrid "github.com/m04kA/SMC-ScheduleService/internal/usecase/preview_slot_grid"
)

const (
	msgInvalidPointID     = "некорректный ID точки обслуживания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSchedule    = "некорректное расписание"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase PreviewSlotGridUseCase
	logger  Logger
}

func NewHandler(useCase PreviewSlotGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/service-points/{pointId}/slot-grid/preview
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем pointId из URL
	vars := mux.Vars(r)
	pointIDStr := vars["pointId"]

	pointID, err := strconv.ParseInt(pointIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /service-points/{id}/slot-grid/preview - Invalid point ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPointID)
		return
	}

	// Декодируем body
	var req PreviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /service-points/{id}/slot-grid/preview - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в запрос use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest(pointID)
	if err != nil {
		h.logger.Warn("POST /service-points/{id}/slot-grid/preview - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, previewSlotGrid.ErrInvalidSchedule):
			h.logger.Warn("POST /service-points/{id}/slot-grid/preview - Invalid schedule: point_id=%d, error=%v",
				pointID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, previewSlotGrid.ErrInvalidInput):
			h.logger.Warn("POST /service-points/{id}/slot-grid/preview - Invalid input: point_id=%d, error=%v",
				pointID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /service-points/{id}/slot-grid/preview - Failed to build preview: point_id=%d, error=%v",
				pointID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /service-points/{id}/slot-grid/preview - Preview built successfully: point_id=%d, seq=%d, slots_count=%d",
		pointID, result.Seq, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
