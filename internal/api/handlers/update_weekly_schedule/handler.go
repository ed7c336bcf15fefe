package update_weekly_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
)

const (
	msgMissingUserID      = "не указан ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректное расписание"
	msgForbidden          = "можно изменять только своё расписание"
	msgConcurrentUpdate   = "расписание изменяется другим запросом, повторите попытку"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/advisors/{advisorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	advisorID := mux.Vars(r)["advisorId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /advisors/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateWeeklyScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /advisors/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReplaceWeeklySchedule(r.Context(), req.ToServiceRequest(userID, advisorID))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /advisors/{id}/availability - Invalid data: advisor_id=%s, error=%v", advisorID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /advisors/{id}/availability - Access denied: advisor_id=%s, user_id=%s", advisorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrConcurrentUpdate):
			h.logger.Warn("PUT /advisors/{id}/availability - Concurrent update: advisor_id=%s", advisorID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("PUT /advisors/{id}/availability - Failed to replace schedule: advisor_id=%s, error=%v", advisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /advisors/{id}/availability - Schedule replaced: advisor_id=%s", advisorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
