package get_weekly_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability"
)

const (
	msgInvalidAdvisorID = "некорректный ID консультанта"
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

// Handle GET /api/v1/advisors/{advisorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	advisorID := mux.Vars(r)["advisorId"]

	result, err := h.service.GetWeeklySchedule(r.Context(), advisorID)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			h.logger.Warn("GET /advisors/{id}/availability - Invalid advisor ID: %s", advisorID)
			handlers.RespondBadRequest(w, msgInvalidAdvisorID)
			return
		}
		h.logger.Error("GET /advisors/{id}/availability - Failed to get schedule: advisor_id=%s, error=%v", advisorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
