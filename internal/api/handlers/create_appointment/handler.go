package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "не указан ID пользователя"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgInvalidInput       = "некорректные параметры встречи"
	msgForeignProspect    = "нельзя записать другого пользователя"
	msgSlotNotAvailable   = "выбранное время уже занято, выберите другой слот"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Администратор может записать клиента, остальные записывают только себя
	prospectID := userID
	if requested := ptr.Deref(req.ProspectID, ""); requested != "" && requested != userID {
		if role != middleware.RoleAdmin {
			h.logger.Warn("POST /appointments - user_id=%s tried to book for prospect_id=%s", userID, requested)
			handlers.RespondForbidden(w, msgForeignProspect)
			return
		}
		prospectID = requested
	}

	useCaseReq, err := req.ToUseCaseRequest(prospectID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: advisor_id=%s, start=%s", req.AdvisorID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: prospect_id=%s, advisor_id=%s, error=%v",
				prospectID, req.AdvisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s, prospect_id=%s, advisor_id=%s",
		result.ID, result.ProspectID, result.AdvisorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
