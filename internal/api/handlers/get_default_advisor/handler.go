package get_default_advisor

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/profileservice"
)

const (
	msgNotFound = "консультант не найден"
)

// AdvisorResponse HTTP response model
type AdvisorResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type Handler struct {
	client ProfileClient
	logger Logger
}

func NewHandler(client ProfileClient, logger Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

// Handle GET /api/v1/advisors/default
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	advisor, err := h.client.GetDefaultAdvisor(r.Context())
	if err != nil {
		if errors.Is(err, profileservice.ErrAdvisorNotFound) {
			h.logger.Warn("GET /advisors/default - No admin profile found")
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /advisors/default - Failed to resolve default advisor: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, AdvisorResponse{
		ID:       advisor.ID,
		FullName: advisor.FullName,
		Email:    advisor.Email,
	})
}
