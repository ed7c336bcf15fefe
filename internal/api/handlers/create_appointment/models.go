package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	AdvisorID  string  `json:"advisorId"`
	ProspectID *string `json:"prospectId,omitempty"` // только для администратора, по умолчанию текущий пользователь
	StartTime  string  `json:"startTime"`            // RFC 3339, "2025-10-13T10:00:00Z"
	EndTime    *string `json:"endTime,omitempty"`    // по умолчанию startTime + 60 минут
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         string `json:"id"`
	ProspectID string `json:"prospectId"`
	AdvisorID  string `json:"advisorId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(prospectID string) (*createAppointment.Request, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createAppointment.Request{
		ProspectID: prospectID,
		AdvisorID:  r.AdvisorID,
		StartTime:  start.UTC(),
	}

	if r.EndTime != nil && *r.EndTime != "" {
		end, err := time.Parse(time.RFC3339, *r.EndTime)
		if err != nil {
			return nil, err
		}
		end = end.UTC()
		req.EndTime = &end
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:         resp.ID,
		ProspectID: resp.ProspectID,
		AdvisorID:  resp.AdvisorID,
		StartTime:  resp.StartTime.UTC().Format(time.RFC3339),
		EndTime:    resp.EndTime.UTC().Format(time.RFC3339),
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
