package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/profileservice"
)

// ListAppointmentsRequest фильтр списка встреч, все поля опциональны
type ListAppointmentsRequest struct {
	AdvisorID  *string
	ProspectID *string
	Status     *string
	From       *time.Time // start_time >= From
	To         *time.Time // start_time < To
}

// UpdateStatusRequest запрос на смену статуса встречи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AppointmentResponse ответ с данными встречи
type AppointmentResponse struct {
	ID         string    `json:"id"`
	ProspectID string    `json:"prospectId"`
	AdvisorID  string    `json:"advisorId"`
	StartTime  time.Time `json:"startTime"` // RFC 3339, UTC
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Заполняются только в админском списке
	Prospect *Participant `json:"prospect,omitempty"`
	Advisor  *Participant `json:"advisor,omitempty"`
}

// Participant имя и email участника встречи
type Participant struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func NewParticipant(p profileservice.Profile) *Participant {
	return &Participant{FullName: p.FullName, Email: p.Email}
}

// AppointmentListResponse ответ со списком встреч
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}
	return &AppointmentResponse{
		ID:         a.ID,
		ProspectID: a.ProspectID,
		AdvisorID:  a.AdvisorID,
		StartTime:  a.StartTime.UTC(),
		EndTime:    a.EndTime.UTC(),
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// FromDomainAppointments конвертирует список, nil превращается в пустой список
func FromDomainAppointments(list []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
	}
	for _, a := range list {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}
	return resp
}
