package events

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Типы событий, они же имена топиков
const (
	TypeAppointmentCreated       = "appointment.created"
	TypeAppointmentStatusChanged = "appointment.status_changed"
	TypeAppointmentDeleted       = "appointment.deleted"
)

// Event событие жизненного цикла встречи
type Event struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	AppointmentID  string    `json:"appointmentId"`
	AdvisorID      string    `json:"advisorId"`
	ProspectID     string    `json:"prospectId"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// NewAppointmentEvent собирает событие по встрече
func NewAppointmentEvent(eventType string, a *domain.Appointment) Event {
	return Event{
		Type:          eventType,
		AppointmentID: a.ID,
		AdvisorID:     a.AdvisorID,
		ProspectID:    a.ProspectID,
		StartTime:     a.StartTime.UTC(),
		EndTime:       a.EndTime.UTC(),
		Status:        string(a.Status),
	}
}
