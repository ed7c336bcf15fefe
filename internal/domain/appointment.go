package domain

import "time"

// AppointmentStatus статус встречи
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// IsValid returns true for a known status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Appointment represents a booked meeting between a prospect and an advisor
type Appointment struct {
	ID         string
	ProspectID string
	AdvisorID  string
	StartTime  time.Time // UTC
	EndTime    time.Time // UTC, не включается в интервал
	Status     AppointmentStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsConfirmed returns true if the appointment occupies the advisor's time
func (a *Appointment) IsConfirmed() bool {
	return a.Status == StatusConfirmed
}

// Overlaps returns true if the appointment intersects [start, end)
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return Overlaps(a.StartTime, a.EndTime, start, end)
}

// CanTransitionTo returns true if the status change is allowed.
// CONFIRMED -> CANCELLED | COMPLETED, CANCELLED -> CONFIRMED
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCompleted
	case StatusCancelled:
		return next == StatusConfirmed
	default:
		return false
	}
}

// AppointmentsFilter фильтр для выборки встреч, все поля опциональны
type AppointmentsFilter struct {
	AdvisorID   *string
	ProspectID  *string
	Status      *AppointmentStatus
	StartFrom   *time.Time // start_time >= StartFrom
	StartBefore *time.Time // start_time < StartBefore
}
