package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория недельного расписания
type AvailabilityRepository interface {
	// GetByAdvisorAndDay возвращает окно консультанта на день недели или ErrAvailabilityNotFound
	GetByAdvisorAndDay(ctx context.Context, advisorID string, day time.Weekday) (*domain.AvailabilityEntry, error)
}

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	// GetConfirmedByAdvisorInRange возвращает подтверждённые встречи, начинающиеся в [from, to)
	GetConfirmedByAdvisorInRange(ctx context.Context, advisorID string, from, to time.Time) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
