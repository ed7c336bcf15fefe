package availability

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория недельного расписания
type AvailabilityRepository interface {
	GetByAdvisor(ctx context.Context, advisorID string) ([]*domain.AvailabilityEntry, error)
	DeleteByAdvisor(ctx context.Context, advisorID string) (int64, error)
	CreateBatch(ctx context.Context, entries []*domain.AvailabilityEntry) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
