package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/events"
)

// UseCase use case для создания встречи
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	publisher       EventPublisher
	duration        time.Duration
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// durationMinutes <= 0 заменяется значением по умолчанию
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	durationMinutes int,
	logger Logger,
) *UseCase {
	if durationMinutes <= 0 {
		durationMinutes = domain.DefaultAppointmentDurationMinutes
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		publisher:       publisher,
		duration:        time.Duration(durationMinutes) * time.Minute,
		logger:          logger,
	}
}

// Execute выполняет use case создания встречи.
//
// Список слотов, который видел клиент, мог устареть, поэтому пересечения проверяются
// заново в сериализуемой транзакции вместе со вставкой. Последний рубеж - exclusion
// constraint в БД: если параллельная транзакция успела вставить пересекающуюся встречу,
// вставка отклоняется и результат тот же - ErrSlotNotAvailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: prospect=%s, advisor=%s, start=%s",
		req.ProspectID, req.AdvisorID, req.StartTime.UTC().Format(time.RFC3339))

	// 1. Валидация входных данных
	start, end, err := validateRequest(req, uc.duration)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 2. Проверка пересечений и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Ищем подтверждённые встречи, пересекающиеся с [start, end) (FOR UPDATE)
		overlapping, err := uc.appointmentRepo.FindOverlapping(txCtx, req.AdvisorID, start, end)
		if err != nil {
			return fmt.Errorf("find overlapping: %w", err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateAppointment: advisor=%s interval %s-%s overlaps appointment id=%s",
				req.AdvisorID, start.Format(time.RFC3339), end.Format(time.RFC3339), overlapping[0].ID)
			return ErrSlotNotAvailable
		}

		// 2.2. Сохраняем встречу
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ProspectID: req.ProspectID,
			AdvisorID:  req.AdvisorID,
			StartTime:  start,
			EndTime:    end,
			Status:     domain.StatusConfirmed,
		})
		if err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable):
			return nil, ErrSlotNotAvailable
		case errors.Is(err, appointmentRepo.ErrSlotNotAvailable):
			uc.logger.Warn("CreateAppointment: advisor=%s interval %s-%s rejected by storage constraint",
				req.AdvisorID, start.Format(time.RFC3339), end.Format(time.RFC3339))
			return nil, ErrSlotNotAvailable
		default:
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	// 3. Событие публикуется после фиксации, ошибка публикации не отменяет встречу
	if err := uc.publisher.Publish(ctx, events.NewAppointmentEvent(events.TypeAppointmentCreated, result)); err != nil {
		uc.logger.Error("CreateAppointment: failed to publish event for appointment id=%s: %v", result.ID, err)
	}

	return &Response{
		ID:         result.ID,
		ProspectID: result.ProspectID,
		AdvisorID:  result.AdvisorID,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		Status:     string(result.Status),
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}
