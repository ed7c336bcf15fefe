package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/pgerrors"
)

// Service сервис недельного расписания консультантов
type Service struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetWeeklySchedule возвращает расписание консультанта на все семь дней.
// Дни без записи выключены и имеют окно по умолчанию
func (s *Service) GetWeeklySchedule(ctx context.Context, advisorID string) (*models.WeeklyScheduleResponse, error) {
	if _, err := uuid.Parse(advisorID); err != nil {
		return nil, fmt.Errorf("%w: advisorId must be a valid UUID", ErrInvalidInput)
	}

	entries, err := s.availabilityRepo.GetByAdvisor(ctx, advisorID)
	if err != nil {
		s.logger.Error("GetWeeklySchedule: repository error for advisor=%s: %v", advisorID, err)
		return nil, fmt.Errorf("%w: GetWeeklySchedule - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainWeeklySchedule(advisorID, domain.WeeklyScheduleFromEntries(entries)), nil
}

// ReplaceWeeklySchedule заменяет расписание консультанта целиком.
// Удаление старых записей и вставка новых выполняются в одной SERIALIZABLE транзакции,
// параллельная замена того же расписания повторяется или возвращает ErrConcurrentUpdate
func (s *Service) ReplaceWeeklySchedule(ctx context.Context, req *models.ReplaceWeeklyScheduleRequest) (*models.WeeklyScheduleResponse, error) {
	s.logger.Info("ReplaceWeeklySchedule: advisor=%s by user=%s", req.AdvisorID, req.ActorID)

	// 1. Валидация входных данных
	schedule, err := validateReplaceRequest(req)
	if err != nil {
		s.logger.Warn("ReplaceWeeklySchedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Консультант меняет только своё расписание
	if req.ActorID != req.AdvisorID {
		s.logger.Warn("ReplaceWeeklySchedule: user=%s tried to modify schedule of advisor=%s", req.ActorID, req.AdvisorID)
		return nil, ErrAccessDenied
	}

	entries := schedule.Entries(req.AdvisorID)

	// 3. Удаляем старое расписание и сохраняем новое атомарно
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		deleted, err := s.availabilityRepo.DeleteByAdvisor(txCtx, req.AdvisorID)
		if err != nil {
			return fmt.Errorf("delete existing entries: %w", err)
		}

		if err := s.availabilityRepo.CreateBatch(txCtx, entries); err != nil {
			return fmt.Errorf("insert entries: %w", err)
		}

		s.logger.Info("ReplaceWeeklySchedule: advisor=%s replaced %d entries with %d", req.AdvisorID, deleted, len(entries))
		return nil
	})
	if errors.Is(err, availabilityRepo.ErrDayAlreadyExists) || pgerrors.IsRetryable(err) {
		s.logger.Warn("ReplaceWeeklySchedule: concurrent update of advisor=%s: %v", req.AdvisorID, err)
		return nil, ErrConcurrentUpdate
	}
	if err != nil {
		s.logger.Error("ReplaceWeeklySchedule: transaction failed for advisor=%s: %v", req.AdvisorID, err)
		return nil, fmt.Errorf("%w: ReplaceWeeklySchedule - %w", ErrInternal, err)
	}

	return models.FromDomainWeeklySchedule(req.AdvisorID, domain.WeeklyScheduleFromEntries(entries)), nil
}
