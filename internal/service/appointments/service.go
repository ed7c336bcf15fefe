package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/events"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
)

// Service сервис администрирования встреч
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	profiles        ProfileProvider
	publisher       EventPublisher
	logger          Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	profiles ProfileProvider,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		profiles:        profiles,
		publisher:       publisher,
		logger:          logger,
	}
}

// List возвращает встречи по фильтру, сначала самые поздние
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter, err := toDomainFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("List: found %d appointments", len(list))
	resp := models.FromDomainAppointments(list)
	s.attachParticipants(ctx, resp)
	return resp, nil
}

// attachParticipants дополняет список именами и email клиента и консультанта.
// Недоступность ProfileService не ломает список, встречи возвращаются без профилей
func (s *Service) attachParticipants(ctx context.Context, resp *models.AppointmentListResponse) {
	if len(resp.Appointments) == 0 {
		return
	}

	seen := make(map[string]struct{}, len(resp.Appointments)*2)
	ids := make([]string, 0, len(resp.Appointments)*2)
	for _, a := range resp.Appointments {
		for _, id := range []string{a.ProspectID, a.AdvisorID} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	profiles, err := s.profiles.GetProfilesByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("List: ProfileService unavailable, returning appointments without participants: %v", err)
		return
	}

	for i := range resp.Appointments {
		a := &resp.Appointments[i]
		if p, ok := profiles[a.ProspectID]; ok {
			a.Prospect = models.NewParticipant(p)
		}
		if p, ok := profiles[a.AdvisorID]; ok {
			a.Advisor = models.NewParticipant(p)
		}
	}
}

// ListMine возвращает встречи, в которых пользователь участвует как клиент
func (s *Service) ListMine(ctx context.Context, userID string) (*models.AppointmentListResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("%w: user id must be a valid UUID", ErrInvalidInput)
	}

	list, err := s.appointmentRepo.List(ctx, domain.AppointmentsFilter{ProspectID: &userID})
	if err != nil {
		s.logger.Error("ListMine: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainAppointments(list), nil
}

// GetByID получает встречу по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: appointment id must be a valid UUID", ErrInvalidInput)
	}

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// UpdateStatus меняет статус встречи.
// Допустимо CONFIRMED -> CANCELLED | COMPLETED и CANCELLED -> CONFIRMED.
// При повторном подтверждении пересечения в приложении не проверяются,
// пересекающуюся встречу отклонит ограничение в БД
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%s to status=%s", id, req.Status)

	// 1. Валидация входных данных
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: appointment id must be a valid UUID", ErrInvalidInput)
	}
	next := domain.AppointmentStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !next.IsValid() {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	var (
		updated  *domain.Appointment
		previous domain.AppointmentStatus
	)

	// 2. Проверяем переход и обновляем статус в одной транзакции
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if !appt.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, next)
		}
		previous = appt.Status

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, next); err != nil {
			return err
		}

		updated, err = s.appointmentRepo.GetByID(txCtx, id)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			s.logger.Warn("UpdateStatus: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		case errors.Is(err, ErrInvalidTransition):
			s.logger.Warn("UpdateStatus: appointment id=%s: %v", id, err)
			return nil, err
		case errors.Is(err, appointmentRepo.ErrSlotNotAvailable):
			s.logger.Warn("UpdateStatus: appointment id=%s overlaps a confirmed appointment", id)
			return nil, ErrSlotNotAvailable
		default:
			s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}
	}

	// 3. Событие публикуется после фиксации транзакции
	event := events.NewAppointmentEvent(events.TypeAppointmentStatusChanged, updated)
	event.PreviousStatus = string(previous)
	s.publish(ctx, event)

	s.logger.Info("UpdateStatus: appointment id=%s changed %s -> %s", id, previous, next)
	return models.FromDomainAppointment(updated), nil
}

// Delete удаляет встречу безвозвратно
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: appointment id must be a valid UUID", ErrInvalidInput)
	}

	var deleted *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.appointmentRepo.Delete(txCtx, id); err != nil {
			return err
		}
		deleted = appt
		return nil
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%s not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
	}

	s.publish(ctx, events.NewAppointmentEvent(events.TypeAppointmentDeleted, deleted))

	s.logger.Info("Delete: appointment id=%s deleted", id)
	return nil
}

// publish отправляет событие, ошибка только логируется: встреча уже сохранена
func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish %s for appointment id=%s: %v", event.Type, event.AppointmentID, err)
	}
}

func toDomainFilter(req *models.ListAppointmentsRequest) (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		StartFrom:   req.From,
		StartBefore: req.To,
	}

	if req.AdvisorID != nil {
		if _, err := uuid.Parse(*req.AdvisorID); err != nil {
			return filter, fmt.Errorf("%w: advisorId must be a valid UUID", ErrInvalidInput)
		}
		filter.AdvisorID = req.AdvisorID
	}
	if req.ProspectID != nil {
		if _, err := uuid.Parse(*req.ProspectID); err != nil {
			return filter, fmt.Errorf("%w: prospectId must be a valid UUID", ErrInvalidInput)
		}
		filter.ProspectID = req.ProspectID
	}
	if req.Status != nil {
		status := domain.AppointmentStatus(strings.ToUpper(*req.Status))
		if !status.IsValid() {
			return filter, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}
	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return filter, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	return filter, nil
}
