package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UseCase use case для получения свободных слотов консультанта на дату
type UseCase struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	slotDuration     int
	logger           Logger
}

// NewUseCase создает новый экземпляр use case.
// slotDurationMinutes <= 0 заменяется значением по умолчанию
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	slotDurationMinutes int,
	logger Logger,
) *UseCase {
	if slotDurationMinutes <= 0 {
		slotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	return &UseCase{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		slotDuration:     slotDurationMinutes,
		logger:           logger,
	}
}

// Execute выполняет use case получения свободных слотов.
// Весь расчёт ведётся в UTC. Отсутствие расписания на день - не ошибка, а пустой список
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	dayStart, dayEnd := domain.DayBounds(req.Date)
	weekday := dayStart.Weekday()

	uc.logger.Info("GetAvailableSlots: advisor=%s, date=%s (%s)",
		req.AdvisorID, dayStart.Format(domain.DateFormat), domain.WeekdayNames[weekday])

	resp := &Response{
		AdvisorID:           req.AdvisorID,
		Date:                dayStart,
		SlotDurationMinutes: uc.slotDuration,
		Slots:               []types.TimeString{},
	}

	// 2. Получаем окно консультанта на этот день недели
	entry, err := uc.availabilityRepo.GetByAdvisorAndDay(ctx, req.AdvisorID, weekday)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			uc.logger.Info("GetAvailableSlots: advisor=%s has no availability on %s", req.AdvisorID, domain.WeekdayNames[weekday])
			return resp, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %w", ErrInternal, err)
	}

	// 3. Получаем подтверждённые встречи, начинающиеся в этот день
	appointments, err := uc.appointmentRepo.GetConfirmedByAdvisorInRange(ctx, req.AdvisorID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	// 4. Нарезаем окно на слоты и убираем занятые
	slots, err := generateSlots(entry, dayStart, time.Duration(uc.slotDuration)*time.Minute, appointments)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %w", ErrInternal, err)
	}
	resp.Slots = slots

	uc.logger.Info("GetAvailableSlots: %d free slots for advisor=%s on %s (%d booked)",
		len(slots), req.AdvisorID, dayStart.Format(domain.DateFormat), len(appointments))

	return resp, nil
}
