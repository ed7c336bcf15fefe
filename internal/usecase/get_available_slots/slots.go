package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// generateSlots нарезает окно расписания на слоты фиксированной длины и убирает занятые.
//
// Слот предлагается, если его начало строго раньше конца окна, даже когда конец слота
// выходит за окно (окно 09:00-10:30 при шаге 60 даёт 09:00 и 10:00).
// Слот занят, если пересекается хотя бы с одной встречей (см. domain.Overlaps):
// встреча 10:00-11:00 занимает слот 10:00, но не 09:00 и не 11:00
func generateSlots(
	entry *domain.AvailabilityEntry,
	date time.Time,
	slotDuration time.Duration,
	appointments []*domain.Appointment,
) ([]types.TimeString, error) {
	windowStart, err := entry.StartTime.OnDate(date)
	if err != nil {
		return nil, err
	}
	windowEnd, err := entry.EndTime.OnDate(date)
	if err != nil {
		return nil, err
	}

	slots := make([]types.TimeString, 0)
	for slotStart := windowStart; slotStart.Before(windowEnd); slotStart = slotStart.Add(slotDuration) {
		slotEnd := slotStart.Add(slotDuration)
		if isBooked(slotStart, slotEnd, appointments) {
			continue
		}
		slots = append(slots, types.NewTimeString(slotStart))
	}

	return slots, nil
}

// isBooked проверяет пересечение слота с подтверждёнными встречами
func isBooked(slotStart, slotEnd time.Time, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		if !appt.IsConfirmed() {
			continue
		}
		if domain.Overlaps(slotStart, slotEnd, appt.StartTime, appt.EndTime) {
			return true
		}
	}
	return false
}
