package availability

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// validateReplaceRequest проверяет запрос и возвращает нормализованное расписание.
// Включённые дни без одного из времён пропускаются
func validateReplaceRequest(req *models.ReplaceWeeklyScheduleRequest) (domain.WeeklySchedule, error) {
	var schedule domain.WeeklySchedule

	if _, err := uuid.Parse(req.AdvisorID); err != nil {
		return schedule, fmt.Errorf("%w: advisorId must be a valid UUID", ErrInvalidInput)
	}
	if _, err := uuid.Parse(req.ActorID); err != nil {
		return schedule, fmt.Errorf("%w: actor id must be a valid UUID", ErrInvalidInput)
	}

	var seen [7]bool
	for name, day := range req.Days {
		wd, ok := domain.ParseWeekday(name)
		if !ok {
			return schedule, fmt.Errorf("%w: unknown day of week %q", ErrInvalidInput, name)
		}
		// "monday" и "Monday" - один и тот же день, порядок обхода map не определён
		if seen[wd] {
			return schedule, fmt.Errorf("%w: duplicate day of week %q", ErrInvalidInput, name)
		}
		seen[wd] = true

		if !day.Enabled || day.StartTime == "" || day.EndTime == "" {
			continue
		}

		start, err := types.NewTimeStringFromString(day.StartTime)
		if err != nil {
			return schedule, fmt.Errorf("%w: %s: invalid startTime %q", ErrInvalidInput, name, day.StartTime)
		}
		end, err := types.NewTimeStringFromString(day.EndTime)
		if err != nil {
			return schedule, fmt.Errorf("%w: %s: invalid endTime %q", ErrInvalidInput, name, day.EndTime)
		}
		if !start.IsBefore(end) {
			return schedule, fmt.Errorf("%w: %s: startTime must be before endTime", ErrInvalidInput, name)
		}

		schedule[wd] = domain.DaySchedule{
			Enabled:   true,
			StartTime: start,
			EndTime:   end,
		}
	}

	return schedule, nil
}
