package create_appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// validateRequest валидирует запрос и возвращает интервал встречи в UTC
func validateRequest(req *Request, duration time.Duration) (time.Time, time.Time, error) {
	if _, err := uuid.Parse(req.ProspectID); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: prospectId must be a valid UUID", ErrInvalidInput)
	}

	if _, err := uuid.Parse(req.AdvisorID); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: advisorId must be a valid UUID", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	start := req.StartTime.UTC()
	end := start.Add(duration)
	if req.EndTime != nil {
		end = req.EndTime.UTC()
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	if end.Sub(start) != duration {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: appointment must last exactly %d minutes", ErrInvalidInput, int(duration.Minutes()))
	}

	return start, end, nil
}
