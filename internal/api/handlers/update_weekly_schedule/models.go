package update_weekly_schedule

import "github.com/m04kA/SMC-SchedulingService/internal/service/availability/models"

// UpdateWeeklyScheduleRequest HTTP request model.
// Ключ days - имя дня недели в нижнем регистре ("monday")
type UpdateWeeklyScheduleRequest struct {
	Days map[string]models.DaySchedule `json:"days"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateWeeklyScheduleRequest) ToServiceRequest(actorID, advisorID string) *models.ReplaceWeeklyScheduleRequest {
	return &models.ReplaceWeeklyScheduleRequest{
		ActorID:   actorID,
		AdvisorID: advisorID,
		Days:      r.Days,
	}
}
