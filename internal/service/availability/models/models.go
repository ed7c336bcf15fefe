package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// DaySchedule расписание на день в API
type DaySchedule struct {
	Enabled   bool   `json:"enabled"`
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "17:00"
}

// ReplaceWeeklyScheduleRequest запрос на замену недельного расписания.
// Days - ключ имя дня ("monday"), отсутствующие дни считаются выключенными
type ReplaceWeeklyScheduleRequest struct {
	ActorID   string                 `json:"-"`
	AdvisorID string                 `json:"-"`
	Days      map[string]DaySchedule `json:"days"`
}

// WeeklyScheduleResponse недельное расписание, всегда содержит все семь дней
type WeeklyScheduleResponse struct {
	AdvisorID string                 `json:"advisorId"`
	Days      map[string]DaySchedule `json:"days"`
}

// FromDomainWeeklySchedule конвертирует domain расписание в DTO
func FromDomainWeeklySchedule(advisorID string, s domain.WeeklySchedule) *WeeklyScheduleResponse {
	days := make(map[string]DaySchedule, len(s))
	for i, day := range s {
		days[domain.WeekdayNames[i]] = DaySchedule{
			Enabled:   day.Enabled,
			StartTime: day.StartTime.String(),
			EndTime:   day.EndTime.String(),
		}
	}
	return &WeeklyScheduleResponse{
		AdvisorID: advisorID,
		Days:      days,
	}
}

// Weekday удобный доступ к дню по time.Weekday
func (r *WeeklyScheduleResponse) Weekday(day time.Weekday) DaySchedule {
	return r.Days[domain.WeekdayNames[day]]
}
