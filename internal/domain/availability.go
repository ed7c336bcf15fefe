package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// AvailabilityEntry is a stored weekly window of one advisor for one day of week
type AvailabilityEntry struct {
	ID        int64
	AdvisorID string
	DayOfWeek time.Weekday // 0 = воскресенье .. 6 = суббота
	StartTime types.TimeString
	EndTime   types.TimeString
	CreatedAt time.Time
}

// DaySchedule расписание на один день недели
type DaySchedule struct {
	Enabled   bool
	StartTime types.TimeString
	EndTime   types.TimeString
}

// WeeklySchedule расписание на неделю, индекс - time.Weekday
type WeeklySchedule [7]DaySchedule

// WeekdayNames имена дней в API, индекс - time.Weekday
var WeekdayNames = [7]string{
	"sunday",
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
}

// ParseWeekday переводит имя дня ("monday") в time.Weekday
func ParseWeekday(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range WeekdayNames {
		if n == name {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// NewDefaultWeeklySchedule все дни выключены, окно 09:00-17:00
func NewDefaultWeeklySchedule() WeeklySchedule {
	var s WeeklySchedule
	for i := range s {
		s[i] = DaySchedule{
			Enabled:   false,
			StartTime: DefaultWindowStart,
			EndTime:   DefaultWindowEnd,
		}
	}
	return s
}

// WeeklyScheduleFromEntries собирает недельное расписание из сохранённых записей.
// Дни без записи остаются выключенными с окном по умолчанию
func WeeklyScheduleFromEntries(entries []*AvailabilityEntry) WeeklySchedule {
	s := NewDefaultWeeklySchedule()
	for _, e := range entries {
		if e.DayOfWeek < time.Sunday || e.DayOfWeek > time.Saturday {
			continue
		}
		s[e.DayOfWeek] = DaySchedule{
			Enabled:   true,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
		}
	}
	return s
}

// Entries возвращает записи для включённых дней, у которых заданы оба времени
func (s WeeklySchedule) Entries(advisorID string) []*AvailabilityEntry {
	entries := make([]*AvailabilityEntry, 0, len(s))
	for i, day := range s {
		if !day.Enabled || day.StartTime.IsZero() || day.EndTime.IsZero() {
			continue
		}
		entries = append(entries, &AvailabilityEntry{
			AdvisorID: advisorID,
			DayOfWeek: time.Weekday(i),
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
		})
	}
	return entries
}
