package domain

import "time"

// Overlaps проверяет пересечение полуинтервалов [start1, end1) и [start2, end2).
// Неравенства строгие: встречи, которые только соприкасаются границами, не пересекаются
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}

// DayBounds возвращает [00:00, 00:00 следующего дня) календарного дня date в UTC
func DayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
