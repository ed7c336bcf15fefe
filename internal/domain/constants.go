package domain

// Значения по умолчанию
const (
	DefaultSlotDurationMinutes        = 60
	DefaultAppointmentDurationMinutes = 60

	// Окно, которое показывается для дней без записи в расписании
	DefaultWindowStart = "09:00"
	DefaultWindowEnd   = "17:00"
)

// DateFormat формат календарной даты YYYY-MM-DD
const DateFormat = "2006-01-02"
