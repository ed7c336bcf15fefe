package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	AdvisorID string    // ID консультанта
	Date      time.Time // Календарная дата, берётся в UTC, время отбрасывается
}

// Response модель ответа со списком свободных слотов
type Response struct {
	AdvisorID           string
	Date                time.Time          // Начало дня в UTC
	SlotDurationMinutes int                // Длительность слота
	Slots               []types.TimeString // Время начала свободных слотов по возрастанию
}
