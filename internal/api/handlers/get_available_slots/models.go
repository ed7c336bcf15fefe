package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	AdvisorID           string   `json:"advisorId"`
	Date                string   `json:"date"` // "2025-10-13"
	SlotDurationMinutes int      `json:"slotDurationMinutes"`
	Slots               []string `json:"slots"` // ["09:00", "10:00"]
}

// ToUseCaseRequest парсит дату (YYYY-MM-DD, UTC) и собирает запрос use case
func ToUseCaseRequest(advisorID, date string) (*getAvailableSlots.Request, error) {
	parsed, err := time.ParseInLocation(domain.DateFormat, date, time.UTC)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{
		AdvisorID: advisorID,
		Date:      parsed,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}
	return &AvailableSlotsResponse{
		AdvisorID:           resp.AdvisorID,
		Date:                resp.Date.Format(domain.DateFormat),
		SlotDurationMinutes: resp.SlotDurationMinutes,
		Slots:               slots,
	}
}
