package list_appointments

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// ToServiceRequest собирает фильтр из query параметров:
// advisorId, prospectId, status, from, to (RFC 3339)
func ToServiceRequest(query url.Values) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{
		AdvisorID:  optional(query, "advisorId"),
		ProspectID: optional(query, "prospectId"),
		Status:     optional(query, "status"),
	}

	if v := query.Get("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		req.From = ptr.Ptr(from)
	}
	if v := query.Get("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		req.To = ptr.Ptr(to)
	}

	return req, nil
}

func optional(query url.Values, key string) *string {
	v := query.Get(key)
	if v == "" {
		return nil
	}
	return ptr.Ptr(v)
}
