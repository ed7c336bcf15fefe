package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name         string
		start, end   types.TimeString
		slotMinutes  int
		appointments []*domain.Appointment
		want         []types.TimeString
	}{
		{
			name:        "window shorter than slot",
			start:       "09:00",
			end:         "09:30",
			slotMinutes: 60,
			want:        []types.TimeString{"09:00"},
		},
		{
			name:        "last slot may exceed window",
			start:       "09:00",
			end:         "10:30",
			slotMinutes: 60,
			want:        []types.TimeString{"09:00", "10:00"},
		},
		{
			name:        "half hour step",
			start:       "09:00",
			end:         "11:00",
			slotMinutes: 30,
			want:        []types.TimeString{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name:         "partially overlapping appointment blocks both slots",
			start:        "09:00",
			end:          "12:00",
			slotMinutes:  60,
			appointments: []*domain.Appointment{confirmedAt(9, 30, 60)},
			want:         []types.TimeString{"11:00"},
		},
		{
			name:        "cancelled appointment does not block",
			start:       "09:00",
			end:         "11:00",
			slotMinutes: 60,
			appointments: []*domain.Appointment{
				{StartTime: monday.Add(9 * time.Hour), EndTime: monday.Add(10 * time.Hour), Status: domain.StatusCancelled},
			},
			want: []types.TimeString{"09:00", "10:00"},
		},
		{
			name:        "window up to the end of the day",
			start:       "22:00",
			end:         "23:59",
			slotMinutes: 60,
			want:        []types.TimeString{"22:00", "23:00"},
		},
		{
			name:        "empty window",
			start:       "10:00",
			end:         "10:00",
			slotMinutes: 60,
			want:        []types.TimeString{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &domain.AvailabilityEntry{DayOfWeek: time.Monday, StartTime: tt.start, EndTime: tt.end}

			got, err := generateSlots(entry, monday, time.Duration(tt.slotMinutes)*time.Minute, tt.appointments)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateSlots_InvalidWindow(t *testing.T) {
	entry := &domain.AvailabilityEntry{StartTime: "9am", EndTime: "17:00"}

	_, err := generateSlots(entry, monday, time.Hour, nil)

	assert.ErrorIs(t, err, types.ErrInvalidTimeString)
}
