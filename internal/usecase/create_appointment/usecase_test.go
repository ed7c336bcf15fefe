package create_appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/events"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const (
	advisorID  = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	prospectID = "9b2f1c3e-5d4a-4e6f-8a7b-0c1d2e3f4a5b"
)

// 10 марта 2025 - понедельник
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func hm(hour, minute int) time.Time {
	return monday.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// memoryStore хранилище встреч в памяти. Транзакции сериализуются через lockingTxManager
type memoryStore struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	createErr    error
}

func (s *memoryStore) FindOverlapping(_ context.Context, advisor string, start, end time.Time) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*domain.Appointment
	for _, a := range s.appointments {
		if a.AdvisorID == advisor && a.IsConfirmed() && a.Overlaps(start, end) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *memoryStore) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return nil, s.createErr
	}

	created := *appt
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	s.appointments = append(s.appointments, &created)
	return &created, nil
}

func (s *memoryStore) GetConfirmedByAdvisorInRange(_ context.Context, advisor string, from, to time.Time) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*domain.Appointment
	for _, a := range s.appointments {
		if a.AdvisorID == advisor && a.IsConfirmed() && !a.StartTime.Before(from) && a.StartTime.Before(to) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *memoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

type lockingTxManager struct {
	mu    sync.Mutex
	calls int
}

func (m *lockingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return fn(ctx)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type mondayAvailability struct{}

func (mondayAvailability) GetByAdvisorAndDay(_ context.Context, advisor string, day time.Weekday) (*domain.AvailabilityEntry, error) {
	if day != time.Monday {
		return nil, availabilityRepo.ErrAvailabilityNotFound
	}
	return &domain.AvailabilityEntry{AdvisorID: advisor, DayOfWeek: day, StartTime: "09:00", EndTime: "17:00"}, nil
}

func newTestUseCase(store *memoryStore, publisher *recordingPublisher) *UseCase {
	return NewUseCase(store, &lockingTxManager{}, publisher, 60, logger.NewNop())
}

func TestExecute_Success(t *testing.T) {
	store := &memoryStore{}
	publisher := &recordingPublisher{}
	uc := newTestUseCase(store, publisher)

	resp, err := uc.Execute(context.Background(), &Request{
		ProspectID: prospectID,
		AdvisorID:  advisorID,
		StartTime:  hm(10, 0),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, prospectID, resp.ProspectID)
	assert.Equal(t, advisorID, resp.AdvisorID)
	assert.Equal(t, hm(10, 0), resp.StartTime)
	assert.Equal(t, hm(11, 0), resp.EndTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.TypeAppointmentCreated, publisher.events[0].Type)
	assert.Equal(t, resp.ID, publisher.events[0].AppointmentID)
}

func TestExecute_StartTimeNormalizedToUTC(t *testing.T) {
	store := &memoryStore{}
	uc := newTestUseCase(store, &recordingPublisher{})
	msk := time.FixedZone("MSK", 3*60*60)

	resp, err := uc.Execute(context.Background(), &Request{
		ProspectID: prospectID,
		AdvisorID:  advisorID,
		StartTime:  time.Date(2025, 3, 10, 13, 0, 0, 0, msk),
	})

	require.NoError(t, err)
	assert.Equal(t, hm(10, 0), resp.StartTime)
	assert.Equal(t, time.UTC, resp.StartTime.Location())
}

func TestExecute_Conflicts(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
	}{
		{name: "same slot", start: hm(10, 0)},
		{name: "starts inside booked appointment", start: hm(10, 30)},
		{name: "ends inside booked appointment", start: hm(9, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memoryStore{}
			publisher := &recordingPublisher{}
			uc := newTestUseCase(store, publisher)

			_, err := uc.Execute(context.Background(), &Request{ProspectID: prospectID, AdvisorID: advisorID, StartTime: hm(10, 0)})
			require.NoError(t, err)

			_, err = uc.Execute(context.Background(), &Request{ProspectID: prospectID, AdvisorID: advisorID, StartTime: tt.start})

			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.Equal(t, 1, store.count())
			assert.Len(t, publisher.events, 1)
		})
	}
}

func TestExecute_AdjacentAppointmentsAllowed(t *testing.T) {
	store := &memoryStore{}
	uc := newTestUseCase(store, &recordingPublisher{})

	for _, start := range []time.Time{hm(10, 0), hm(11, 0), hm(9, 0)} {
		_, err := uc.Execute(context.Background(), &Request{ProspectID: prospectID, AdvisorID: advisorID, StartTime: start})
		require.NoError(t, err)
	}

	assert.Equal(t, 3, store.count())
}

func TestExecute_OtherAdvisorNotBlocked(t *testing.T) {
	store := &memoryStore{}
	uc := newTestUseCase(store, &recordingPublisher{})

	_, err := uc.Execute(context.Background(), &Request{ProspectID: prospectID, AdvisorID: advisorID, StartTime: hm(10, 0)})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{ProspectID: prospectID, AdvisorID: uuid.NewString(), StartTime: hm(10, 0)})
	assert.NoError(t, err)
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	store := &memoryStore{appointments: []*domain.Appointment{{
		ID:        uuid.NewString(),
		AdvisorID: advisorID,
		StartTime: hm(10, 0),
		EndTime:   hm(11, 0),
		Status:    domain.StatusCancelled,
	}}}
	uc := newTestUseCase(store, &recordingPublisher{})

	_, err := uc.Execute(context.Background(), &Request{ProspectID: prospectID, AdvisorID: advisorID, StartTime: hm(10, 0)})

	assert.NoError(t, err)
}

func TestExecute_StorageConstraintViolation(t *testing.T) {
	store := &memoryStore{createErr: appointmentRepo.ErrSlotNotAvailable}
	publisher := &recordingPublisher{}
	uc := newTestUseCase(store, publisher)

	_, err := uc.Execute(context.Background(), &Request{ProspectID: prospectID, AdvisorID: advisorID, StartTime: hm(10, 0)})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, publisher.events)
}

func TestExecute_StorageFailure(t *testing.T) {
	dbErr := errors.New("connection reset")
	uc := newTestUseCase(&memoryStore{createErr: dbErr}, &recordingPublisher{})

	_, err := uc.Execute(context.Background(), &Request{ProspectID: prospectID, AdvisorID: advisorID, StartTime: hm(10, 0)})

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, dbErr)
}

func TestExecute_PublishFailureDoesNotFailBooking(t *testing.T) {
	store := &memoryStore{}
	uc := newTestUseCase(store, &recordingPublisher{err: errors.New("broker down")})

	resp, err := uc.Execute(context.Background(), &Request{ProspectID: prospectID, AdvisorID: advisorID, StartTime: hm(10, 0)})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 1, store.count())
}

func TestExecute_Validation(t *testing.T) {
	wrongEnd := hm(10, 30)
	exactEnd := hm(11, 0)
	beforeStart := hm(9, 0)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "invalid prospect", req: &Request{ProspectID: "x", AdvisorID: advisorID, StartTime: hm(10, 0)}},
		{name: "invalid advisor", req: &Request{ProspectID: prospectID, AdvisorID: "", StartTime: hm(10, 0)}},
		{name: "missing start", req: &Request{ProspectID: prospectID, AdvisorID: advisorID}},
		{name: "end before start", req: &Request{ProspectID: prospectID, AdvisorID: advisorID, StartTime: hm(10, 0), EndTime: &beforeStart}},
		{name: "wrong duration", req: &Request{ProspectID: prospectID, AdvisorID: advisorID, StartTime: hm(10, 0), EndTime: &wrongEnd}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memoryStore{}
			uc := newTestUseCase(store, &recordingPublisher{})

			_, err := uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, store.count())
		})
	}

	t.Run("explicit end matching duration", func(t *testing.T) {
		uc := newTestUseCase(&memoryStore{}, &recordingPublisher{})
		_, err := uc.Execute(context.Background(), &Request{ProspectID: prospectID, AdvisorID: advisorID, StartTime: hm(10, 0), EndTime: &exactEnd})
		assert.NoError(t, err)
	})
}

func TestExecute_ConcurrentBookingsOfSameSlot(t *testing.T) {
	store := &memoryStore{}
	uc := newTestUseCase(store, &recordingPublisher{})

	const attempts = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// половина клиентов целится в 10:00, половина в 10:30 - все пересекаются попарно
			start := hm(10, 0)
			if i%2 == 1 {
				start = hm(10, 30)
			}
			_, err := uc.Execute(context.Background(), &Request{ProspectID: uuid.NewString(), AdvisorID: advisorID, StartTime: start})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotNotAvailable):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, store.count())
}

func TestBookingAndSlotsAgree(t *testing.T) {
	store := &memoryStore{}
	book := newTestUseCase(store, &recordingPublisher{})
	slots := get_available_slots.NewUseCase(mondayAvailability{}, store, 60, logger.NewNop())

	before, err := slots.Execute(context.Background(), &get_available_slots.Request{AdvisorID: advisorID, Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{
		"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00",
	}, before.Slots)

	_, err = book.Execute(context.Background(), &Request{ProspectID: prospectID, AdvisorID: advisorID, StartTime: hm(10, 0)})
	require.NoError(t, err)

	after, err := slots.Execute(context.Background(), &get_available_slots.Request{AdvisorID: advisorID, Date: monday})
	require.NoError(t, err)
	assert.NotContains(t, after.Slots, types.TimeString("10:00"))
	assert.Len(t, after.Slots, 7)

	// Каждый оставшийся слот можно забронировать, а занятый - нет
	for _, slot := range after.Slots {
		start, err := slot.OnDate(monday)
		require.NoError(t, err)
		_, err = book.Execute(context.Background(), &Request{ProspectID: prospectID, AdvisorID: advisorID, StartTime: start})
		assert.NoError(t, err, "slot %s", slot)
	}

	_, err = book.Execute(context.Background(), &Request{ProspectID: prospectID, AdvisorID: advisorID, StartTime: hm(10, 0)})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	final, err := slots.Execute(context.Background(), &get_available_slots.Request{AdvisorID: advisorID, Date: monday})
	require.NoError(t, err)
	assert.Empty(t, final.Slots)
}
