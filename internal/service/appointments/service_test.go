package appointments

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/events"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

var (
	advisorID  = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	prospectID = "9b2f1c3e-5d4a-4e6f-8a7b-0c1d2e3f4a5b"
	monday     = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
)

type memoryRepo struct {
	byID      map[string]*domain.Appointment
	updateErr error

	lastFilter domain.AppointmentsFilter
}

func newMemoryRepo(list ...*domain.Appointment) *memoryRepo {
	r := &memoryRepo{byID: make(map[string]*domain.Appointment)}
	for _, a := range list {
		copied := *a
		r.byID[a.ID] = &copied
	}
	return r
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memoryRepo) List(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	r.lastFilter = filter
	var result []*domain.Appointment
	for _, a := range r.byID {
		if filter.ProspectID != nil && a.ProspectID != *filter.ProspectID {
			continue
		}
		if filter.AdvisorID != nil && a.AdvisorID != *filter.AdvisorID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (r *memoryRepo) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	a, ok := r.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.Status = status
	a.UpdatedAt = a.UpdatedAt.Add(time.Minute)
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	delete(r.byID, id)
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return p.err
}

type noProfiles struct{}

func (noProfiles) GetProfilesByIDs(context.Context, []string) (map[string]profileservice.Profile, error) {
	return map[string]profileservice.Profile{}, nil
}

type staticProfiles struct {
	profiles map[string]profileservice.Profile
	err      error
	gotIDs   []string
}

func (p *staticProfiles) GetProfilesByIDs(_ context.Context, ids []string) (map[string]profileservice.Profile, error) {
	p.gotIDs = ids
	return p.profiles, p.err
}

func appointmentWithStatus(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:         uuid.NewString(),
		ProspectID: prospectID,
		AdvisorID:  advisorID,
		StartTime:  monday.Add(10 * time.Hour),
		EndTime:    monday.Add(11 * time.Hour),
		Status:     status,
		CreatedAt:  monday,
		UpdatedAt:  monday,
	}
}

func TestUpdateStatus_AllowedTransitions(t *testing.T) {
	tests := []struct {
		from domain.AppointmentStatus
		to   string
	}{
		{domain.StatusConfirmed, "CANCELLED"},
		{domain.StatusConfirmed, "completed"},
		{domain.StatusCancelled, "CONFIRMED"},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+tt.to, func(t *testing.T) {
			appt := appointmentWithStatus(tt.from)
			publisher := &recordingPublisher{}
			svc := NewService(newMemoryRepo(appt), passthroughTxManager{}, noProfiles{}, publisher, logger.NewNop())

			resp, err := svc.UpdateStatus(context.Background(), appt.ID, &models.UpdateStatusRequest{Status: tt.to})

			require.NoError(t, err)
			assert.Equal(t, appt.ID, resp.ID)
			assert.Equal(t, strings.ToUpper(tt.to), resp.Status)
			assert.True(t, resp.UpdatedAt.After(appt.UpdatedAt))

			require.Len(t, publisher.events, 1)
			assert.Equal(t, events.TypeAppointmentStatusChanged, publisher.events[0].Type)
			assert.Equal(t, string(tt.from), publisher.events[0].PreviousStatus)
			assert.Equal(t, resp.Status, publisher.events[0].Status)
		})
	}
}

func TestUpdateStatus_ForbiddenTransitions(t *testing.T) {
	tests := []struct {
		from domain.AppointmentStatus
		to   string
	}{
		{domain.StatusCompleted, "CONFIRMED"},
		{domain.StatusCompleted, "CANCELLED"},
		{domain.StatusCancelled, "COMPLETED"},
		{domain.StatusConfirmed, "CONFIRMED"},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+tt.to, func(t *testing.T) {
			appt := appointmentWithStatus(tt.from)
			repo := newMemoryRepo(appt)
			publisher := &recordingPublisher{}
			svc := NewService(repo, passthroughTxManager{}, noProfiles{}, publisher, logger.NewNop())

			_, err := svc.UpdateStatus(context.Background(), appt.ID, &models.UpdateStatusRequest{Status: tt.to})

			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.from, repo.byID[appt.ID].Status)
			assert.Empty(t, publisher.events)
		})
	}
}

func TestUpdateStatus_ReconfirmRejectedByStorage(t *testing.T) {
	appt := appointmentWithStatus(domain.StatusCancelled)
	repo := newMemoryRepo(appt)
	repo.updateErr = appointmentRepo.ErrSlotNotAvailable
	publisher := &recordingPublisher{}
	svc := NewService(repo, passthroughTxManager{}, noProfiles{}, publisher, logger.NewNop())

	_, err := svc.UpdateStatus(context.Background(), appt.ID, &models.UpdateStatusRequest{Status: "CONFIRMED"})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, publisher.events)
}

func TestUpdateStatus_Errors(t *testing.T) {
	svc := NewService(newMemoryRepo(), passthroughTxManager{}, noProfiles{}, &recordingPublisher{}, logger.NewNop())

	_, err := svc.UpdateStatus(context.Background(), uuid.NewString(), &models.UpdateStatusRequest{Status: "CANCELLED"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = svc.UpdateStatus(context.Background(), "bad-id", &models.UpdateStatusRequest{Status: "CANCELLED"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateStatus(context.Background(), uuid.NewString(), &models.UpdateStatusRequest{Status: "PENDING"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	appt := appointmentWithStatus(domain.StatusConfirmed)
	repo := newMemoryRepo(appt)
	repo.updateErr = errors.New("connection reset")
	svc = NewService(repo, passthroughTxManager{}, noProfiles{}, &recordingPublisher{}, logger.NewNop())
	_, err = svc.UpdateStatus(context.Background(), appt.ID, &models.UpdateStatusRequest{Status: "CANCELLED"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdateStatus_PublishFailureIgnored(t *testing.T) {
	appt := appointmentWithStatus(domain.StatusConfirmed)
	svc := NewService(newMemoryRepo(appt), passthroughTxManager{}, noProfiles{}, &recordingPublisher{err: errors.New("broker down")}, logger.NewNop())

	resp, err := svc.UpdateStatus(context.Background(), appt.ID, &models.UpdateStatusRequest{Status: "CANCELLED"})

	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", resp.Status)
}

func TestDelete(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			appt := appointmentWithStatus(status)
			repo := newMemoryRepo(appt)
			publisher := &recordingPublisher{}
			svc := NewService(repo, passthroughTxManager{}, noProfiles{}, publisher, logger.NewNop())

			require.NoError(t, svc.Delete(context.Background(), appt.ID))

			assert.Empty(t, repo.byID)
			require.Len(t, publisher.events, 1)
			assert.Equal(t, events.TypeAppointmentDeleted, publisher.events[0].Type)
			assert.Equal(t, appt.ID, publisher.events[0].AppointmentID)

			assert.ErrorIs(t, svc.Delete(context.Background(), appt.ID), ErrAppointmentNotFound)
		})
	}
}

func TestGetByID(t *testing.T) {
	appt := appointmentWithStatus(domain.StatusConfirmed)
	svc := NewService(newMemoryRepo(appt), passthroughTxManager{}, noProfiles{}, &recordingPublisher{}, logger.NewNop())

	resp, err := svc.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, appt.StartTime, resp.StartTime)
	assert.Equal(t, "CONFIRMED", resp.Status)

	_, err = svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestList_Filter(t *testing.T) {
	repo := newMemoryRepo(
		appointmentWithStatus(domain.StatusConfirmed),
		appointmentWithStatus(domain.StatusCancelled),
	)
	svc := NewService(repo, passthroughTxManager{}, noProfiles{}, &recordingPublisher{}, logger.NewNop())
	from := monday
	to := monday.AddDate(0, 0, 1)

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		AdvisorID: ptr.Ptr(advisorID),
		Status:    ptr.Ptr("cancelled"),
		From:      &from,
		To:        &to,
	})

	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "CANCELLED", resp.Appointments[0].Status)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusCancelled, *repo.lastFilter.Status)
	assert.Equal(t, &from, repo.lastFilter.StartFrom)
	assert.Equal(t, &to, repo.lastFilter.StartBefore)
}

func TestList_InvalidFilter(t *testing.T) {
	svc := NewService(newMemoryRepo(), passthroughTxManager{}, noProfiles{}, &recordingPublisher{}, logger.NewNop())
	from := monday
	to := monday.Add(-time.Hour)

	tests := []*models.ListAppointmentsRequest{
		{AdvisorID: ptr.Ptr("x")},
		{ProspectID: ptr.Ptr("y")},
		{Status: ptr.Ptr("PENDING")},
		{From: &from, To: &to},
	}

	for _, req := range tests {
		_, err := svc.List(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestList_EmptyIsNotNil(t *testing.T) {
	svc := NewService(newMemoryRepo(), passthroughTxManager{}, noProfiles{}, &recordingPublisher{}, logger.NewNop())

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{})

	require.NoError(t, err)
	assert.NotNil(t, resp.Appointments)
	assert.Empty(t, resp.Appointments)
}

func TestListMine(t *testing.T) {
	mine := appointmentWithStatus(domain.StatusConfirmed)
	other := appointmentWithStatus(domain.StatusConfirmed)
	other.ProspectID = uuid.NewString()
	repo := newMemoryRepo(mine, other)
	svc := NewService(repo, passthroughTxManager{}, noProfiles{}, &recordingPublisher{}, logger.NewNop())

	resp, err := svc.ListMine(context.Background(), prospectID)

	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, mine.ID, resp.Appointments[0].ID)

	_, err = svc.ListMine(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_AttachesParticipants(t *testing.T) {
	first := appointmentWithStatus(domain.StatusConfirmed)
	second := appointmentWithStatus(domain.StatusCompleted)
	second.StartTime = first.StartTime.AddDate(0, 0, 1)
	profiles := &staticProfiles{profiles: map[string]profileservice.Profile{
		prospectID: {ID: prospectID, FullName: "Ivan Sidorov", Email: "ivan@example.com"},
		advisorID:  {ID: advisorID, FullName: "Anna Petrova", Email: "anna@smc.example"},
	}}
	svc := NewService(newMemoryRepo(first, second), passthroughTxManager{}, profiles, &recordingPublisher{}, logger.NewNop())

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{prospectID, advisorID}, profiles.gotIDs)
	require.Len(t, resp.Appointments, 2)
	for _, a := range resp.Appointments {
		assert.Equal(t, &models.Participant{FullName: "Ivan Sidorov", Email: "ivan@example.com"}, a.Prospect)
		assert.Equal(t, &models.Participant{FullName: "Anna Petrova", Email: "anna@smc.example"}, a.Advisor)
	}
}

func TestList_ProfileServiceDown(t *testing.T) {
	profiles := &staticProfiles{err: errors.New("connection refused")}
	svc := NewService(newMemoryRepo(appointmentWithStatus(domain.StatusConfirmed)), passthroughTxManager{}, profiles, &recordingPublisher{}, logger.NewNop())

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{})

	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Nil(t, resp.Appointments[0].Prospect)
	assert.Nil(t, resp.Appointments[0].Advisor)
}

func TestList_EmptySkipsProfileLookup(t *testing.T) {
	profiles := &staticProfiles{}
	svc := NewService(newMemoryRepo(), passthroughTxManager{}, profiles, &recordingPublisher{}, logger.NewNop())

	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{})

	require.NoError(t, err)
	assert.Nil(t, profiles.gotIDs)
}
