package estimate_conflicts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/partnerservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	bookings []*domain.Booking
	err      error
	gotFrom  time.Time
}

func (f *fakeRepo) GetFutureActiveByPoint(ctx context.Context, pointID int64, from time.Time) ([]*domain.Booking, error) {
	f.gotFrom = from
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

type fakePartnerClient struct {
	point *partnerservice.ServicePoint
	err   error
}

func (f *fakePartnerClient) GetServicePoint(ctx context.Context, pointID int64) (*partnerservice.ServicePoint, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.point, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

func managedPoint() *partnerservice.ServicePoint {
	return &partnerservice.ServicePoint{ID: 1, PartnerID: 10, ManagerIDs: []int64{42}}
}

func proposal(t *testing.T) *Request {
	t.Helper()

	schedule := domain.WeeklySchedule{Days: make(map[time.Weekday]domain.DaySchedule, 7)}
	for d := time.Sunday; d <= time.Saturday; d++ {
		schedule.Days[d] = domain.DaySchedule{IsWorkingDay: false}
	}
	for _, d := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		schedule.Days[d] = domain.DaySchedule{Start: "10:00", End: "16:00", IsWorkingDay: true}
	}

	return &Request{
		UserID:   42,
		PointID:  1,
		Schedule: schedule,
		Posts: []domain.Post{
			{ID: 1, Name: "Пост 1", IsActive: true, SlotDurationMinutes: 30},
		},
	}
}

func futureBooking(id int64, date, start string) *domain.Booking {
	parsed, _ := time.Parse(domain.DateFormat, date)
	return &domain.Booking{
		ID:          id,
		PostID:      1,
		BookingDate: parsed,
		StartTime:   types.TimeString(start),
		Status:      domain.StatusConfirmed,
	}
}

func TestExecuteEstimatesConflicts(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{
		futureBooking(101, "2025-10-15", "11:00"), // внутри нового окна
		futureBooking(102, "2025-10-15", "09:00"), // раньше нового открытия
	}}
	now := time.Date(2025, 10, 10, 13, 45, 0, 0, time.UTC)
	uc := NewUseCase(repo, &fakePartnerClient{point: managedPoint()}, fixedTime{now}, nopLogger{})

	resp, err := uc.Execute(context.Background(), proposal(t))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.PointID)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, int64(102), resp.Conflicts[0].BookingID)
	assert.Equal(t, domain.ConflictOutsideWindow, resp.Conflicts[0].Reason)

	// Загружаются бронирования начиная с сегодняшней даты (без времени)
	assert.Equal(t, time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC), repo.gotFrom)
}

func TestExecuteNoConflicts(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewUseCase(repo, &fakePartnerClient{point: managedPoint()}, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), proposal(t))
	require.NoError(t, err)

	assert.NotNil(t, resp.Conflicts)
	assert.Empty(t, resp.Conflicts)
}

func TestExecuteAccessDenied(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewUseCase(repo, &fakePartnerClient{point: managedPoint()}, nil, nopLogger{})

	req := proposal(t)
	req.UserID = 99

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecutePointNotFound(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakePartnerClient{err: partnerservice.ErrPointNotFound}, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), proposal(t))
	assert.ErrorIs(t, err, ErrPointNotFound)
}

func TestExecuteValidation(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, &fakePartnerClient{point: managedPoint()}, nil, nopLogger{})

	req := proposal(t)
	delete(req.Schedule.Days, time.Friday)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestExecuteRepoError(t *testing.T) {
	repo := &fakeRepo{err: assert.AnError}
	uc := NewUseCase(repo, &fakePartnerClient{point: managedPoint()}, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), proposal(t))
	assert.ErrorIs(t, err, ErrInternal)
}
