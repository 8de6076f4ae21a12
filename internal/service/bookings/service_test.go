package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/events"
	bookingRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/partnerservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	booking      *domain.Booking
	bookings     []*domain.Booking
	getErr       error
	updated      *domain.BookingStatus
	cancelled    *domain.BookingStatus
	cancelReason string
	gotFilter    domain.PointBookingsFilter
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeRepo) GetByPointWithFilter(ctx context.Context, filter domain.PointBookingsFilter) ([]*domain.Booking, error) {
	f.gotFilter = filter
	return f.bookings, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	f.updated = &status
	return nil
}

func (f *fakeRepo) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	f.cancelled = &status
	f.cancelReason = reason
	return nil
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

type recordingPublisher struct {
	published []events.BookingStatusChangedEvent
	err       error
}

func (p *recordingPublisher) PublishStatusChanged(ctx context.Context, event events.BookingStatusChangedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

// passthroughTxManager выполняет fn без открытия транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

const (
	clientID  = int64(7)
	managerID = int64(42)
	otherID   = int64(99)
)

func testBooking(status domain.BookingStatus) *domain.Booking {
	date, _ := time.Parse(domain.DateFormat, "2025-10-15")
	return &domain.Booking{
		ID:              1,
		ClientID:        clientID,
		PartnerID:       10,
		PointID:         100,
		PostID:          1,
		CategoryID:      1,
		BookingDate:     date,
		StartTime:       "11:00",
		DurationMinutes: 30,
		Status:          status,
	}
}

func managedPoint() *partnerservice.ServicePoint {
	return &partnerservice.ServicePoint{ID: 100, PartnerID: 10, ManagerIDs: []int64{managerID}}
}

func newService(repo *fakeRepo, client *fakePartnerClient, publisher *recordingPublisher) *Service {
	now := time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	return NewService(repo, client, publisher, passthroughTxManager{}, fixedTime{now}, nopLogger{})
}

func TestGetByIDOwner(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.StatusConfirmed)}
	svc := newService(repo, &fakePartnerClient{point: managedPoint()}, &recordingPublisher{})

	resp, err := svc.GetByID(context.Background(), 1, clientID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "2025-10-15", resp.BookingDate)
	assert.Equal(t, "11:00", resp.StartTime)
}

func TestGetByIDManager(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.StatusConfirmed)}
	svc := newService(repo, &fakePartnerClient{point: managedPoint()}, &recordingPublisher{})

	_, err := svc.GetByID(context.Background(), 1, managerID)
	assert.NoError(t, err)
}

func TestGetByIDAccessDenied(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.StatusConfirmed)}
	svc := newService(repo, &fakePartnerClient{point: managedPoint()}, &recordingPublisher{})

	_, err := svc.GetByID(context.Background(), 1, otherID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := &fakeRepo{getErr: bookingRepo.ErrBookingNotFound}
	svc := newService(repo, &fakePartnerClient{point: managedPoint()}, &recordingPublisher{})

	_, err := svc.GetByID(context.Background(), 1, clientID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateStatusManager(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.StatusConfirmed)}
	publisher := &recordingPublisher{}
	svc := newService(repo, &fakePartnerClient{point: managedPoint()}, publisher)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: managerID,
		Status: "in_progress",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.updated)
	assert.Equal(t, domain.StatusInProgress, *repo.updated)

	require.Len(t, publisher.published, 1)
	event := publisher.published[0]
	assert.Equal(t, int64(1), event.BookingID)
	assert.Equal(t, domain.StatusConfirmed, event.OldStatus)
	assert.Equal(t, domain.StatusInProgress, event.NewStatus)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.StatusCompleted)}
	publisher := &recordingPublisher{}
	svc := newService(repo, &fakePartnerClient{point: managedPoint()}, publisher)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: managerID,
		Status: "in_progress",
	})

	var transitionErr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, domain.StatusCompleted, transitionErr.From)
	assert.Equal(t, domain.StatusInProgress, transitionErr.To)

	assert.Nil(t, repo.updated)
	assert.Empty(t, publisher.published)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.StatusConfirmed)}
	svc := newService(repo, &fakePartnerClient{point: managedPoint()}, &recordingPublisher{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: managerID,
		Status: "frozen",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusAccessDenied(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.StatusConfirmed)}
	publisher := &recordingPublisher{}
	svc := newService(repo, &fakePartnerClient{point: managedPoint()}, publisher)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		UserID: otherID,
		Status: "in_progress",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, publisher.published)
}

func TestCancelByOwner(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.StatusPending)}
	publisher := &recordingPublisher{}
	svc := newService(repo, &fakePartnerClient{point: managedPoint()}, publisher)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             clientID,
		CancellationReason: "передумал",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.cancelled)
	assert.Equal(t, domain.StatusCancelledByClient, *repo.cancelled)
	assert.Equal(t, "передумал", repo.cancelReason)

	require.Len(t, publisher.published, 1)
	event := publisher.published[0]
	assert.Equal(t, domain.StatusCancelledByClient, event.NewStatus)
	require.NotNil(t, event.Reason)
	assert.Equal(t, "передумал", *event.Reason)
}

func TestCancelByManager(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.StatusConfirmed)}
	publisher := &recordingPublisher{}
	svc := newService(repo, &fakePartnerClient{point: managedPoint()}, publisher)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: managerID})
	require.NoError(t, err)

	require.NotNil(t, repo.cancelled)
	assert.Equal(t, domain.StatusCancelledByPartner, *repo.cancelled)

	require.Len(t, publisher.published, 1)
	assert.Nil(t, publisher.published[0].Reason)
}

func TestCancelByStranger(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.StatusConfirmed)}
	svc := newService(repo, &fakePartnerClient{point: managedPoint()}, &recordingPublisher{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: otherID})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.cancelled)
}

func TestCancelNotCancellable(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusInProgress, domain.StatusCompleted,
		domain.StatusCancelledByClient, domain.StatusNoShow,
	} {
		repo := &fakeRepo{booking: testBooking(status)}
		svc := newService(repo, &fakePartnerClient{point: managedPoint()}, &recordingPublisher{})

		err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID})
		assert.ErrorIs(t, err, ErrCannotCancel, "status %s", status)
	}
}

func TestCancelPublisherFailureDoesNotFail(t *testing.T) {
	repo := &fakeRepo{booking: testBooking(domain.StatusPending)}
	publisher := &recordingPublisher{err: assert.AnError}
	svc := newService(repo, &fakePartnerClient{point: managedPoint()}, publisher)

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID})
	assert.NoError(t, err, "event publishing is best-effort")
}

func TestGetPointBookings(t *testing.T) {
	repo := &fakeRepo{bookings: []*domain.Booking{testBooking(domain.StatusConfirmed)}}
	svc := newService(repo, &fakePartnerClient{point: managedPoint()}, &recordingPublisher{})

	resp, err := svc.GetPointBookings(context.Background(), &models.GetPointBookingsRequest{
		UserID:  managerID,
		PointID: 100,
		PostID:  ptr.Ptr(int64(1)),
		Status:  ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)

	assert.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(100), repo.gotFilter.PointID)
	require.NotNil(t, repo.gotFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.gotFilter.Status)
}

func TestGetPointBookingsInvalidStatus(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakePartnerClient{point: managedPoint()}, &recordingPublisher{})

	_, err := svc.GetPointBookings(context.Background(), &models.GetPointBookingsRequest{
		UserID:  managerID,
		PointID: 100,
		Status:  ptr.Ptr("frozen"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetPointBookingsNotManager(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakePartnerClient{point: managedPoint()}, &recordingPublisher{})

	_, err := svc.GetPointBookings(context.Background(), &models.GetPointBookingsRequest{
		UserID:  clientID,
		PointID: 100,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetPointBookingsPointNotFound(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakePartnerClient{err: partnerservice.ErrPointNotFound}, &recordingPublisher{})

	_, err := svc.GetPointBookings(context.Background(), &models.GetPointBookingsRequest{
		UserID:  managerID,
		PointID: 100,
	})
	assert.ErrorIs(t, err, ErrPointNotFound)
}
