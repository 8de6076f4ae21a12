package get_slot_grid

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/partnerservice"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakePartnerClient struct {
	point *partnerservice.ServicePoint
	err   error
	calls int
}

func (f *fakePartnerClient) GetServicePoint(ctx context.Context, pointID int64) (*partnerservice.ServicePoint, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.point, nil
}

type memoryCache struct {
	entries map[string][]byte
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) cacheKey(pointID int64, date string, categoryID *int64) string {
	if categoryID != nil {
		return fmt.Sprintf("%d:%s:%d", pointID, date, *categoryID)
	}
	return fmt.Sprintf("%d:%s:all", pointID, date)
}

func (c *memoryCache) Get(ctx context.Context, pointID int64, date string, categoryID *int64) ([]byte, bool) {
	payload, ok := c.entries[c.cacheKey(pointID, date, categoryID)]
	return payload, ok
}

func (c *memoryCache) Set(ctx context.Context, pointID int64, date string, categoryID *int64, payload []byte) {
	c.sets++
	c.entries[c.cacheKey(pointID, date, categoryID)] = payload
}

func testPoint() *partnerservice.ServicePoint {
	open := func(start, end string) partnerservice.DaySchedule {
		return partnerservice.DaySchedule{IsWorkingDay: true, Start: &start, End: &end}
	}

	return &partnerservice.ServicePoint{
		ID:         1,
		PartnerID:  10,
		Name:       "Точка на Ленина",
		ManagerIDs: []int64{42},
		Schedule: partnerservice.WeekSchedule{
			Monday:    open("09:00", "18:00"),
			Tuesday:   open("09:00", "18:00"),
			Wednesday: open("09:00", "18:00"),
			Thursday:  open("09:00", "18:00"),
			Friday:    open("09:00", "18:00"),
			Saturday:  partnerservice.DaySchedule{IsWorkingDay: false},
			Sunday:    partnerservice.DaySchedule{IsWorkingDay: false},
		},
		Posts: []partnerservice.Post{
			{ID: 1, Name: "Пост 1", IsActive: true, CategoryID: 1, SlotDurationMinutes: 30},
		},
	}
}

func testRequest(t *testing.T) *Request {
	t.Helper()
	date, err := time.Parse(domain.DateFormat, "2025-10-15")
	require.NoError(t, err)

	return &Request{UserID: 42, PointID: 1, Date: date}
}

func TestExecuteBuildsGrid(t *testing.T) {
	client := &fakePartnerClient{point: testPoint()}
	uc := NewUseCase(client, newMemoryCache(), nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.PointID)
	assert.Equal(t, "2025-10-15", resp.Date)
	assert.Len(t, resp.Slots, 36)
	assert.Equal(t, "09:00", resp.Slots[0].Time.String())
	assert.True(t, resp.Slots[0].IsAvailable)
}

func TestExecuteCachesResult(t *testing.T) {
	client := &fakePartnerClient{point: testPoint()}
	cache := newMemoryCache()
	uc := NewUseCase(client, cache, nopLogger{})

	first, err := uc.Execute(context.Background(), testRequest(t))
	require.NoError(t, err)
	require.Equal(t, 1, cache.sets)

	// Повторный запрос обслуживается из кэша без похода в PartnerService
	second, err := uc.Execute(context.Background(), testRequest(t))
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecuteCorruptedCacheEntry(t *testing.T) {
	client := &fakePartnerClient{point: testPoint()}
	cache := newMemoryCache()
	uc := NewUseCase(client, cache, nopLogger{})

	req := testRequest(t)
	cache.Set(context.Background(), req.PointID, "2025-10-15", nil, []byte("{broken"))
	cache.sets = 0

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls, "corrupted entry must fall through to the source")
	assert.Len(t, resp.Slots, 36)
	assert.Equal(t, 1, cache.sets, "rebuilt grid must be cached again")
}

func TestExecuteNilCache(t *testing.T) {
	client := &fakePartnerClient{point: testPoint()}
	uc := NewUseCase(client, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 36)
}

func TestExecutePointNotFound(t *testing.T) {
	client := &fakePartnerClient{err: partnerservice.ErrPointNotFound}
	uc := NewUseCase(client, newMemoryCache(), nopLogger{})

	_, err := uc.Execute(context.Background(), testRequest(t))
	assert.ErrorIs(t, err, ErrPointNotFound)
}

func TestExecutePartnerServiceDown(t *testing.T) {
	client := &fakePartnerClient{err: partnerservice.ErrServiceDegraded}
	uc := NewUseCase(client, newMemoryCache(), nopLogger{})

	_, err := uc.Execute(context.Background(), testRequest(t))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecuteValidation(t *testing.T) {
	client := &fakePartnerClient{point: testPoint()}
	uc := NewUseCase(client, newMemoryCache(), nopLogger{})

	req := testRequest(t)
	req.PointID = 0

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, client.calls)
}
