package get_slot_grid

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/integrations/partnerservice"
)

// PartnerServiceClient интерфейс клиента для PartnerService
type PartnerServiceClient interface {
	GetServicePoint(ctx context.Context, pointID int64) (*partnerservice.ServicePoint, error)
}

// SlotGridCache интерфейс кэша рассчитанных сеток
type SlotGridCache interface {
	Get(ctx context.Context, pointID int64, date string, categoryID *int64) ([]byte, bool)
	Set(ctx context.Context, pointID int64, date string, categoryID *int64, payload []byte)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NopCache используется, когда кэширование выключено в конфиге
type NopCache struct{}

// Get всегда промахивается
func (NopCache) Get(context.Context, int64, string, *int64) ([]byte, bool) {
	return nil, false
}

// Set ничего не сохраняет
func (NopCache) Set(context.Context, int64, string, *int64, []byte) {}
