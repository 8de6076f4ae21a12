package get_slot_grid

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса сетки слотов сервисной точки
type Request struct {
	UserID     int64     // ID пользователя (для логирования, не влияет на результат)
	PointID    int64     // ID сервисной точки
	Date       time.Time // Дата, на которую строится сетка (без времени)
	CategoryID *int64    // Опциональный фильтр по категории постов
}

// Response модель ответа с сеткой слотов
// Поля размечены json-тегами: ответ целиком сериализуется в кэш
type Response struct {
	PointID    int64  `json:"pointId"`
	Date       string `json:"date"` // YYYY-MM-DD
	CategoryID *int64 `json:"categoryId,omitempty"`
	Slots      []Slot `json:"slots"`
}

// Slot один тик сетки доступности
type Slot struct {
	Time           types.TimeString `json:"time"`
	AvailablePosts int              `json:"availablePosts"`
	TotalPosts     int              `json:"totalPosts"`
	IsAvailable    bool             `json:"isAvailable"`
	CoveringPosts  []CoveringPost   `json:"coveringPosts"`
}

// CoveringPost пост, окно которого покрывает слот
type CoveringPost struct {
	PostID            int64  `json:"postId"`
	Name              string `json:"name"`
	HasCustomSchedule bool   `json:"hasCustomSchedule"`
}

// FromDomainSlots конвертирует слоты доменной модели в ответ usecase
func FromDomainSlots(slots []domain.TimeSlot) []Slot {
	result := make([]Slot, len(slots))
	for i, slot := range slots {
		covering := make([]CoveringPost, len(slot.CoveringPosts))
		for j, post := range slot.CoveringPosts {
			covering[j] = CoveringPost{
				PostID:            post.PostID,
				Name:              post.Name,
				HasCustomSchedule: post.HasCustomSchedule,
			}
		}
		result[i] = Slot{
			Time:           slot.Time,
			AvailablePosts: slot.AvailablePosts,
			TotalPosts:     slot.TotalPosts,
			IsAvailable:    slot.IsAvailable,
			CoveringPosts:  covering,
		}
	}
	return result
}
