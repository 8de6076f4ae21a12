package get_slot_grid

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getSlotGrid "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_slot_grid"
)

// SlotGridResponse HTTP response model
type SlotGridResponse struct {
	PointID    int64  `json:"pointId"`
	Date       string `json:"date"`
	CategoryID *int64 `json:"categoryId,omitempty"`
	Slots      []Slot `json:"slots"`
}

// Slot модель тика сетки доступности
type Slot struct {
	Time           string         `json:"time"`
	AvailablePosts int            `json:"availablePosts"`
	TotalPosts     int            `json:"totalPosts"`
	IsAvailable    bool           `json:"isAvailable"`
	CoveringPosts  []CoveringPost `json:"coveringPosts"`
}

// CoveringPost пост, окно которого покрывает слот
type CoveringPost struct {
	PostID            int64  `json:"postId"`
	Name              string `json:"name"`
	HasCustomSchedule bool   `json:"hasCustomSchedule"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotGrid.Response) *SlotGridResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		covering := make([]CoveringPost, len(slot.CoveringPosts))
		for j, post := range slot.CoveringPosts {
			covering[j] = CoveringPost{
				PostID:            post.PostID,
				Name:              post.Name,
				HasCustomSchedule: post.HasCustomSchedule,
			}
		}
		slots[i] = Slot{
			Time:           slot.Time.String(),
			AvailablePosts: slot.AvailablePosts,
			TotalPosts:     slot.TotalPosts,
			IsAvailable:    slot.IsAvailable,
			CoveringPosts:  covering,
		}
	}

	return &SlotGridResponse{
		PointID:    resp.PointID,
		Date:       resp.Date,
		CategoryID: resp.CategoryID,
		Slots:      slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(userID, pointID int64, dateStr string, categoryID *int64) (*getSlotGrid.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getSlotGrid.Request{
		UserID:     userID,
		PointID:    pointID,
		Date:       date,
		CategoryID: categoryID,
	}, nil
}
