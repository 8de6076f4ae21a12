package preview_slot_grid

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса предпросмотра сетки по черновику расписания.
// Черновик приходит целиком в теле запроса и нигде не сохраняется.
//
// Seq - монотонный номер запроса, выбираемый клиентом. Редактор шлёт
// пересчёт после каждой паузы ввода (debounce на стороне клиента);
// ответы могут приходить не по порядку, и клиент обязан отбрасывать
// ответ с Seq меньше последнего отправленного. Сервис значение не
// интерпретирует, только возвращает обратно.
type Request struct {
	PointID    int64
	Seq        int64
	Date       time.Time
	Schedule   domain.WeeklySchedule
	Posts      []domain.Post
	CategoryID *int64
}

// Response модель ответа предпросмотра
type Response struct {
	PointID    int64
	Seq        int64
	Date       time.Time
	CategoryID *int64
	Slots      []domain.TimeSlot
}

// weekdays перечисляет дни недели, обязательные в недельном расписании
var weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// hoursOrdered проверяет, что обе границы валидны и start < end
func hoursOrdered(start, end types.TimeString) bool {
	if start.Validate() != nil || end.Validate() != nil {
		return false
	}
	return start.IsBefore(end)
}
