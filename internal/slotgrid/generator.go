package slotgrid

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// candidate объединяет пост и его разрешённое окно на конкретный день
type candidate struct {
	post   domain.Post
	window Window
}

// Generate строит сетку слотов сервисной точки на указанную дату.
//
// Алгоритм:
//  1. Отбираем активные посты, проходящие фильтр по категории.
//  2. Для каждого вычисляем эффективное окно через ResolveWindow;
//     посты без окна на этот день не участвуют и не входят в TotalPosts.
//  3. Сетка идёт от минимального начала окна до максимального конца
//     с фиксированным шагом tickMinutes; тики не пропускаются, даже
//     когда ни один пост их не покрывает (нулевая доступность — это
//     валидный отображаемый результат, а не отсутствие данных).
//
// Generate не возвращает ошибок: некорректные окна (start >= end)
// просто дают пустую сетку. Валидация расписаний выполняется на
// границе редактирования, до вызова генератора.
func Generate(
	date time.Time,
	defaultSchedule domain.WeeklySchedule,
	posts []domain.Post,
	categoryFilter *int64,
	tickMinutes int,
) []domain.TimeSlot {
	if tickMinutes <= 0 {
		tickMinutes = domain.GridTickMinutes
	}

	weekday := date.Weekday()

	// Отбираем кандидатов с разрешённым окном на этот день недели
	candidates := make([]candidate, 0, len(posts))
	for _, post := range posts {
		if !post.IsActive || !post.MatchesCategory(categoryFilter) {
			continue
		}
		window := ResolveWindow(post, weekday, defaultSchedule)
		if window == nil {
			continue
		}
		candidates = append(candidates, candidate{post: post, window: *window})
	}

	if len(candidates) == 0 {
		return []domain.TimeSlot{}
	}

	// Границы сетки: min(start) .. max(end) по всем кандидатам
	gridStart := candidates[0].window.Start
	gridEnd := candidates[0].window.End
	for _, c := range candidates[1:] {
		if c.window.Start < gridStart {
			gridStart = c.window.Start
		}
		if c.window.End > gridEnd {
			gridEnd = c.window.End
		}
	}

	totalPosts := len(candidates)
	slots := make([]domain.TimeSlot, 0, (gridEnd-gridStart)/tickMinutes+1)

	for t := gridStart; t < gridEnd; t += tickMinutes {
		slotTime, err := types.FromMinutes(t)
		if err != nil {
			// Выход за пределы суток возможен только при искажённом
			// окне; деградируем до уже построенной части сетки
			break
		}

		var covering []domain.CoveringPost
		for _, c := range candidates {
			if c.window.Contains(t) {
				covering = append(covering, domain.CoveringPost{
					PostID:            c.post.ID,
					Name:              c.post.Name,
					HasCustomSchedule: c.post.HasCustomSchedule(),
				})
			}
		}

		slots = append(slots, domain.TimeSlot{
			Time:           slotTime,
			AvailablePosts: len(covering),
			TotalPosts:     totalPosts,
			IsAvailable:    len(covering) > 0,
			CoveringPosts:  covering,
		})
	}

	return slots
}
