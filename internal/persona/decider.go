package persona

import (
	"context"

	"travian-hq-server/internal/core/types"
	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/systems"
	"travian-hq-server/pkg/hqmap"
)

// View - все, что видит решатель при выборе следующего тайла персоны.
type View struct {
	Maze      *hqmap.Maze
	Ledger    *domain.EventLedger
	Positions map[string]domain.Position
	Clock     domain.SimClock

	// TargetArena - арена, в которую мост направляет активную персону.
	// Пустая строка, если направления нет.
	TargetArena string
}

// Decision - следующий тайл персоны и его сопровождение для рендерера.
type Decision struct {
	Next         domain.Position
	Pronunciatio string
	Description  string
	Chat         []domain.ChatLine
}

// Decider - внешний коллаборатор цикла: как именно персона решает, куда
// идти, ядро не определяет. Реализация может ходить в когнитивный слой,
// поэтому принимает контекст.
type Decider interface {
	Decide(ctx context.Context, p *Persona, view View) (Decision, error)
}

// Пиктограммы состояний по умолчанию.
var (
	glyphIdle = types.MakeGlyph('💭')
	glyphWalk = types.MakeGlyph('🚶')
)

// StayDecider оставляет персону на месте. Тривиальный решатель для
// отладочных прогонов и сквозных тестов.
type StayDecider struct{}

func (StayDecider) Decide(_ context.Context, p *Persona, _ View) (Decision, error) {
	pron := p.Pronunciatio
	if pron == "" {
		pron = glyphIdle.Text()
	}
	return Decision{
		Next:         p.Tile,
		Pronunciatio: pron,
		Description:  p.ActDescription,
		Chat:         p.Chat,
	}, nil
}

// RoutedDecider ведет персону по запланированному пути, а когда пути нет,
// прокладывает маршрут к арене, назначенной мостом. Запланированный путь
// персоны продвигается как побочный эффект решения.
type RoutedDecider struct{}

func (RoutedDecider) Decide(_ context.Context, p *Persona, view View) (Decision, error) {
	// 1. Продолжаем начатый путь, если он есть.
	if len(p.PlannedPath) > 0 {
		next, rest := systems.NextPathStep(view.Maze, p.Tile, p.PlannedPath)
		p.PlannedPath = rest
		return Decision{
			Next:         next,
			Pronunciatio: glyphWalk.Text(),
			Description:  p.ActDescription,
			Chat:         p.Chat,
		}, nil
	}

	// 2. Пути нет: если мост назначил арену и персона не там, прокладываем.
	if view.TargetArena != "" && view.Maze.ArenaAt(p.Tile) != view.TargetArena {
		if path := systems.RouteToArena(view.Maze, p.Tile, view.TargetArena); len(path) > 0 {
			next, rest := systems.NextPathStep(view.Maze, p.Tile, path)
			p.PlannedPath = rest
			return Decision{
				Next:         next,
				Pronunciatio: glyphWalk.Text(),
				Description:  p.ActDescription,
				Chat:         p.Chat,
			}, nil
		}
	}

	// 3. Идти некуда: персона остается и продолжает текущее действие.
	pron := p.Pronunciatio
	if pron == "" {
		pron = glyphIdle.Text()
	}
	return Decision{
		Next:         p.Tile,
		Pronunciatio: pron,
		Description:  p.ActDescription,
		Chat:         p.Chat,
	}, nil
}
