package systems

import (
	"github.com/sirupsen/logrus"

	"travian-hq-server/internal/core/types"
	"travian-hq-server/internal/domain"
	"travian-hq-server/pkg/hqmap"
	"travian-hq-server/pkg/logger"
)

// NextPathStep снимает один шаг с запланированного пути.
//
// План мог устареть, поэтому тайл перепроверяется по слою коллизий.
// Если следующий тайл оказался непроходимым, персона остается на месте,
// а путь сохраняется для повторной попытки на следующем цикле.
func NextPathStep(m *hqmap.Maze, from domain.Position, path []domain.Position) (domain.Position, []domain.Position) {
	// 1. Срезаем ведущие тайлы, совпадающие с текущим положением.
	for len(path) > 0 && path[0] == from {
		path = path[1:]
	}
	if len(path) == 0 {
		return from, nil
	}

	// 2. Перепроверяем коллизию перед шагом.
	next := path[0]
	if !Walkable(m, next) {
		return from, path
	}
	return next, path[1:]
}

// ShortestPath строит кратчайший путь от from до to по проходимым тайлам.
// Возвращает путь без стартового тайла, включая целевой; nil, если цель
// недостижима. from == to дает пустой путь.
func ShortestPath(m *hqmap.Maze, from, to domain.Position) []domain.Position {
	if from == to {
		return nil
	}
	if !Walkable(m, to) {
		return nil
	}
	return bfs(m, from, func(p domain.Position) bool { return p == to })
}

// RouteToArena строит путь до ближайшего проходимого тайла названной
// арены. Пустой результат означает, что персона уже в арене либо арена
// недостижима.
func RouteToArena(m *hqmap.Maze, from domain.Position, arena string) []domain.Position {
	if arena == "" || m.ArenaAt(from) == arena {
		return nil
	}

	routeLogger := logger.Log.WithFields(logrus.Fields{
		"component": "pathing",
		"from":      from,
		"arena":     arena,
	})

	path := bfs(m, from, func(p domain.Position) bool { return m.ArenaAt(p) == arena })
	if path == nil {
		routeLogger.Warn("No walkable route to arena.")
		return nil
	}

	routeLogger.WithField("path_len", len(path)).Debug("Route to arena planned.")
	return path
}

// bfs ищет кратчайший путь от from до первого тайла, удовлетворяющего
// goal. Волна идет только по проходимым тайлам; from целью не считается.
// Возвращает путь без from; nil, если цель недостижима.
func bfs(m *hqmap.Maze, from domain.Position, goal func(domain.Position) bool) []domain.Position {
	start := from.Key()
	visited := map[types.TileKey]bool{start: true}
	parent := make(map[types.TileKey]types.TileKey)

	queue := []domain.Position{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.Key() != start && goal(cur) {
			// Разматываем путь от цели к старту.
			var rev []domain.Position
			for k := cur.Key(); k != start; k = parent[k] {
				rev = append(rev, domain.FromKey(k))
			}
			path := make([]domain.Position, len(rev))
			for i, p := range rev {
				path[len(rev)-1-i] = p
			}
			return path
		}

		for _, n := range WalkableNeighbors(m, cur) {
			k := n.Key()
			if visited[k] {
				continue
			}
			visited[k] = true
			parent[k] = cur.Key()
			queue = append(queue, n)
		}
	}
	return nil
}
