package hqmap

import (
	"travian-hq-server/internal/domain"
)

// Maze - слоистая карта штаба.
//
// Пять слоев повторяют формат файлов рендерера: коллизии, секторы, арены,
// игровые объекты и точки появления. После генерации или загрузки слои не
// меняются, все запросы идут по координатам тайла.
type Maze struct {
	name   string
	world  string
	width  int
	height int
	tile   int

	// Слои. Индексация [y][x], значения - идентификаторы блоков,
	// emptyCell для пустой клетки.
	collision [][]bool
	sector    [][]string
	arena     [][]string
	object    [][]string
	spawn     [][]string

	// Таблицы имен блоков. Generate берет их из шаблонов,
	// Load - из special_blocks.
	sectorNames map[string]string
	arenaNames  map[string]string
	objectNames map[string]string
	spawnNames  map[string]string

	// Индексы, собираемые reindex.
	arenaTiles  map[string][]domain.Position
	arenaSector map[string]string
	spawns      map[string]domain.Position
}

// newMaze выделяет пустую карту заданных размеров.
func newMaze(width, height int) *Maze {
	m := &Maze{
		name:   MazeName,
		world:  WorldName,
		width:  width,
		height: height,
		tile:   TileSize,

		sectorNames: map[string]string{},
		arenaNames:  map[string]string{},
		objectNames: map[string]string{},
		spawnNames:  map[string]string{},
	}

	m.collision = make([][]bool, height)
	m.sector = makeGrid(width, height)
	m.arena = makeGrid(width, height)
	m.object = makeGrid(width, height)
	m.spawn = makeGrid(width, height)
	for y := 0; y < height; y++ {
		m.collision[y] = make([]bool, width)
	}
	return m
}

func makeGrid(width, height int) [][]string {
	g := make([][]string, height)
	for y := 0; y < height; y++ {
		row := make([]string, width)
		for x := 0; x < width; x++ {
			row[x] = emptyCell
		}
		g[y] = row
	}
	return g
}

// reindex пересобирает производные индексы по слоям: тайлы арен,
// принадлежность арен секторам и точки появления персон.
func (m *Maze) reindex() {
	m.arenaTiles = map[string][]domain.Position{}
	m.arenaSector = map[string]string{}
	m.spawns = map[string]domain.Position{}

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			p := domain.Position{X: x, Y: y}

			if aid := m.arena[y][x]; aid != emptyCell {
				name := m.arenaNames[aid]
				if name != "" {
					m.arenaTiles[name] = append(m.arenaTiles[name], p)
					if sid := m.sector[y][x]; sid != emptyCell {
						m.arenaSector[name] = m.sectorNames[sid]
					}
				}
			}

			if spid := m.spawn[y][x]; spid != emptyCell {
				if persona := SpawnPersona[spid]; persona != "" {
					m.spawns[persona] = p
				}
			}
		}
	}
}

// Name возвращает имя каталога карты (maze_name в meta.json ранов).
func (m *Maze) Name() string { return m.name }

// World возвращает имя мира - корень адресов пространственной памяти.
func (m *Maze) World() string { return m.world }

func (m *Maze) Width() int  { return m.width }
func (m *Maze) Height() int { return m.height }

// SqTileSize возвращает размер тайла в пикселях для рендерера.
func (m *Maze) SqTileSize() int { return m.tile }

// InBounds проверяет, что тайл лежит внутри карты.
func (m *Maze) InBounds(p domain.Position) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

// WalkableAt проверяет слой коллизий. Тайлы за границами карты
// непроходимы.
func (m *Maze) WalkableAt(p domain.Position) bool {
	if !m.InBounds(p) {
		return false
	}
	return !m.collision[p.Y][p.X]
}

// SectorAt возвращает название сектора тайла, "" вне секторов.
func (m *Maze) SectorAt(p domain.Position) string {
	if !m.InBounds(p) {
		return ""
	}
	return m.sectorNames[m.sector[p.Y][p.X]]
}

// ArenaAt возвращает название арены тайла, "" вне арен.
func (m *Maze) ArenaAt(p domain.Position) string {
	if !m.InBounds(p) {
		return ""
	}
	return m.arenaNames[m.arena[p.Y][p.X]]
}

// ObjectAt возвращает название игрового объекта на тайле, "" если пусто.
func (m *Maze) ObjectAt(p domain.Position) string {
	if !m.InBounds(p) {
		return ""
	}
	return m.objectNames[m.object[p.Y][p.X]]
}

// SpawnPoints возвращает копию таблицы точек появления: персона -> тайл.
func (m *Maze) SpawnPoints() map[string]domain.Position {
	out := make(map[string]domain.Position, len(m.spawns))
	for name, p := range m.spawns {
		out[name] = p
	}
	return out
}

// SpawnOf возвращает точку появления персоны.
func (m *Maze) SpawnOf(persona string) (domain.Position, bool) {
	p, ok := m.spawns[persona]
	return p, ok
}

// ArenaTiles возвращает тайлы названной арены. Порядок построчный.
func (m *Maze) ArenaTiles(name string) []domain.Position {
	tiles := m.arenaTiles[name]
	if tiles == nil {
		return nil
	}
	out := make([]domain.Position, len(tiles))
	copy(out, tiles)
	return out
}

// ArenaAddress возвращает полный адрес арены "мир:сектор:арена",
// "" для неизвестной арены.
func (m *Maze) ArenaAddress(name string) string {
	sector, ok := m.arenaSector[name]
	if !ok {
		return ""
	}
	return m.world + ":" + sector + ":" + name
}
