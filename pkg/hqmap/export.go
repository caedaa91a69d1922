package hqmap

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"travian-hq-server/internal/domain"
)

// mazeMeta - метаданные карты в том виде, в котором их читает рендерер.
type mazeMeta struct {
	WorldName         string `json:"world_name"`
	MazeWidth         int    `json:"maze_width"`
	MazeHeight        int    `json:"maze_height"`
	SqTileSize        int    `json:"sq_tile_size"`
	SpecialConstraint string `json:"special_constraint"`
}

// Export записывает карту в набор файлов рендерера:
//
//	dir/
//	  maze/                    пять слоев, каждый одной плоской CSV-строкой
//	  special_blocks/          справочники идентификаторов блоков
//	  maze_meta_info.json      размеры и имя мира
//
// Формат фиксирован: эти файлы читает сторонний фронтенд, менять
// разделители или порядок колонок нельзя.
func (m *Maze) Export(dir string) error {
	mazeDir := filepath.Join(dir, "maze")
	blocksDir := filepath.Join(dir, "special_blocks")
	for _, d := range []string{mazeDir, blocksDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("create map dir: %w", err)
		}
	}

	// 1. Слои карты.
	layers := []struct {
		file string
		row  []string
	}{
		{"collision_maze.csv", m.flattenCollision()},
		{"sector_maze.csv", flatten(m.sector)},
		{"arena_maze.csv", flatten(m.arena)},
		{"game_object_maze.csv", flatten(m.object)},
		{"spawning_location_maze.csv", flatten(m.spawn)},
	}
	for _, l := range layers {
		if err := writeCSV(filepath.Join(mazeDir, l.file), [][]string{l.row}); err != nil {
			return err
		}
	}

	// 2. Справочники блоков. Поля после первого начинаются с пробела,
	// как того ждет парсер рендерера.
	if err := writeCSV(filepath.Join(blocksDir, "world_blocks.csv"), [][]string{
		{WorldBlockID, " " + m.world},
	}); err != nil {
		return err
	}

	var sectorRows [][]string
	for _, id := range sortedKeys(m.sectorNames) {
		sectorRows = append(sectorRows, []string{id, " " + m.world, " " + m.sectorNames[id]})
	}
	if err := writeCSV(filepath.Join(blocksDir, "sector_blocks.csv"), sectorRows); err != nil {
		return err
	}

	var arenaRows [][]string
	for _, id := range sortedKeys(m.arenaNames) {
		name := m.arenaNames[id]
		sector, ok := m.arenaSector[name]
		if !ok {
			sector = "Command Center"
		}
		arenaRows = append(arenaRows, []string{id, " " + m.world, " " + sector, " " + name})
	}
	if err := writeCSV(filepath.Join(blocksDir, "arena_blocks.csv"), arenaRows); err != nil {
		return err
	}

	var objectRows [][]string
	for _, id := range sortedKeys(m.objectNames) {
		objectRows = append(objectRows, []string{id, " " + m.world, " <all>", " " + m.objectNames[id]})
	}
	if err := writeCSV(filepath.Join(blocksDir, "game_object_blocks.csv"), objectRows); err != nil {
		return err
	}

	var spawnRows [][]string
	for _, id := range sortedKeys(m.spawnNames) {
		pos, ok := m.spawnTile(id)
		if !ok {
			continue
		}
		spawnRows = append(spawnRows, []string{
			id, " " + m.world, " " + m.SectorAt(pos), " " + m.ArenaAt(pos), " " + m.spawnNames[id],
		})
	}
	if err := writeCSV(filepath.Join(blocksDir, "spawning_location_blocks.csv"), spawnRows); err != nil {
		return err
	}

	// 3. Метаданные.
	meta := mazeMeta{
		WorldName:  m.world,
		MazeWidth:  m.width,
		MazeHeight: m.height,
		SqTileSize: m.tile,
	}
	data, err := json.MarshalIndent(meta, "", " ")
	if err != nil {
		return fmt.Errorf("marshal maze meta: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "maze_meta_info.json"), data, 0o644); err != nil {
		return fmt.Errorf("write maze meta: %w", err)
	}
	return nil
}

// Load читает карту из набора файлов, записанного Export.
func Load(dir string) (*Maze, error) {
	metaRaw, err := os.ReadFile(filepath.Join(dir, "maze_meta_info.json"))
	if err != nil {
		return nil, fmt.Errorf("read maze meta: %w", err)
	}
	var meta mazeMeta
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return nil, fmt.Errorf("parse maze meta: %w", err)
	}
	if meta.MazeWidth <= 0 || meta.MazeHeight <= 0 {
		return nil, fmt.Errorf("bad maze dimensions %dx%d", meta.MazeWidth, meta.MazeHeight)
	}

	m := newMaze(meta.MazeWidth, meta.MazeHeight)
	m.world = meta.WorldName
	if meta.SqTileSize > 0 {
		m.tile = meta.SqTileSize
	}

	// 1. Справочники блоков.
	blocksDir := filepath.Join(dir, "special_blocks")
	if m.sectorNames, err = readBlocks(filepath.Join(blocksDir, "sector_blocks.csv"), 2); err != nil {
		return nil, err
	}
	if m.arenaNames, err = readBlocks(filepath.Join(blocksDir, "arena_blocks.csv"), 3); err != nil {
		return nil, err
	}
	if m.objectNames, err = readBlocks(filepath.Join(blocksDir, "game_object_blocks.csv"), 3); err != nil {
		return nil, err
	}
	if m.spawnNames, err = readBlocks(filepath.Join(blocksDir, "spawning_location_blocks.csv"), 4); err != nil {
		return nil, err
	}

	// 2. Слои карты.
	mazeDir := filepath.Join(dir, "maze")
	collision, err := readFlat(filepath.Join(mazeDir, "collision_maze.csv"), m.width, m.height)
	if err != nil {
		return nil, err
	}
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			m.collision[y][x] = collision[y][x] != emptyCell
		}
	}
	if m.sector, err = readFlat(filepath.Join(mazeDir, "sector_maze.csv"), m.width, m.height); err != nil {
		return nil, err
	}
	if m.arena, err = readFlat(filepath.Join(mazeDir, "arena_maze.csv"), m.width, m.height); err != nil {
		return nil, err
	}
	if m.object, err = readFlat(filepath.Join(mazeDir, "game_object_maze.csv"), m.width, m.height); err != nil {
		return nil, err
	}
	if m.spawn, err = readFlat(filepath.Join(mazeDir, "spawning_location_maze.csv"), m.width, m.height); err != nil {
		return nil, err
	}

	m.reindex()
	return m, nil
}

// spawnTile ищет тайл спавн-блока по слою.
func (m *Maze) spawnTile(id string) (domain.Position, bool) {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.spawn[y][x] == id {
				return domain.Position{X: x, Y: y}, true
			}
		}
	}
	return domain.Position{}, false
}

// flatten разворачивает слой в одну строку значений, построчно.
func flatten(grid [][]string) []string {
	var flat []string
	for _, row := range grid {
		flat = append(flat, row...)
	}
	return flat
}

// flattenCollision переводит булев слой в идентификаторы блоков.
func (m *Maze) flattenCollision() []string {
	flat := make([]string, 0, m.width*m.height)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.collision[y][x] {
				flat = append(flat, CollisionBlockID)
			} else {
				flat = append(flat, emptyCell)
			}
		}
	}
	return flat
}

// writeCSV пишет CSV с CRLF-терминатором, как в остальных файлах,
// которые потребляет рендерер.
func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	w := csv.NewWriter(f)
	w.UseCRLF = true
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}

// readBlocks читает справочник блоков: идентификатор из первой колонки,
// имя из nameCol. Поля в файлах имеют ведущие пробелы.
func readBlocks(path string, nameCol int) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	out := make(map[string]string, len(records))
	for _, rec := range records {
		if len(rec) <= nameCol {
			continue
		}
		out[strings.TrimSpace(rec[0])] = strings.TrimSpace(rec[nameCol])
	}
	return out, nil
}

// readFlat читает слой из одной плоской CSV-строки и восстанавливает
// сетку width x height.
func readFlat(path string, width, height int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty layer", filepath.Base(path))
	}
	flat := records[0]
	if len(flat) != width*height {
		return nil, fmt.Errorf("%s: %d values, want %d", filepath.Base(path), len(flat), width*height)
	}

	grid := make([][]string, height)
	for y := 0; y < height; y++ {
		row := make([]string, width)
		for x := 0; x < width; x++ {
			row[x] = strings.TrimSpace(flat[y*width+x])
		}
		grid[y] = row
	}
	return grid, nil
}

// sortedKeys возвращает ключи таблицы по возрастанию. Идентификаторы
// блоков одинаковой длины, лексикографический порядок совпадает с
// числовым.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
