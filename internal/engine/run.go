package engine

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/infrastructure/storage"
	"travian-hq-server/internal/persona"
	"travian-hq-server/pkg/api"
	"travian-hq-server/pkg/hqmap"
	"travian-hq-server/pkg/logger"
)

// Run - загруженный запуск симуляции: мета, карта, персоны, леджер и
// журнал. Всем владеет Service, методы не синхронизированы.
type Run struct {
	Store *storage.Store
	Meta  domain.RunMeta
	Maze  *hqmap.Maze

	// Step - номер следующего шага (= числу завершенных циклов).
	Step       int
	Clock      domain.SimClock
	SecPerStep int

	Personas map[string]*persona.Persona

	// Order - порядок персон из меты. Все обходы идут по нему, чтобы
	// выходные файлы и логи были детерминированными.
	Order []string

	Positions map[string]domain.Position
	Ledger    *domain.EventLedger

	Objects []domain.GameObject

	// objCleanup - объектные события, добавленные в текущем цикле.
	// Гаснут (переходят в бланк) при закрытии цикла.
	objCleanup map[domain.TileEvent]domain.Position

	Logs []api.LogEntry
}

// AddLog добавляет запись в журнал запуска и дублирует ее в структурный лог.
func (r *Run) AddLog(text, logType string) {
	r.Logs = append(r.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%s_%d", r.Store.SimCode(), time.Now().UnixNano()),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	if len(r.Logs) > domain.MaxRunLog {
		r.Logs = r.Logs[len(r.Logs)-domain.MaxRunLog:]
	}

	logger.Log.WithFields(logrus.Fields{
		"sim":       r.Store.SimCode(),
		"step":      r.Step,
		"component": "run_log",
		"log_type":  logType,
	}).Info(text)
}

// loadRun поднимает запуск из каталога Store: мета, карта, персоны,
// затем посев леджера бланками объектов и текущими событиями персон.
func (s *Service) loadRun(store *storage.Store) (*Run, error) {
	meta, err := store.LoadMeta()
	if err != nil {
		return nil, err
	}

	clock, err := meta.Clock()
	if err != nil {
		return nil, err
	}

	m, err := s.mazeForName(meta.MazeName)
	if err != nil {
		return nil, err
	}

	secs := meta.SecPerStep
	if s.cfg.SecPerStep > 0 {
		secs = s.cfg.SecPerStep
	}

	r := &Run{
		Store:      store,
		Meta:       meta,
		Maze:       m,
		Step:       meta.Step,
		Clock:      clock,
		SecPerStep: secs,
		Personas:   make(map[string]*persona.Persona, len(meta.PersonaNames)),
		Order:      append([]string(nil), meta.PersonaNames...),
		Positions:  make(map[string]domain.Position, len(meta.PersonaNames)),
		Ledger:     domain.NewEventLedger(),
		objCleanup: make(map[domain.TileEvent]domain.Position),
	}

	for _, name := range r.Order {
		p, err := store.LoadPersonaScaffold(name)
		if err != nil {
			return nil, err
		}
		if !m.InBounds(p.Tile) {
			return nil, fmt.Errorf("engine: persona %q spawns out of bounds at %s", name, p.Tile)
		}
		if s.cfg.VisionRadius > 0 {
			p.VisionRadius = s.cfg.VisionRadius
		}
		p.Decider = s.decider
		p.BootstrapSpatial(m)

		r.Personas[name] = p
		r.Positions[name] = p.Tile
	}

	r.seedLedger()
	return r, nil
}

// mazeForName выбирает карту запуска. Штабная карта генерируется кодом;
// все прочие ищутся в каталоге экспортов.
func (s *Service) mazeForName(name string) (*hqmap.Maze, error) {
	switch {
	case name == "" || name == hqmap.MazeName:
		return hqmap.Generate(), nil
	case s.cfg.MazeDir != "":
		return hqmap.Load(filepath.Join(s.cfg.MazeDir, name))
	default:
		return nil, fmt.Errorf("engine: unknown maze %q and no maze_dir configured", name)
	}
}

// seedLedger заполняет пустой леджер стартовым состоянием мира: бланки
// всех игровых объектов карты плюс текущие события персон.
func (r *Run) seedLedger() {
	r.Objects = hqObjects(r.Maze)

	world := r.Maze.World()
	for _, obj := range r.Objects {
		r.Ledger.AddEvent(obj.Pos, obj.Blank(world))
	}

	for _, name := range r.Order {
		p := r.Personas[name]
		r.Ledger.AddEvent(p.Tile, p.CurrentEvent())
	}
}

// hqObjects собирает игровые объекты карты: по одному на тайл с непустым
// объектным слоем.
func hqObjects(m *hqmap.Maze) []domain.GameObject {
	var objs []domain.GameObject
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			pos := domain.Position{X: x, Y: y}
			name := m.ObjectAt(pos)
			if name == "" {
				continue
			}
			objs = append(objs, domain.GameObject{
				Name:   name,
				Sector: m.SectorAt(pos),
				Arena:  m.ArenaAt(pos),
				Pos:    pos,
			})
		}
	}
	return objs
}
