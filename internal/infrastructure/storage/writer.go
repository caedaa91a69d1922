package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/persona"
	"travian-hq-server/pkg/api"
)

// SaveMeta атомарно записывает reverie/meta.json.
func (s *Store) SaveMeta(meta domain.RunMeta) error {
	if err := meta.Validate(); err != nil {
		return err
	}
	return writeJSON(s.metaPath(), meta)
}

// WriteMovement атомарно записывает выходной файл шага. Рендерер ждет
// появления этого файла, поэтому он обязан материализоваться целиком.
func (s *Store) WriteMovement(step int, snap api.MovementSnapshot) error {
	if step < 0 {
		return fmt.Errorf("storage: negative step %d", step)
	}
	return writeJSON(s.movementPath(step), snap)
}

// WriteEnvironment записывает входной файл шага. В бою его пишет рендерер;
// метод нужен посевным утилитам и тестам цикла.
func (s *Store) WriteEnvironment(step int, env api.EnvironmentFile) error {
	if step < 0 {
		return fmt.Errorf("storage: negative step %d", step)
	}
	return writeJSON(s.environmentPath(step), env)
}

// SavePersonaScaffold сохраняет bootstrap_memory персоны: scratch.json с
// текущим состоянием ядра и spatial_memory.json как есть.
func (s *Store) SavePersonaScaffold(p *persona.Persona, clock domain.SimClock) error {
	dir := s.personaDir(p.Name)

	if err := writeJSON(filepath.Join(dir, "scratch.json"), p.ToScratch(clock)); err != nil {
		return err
	}

	spatial := p.Spatial
	if spatial == nil {
		spatial = persona.SpatialMemory{}
	}
	return writeJSON(filepath.Join(dir, "spatial_memory.json"), spatial)
}

// SignalRenderer обновляет сигнальные файлы во временном каталоге: из них
// рендерер узнает, какой запуск открывать и с какого шага.
func (s *Store) SignalRenderer(step int) error {
	code := filepath.Join(s.temp, "curr_sim_code.json")
	if err := writeJSON(code, api.SimCodeSignal{SimCode: s.sim}); err != nil {
		return err
	}
	return writeJSON(filepath.Join(s.temp, "curr_step.json"), api.StepSignal{Step: step})
}

// writeJSON сериализует значение с отступами рендерера и пишет атомарно.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal %s: %w", filepath.Base(path), err)
	}
	return writeFileAtomic(path, data)
}
