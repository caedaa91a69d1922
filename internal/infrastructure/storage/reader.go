package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/persona"
	"travian-hq-server/pkg/api"
)

// LoadMeta читает и валидирует reverie/meta.json запуска.
func (s *Store) LoadMeta() (domain.RunMeta, error) {
	var meta domain.RunMeta

	data, err := os.ReadFile(s.metaPath())
	if err != nil {
		return meta, fmt.Errorf("storage: read meta: %w", err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("storage: parse meta: %w", err)
	}
	if err := meta.Validate(); err != nil {
		return meta, err
	}
	return meta, nil
}

// ReadEnvironment читает входной файл шага от рендерера.
//
// Отсутствующий файл и недописанный JSON возвращаются как ошибка: рендерер
// мог быть пойман посреди записи, вызывающий просто повторит чтение на
// следующем опросе.
func (s *Store) ReadEnvironment(step int) (api.EnvironmentFile, error) {
	data, err := os.ReadFile(s.environmentPath(step))
	if err != nil {
		return nil, err
	}

	var env api.EnvironmentFile
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("storage: environment %d not parsable: %w", step, err)
	}
	if len(env) == 0 {
		return nil, fmt.Errorf("storage: environment %d is empty", step)
	}
	return env, nil
}

// ReadMovement читает записанный выходной файл шага. Нужен монитору и
// архиватору; цикл сам свои файлы не перечитывает.
func (s *Store) ReadMovement(step int) (api.MovementSnapshot, error) {
	var snap api.MovementSnapshot

	data, err := os.ReadFile(s.movementPath(step))
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("storage: movement %d not parsable: %w", step, err)
	}
	return snap, nil
}

// LoadPersonaScaffold собирает персону из bootstrap_memory: scratch.json
// плюс spatial_memory.json.
func (s *Store) LoadPersonaScaffold(name string) (*persona.Persona, error) {
	dir := s.personaDir(name)

	data, err := os.ReadFile(dir + "/scratch.json")
	if err != nil {
		return nil, fmt.Errorf("storage: scaffold %s: %w", name, err)
	}
	var sc persona.Scratch
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("storage: scratch of %s not parsable: %w", name, err)
	}

	data, err = os.ReadFile(dir + "/spatial_memory.json")
	if err != nil {
		return nil, fmt.Errorf("storage: scaffold %s: %w", name, err)
	}
	var spatial persona.SpatialMemory
	if err := json.Unmarshal(data, &spatial); err != nil {
		return nil, fmt.Errorf("storage: spatial memory of %s not parsable: %w", name, err)
	}

	return persona.FromScratch(sc, spatial), nil
}
