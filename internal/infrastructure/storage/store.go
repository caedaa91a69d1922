// Package storage отвечает за дисковую раскладку запусков симуляции:
// хендшейк-файлы рендерера, метаданные, скаффолды персон, форки и архивы.
//
// Раскладка каталога одного запуска:
//
//	<root>/<sim_code>/
//	  reverie/meta.json
//	  environment/<step>.json   (пишет рендерер, симуляция читает)
//	  movement/<step>.json      (пишет симуляция, рендерер читает)
//	  personas/<name>/bootstrap_memory/{scratch.json, spatial_memory.json}
//
// Сигнальные файлы для рендерера (curr_sim_code.json, curr_step.json)
// лежат отдельно, во временном каталоге.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Store - доступ к каталогу одного запуска. Методы не синхронизированы:
// писатель у каждого запуска один (цикл движка).
type Store struct {
	root string // корень всех запусков
	temp string // каталог сигнальных файлов рендерера
	sim  string // код текущего запуска
}

// New создает Store для запуска sim в корне root. Каталоги не создаются
// до первой записи.
func New(root, temp, sim string) *Store {
	return &Store{root: root, temp: temp, sim: sim}
}

// SimCode возвращает код запуска, которым владеет Store.
func (s *Store) SimCode() string { return s.sim }

// RunDir возвращает каталог запуска.
func (s *Store) RunDir() string { return filepath.Join(s.root, s.sim) }

// Discard удаляет каталог запуска целиком. Путь команды EXIT: накопленное
// состояние выбрасывается, форк-родитель не трогается.
func (s *Store) Discard() error {
	return os.RemoveAll(s.RunDir())
}

func (s *Store) metaPath() string {
	return filepath.Join(s.root, s.sim, "reverie", "meta.json")
}

func (s *Store) environmentPath(step int) string {
	return filepath.Join(s.root, s.sim, "environment", strconv.Itoa(step)+".json")
}

func (s *Store) movementPath(step int) string {
	return filepath.Join(s.root, s.sim, "movement", strconv.Itoa(step)+".json")
}

func (s *Store) personaDir(name string) string {
	return filepath.Join(s.root, s.sim, "personas", name, "bootstrap_memory")
}

// writeFileAtomic пишет файл через временный сосед и rename: читатель
// (рендерер) никогда не увидит наполовину записанный JSON.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("storage: commit %s: %w", filepath.Base(path), err)
	}
	return nil
}
