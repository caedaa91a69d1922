// Package index ведет вторичный SQLite-индекс запусков: какие симуляции
// сохранялись, докуда дошли, куда заархивированы. Индекс не является
// источником истины (им остается дерево каталогов) и пополняется
// асинхронно: запись никогда не блокирует цикл движка.
package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"travian-hq-server/internal/domain"
	"travian-hq-server/pkg/logger"
)

// RunIndex - дескриптор открытого индекса. Все записи уходят через канал
// в единственную писательскую горутину; читающие методы ходят в базу
// напрямую.
type RunIndex struct {
	db *sql.DB

	ch   chan record
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type recordKind int

const (
	recRun recordKind = iota + 1
	recArchive
)

type record struct {
	kind    recordKind
	run     RunRow
	archive ArchiveRow
}

// RunRow - строка таблицы runs.
type RunRow struct {
	SimCode     string
	ForkSimCode string
	MazeName    string
	Step        int
	CurrTime    string
	Personas    int
	SavedAt     string
}

// ArchiveRow - строка таблицы archives.
type ArchiveRow struct {
	Path      string
	SimCode   string
	Frames    int
	Bytes     int64
	CreatedAt string
}

// Open открывает (или создает) индекс по пути к файлу базы.
func Open(path string) (*RunIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("index: empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Одно соединение: писатель один, читатели редки
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	ix := &RunIndex{
		db: db,
		ch: make(chan record, 64),
	}
	ix.wg.Add(1)
	go func() {
		defer ix.wg.Done()
		ix.loop()
	}()
	return ix, nil
}

func initPragmas(db *sql.DB) error {
	// WAL быстрее для append-нагрузки; NORMAL достаточен для вторичного
	// индекса.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			sim_code TEXT PRIMARY KEY,
			fork_sim_code TEXT NOT NULL,
			maze_name TEXT NOT NULL,
			step INTEGER NOT NULL,
			curr_time TEXT NOT NULL,
			personas INTEGER NOT NULL,
			saved_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS archives (
			path TEXT PRIMARY KEY,
			sim_code TEXT NOT NULL,
			frames INTEGER NOT NULL,
			bytes INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_archives_sim ON archives(sim_code);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Close останавливает писателя, дожидается дозаписи очереди и закрывает
// базу. Повторные вызовы безвредны.
func (ix *RunIndex) Close() error {
	if ix == nil {
		return nil
	}
	var err error
	ix.once.Do(func() {
		ix.closed.Store(true)
		close(ix.ch)
		ix.wg.Wait()
		err = ix.db.Close()
	})
	return err
}

// RecordRun отмечает сохранение запуска. Неблокирующая: при заполненной
// очереди запись отбрасывается, истиной остается каталог запуска.
func (ix *RunIndex) RecordRun(simCode string, meta domain.RunMeta) {
	if ix == nil || ix.closed.Load() {
		return
	}
	r := RunRow{
		SimCode:     simCode,
		ForkSimCode: meta.ForkSimCode,
		MazeName:    meta.MazeName,
		Step:        meta.Step,
		CurrTime:    meta.CurrTime,
		Personas:    len(meta.PersonaNames),
		SavedAt:     time.Now().UTC().Format(time.RFC3339Nano),
	}
	select {
	case ix.ch <- record{kind: recRun, run: r}:
	default:
	}
}

// RecordArchive отмечает созданный архив запуска.
func (ix *RunIndex) RecordArchive(path, simCode string, frames int, size int64) {
	if ix == nil || ix.closed.Load() {
		return
	}
	r := ArchiveRow{
		Path:      path,
		SimCode:   simCode,
		Frames:    frames,
		Bytes:     size,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	select {
	case ix.ch <- record{kind: recArchive, archive: r}:
	default:
	}
}

// Runs возвращает последние сохраненные запуски, свежие первыми.
func (ix *RunIndex) Runs(limit int) ([]RunRow, error) {
	if ix == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := ix.db.Query(
		`SELECT sim_code, fork_sim_code, maze_name, step, curr_time, personas, saved_at
		 FROM runs ORDER BY saved_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.SimCode, &r.ForkSimCode, &r.MazeName, &r.Step, &r.CurrTime, &r.Personas, &r.SavedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Archives возвращает архивы одного запуска.
func (ix *RunIndex) Archives(simCode string) ([]ArchiveRow, error) {
	if ix == nil {
		return nil, nil
	}

	rows, err := ix.db.Query(
		`SELECT path, sim_code, frames, bytes, created_at
		 FROM archives WHERE sim_code = ? ORDER BY created_at DESC`, simCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ArchiveRow
	for rows.Next() {
		var r ArchiveRow
		if err := rows.Scan(&r.Path, &r.SimCode, &r.Frames, &r.Bytes, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (ix *RunIndex) loop() {
	for r := range ix.ch {
		var err error
		switch r.kind {
		case recRun:
			_, err = ix.db.Exec(
				`INSERT OR REPLACE INTO runs(sim_code, fork_sim_code, maze_name, step, curr_time, personas, saved_at)
				 VALUES(?,?,?,?,?,?,?)`,
				r.run.SimCode, r.run.ForkSimCode, r.run.MazeName, r.run.Step,
				r.run.CurrTime, r.run.Personas, r.run.SavedAt)
		case recArchive:
			_, err = ix.db.Exec(
				`INSERT OR REPLACE INTO archives(path, sim_code, frames, bytes, created_at)
				 VALUES(?,?,?,?,?)`,
				r.archive.Path, r.archive.SimCode, r.archive.Frames,
				r.archive.Bytes, r.archive.CreatedAt)
		}
		if err != nil {
			logger.Log.WithError(err).Warn("Run index write failed")
		}
	}
}
