package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"

	"travian-hq-server/internal/domain"
	"travian-hq-server/pkg/api"
	"travian-hq-server/pkg/logger"
)

const (
	// ArchiveExt - расширение файла архива запуска.
	ArchiveExt = ".thqz"

	archiveVersion1 = 1

	// masterStep - номер шага кадра со сводным master-движением.
	// Обычные кадры нумеруются с нуля, конфликтов нет.
	masterStep int32 = -1
)

// archiveHeader - несжатая JSON-строка в начале zstd-потока. По ней можно
// опознать архив, не разбирая кадры.
type archiveHeader struct {
	Version   int            `json:"version"`
	SimCode   string         `json:"sim_code"`
	StartStep int            `json:"start_step"`
	Frames    int            `json:"frames"` // включая master-кадр
	CreatedAt int64          `json:"created_at"`
	Meta      domain.RunMeta `json:"meta"`
}

// frameHeader - заголовок кадра. binary.Write пишет структуру целиком:
// здесь только числа фиксированного размера.
type frameHeader struct {
	Step       int32
	PayloadLen uint32
}

// ArchiveRun упаковывает movement-файлы завершенного запуска в один
// сжатый архив dst. Последним кадром складывается сводное master-движение:
// по нему рендерер переигрывает запуск, не читая тысячи файлов шагов.
//
// Каталог запуска не изменяется; удаление исходных файлов - решение
// вызывающего.
func ArchiveRun(runDir, dst string) (*domain.RunArchive, error) {
	meta, err := readRunMeta(runDir)
	if err != nil {
		return nil, err
	}

	frames, err := collectFrames(filepath.Join(runDir, "movement"))
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("storage: %s has no movement files to archive", runDir)
	}

	master, err := buildMasterMovement(frames, meta.PersonaNames)
	if err != nil {
		return nil, err
	}

	arch := &domain.RunArchive{
		SimCode:   filepath.Base(runDir),
		StartStep: frames[0].Step,
		CreatedAt: time.Now().Unix(),
		Meta:      meta,
		Frames:    frames,
		Master:    master,
	}

	if err := writeArchive(dst, arch); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "storage",
		"sim":       arch.SimCode,
		"frames":    len(frames),
		"archive":   dst,
	}).Info("Run archived")
	return arch, nil
}

// ReadArchive восстанавливает архив запуска из файла.
func ReadArchive(path string) (*domain.RunArchive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("storage: open archive: %w", err)
	}
	defer dec.Close()

	br := bufio.NewReader(dec)

	// 1. Заголовок: одна JSON-строка
	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("storage: archive header: %w", err)
	}
	var h archiveHeader
	if err := json.Unmarshal(line, &h); err != nil {
		return nil, fmt.Errorf("storage: archive header not parsable: %w", err)
	}
	if h.Version != archiveVersion1 {
		return nil, fmt.Errorf("storage: unsupported archive version %d (expected %d)", h.Version, archiveVersion1)
	}

	arch := &domain.RunArchive{
		SimCode:   h.SimCode,
		StartStep: h.StartStep,
		CreatedAt: h.CreatedAt,
		Meta:      h.Meta,
	}

	// 2. Кадры: заголовок фиксированного размера + тело
	for i := 0; i < h.Frames; i++ {
		var fh frameHeader
		if err := binary.Read(br, binary.LittleEndian, &fh); err != nil {
			return nil, fmt.Errorf("storage: frame %d header: %w", i, err)
		}

		payload := make([]byte, fh.PayloadLen)
		if _, err := io.ReadFull(br, payload); err != nil {
			return nil, fmt.Errorf("storage: frame %d payload: %w", i, err)
		}

		if fh.Step == masterStep {
			arch.Master = payload
			continue
		}
		arch.Frames = append(arch.Frames, domain.ArchiveFrame{
			Step:    int(fh.Step),
			Payload: payload,
		})
	}

	return arch, nil
}

// readRunMeta читает метаданные запуска напрямую из каталога, без Store.
func readRunMeta(runDir string) (domain.RunMeta, error) {
	var meta domain.RunMeta

	data, err := os.ReadFile(filepath.Join(runDir, "reverie", "meta.json"))
	if err != nil {
		return meta, fmt.Errorf("storage: read meta: %w", err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("storage: parse meta: %w", err)
	}
	return meta, nil
}

// collectFrames читает movement-файлы каталога в порядке шагов. Файлы с
// нечисловыми именами игнорируются.
func collectFrames(moveDir string) ([]domain.ArchiveFrame, error) {
	entries, err := os.ReadDir(moveDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var steps []int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		step, err := strconv.Atoi(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue
		}
		steps = append(steps, step)
	}
	sort.Ints(steps)

	frames := make([]domain.ArchiveFrame, 0, len(steps))
	for _, step := range steps {
		payload, err := os.ReadFile(filepath.Join(moveDir, strconv.Itoa(step)+".json"))
		if err != nil {
			return nil, fmt.Errorf("storage: movement %d: %w", step, err)
		}
		frames = append(frames, domain.ArchiveFrame{Step: step, Payload: payload})
	}
	return frames, nil
}

// buildMasterMovement сворачивает кадры в дельта-форму: первый шаг пишется
// целиком, дальше персона попадает в шаг, только если ее движение,
// пиктограмма, описание или диалог изменились с последней записи.
func buildMasterMovement(frames []domain.ArchiveFrame, names []string) (json.RawMessage, error) {
	master := make(map[string]map[string]api.PersonaMovement, len(names))
	last := make(map[string]api.PersonaMovement, len(names))
	for _, name := range names {
		master[name] = make(map[string]api.PersonaMovement)
	}

	for i, frame := range frames {
		var snap api.MovementSnapshot
		if err := json.Unmarshal(frame.Payload, &snap); err != nil {
			return nil, fmt.Errorf("storage: movement %d not parsable: %w", frame.Step, err)
		}

		key := strconv.Itoa(frame.Step)
		for _, name := range names {
			move, ok := snap.Persona[name]
			if !ok {
				return nil, fmt.Errorf("storage: movement %d has no entry for %q", frame.Step, name)
			}
			if i > 0 && samePersonaMove(move, last[name]) {
				continue
			}
			master[name][key] = move
			last[name] = move
		}
	}

	return json.Marshal(master)
}

func samePersonaMove(a, b api.PersonaMovement) bool {
	if a.Movement != b.Movement || a.Pronunciatio != b.Pronunciatio || a.Description != b.Description {
		return false
	}
	if len(a.Chat) != len(b.Chat) {
		return false
	}
	for i := range a.Chat {
		if a.Chat[i] != b.Chat[i] {
			return false
		}
	}
	return true
}

// writeArchive пишет архив во временный файл и подменяет его на месте
// только после успешного закрытия zstd-потока.
func writeArchive(path string, arch *domain.RunArchive) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(enc)

	// 1. Заголовок
	head := archiveHeader{
		Version:   archiveVersion1,
		SimCode:   arch.SimCode,
		StartStep: arch.StartStep,
		Frames:    len(arch.Frames) + 1, // плюс master-кадр
		CreatedAt: arch.CreatedAt,
		Meta:      arch.Meta,
	}
	hb, err := json.Marshal(head)
	if err != nil {
		return err
	}
	if _, err = bw.Write(hb); err != nil {
		return err
	}
	if err = bw.WriteByte('\n'); err != nil {
		return err
	}

	// 2. Кадры шагов
	for _, frame := range arch.Frames {
		if err = writeFrame(bw, int32(frame.Step), frame.Payload); err != nil {
			return err
		}
	}

	// 3. Master-кадр последним
	if err = writeFrame(bw, masterStep, arch.Master); err != nil {
		return err
	}

	if err = bw.Flush(); err != nil {
		return err
	}
	if err = enc.Close(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func writeFrame(w io.Writer, step int32, payload []byte) error {
	fh := frameHeader{
		Step:       step,
		PayloadLen: uint32(len(payload)),
	}
	if err := binary.Write(w, binary.LittleEndian, &fh); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
