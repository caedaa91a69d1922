package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"travian-hq-server/internal/domain"
	"travian-hq-server/pkg/logger"
)

// ForkRun создает новый запуск runCode как копию запуска forkCode: дерево
// каталога копируется целиком (персоны, метаданные, посевной environment),
// затем в метаданных копии fork_sim_code переписывается на родителя.
//
// Существующий каталог runCode - ошибка: форк никогда не затирает данные.
func ForkRun(root, forkCode, runCode string) error {
	src := filepath.Join(root, forkCode)
	dst := filepath.Join(root, runCode)

	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("storage: fork source %s: %w", forkCode, err)
	}
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("storage: run %s already exists", runCode)
	}

	if err := copyTree(src, dst); err != nil {
		// Полукопия бесполезна и мешает повторному форку
		_ = os.RemoveAll(dst)
		return fmt.Errorf("storage: fork %s -> %s: %w", forkCode, runCode, err)
	}

	if err := rewriteForkCode(dst, forkCode); err != nil {
		_ = os.RemoveAll(dst)
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "storage",
		"fork":      forkCode,
		"sim":       runCode,
	}).Info("Run forked")
	return nil
}

// rewriteForkCode правит fork_sim_code в метаданных свежего форка.
func rewriteForkCode(runDir, forkCode string) error {
	path := filepath.Join(runDir, "reverie", "meta.json")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("storage: fork meta: %w", err)
	}
	var meta domain.RunMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return fmt.Errorf("storage: fork meta not parsable: %w", err)
	}

	meta.ForkSimCode = forkCode
	return writeJSON(path, meta)
}

// copyTree рекурсивно копирует каталог. Символьные ссылки в хранилище
// запусков не встречаются и не поддерживаются.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
