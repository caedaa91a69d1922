package domain

import "encoding/json"

// ArchiveFrame - это запись одного шага хендшейка (movement/<step>.json)
type ArchiveFrame struct {
	Step    int             `json:"step"`
	Payload json.RawMessage `json:"payload"` // содержимое файла шага как есть
}

// RunArchive - полная запись завершенного запуска для переигрывания в
// рендерере без тысяч отдельных файлов
type RunArchive struct {
	SimCode   string         `json:"simCode"`
	StartStep int            `json:"startStep"`
	CreatedAt int64          `json:"createdAt"` // unix-время упаковки
	Meta      RunMeta        `json:"meta"`      // метаданные на момент упаковки
	Frames    []ArchiveFrame `json:"frames"`

	// Master - свернутое движение всего запуска: персона попадает в шаг,
	// только если ее состояние изменилось с прошлой записи.
	Master json.RawMessage `json:"master"`
}
