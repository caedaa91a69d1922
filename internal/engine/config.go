package engine

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"travian-hq-server/internal/domain"
)

// Config хранит параметры цикла синхронизатора и пути хранилищ.
// Нулевые значения SecPerStep и VisionRadius означают «взять из meta.json
// запуска и scratch персон»; все остальное имеет явный дефолт.
type Config struct {
	// SecPerStep перекрывает sec_per_step из meta.json, если больше нуля.
	SecPerStep int `yaml:"sec_per_step"`

	// PollIntervalMs - пауза между опросами входного файла шага.
	PollIntervalMs int `yaml:"poll_interval_ms"`

	// StepTimeoutMs - сколько всего ждать входной файл одного шага,
	// прежде чем вернуть управление оператору.
	StepTimeoutMs int `yaml:"step_timeout_ms"`

	// BridgeEventBatch - максимум событий бота, вливаемых за один цикл.
	BridgeEventBatch int `yaml:"bridge_event_batch"`

	// VisionRadius перекрывает радиус обзора всех персон, если больше нуля.
	VisionRadius int `yaml:"vision_radius"`

	// StorageRoot - каталог запусков, TempRoot - сигнальные файлы рендерера.
	StorageRoot string `yaml:"storage_root"`
	TempRoot    string `yaml:"temp_root"`

	// MazeDir - каталог экспортированных карт для maze_name, отличных от
	// встроенной. Пустая строка отключает загрузку с диска.
	MazeDir string `yaml:"maze_dir"`

	// BotState - путь к снапшоту внешнего бота.
	BotState string `yaml:"bot_state"`

	// Addr - адрес HTTP-монитора.
	Addr string `yaml:"addr"`
}

// DefaultConfig возвращает конфиг по умолчанию.
func DefaultConfig() Config {
	return Config{
		PollIntervalMs:   200,
		StepTimeoutMs:    60_000,
		BridgeEventBatch: domain.BridgeEventBatch,
		StorageRoot:      "storage",
		TempRoot:         "temp_storage",
		BotState:         "bot_state.json",
		Addr:             ":8080",
	}
}

// LoadConfig накладывает YAML-файл поверх дефолтов. Отсутствующий файл не
// ошибка: возвращаются дефолты, чтобы дев-стенд поднимался без конфига.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("engine: read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("engine: parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("engine: config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.PollIntervalMs <= 0 {
		return fmt.Errorf("poll_interval_ms must be positive, got %d", c.PollIntervalMs)
	}
	if c.StepTimeoutMs < c.PollIntervalMs {
		return fmt.Errorf("step_timeout_ms %d is shorter than poll_interval_ms %d", c.StepTimeoutMs, c.PollIntervalMs)
	}
	if c.BridgeEventBatch <= 0 {
		return fmt.Errorf("bridge_event_batch must be positive, got %d", c.BridgeEventBatch)
	}
	if c.SecPerStep < 0 {
		return fmt.Errorf("sec_per_step cannot be negative, got %d", c.SecPerStep)
	}
	return nil
}

// PollInterval возвращает паузу опроса как Duration.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// StepTimeout возвращает предел ожидания входного файла как Duration.
func (c Config) StepTimeout() time.Duration {
	return time.Duration(c.StepTimeoutMs) * time.Millisecond
}
