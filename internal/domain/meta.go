package domain

import "fmt"

// RunMeta — метаданные запуска симуляции (reverie/meta.json).
// Поле step и curr_time обновляются при сохранении; остальное фиксируется
// при форке.
type RunMeta struct {
	ForkSimCode  string   `json:"fork_sim_code"`
	StartDate    string   `json:"start_date"`
	CurrTime     string   `json:"curr_time"`
	SecPerStep   int      `json:"sec_per_step"`
	MazeName     string   `json:"maze_name"`
	PersonaNames []string `json:"persona_names"`
	Step         int      `json:"step"`
}

// Validate проверяет инварианты метаданных перед запуском цикла.
func (m *RunMeta) Validate() error {
	if m.MazeName == "" {
		return fmt.Errorf("meta: maze_name is empty")
	}
	if m.SecPerStep <= 0 {
		return fmt.Errorf("meta: sec_per_step must be positive, got %d", m.SecPerStep)
	}
	if m.Step < 0 {
		return fmt.Errorf("meta: negative step %d", m.Step)
	}
	if len(m.PersonaNames) == 0 {
		return fmt.Errorf("meta: no personas")
	}
	if _, err := ParseClock(m.CurrTime); err != nil {
		return err
	}
	return nil
}

// Clock разбирает текущие часы симуляции.
func (m *RunMeta) Clock() (SimClock, error) {
	return ParseClock(m.CurrTime)
}
