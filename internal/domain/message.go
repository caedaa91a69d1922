package domain

// Whisper - мысль, положенная персонажу извне (мост или оператор).
// Персонаж не интерпретирует текст; он просто помнит его.
type Whisper struct {
	Persona string `json:"persona"`
	Text    string `json:"text"`
	Clock   string `json:"clock"` // часы симуляции в момент шепота
	Source  string `json:"source"`
}

// Источники шепотов
const (
	WhisperSourceBridge   = "bridge"
	WhisperSourceOperator = "operator"
)

// ChatLine - одна реплика диалога: [кто, что].
// Формат выходного файла требует пару строк, не структуру.
type ChatLine [2]string

// Speaker возвращает говорящего.
func (c ChatLine) Speaker() string { return c[0] }

// Text возвращает текст реплики.
func (c ChatLine) Text() string { return c[1] }
