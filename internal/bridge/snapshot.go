package bridge

// Snapshot - разобранное состояние внешнего бота (bot_state.json).
// Файл принадлежит чужому процессу: мост его только читает.
type Snapshot struct {
	Meta     Meta               `json:"meta"`
	Villages map[string]Village `json:"villages"`
	Events   []BotEvent         `json:"events"`
}

// Meta - служебный блок снапшота: работает ли бот и в какой он фазе.
type Meta struct {
	Running       bool   `json:"running"`
	Phase         string `json:"phase"`
	LoopIteration int    `json:"loop_iteration"`
}

// Village - одна деревня бота с текущими запасами ресурсов.
type Village struct {
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Resources Resources `json:"resources"`
}

type Resources struct {
	Lumber int `json:"lumber"`
	Clay   int `json:"clay"`
	Iron   int `json:"iron"`
	Crop   int `json:"crop"`
}

// BotEvent - одна запись из append-only журнала событий бота.
// Timestamp - unix-секунды; строгая монотонность - входное допущение,
// мост ее не проверяет.
type BotEvent struct {
	Type      string  `json:"type"`
	Message   string  `json:"message"`
	Source    string  `json:"source"`
	Target    string  `json:"target"`
	Phase     string  `json:"phase"`
	Timestamp float64 `json:"timestamp"`
}
