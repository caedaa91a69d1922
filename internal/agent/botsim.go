// Package agent содержит симулятор внешнего Travian-бота: процесс,
// который пишет эволюционирующий bot_state.json вместо настоящего бота.
// Нужен для сквозных дев-прогонов и ручной отладки моста, когда живого
// бота под рукой нет.
package agent

import (
	"container/heap"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"travian-hq-server/internal/bridge"
	"travian-hq-server/pkg/logger"
)

// botPhases - фазы операционного цикла в порядке исполнения. Строки
// обязаны совпадать с ключами таблиц маршрутизации, включая тире и
// стрелки: мост матчит их буквально.
var botPhases = []string{
	"Village Profiles — Loop",
	"Preflight",
	"Main Crop Check",
	"Developed → Grey Zone (support)",
	"Grey Zone Upgrades (plan-driven)",
	"Developed → Main (overflow)",
	"Developed → Developing (support)",
	"Developing Upgrades (plan-driven)",
	"Developing → Main (excess)",
	"Focus",
	"Developed Crop → Developing",
	"Training",
	"Main Fields",
	"Developed Training",
	"Cycle Complete",
}

// phaseEvents - типичное событие, которое фаза добавляет в журнал.
// У фаз без записи (Main Crop Check, Cycle Complete) событий нет.
var phaseEvents = map[string]string{
	"Village Profiles — Loop":           "profile_update",
	"Preflight":                         "preflight_scan",
	"Developed → Grey Zone (support)":   "resource_send",
	"Grey Zone Upgrades (plan-driven)":  "build_start",
	"Developed → Main (overflow)":       "resource_send",
	"Developed → Developing (support)":  "resource_send",
	"Developing Upgrades (plan-driven)": "build_start",
	"Developing → Main (excess)":        "resource_receive",
	"Focus":                             "focus_action",
	"Developed Crop → Developing":       "resource_send",
	"Training":                          "train_start",
	"Main Fields":                       "build_start",
	"Developed Training":                "train_start",
}

// maxJournal - сколько последних событий симулятор держит в снапшоте.
const maxJournal = 50

// BotSim имитирует внешнего бота: фазы идут по кругу, метки событий
// строго растут, ресурсы деревень дрейфуют вверх. Снапшот пишется
// атомарно, через временный файл и rename, чтобы читатель ни разу не
// застал половину JSON.
type BotSim struct {
	path     string
	interval time.Duration
	rng      *rand.Rand

	phaseIdx int
	loop     int
	running  bool

	villages map[string]bridge.Village
	events   []bridge.BotEvent
	lastTS   float64

	queue simQueue
}

// New создает симулятор, пишущий в path. interval - шаг между фазами,
// seed делает поток событий воспроизводимым.
func New(path string, interval time.Duration, seed int64) *BotSim {
	return &BotSim{
		path:     path,
		interval: interval,
		rng:      rand.New(rand.NewSource(seed)),
		loop:     1,
		villages: map[string]bridge.Village{
			"v_main": {Name: "Roma Nova", Type: "main",
				Resources: bridge.Resources{Lumber: 4200, Clay: 3800, Iron: 3500, Crop: 6100}},
			"v_dev1": {Name: "Ostia", Type: "developed",
				Resources: bridge.Resources{Lumber: 2600, Clay: 2400, Iron: 2000, Crop: 1800}},
			"v_dev2": {Name: "Capua", Type: "developing",
				Resources: bridge.Resources{Lumber: 900, Clay: 1100, Iron: 700, Crop: 650}},
			"v_grey": {Name: "Ravenna", Type: "grey_zone",
				Resources: bridge.Resources{Lumber: 300, Clay: 280, Iron: 150, Crop: 90}},
		},
	}
}

// Run крутит цикл симулятора: берет ближайшую задачу из очереди, спит до
// ее срабатывания, выполняет и пишет снапшот. Возвращается по отмене
// контекста, напоследок помечая бота остановленным.
func (b *BotSim) Run(ctx context.Context) error {
	now := time.Now()
	b.queue = simQueue{}
	heap.Init(&b.queue)
	heap.Push(&b.queue, &simItem{Task: taskPhase, FireAt: now.Add(b.interval)})
	heap.Push(&b.queue, &simItem{Task: taskDrift, FireAt: now.Add(b.interval / 3)})

	b.running = true
	b.phaseIdx = 0
	if err := b.writeState(); err != nil {
		return err
	}
	logger.Log.WithField("path", b.path).Info("🤖 Bot simulator started")

	for {
		next := b.queue[0]

		if wait := time.Until(next.FireAt); wait > 0 {
			select {
			case <-ctx.Done():
				b.running = false
				_ = b.writeState() // прощальный снапшот: бот выключен
				logger.Log.Info("🤖 Bot simulator stopped")
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		item := heap.Pop(&b.queue).(*simItem)
		b.fire(item, time.Now())
		heap.Push(&b.queue, item)

		if err := b.writeState(); err != nil {
			return err
		}
	}
}

// fire выполняет задачу и назначает ей следующее срабатывание.
func (b *BotSim) fire(item *simItem, now time.Time) {
	switch item.Task {
	case taskPhase:
		b.advancePhase(now)
		item.FireAt = now.Add(b.interval)
	case taskDrift:
		b.driftResources()
		item.FireAt = now.Add(b.interval / 3)
	}
}

// advancePhase сдвигает цикл на следующую фазу. Переход через конец
// списка увеличивает номер круга. Каждая смена фазы попадает в журнал,
// вместе с типичным для новой фазы событием.
func (b *BotSim) advancePhase(now time.Time) {
	b.phaseIdx++
	if b.phaseIdx >= len(botPhases) {
		b.phaseIdx = 0
		b.loop++
	}
	phase := botPhases[b.phaseIdx]

	b.emit(now, "phase_change", fmt.Sprintf("Phase started: %s", phase), "", "")
	if evType, ok := phaseEvents[phase]; ok {
		src, dst := b.pickRoute(evType)
		b.emit(now, evType, b.eventMessage(evType, src, dst), src, dst)
	}
}

// pickRoute выбирает деревни-участницы события. Перевозки идут из
// случайной деревни в столицу или обратно, стройки и обучение - в
// случайной деревне.
func (b *BotSim) pickRoute(evType string) (source, target string) {
	names := make([]string, 0, len(b.villages))
	for _, v := range b.villages {
		if v.Type != "main" {
			names = append(names, v.Name)
		}
	}
	pick := names[b.rng.Intn(len(names))]

	switch evType {
	case "resource_send":
		return "Roma Nova", pick
	case "resource_receive":
		return pick, "Roma Nova"
	default:
		return pick, ""
	}
}

func (b *BotSim) eventMessage(evType, source, target string) string {
	switch evType {
	case "resource_send":
		return fmt.Sprintf("Sending %d lumber from %s to %s", 400+b.rng.Intn(800), source, target)
	case "resource_receive":
		return fmt.Sprintf("Receiving shipment from %s at %s", source, target)
	case "build_start":
		return fmt.Sprintf("Started construction in %s", source)
	case "train_start":
		return fmt.Sprintf("Training %d troops in %s", 5+b.rng.Intn(20), source)
	case "focus_action":
		return "Executing focus plan step"
	case "profile_update":
		return "Refreshed village profiles and tier assignments"
	case "preflight_scan":
		return fmt.Sprintf("Scanned %s, no threats detected", source)
	default:
		return evType
	}
}

// emit добавляет запись в журнал. Метки времени строго растут, даже
// когда несколько событий падают в одну миллисекунду: читатель считает
// новизну по максимальной уже виденной метке.
func (b *BotSim) emit(now time.Time, evType, message, source, target string) {
	ts := float64(now.UnixMilli()) / 1000.0
	if ts <= b.lastTS {
		ts = b.lastTS + 0.001
	}
	b.lastTS = ts

	b.events = append(b.events, bridge.BotEvent{
		Type:      evType,
		Message:   message,
		Source:    source,
		Target:    target,
		Phase:     botPhases[b.phaseIdx],
		Timestamp: ts,
	})
	if len(b.events) > maxJournal {
		b.events = b.events[len(b.events)-maxJournal:]
	}
}

// driftResources подкручивает запасы всех деревень вверх, имитируя
// производство между фазами.
func (b *BotSim) driftResources() {
	for id, v := range b.villages {
		v.Resources.Lumber += 40 + b.rng.Intn(30)
		v.Resources.Clay += 35 + b.rng.Intn(30)
		v.Resources.Iron += 25 + b.rng.Intn(25)
		v.Resources.Crop += 15 + b.rng.Intn(40)
		b.villages[id] = v
	}
}

// writeState пишет снапшот атомарно: временный файл рядом, потом rename.
func (b *BotSim) writeState() error {
	snap := bridge.Snapshot{
		Meta: bridge.Meta{
			Running:       b.running,
			Phase:         botPhases[b.phaseIdx],
			LoopIteration: b.loop,
		},
		Villages: b.villages,
		Events:   b.events,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("agent: marshal bot state: %w", err)
	}

	if dir := filepath.Dir(b.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("agent: create state dir: %w", err)
		}
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("agent: write bot state: %w", err)
	}
	return os.Rename(tmp, b.path)
}
