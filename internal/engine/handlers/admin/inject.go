// Package admin содержит отладочные команды оператора. В обычной работе
// они не нужны: мост сам доставляет события из снапшота бота.
package admin

import (
	"encoding/json"
	"fmt"

	"travian-hq-server/internal/bridge"
	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/engine/handlers"
	"travian-hq-server/pkg/api"
)

// HandleInjectEvent подбрасывает событие бота в обход файла снапшота.
// Маршрутизация та же, что у настоящих событий: мост выбирает персону,
// формулирует мысль, а дальше событие уходит в общий процессор движка.
func HandleInjectEvent(ctx handlers.Context, p api.InjectEventPayload) (handlers.Result, error) {
	ev := bridge.BotEvent{
		Type:      p.Type,
		Message:   p.Message,
		Source:    p.Source,
		Target:    p.Target,
		Timestamp: p.Timestamp,
	}

	persona, thought := ctx.Bridge.EventThought(ev)

	payload, _ := json.Marshal(map[string]interface{}{
		"event":     "BOT_NOTICED",
		"persona":   persona,
		"thought":   thought,
		"type":      ev.Type,
		"timestamp": ev.Timestamp,
	})

	return handlers.Result{
		Msg:     fmt.Sprintf("🧪 Injected %s event for %s", p.Type, persona),
		MsgType: "INFO",
		Event:   payload,
	}, nil
}

// HandleSetClock переводит симулированные часы запуска.
func HandleSetClock(ctx handlers.Context, p api.SetClockPayload) (handlers.Result, error) {
	clock, err := domain.ParseClock(p.Clock)
	if err != nil {
		return handlers.Result{
			Msg:     fmt.Sprintf("Bad clock format: %v", err),
			MsgType: "ERROR",
		}, nil
	}

	ctx.Sim.SetClock(clock)

	return handlers.Result{
		Msg:     fmt.Sprintf("🕰️ Clock set to %s", clock),
		MsgType: "INFO",
	}, nil
}
