// Package events содержит обработчики внутренних событий движка:
// сырой JSON от процессора событий превращается в шепоты персонам.
package events

import (
	"encoding/json"
	"fmt"

	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/engine/handlers"
	"travian-hq-server/pkg/logger"
)

// HandlePhaseChanged доставляет описание новой фазы бота координатору
// штаба. Кто координатор - знает таблица маршрутизации моста.
func HandlePhaseChanged(ctx handlers.Context, eventData json.RawMessage) (handlers.Result, error) {
	var ev domain.PhaseChanged
	if err := json.Unmarshal(eventData, &ev); err != nil {
		logger.Log.Errorf("Error parsing PHASE_CHANGED event: %v", err)
		return handlers.EmptyResult(), nil
	}

	coordinator := ctx.Bridge.Coordinator()
	target, ok := ctx.Personas[coordinator]
	if !ok {
		// В урезанных запусках координатора может не быть. Смена фазы
		// тогда просто не оставляет следа в памяти персон.
		logger.Log.Debugf("Phase whisper skipped: coordinator %q not in run", coordinator)
		return handlers.EmptyResult(), nil
	}

	target.Whisper(ev.Description, ctx.Clock, domain.WhisperSourceBridge)

	return handlers.Result{
		Msg:     fmt.Sprintf("📯 Phase: %s", ev.Phase),
		MsgType: "BRIDGE",
	}, nil
}
