package events

import (
	"encoding/json"
	"fmt"

	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/engine/handlers"
	"travian-hq-server/pkg/logger"
)

// HandleBotNoticed доставляет мысль о событии бота ответственной персоне.
func HandleBotNoticed(ctx handlers.Context, eventData json.RawMessage) (handlers.Result, error) {
	var ev domain.BotNoticed
	if err := json.Unmarshal(eventData, &ev); err != nil {
		logger.Log.Errorf("Error parsing BOT_NOTICED event: %v", err)
		return handlers.EmptyResult(), nil
	}

	target, ok := ctx.Personas[ev.Persona]
	if !ok {
		logger.Log.Debugf("Bot event whisper skipped: persona %q not in run", ev.Persona)
		return handlers.EmptyResult(), nil
	}

	target.Whisper(ev.Thought, ctx.Clock, domain.WhisperSourceBridge)

	return handlers.Result{
		Msg:     fmt.Sprintf("👁️ %s noticed: %s", ev.Persona, ev.Thought),
		MsgType: "BRIDGE",
	}, nil
}
