package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/engine/handlers"
	"travian-hq-server/internal/engine/handlers/events"
	"travian-hq-server/pkg/logger"
)

// processEvent - точка входа для внутренних событий движка: их возвращают
// хендлеры команд и порождает сам цикл (мост, закрытие цикла). Конверт -
// JSON с дискриминатором "event".
func (s *Service) processEvent(eventData json.RawMessage) {
	var genericEvent struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal(eventData, &genericEvent); err != nil {
		logger.Log.Errorf("Error parsing engine event: %v", err)
		return
	}

	ctx := s.handlerContext(context.Background())

	var result handlers.Result
	var err error

	switch domain.ParseEngineEvent(genericEvent.Event) {
	case domain.EngineEventPhaseChanged:
		result, err = events.HandlePhaseChanged(ctx, eventData)
	case domain.EngineEventBotNoticed:
		result, err = events.HandleBotNoticed(ctx, eventData)
	case domain.EngineEventCycleDone:
		result, err = s.handleCycleDone(eventData)
	default:
		logger.Log.Warnf("Unknown engine event type: %s", genericEvent.Event)
		return
	}

	if err != nil {
		logger.Log.Errorf("Engine event %s failed: %v", genericEvent.Event, err)
		return
	}

	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = "INFO"
		}
		s.run.AddLog(result.Msg, msgType)
	}
}

// handleCycleDone закрывает цикл для наблюдателей: запись в журнал и
// публикация снимка монитору. Запись идет ДО публикации, чтобы попасть в
// этот же снимок.
func (s *Service) handleCycleDone(eventData json.RawMessage) (handlers.Result, error) {
	var ev domain.CycleDone
	if err := json.Unmarshal(eventData, &ev); err != nil {
		return handlers.EmptyResult(), err
	}

	s.run.AddLog(fmt.Sprintf("✅ Cycle %d complete, clock %s", ev.Step, ev.Clock), "CYCLE")
	s.publishState()

	return handlers.EmptyResult(), nil
}
