// Package console содержит хендлеры команд операторской консоли.
// Консоль однопоточная (stdin REPL), поэтому хендлеры не заботятся о
// конкурентных вызовах.
package console

import (
	"fmt"

	"travian-hq-server/internal/engine/handlers"
	"travian-hq-server/pkg/api"
)

// HandleRun прогоняет запрошенное число циклов синхронизатора. Блокирует
// вызывающего до конца бюджета, ошибки таймаута или отмены контекста.
func HandleRun(ctx handlers.Context, p api.RunPayload) (handlers.Result, error) {
	done, err := ctx.Sim.RunCycles(ctx.Ctx, p.Steps)
	if err != nil {
		// Часть циклов могла успеть завершиться, поэтому счетчик в ответе.
		return handlers.Result{
			Msg:     fmt.Sprintf("Run stopped after %d of %d cycles: %v", done, p.Steps, err),
			MsgType: "ERROR",
		}, nil
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("▶️ %d cycles complete.", done),
		MsgType: "CYCLE",
	}, nil
}
