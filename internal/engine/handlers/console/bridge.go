package console

import (
	"travian-hq-server/internal/engine/handlers"
)

// HandleBridge печатает состояние моста так, как его видит симуляция:
// описание текущей фазы и сводку по деревням из последнего снапшота.
func HandleBridge(ctx handlers.Context) (handlers.Result, error) {
	msg := ctx.Bridge.PhaseDescription()
	if sum := ctx.Bridge.VillageSummary(); sum != "" {
		msg += "\n" + sum
	}

	return handlers.Result{Msg: msg, MsgType: "BRIDGE"}, nil
}
