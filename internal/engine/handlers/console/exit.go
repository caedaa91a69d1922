package console

import (
	"travian-hq-server/internal/engine/handlers"
)

// HandleExit выбрасывает запуск: каталог форка удаляется с диска вместе
// с несохраненным прогрессом. Форк-родитель не трогается.
func HandleExit(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Sim.Discard(); err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Msg: "🗑️ Run discarded.", MsgType: "INFO"}, nil
}
