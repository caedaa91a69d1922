package console

import (
	"travian-hq-server/internal/engine/handlers"
)

// HandleSave сохраняет мету и scratch всех персон. Запуск продолжается.
func HandleSave(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Sim.Save(); err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Msg: "💾 Run saved.", MsgType: "INFO"}, nil
}

// HandleFin сохраняет запуск перед завершением. Сам выход из процесса -
// дело консоли: она выходит из REPL, если результат не ERROR.
func HandleFin(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Sim.Save(); err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Msg: "🏁 Run saved, shutting down.", MsgType: "INFO"}, nil
}
