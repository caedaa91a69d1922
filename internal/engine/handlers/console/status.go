package console

import (
	"fmt"
	"sort"
	"strings"

	"travian-hq-server/internal/engine/handlers"
)

// HandleStatus собирает многострочную сводку запуска: шаг, часы, мост,
// позиции персон. Порядок персон алфавитный, чтобы вывод был стабильным.
func HandleStatus(ctx handlers.Context) (handlers.Result, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "sim: %s\n", ctx.SimCode)
	fmt.Fprintf(&sb, "step: %d\n", ctx.Step)
	fmt.Fprintf(&sb, "clock: %s\n", ctx.Clock)

	bot := "offline"
	if ctx.Bridge.IsRunning() {
		bot = fmt.Sprintf("running, phase %q, loop %d",
			ctx.Bridge.Phase(), ctx.Bridge.LoopIteration())
	}
	fmt.Fprintf(&sb, "bot: %s\n", bot)

	names := make([]string, 0, len(ctx.Personas))
	for name := range ctx.Personas {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(&sb, "personas (%d):\n", len(names))
	for _, name := range names {
		p := ctx.Personas[name]
		fmt.Fprintf(&sb, "  %s %s @ %s: %s\n", p.Pronunciatio, name, p.Tile, p.ActDescription)
	}

	return handlers.Result{
		Msg:     strings.TrimSuffix(sb.String(), "\n"),
		MsgType: "INFO",
	}, nil
}
