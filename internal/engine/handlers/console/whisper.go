package console

import (
	"fmt"

	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/engine/handlers"
	"travian-hq-server/pkg/api"
)

// HandleWhisper вбрасывает персоне мысль от имени оператора.
func HandleWhisper(ctx handlers.Context, p api.WhisperPayload) (handlers.Result, error) {
	target, ok := ctx.Personas[p.Persona]
	if !ok {
		return handlers.Result{
			Msg:     fmt.Sprintf("Persona %q not found", p.Persona),
			MsgType: "ERROR",
		}, nil
	}

	target.Whisper(p.Text, ctx.Clock, domain.WhisperSourceOperator)

	return handlers.Result{
		Msg:     fmt.Sprintf("🤫 Whispered to %s", target.Name),
		MsgType: "INFO",
	}, nil
}
