package bridge

import (
	"fmt"
	"sort"
	"strings"
)

// OfflineText - статусная строка, когда бот не работает.
const OfflineText = "The Travian Bot is currently offline. All managers are on standby."

// EventThought переводит событие бота в пару (персона, мысль): кто должен
// "заметить" событие и каким текстом оно ляжет в память. Шаблон зависит
// от типа события; незнакомый тип собирается из message/source/target.
func (b *Bridge) EventThought(ev BotEvent) (persona, thought string) {
	persona = b.routing.PersonaForEvent(ev.Type)

	switch ev.Type {
	case "resource_send":
		thought = fmt.Sprintf("I just sent resources from %s to %s. %s", ev.Source, ev.Target, ev.Message)
	case "build_start":
		thought = fmt.Sprintf("I started a new building upgrade: %s. Village: %s.", ev.Message, firstOf(ev.Source, ev.Target, "unknown"))
	case "build_complete":
		thought = fmt.Sprintf("A building upgrade completed: %s. Village: %s.", ev.Message, firstOf(ev.Source, ev.Target, "unknown"))
	case "train_start":
		thought = fmt.Sprintf("I began training troops: %s. At: %s.", ev.Message, firstOf(ev.Source, ev.Target, "the barracks"))
	case "dodge_triggered", "attack_detected":
		thought = fmt.Sprintf("ALERT! %s. Village under threat: %s. I must take immediate defensive action!",
			ev.Message, firstOf(ev.Target, ev.Source, "unknown"))
	case "focus_action":
		thought = fmt.Sprintf("Focus plan action: %s. Target village: %s.", ev.Message, firstOf(ev.Target, ev.Source, "unknown"))
	case "phase_change":
		thought = fmt.Sprintf("The operational phase has changed to: %s. %s", ev.Phase, ev.Message)
	default:
		thought = ev.Message
		if ev.Source != "" {
			thought += fmt.Sprintf(" (from %s)", ev.Source)
		}
		if ev.Target != "" {
			thought += fmt.Sprintf(" (to %s)", ev.Target)
		}
	}

	return persona, thought
}

// PhaseDescription возвращает человекочитаемую строку статуса бота:
// "[Loop N] <описание фазы>" либо OfflineText, если бот выключен.
// Для фазы вне таблицы - общий вариант "Current phase: <фаза>".
func (b *Bridge) PhaseDescription() string {
	if !b.IsRunning() {
		return OfflineText
	}

	phase := b.Phase()
	desc, ok := b.routing.PhaseLine(phase)
	if !ok {
		desc = fmt.Sprintf("Current phase: %s", phase)
	}
	return fmt.Sprintf("[Loop %d] %s", b.LoopIteration(), desc)
}

// VillageSummary возвращает краткую сводку по деревням бота для контекста
// персон. Не больше десяти строк, отсортировано по идентификатору.
func (b *Bridge) VillageSummary() string {
	villages := b.cached.Villages
	if len(villages) == 0 {
		return "No village data available."
	}

	ids := make([]string, 0, len(villages))
	for id := range villages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) > 10 {
		ids = ids[:10]
	}

	var sb strings.Builder
	sb.WriteString("Village Status:")
	for _, id := range ids {
		v := villages[id]
		name := v.Name
		if name == "" {
			name = id
		}
		vtype := v.Type
		if vtype == "" {
			vtype = "unknown"
		}
		fmt.Fprintf(&sb, "\n  %s (%s): L=%d C=%d I=%d Cr=%d",
			name, vtype, v.Resources.Lumber, v.Resources.Clay, v.Resources.Iron, v.Resources.Crop)
	}
	return sb.String()
}

// firstOf возвращает первый непустой вариант.
func firstOf(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
