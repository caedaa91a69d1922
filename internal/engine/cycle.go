package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/persona"
	"travian-hq-server/pkg/api"
	"travian-hq-server/pkg/logger"
)

// errInputTimeout - входной файл шага не появился за отведенное время.
// Единственная ошибка цикла, которая обрывает весь прогон RunCycles.
var errInputTimeout = errors.New("environment input timed out")

// runCycle выполняет один цикл синхронизатора:
//
//	ожидание входа -> сверка позиций -> мост -> решения -> запись -> сдвиг
//
// Любая ошибка бросает цикл целиком: шаг и часы не двигаются, выходной
// файл не пишется. Повторный заход на тот же шаг безопасен: сверка
// идемпотентна (леджер гасит точные дубликаты), а курсоры моста
// продвигаются только на фактически доставленных событиях.
func (s *Service) runCycle(ctx context.Context) error {
	r := s.run

	env, err := s.waitForInput(ctx, r.Step)
	if err != nil {
		return err
	}

	if err := s.reconcilePositions(env); err != nil {
		return fmt.Errorf("reconcile step %d: %w", r.Step, err)
	}

	s.foldBridge()

	decisions, err := s.decide(ctx)
	if err != nil {
		return fmt.Errorf("decide step %d: %w", r.Step, err)
	}

	if err := s.emitOutput(decisions); err != nil {
		return fmt.Errorf("emit step %d: %w", r.Step, err)
	}

	s.advance()
	return nil
}

// waitForInput опрашивает environment/<step>.json, пока файл не появится
// целиком. Это единственная точка ожидания цикла: сон короткими
// интервалами, прерываемый контекстом, с общим пределом на шаг.
func (s *Service) waitForInput(ctx context.Context, step int) (api.EnvironmentFile, error) {
	deadline := time.Now().Add(s.cfg.StepTimeout())

	for {
		env, err := s.run.Store.ReadEnvironment(step)
		if err == nil {
			return env, nil
		}
		if !os.IsNotExist(err) {
			// Файл есть, но не читается целиком: рендерер мог быть пойман
			// посреди записи. Ждем следующей попытки.
			logger.WithSim(s.run.Store.SimCode(), step).WithError(err).Debug("Environment file not ready")
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: step %d after %s", errInputTimeout, step, s.cfg.StepTimeout())
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.cfg.PollInterval()):
		}
	}
}

// reconcilePositions переносит персон на тайлы, которые отдал рендерер:
// события субъекта снимаются со старого тайла и ставятся на новый.
// Персона, дошедшая до цели (путь пуст), занимает объект действия: его
// событие ставится на тайл, бланк-плашка объекта снимается, а само
// событие регистрируется на гашение в конце цикла.
func (s *Service) reconcilePositions(env api.EnvironmentFile) error {
	r := s.run

	for _, name := range r.Order {
		entry, ok := env[name]
		if !ok {
			return fmt.Errorf("persona %q missing from environment file", name)
		}

		next := domain.Position{X: entry.X, Y: entry.Y}
		if !r.Maze.InBounds(next) {
			return fmt.Errorf("persona %q out of bounds at %s", name, next)
		}

		p := r.Personas[name]

		r.Ledger.RemoveSubjectEvents(p.Name, p.Tile)
		p.Tile = next
		r.Positions[name] = next
		r.Ledger.AddEvent(next, p.CurrentEvent())

		if len(p.PlannedPath) == 0 {
			if objEv, ok := p.CurrentObjectEvent(); ok {
				r.Ledger.AddEvent(next, objEv)
				r.Ledger.RemoveEvent(next, objEv.Idle())
				r.objCleanup[objEv] = next
			}
		}
	}
	return nil
}

// foldBridge вмешивает состояние внешнего бота в цикл. Мост опрашивается
// ровно здесь, один раз за цикл: задержки бота не могут рассинхронизировать
// хендшейк с рендерером.
//
// Пачка событий ограничена: не больше BridgeEventBatch мыслей за цикл,
// остаток остается за курсором и доедается следующими циклами. Дренаж не
// зависит от свежести снапшота, иначе хвост большой пачки ждал бы
// следующей записи бота.
func (s *Service) foldBridge() {
	r := s.run

	s.bridge.Poll()

	if s.bridge.PhaseChanged() {
		payload, _ := json.Marshal(map[string]interface{}{
			"event":       "PHASE_CHANGED",
			"phase":       s.bridge.Phase(),
			"description": s.bridge.PhaseDescription(),
		})
		s.processEvent(payload)
	}

	for _, ev := range s.bridge.ConsumeNewEvents(s.cfg.BridgeEventBatch) {
		personaName, thought := s.bridge.EventThought(ev)
		payload, _ := json.Marshal(map[string]interface{}{
			"event":     "BOT_NOTICED",
			"persona":   personaName,
			"thought":   thought,
			"type":      ev.Type,
			"timestamp": ev.Timestamp,
		})
		s.processEvent(payload)
	}

	// Пока бот работает, простаивающая персона активной фазы получает
	// описание фазы как свое занятие.
	if s.bridge.IsRunning() {
		name, _ := s.bridge.ActiveAgent()
		if p, ok := r.Personas[name]; ok && p.IsIdle() {
			p.ActDescription = s.bridge.PhaseDescription()
		}
	}
}

// decide собирает решения всех персон. Вид мира у всех один и тот же
// (позиции уже сверены), целевая арена назначается только активной
// персоне текущей фазы и только пока бот работает.
func (s *Service) decide(ctx context.Context) (map[string]persona.Decision, error) {
	r := s.run

	positions := make(map[string]domain.Position, len(r.Positions))
	for name, pos := range r.Positions {
		positions[name] = pos
	}

	activeName, activeArena := "", ""
	if s.bridge.IsRunning() {
		activeName, activeArena = s.bridge.ActiveAgent()
	}

	decisions := make(map[string]persona.Decision, len(r.Order))
	for _, name := range r.Order {
		p := r.Personas[name]

		view := persona.View{
			Maze:      r.Maze,
			Ledger:    r.Ledger,
			Positions: positions,
			Clock:     r.Clock,
		}
		if name == activeName {
			view.TargetArena = activeArena
		}

		d, err := p.Decider.Decide(ctx, p, view)
		if err != nil {
			return nil, fmt.Errorf("persona %q: %w", name, err)
		}
		decisions[name] = d
	}
	return decisions, nil
}

// emitOutput применяет решения к персонам и атомарно пишет выходной файл
// шага. Часы в мете файла - ДО сдвига: рендерер видит время шага, который
// он сейчас отрисовывает.
func (s *Service) emitOutput(decisions map[string]persona.Decision) error {
	r := s.run

	snap := api.MovementSnapshot{
		Persona: make(map[string]api.PersonaMovement, len(r.Order)),
		Meta:    api.MovementMeta{CurrTime: r.Clock.String()},
	}

	for _, name := range r.Order {
		p := r.Personas[name]
		d := decisions[name]

		p.Pronunciatio = d.Pronunciatio
		p.ActDescription = d.Description
		p.Chat = d.Chat

		mv := api.PersonaMovement{
			Movement:     [2]int{d.Next.X, d.Next.Y},
			Pronunciatio: d.Pronunciatio,
			Description:  d.Description,
		}
		if len(d.Chat) > 0 {
			mv.Chat = make([][2]string, len(d.Chat))
			for i, line := range d.Chat {
				mv.Chat[i] = line
			}
		}
		snap.Persona[name] = mv
	}

	return r.Store.WriteMovement(r.Step, snap)
}

// advance закрывает цикл: объектные маркеры гаснут, шаг и часы двигаются
// вперед, монитору публикуется свежий снимок.
func (s *Service) advance() {
	r := s.run

	for ev, pos := range r.objCleanup {
		r.Ledger.TurnEventIdle(ev, pos)
	}
	r.objCleanup = make(map[domain.TileEvent]domain.Position)

	finished := r.Step
	r.Step++
	r.Clock = r.Clock.Advance(r.SecPerStep)

	payload, _ := json.Marshal(map[string]interface{}{
		"event": "CYCLE_DONE",
		"step":  finished,
		"clock": r.Clock.String(),
	})
	s.processEvent(payload)
}
