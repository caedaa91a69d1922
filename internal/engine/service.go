// Package engine содержит синхронизатор шагов: цикл, который сводит
// позиции персон от рендерера, состояние внешнего бота и решения персон
// в выходные файлы движения.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"travian-hq-server/internal/bridge"
	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/engine/handlers"
	"travian-hq-server/internal/engine/handlers/admin"
	"travian-hq-server/internal/engine/handlers/console"
	"travian-hq-server/internal/infrastructure/index"
	"travian-hq-server/internal/infrastructure/storage"
	"travian-hq-server/internal/network"
	"travian-hq-server/internal/persona"
	"travian-hq-server/pkg/api"
	"travian-hq-server/pkg/logger"
)

// Service - владелец запуска симуляции и точка входа для команд оператора.
//
// Модель конкурентности: у состояния запуска ровно один логический
// писатель - горутина операторской консоли. Команды выполняются
// синхронно, цикл синхронизатора крутится на той же горутине. Другие
// горутины (ws-монитор, debug-эндпоинты) живое состояние не трогают:
// после каждого цикла им публикуется готовый снимок MonitorState.
type Service struct {
	cfg Config

	bridge  *bridge.Bridge
	hub     *network.Hub
	index   *index.RunIndex
	decider persona.Decider

	run *Run

	handlers map[domain.CommandType]handlers.HandlerFunc

	stateMu   sync.RWMutex
	lastState *api.MonitorState
}

// NewService собирает сервис. Мост обязателен; hub и index могут быть
// nil (запуск без монитора или без индекса).
func NewService(cfg Config, br *bridge.Bridge, hub *network.Hub, idx *index.RunIndex) *Service {
	s := &Service{
		cfg:      cfg,
		bridge:   br,
		hub:      hub,
		index:    idx,
		decider:  persona.RoutedDecider{},
		handlers: make(map[domain.CommandType]handlers.HandlerFunc),
	}
	s.registerHandlers()
	return s
}

func (s *Service) registerHandlers() {
	s.handlers[domain.CmdRun] = handlers.WithPayload(console.HandleRun)
	s.handlers[domain.CmdSave] = handlers.WithEmptyPayload(console.HandleSave)
	s.handlers[domain.CmdFin] = handlers.WithEmptyPayload(console.HandleFin)
	s.handlers[domain.CmdExit] = handlers.WithEmptyPayload(console.HandleExit)
	s.handlers[domain.CmdWhisper] = handlers.WithPayload(console.HandleWhisper)
	s.handlers[domain.CmdStatus] = handlers.WithEmptyPayload(console.HandleStatus)
	s.handlers[domain.CmdBridge] = handlers.WithEmptyPayload(console.HandleBridge)
	s.handlers[domain.CmdInjectEvent] = handlers.WithPayload(admin.HandleInjectEvent)
	s.handlers[domain.CmdSetClock] = handlers.WithPayload(admin.HandleSetClock)
}

// SetDecider подменяет решателя для всех персон текущего и будущих
// запусков. Тестовый рычаг.
func (s *Service) SetDecider(d persona.Decider) {
	s.decider = d
	if s.run != nil {
		for _, p := range s.run.Personas {
			p.Decider = d
		}
	}
}

// Fork копирует базовую симуляцию в новый запуск и загружает его.
func (s *Service) Fork(forkCode, runCode string) error {
	if err := storage.ForkRun(s.cfg.StorageRoot, forkCode, runCode); err != nil {
		return err
	}
	return s.Load(runCode)
}

// Load поднимает существующий запуск и сигналит рендереру, какую
// симуляцию открывать.
func (s *Service) Load(runCode string) error {
	store := storage.New(s.cfg.StorageRoot, s.cfg.TempRoot, runCode)

	run, err := s.loadRun(store)
	if err != nil {
		return err
	}
	s.run = run

	if err := store.SignalRenderer(run.Step); err != nil {
		return err
	}

	logger.WithSim(runCode, run.Step).WithFields(logrus.Fields{
		"personas": len(run.Personas),
		"maze":     run.Meta.MazeName,
		"clock":    run.Clock.String(),
	}).Info("🏰 Run loaded")

	s.publishState()
	return nil
}

// Loaded сообщает, поднят ли запуск.
func (s *Service) Loaded() bool { return s.run != nil }

// SimCode возвращает код текущего запуска ("" до загрузки).
func (s *Service) SimCode() string {
	if s.run == nil {
		return ""
	}
	return s.run.Store.SimCode()
}

// ProcessCommand разбирает и выполняет команду оператора: диспетчеризация
// по реестру хендлеров, журналирование результата, обработка событий,
// которые хендлер вернул движку.
func (s *Service) ProcessCommand(ctx context.Context, cmd api.ConsoleCommand) (handlers.Result, error) {
	cmdType := domain.ParseCommand(cmd.Action)
	if cmdType == domain.CmdUnknown {
		return handlers.Result{}, fmt.Errorf("engine: unknown command %q", cmd.Action)
	}

	handler, ok := s.handlers[cmdType]
	if !ok {
		return handlers.Result{}, fmt.Errorf("engine: command %s not registered", cmdType)
	}

	if s.run == nil {
		return handlers.Result{}, errors.New("engine: no run loaded")
	}

	result, err := handler(s.handlerContext(ctx), cmd.Payload)
	if err != nil {
		return result, err
	}

	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = "INFO"
		}
		s.run.AddLog(result.Msg, msgType)
	}

	if len(result.Event) > 0 {
		s.processEvent(result.Event)
	}

	return result, nil
}

// handlerContext собирает контекст хендлера из текущего состояния запуска.
func (s *Service) handlerContext(ctx context.Context) handlers.Context {
	return handlers.Context{
		Ctx:      ctx,
		Sim:      s,
		Bridge:   s.bridge,
		SimCode:  s.run.Store.SimCode(),
		Step:     s.run.Step,
		Clock:    s.run.Clock,
		Personas: s.run.Personas,
	}
}

// RunCycles прогоняет до n циклов синхронизатора. Возвращает число
// завершенных циклов.
//
// Сорванный цикл (ошибка сверки, решателя, записи) не съедает бюджет:
// шаг не продвинулся, после паузы тот же шаг пробуется снова. Прерывают
// прогон только таймаут входного файла и отмена контекста.
func (s *Service) RunCycles(ctx context.Context, n int) (int, error) {
	if s.run == nil {
		return 0, errors.New("engine: no run loaded")
	}

	done := 0
	for done < n {
		if err := ctx.Err(); err != nil {
			return done, err
		}

		if err := s.runCycle(ctx); err != nil {
			if errors.Is(err, errInputTimeout) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return done, err
			}

			s.run.AddLog(fmt.Sprintf("Cycle at step %d failed: %v", s.run.Step, err), "ERROR")

			select {
			case <-ctx.Done():
				return done, ctx.Err()
			case <-time.After(s.cfg.PollInterval()):
			}
			continue
		}
		done++
	}
	return done, nil
}

// RunLoop крутит циклы без бюджета, пока прогон не оборвут. Поводы
// выйти те же, что у RunCycles: таймаут входного файла или отмена
// контекста. Возвращает число завершенных циклов.
func (s *Service) RunLoop(ctx context.Context) (int, error) {
	total := 0
	for {
		done, err := s.RunCycles(ctx, 1)
		total += done
		if err != nil {
			return total, err
		}
	}
}

// Save сохраняет мету и scratch всех персон; запуск попадает в индекс.
func (s *Service) Save() error {
	r := s.run

	meta := r.Meta
	meta.Step = r.Step
	meta.CurrTime = r.Clock.String()

	if err := r.Store.SaveMeta(meta); err != nil {
		return err
	}
	for _, name := range r.Order {
		if err := r.Store.SavePersonaScaffold(r.Personas[name], r.Clock); err != nil {
			return err
		}
	}
	r.Meta = meta

	s.index.RecordRun(r.Store.SimCode(), meta)

	logger.WithSim(r.Store.SimCode(), r.Step).Info("💾 Run state saved")
	return nil
}

// Discard удаляет каталог запуска: выход без сохранения.
func (s *Service) Discard() error {
	return s.run.Store.Discard()
}

// SetClock переводит часы запуска.
func (s *Service) SetClock(clock domain.SimClock) {
	s.run.Clock = clock
}
