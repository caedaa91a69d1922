package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"travian-hq-server/internal/agent"
	"travian-hq-server/internal/bridge"
	"travian-hq-server/internal/engine"
	"travian-hq-server/internal/infrastructure/index"
	"travian-hq-server/internal/network"
	"travian-hq-server/internal/server"
	"travian-hq-server/internal/version"
	"travian-hq-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг флагов
	var (
		forkCode    string
		runCode     string
		configPath  string
		storageRoot string
		addr        string
		botState    string
		steps       int
		botSim      bool
	)
	flag.StringVar(&forkCode, "fork", "", "Sim code to fork the new run from")
	flag.StringVar(&runCode, "run", "", "Sim code of the run to create or resume (required)")
	flag.StringVar(&configPath, "config", "configs/hq.yaml", "Path to YAML config")
	flag.StringVar(&storageRoot, "root", "", "Override storage root directory")
	flag.StringVar(&addr, "addr", "", "Override monitor listen address")
	flag.StringVar(&botState, "botstate", "", "Override path to the bot snapshot file")
	flag.IntVar(&steps, "steps", 0, "Headless mode: run N cycles, save and exit; negative runs until stopped")
	flag.BoolVar(&botSim, "botsim", false, "Start the built-in Travian bot simulator")
	flag.Parse()

	logger.Log.Info("Starting Travian HQ...")
	logger.Log.Info(version.String())

	if runCode == "" {
		logger.Log.Fatal("Flag -run is required: name the run to create or resume")
	}

	// 2. Конфигурация: YAML поверх дефолтов, флаги поверх YAML
	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		logger.Log.Fatal("Config error: ", err)
	}
	if storageRoot != "" {
		cfg.StorageRoot = storageRoot
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if botState != "" {
		cfg.BotState = botState
	}

	// Первый SIGINT/SIGTERM мягко останавливает текущий прогон; после
	// отмены контекста перехват снимается, и второй сигнал убивает процесс.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		stop()
	}()

	// 3. Инициализация ядра
	br := bridge.New(cfg.BotState, bridge.DefaultRouting())
	hub := network.NewHub()

	idx, err := index.Open(filepath.Join(cfg.StorageRoot, "index.db"))
	if err != nil {
		// Индекс вторичен: без него штаб работает, пустеют только
		// /debug/runs и /debug/archives.
		logger.Log.WithError(err).Warn("Run index unavailable, continuing without it")
		idx = nil
	} else {
		defer idx.Close()
	}

	eng := engine.NewService(cfg, br, hub, idx)

	// 4. Запуск: форк от базовой симуляции или продолжение существующей
	if forkCode != "" {
		if err := eng.Fork(forkCode, runCode); err != nil {
			logger.Log.Fatal("Fork error: ", err)
		}
	} else {
		if err := eng.Load(runCode); err != nil {
			logger.Log.Fatal("Load error: ", err)
		}
	}

	// 5. Монитор и вспомогательные горутины
	srv := server.New(eng, hub, br, idx, cfg.Addr)
	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	if botSim {
		sim := agent.New(cfg.BotState, 5*time.Second, time.Now().UnixNano())
		go func() {
			if err := sim.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Log.WithError(err).Error("Bot simulator stopped")
			}
		}()
	}

	// 6. Headless-режим для скриптов и CI
	if steps != 0 {
		runHeadless(ctx, eng, steps)
		return
	}

	// 7. Операторская консоль. Блокирует main до fin/exit.
	NewConsole(eng, os.Stdin, os.Stdout).Loop(ctx)
}

// runHeadless отрабатывает заданное число циклов без консоли; при
// отрицательном steps крутится до сигнала или таймаута входа. Частичный
// прогон не мешает сохранению: докуда дошли, то и сохраняем.
func runHeadless(ctx context.Context, eng *engine.Service, steps int) {
	var (
		done int
		err  error
	)
	if steps < 0 {
		done, err = eng.RunLoop(ctx)
	} else {
		done, err = eng.RunCycles(ctx, steps)
	}

	if err != nil && steps > 0 {
		logger.Log.WithError(err).Errorf("Headless run stopped after %d of %d cycles", done, steps)
	} else if err != nil {
		logger.Log.WithError(err).Errorf("Headless run stopped after %d cycles", done)
	} else {
		logger.Log.Infof("▶️ Headless run finished: %d cycles", done)
	}
	if err := eng.Save(); err != nil {
		logger.Log.Fatal("Save error: ", err)
	}
}
