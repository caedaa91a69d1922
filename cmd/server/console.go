package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/engine"
	"travian-hq-server/pkg/api"
	"travian-hq-server/pkg/logger"
)

// Console - операторский REPL поверх stdin. Горутина консоли владеет
// состоянием запуска: каждая команда исполняется синхронно, до конца,
// прежде чем будет прочитана следующая строка.
type Console struct {
	eng *engine.Service
	in  io.Reader
	out io.Writer
}

func NewConsole(eng *engine.Service, in io.Reader, out io.Writer) *Console {
	return &Console{eng: eng, in: in, out: out}
}

// Loop крутит REPL до команды fin/exit, конца stdin или сигнала.
// Прерывание и EOF идут по пути fin: состояние сохраняется.
func (c *Console) Loop(ctx context.Context) {
	fmt.Fprintf(c.out, "Travian HQ console, run %q. Type help for commands.\n", c.eng.SimCode())

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			c.saveAndReport("stdin closed")
			return
		}
		if ctx.Err() != nil {
			c.saveAndReport("interrupted")
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "help") {
			c.printHelp()
			continue
		}

		cmd, err := parseLine(line)
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}

		result, err := c.eng.ProcessCommand(ctx, cmd)
		if err != nil {
			fmt.Fprintln(c.out, "Error:", err)
			continue
		}
		if result.Msg != "" {
			fmt.Fprintln(c.out, result.Msg)
		}

		// Решение о выходе из процесса принадлежит консоли, не хендлерам.
		switch domain.ParseCommand(cmd.Action) {
		case domain.CmdFin:
			if result.MsgType != "ERROR" {
				return
			}
		case domain.CmdExit:
			return
		}
	}
}

func (c *Console) saveAndReport(reason string) {
	fmt.Fprintf(c.out, "Console %s, saving run...\n", reason)
	if err := c.eng.Save(); err != nil {
		logger.Log.WithError(err).Error("Save on console shutdown failed")
	}
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `Commands:
  run [N]                  advance the simulation N cycles (default 1)
  save                     persist the run and keep going
  fin                      persist the run and shut down
  exit                     discard the run and shut down
  whisper <persona>: <txt> plant a thought into a persona
  status                   print run, clock and persona summary
  bridge                   print the bot phase and village report
  inject <type> <message>  debug: fake a bot event
  setclock <clock string>  debug: move the simulated clock
`)
}

// parseLine переводит строку оператора в команду движка. Грамматика
// повторяет консоль оригинального сервера симуляции.
func parseLine(line string) (api.ConsoleCommand, error) {
	fields := strings.Fields(line)
	verb := strings.ToLower(fields[0])

	switch verb {
	case "run":
		steps := 1
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n <= 0 {
				return api.ConsoleCommand{}, fmt.Errorf("usage: run <positive steps>, got %q", fields[1])
			}
			steps = n
		}
		return command("RUN", api.RunPayload{Steps: steps})

	case "save", "fin", "exit", "status", "bridge":
		return api.ConsoleCommand{Action: strings.ToUpper(verb)}, nil

	case "whisper":
		rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		persona, text, ok := strings.Cut(rest, ":")
		persona, text = strings.TrimSpace(persona), strings.TrimSpace(text)
		if !ok || persona == "" || text == "" {
			return api.ConsoleCommand{}, fmt.Errorf("usage: whisper <persona>: <text>")
		}
		return command("WHISPER", api.WhisperPayload{Persona: persona, Text: text})

	case "inject":
		if len(fields) < 3 {
			return api.ConsoleCommand{}, fmt.Errorf("usage: inject <type> <message>")
		}
		return command("INJECT_EVENT", api.InjectEventPayload{
			Type:    fields[1],
			Message: strings.Join(fields[2:], " "),
		})

	case "setclock":
		rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		if rest == "" {
			return api.ConsoleCommand{}, fmt.Errorf("usage: setclock <month day, year, HH:MM:SS>")
		}
		return command("SET_CLOCK", api.SetClockPayload{Clock: rest})

	default:
		return api.ConsoleCommand{}, fmt.Errorf("unknown command %q, try help", verb)
	}
}

func command(action string, payload any) (api.ConsoleCommand, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return api.ConsoleCommand{}, err
	}
	return api.ConsoleCommand{Action: action, Payload: data}, nil
}
