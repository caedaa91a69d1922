package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"travian-hq-server/internal/domain"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "now":
		fmt.Println(time.Now().Format(domain.ClockLayout))
	case "parse":
		if len(os.Args) < 3 {
			fmt.Println(`Usage: clockcheck parse "<clock string>"`)
			return
		}
		c, err := domain.ParseClock(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid clock: %v\n", err)
			return
		}
		fmt.Println(c.Time().Unix())
	case "advance":
		if len(os.Args) < 4 {
			fmt.Println(`Usage: clockcheck advance "<clock string>" <secs>`)
			return
		}
		c, err := domain.ParseClock(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid clock: %v\n", err)
			return
		}
		secs, err := strconv.Atoi(os.Args[3])
		if err != nil {
			fmt.Printf("Invalid seconds: %v\n", err)
			return
		}
		fmt.Println(c.Advance(secs).String())
	case "diff":
		if len(os.Args) < 4 {
			fmt.Println(`Usage: clockcheck diff "<clock a>" "<clock b>"`)
			return
		}
		a, err := domain.ParseClock(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid clock: %v\n", err)
			return
		}
		b, err := domain.ParseClock(os.Args[3])
		if err != nil {
			fmt.Printf("Invalid clock: %v\n", err)
			return
		}
		fmt.Printf("%.0f\n", b.Sub(a).Seconds())
	default:
		printHelp()
	}
}

func printHelp() {
	fmt.Println(`Clock Utility - конвертация часов симуляции
Commands:
  now                           - текущее время в формате часов симуляции
  parse "<clock>"               - строка часов -> Unix время
  advance "<clock>" <secs>      - сдвинуть часы на секунды вперед
  diff "<clock a>" "<clock b>"  - разница между двумя часами в секундах`)
}
