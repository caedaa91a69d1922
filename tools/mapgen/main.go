// mapgen экспортирует встроенную карту штаба в формат рендерера: набор
// CSV-файлов с легендой блоков и плоскими слоями. Экспорт нужен только
// фронтенду; сама симуляция генерирует карту кодом.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"travian-hq-server/pkg/hqmap"
)

func main() {
	out := flag.String("out", "maze", "Output directory for the exported map")
	flag.Parse()

	m := hqmap.Generate()

	dir := filepath.Join(*out, m.Name())
	if err := m.Export(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %q (%dx%d) to %s\n", m.Name(), m.Width(), m.Height(), dir)

	spawns := m.SpawnPoints()
	names := make([]string, 0, len(spawns))
	for persona := range spawns {
		names = append(names, persona)
	}
	sort.Strings(names)

	fmt.Printf("Spawn points: %d\n", len(spawns))
	for _, persona := range names {
		fmt.Printf("  %-20s %s\n", persona, spawns[persona])
	}
}
