// archiver упаковывает завершенный прогон в один сжатый файл реплея
// и, по желанию, регистрирует его в индексе запусков.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"travian-hq-server/internal/infrastructure/index"
	"travian-hq-server/internal/infrastructure/storage"
	"travian-hq-server/pkg/logger"
)

func main() {
	logger.Init()

	root := flag.String("root", "storage", "Storage root for simulation runs")
	sim := flag.String("sim", "", "Sim code of the run to archive")
	out := flag.String("out", "", "Output path (default <root>/<sim>"+storage.ArchiveExt+")")
	indexPath := flag.String("index", "", "Optional run index database to record the archive in")
	flag.Parse()

	if *sim == "" {
		fmt.Fprintln(os.Stderr, "usage: archiver -sim <code> [-root <dir>] [-out <file>] [-index <db>]")
		os.Exit(1)
	}

	dst := *out
	if dst == "" {
		dst = filepath.Join(*root, *sim+storage.ArchiveExt)
	}

	arc, err := storage.ArchiveRun(filepath.Join(*root, *sim), dst)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Archive failed: %v\n", err)
		os.Exit(1)
	}

	if *indexPath != "" {
		ix, err := index.Open(*indexPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Index unavailable: %v\n", err)
			os.Exit(1)
		}
		st, err := os.Stat(dst)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Stat archive failed: %v\n", err)
			os.Exit(1)
		}
		ix.RecordArchive(dst, arc.SimCode, len(arc.Frames), st.Size())
		if err := ix.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Close index failed: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Archived %q: %d frames, steps %d..%d -> %s\n",
		arc.SimCode, len(arc.Frames), arc.StartStep, arc.Meta.Step, dst)
}
