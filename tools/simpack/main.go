// simpack собирает базовую симуляцию штаба: мету, посевной environment/0
// и скаффолды всех девяти персон-менеджеров на их точках появления.
// Рабочие запуски форкаются от этой базы.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/infrastructure/storage"
	"travian-hq-server/internal/persona"
	"travian-hq-server/pkg/api"
	"travian-hq-server/pkg/hqmap"
)

// bio - анкета персоны для scratch.json. Тексты читает когнитивный слой,
// ядро проносит их как есть.
type bio struct {
	name, firstName, lastName string
	age                       int

	innate, learned, currently, lifestyle string
	livingArea, dailyPlanReq              string
}

var personas = []bio{
	{
		name: "Commander Marcus", firstName: "Commander", lastName: "Marcus", age: 45,
		innate:       "authoritative, strategic, decisive",
		learned:      "Commander Marcus is the leader of Travian Bot operations. He coordinates all specialist managers through 14 operational phases each cycle, monitoring progress from the Strategy Hall. He reviews phase boards, issues directives, and ensures each cycle completes successfully.",
		currently:    "Commander Marcus is overseeing the current operational cycle, checking village profiles and coordinating with all managers to ensure smooth resource flow and construction progress across the empire.",
		lifestyle:    "Commander Marcus arrives at the Strategy Hall at 6am and works until midnight, taking short breaks in the Mess Hall.",
		livingArea:   "travian hq:Command Center:Strategy Hall",
		dailyPlanReq: "Commander Marcus coordinates all 14 phases of each operational cycle from the Strategy Hall, consulting with each manager as their phase comes up.",
	},
	{
		name: "Archivist Petra", firstName: "Archivist", lastName: "Petra", age: 38,
		innate:       "meticulous, organized, detail-oriented",
		learned:      "Archivist Petra maintains the village profiles and configuration registry. She classifies villages into tiers (main, developed, developing, grey_zone) and manages focus plans. She ensures all configuration data is accurate and up-to-date.",
		currently:    "Archivist Petra is updating the village registry with the latest tier classifications and reviewing focus plans for the upcoming operational cycle.",
		lifestyle:    "Archivist Petra works from 7am to 9pm in the Archives, organizing scrolls and updating the village registry.",
		livingArea:   "travian hq:Intelligence Wing:Archives",
		dailyPlanReq: "Archivist Petra reviews and updates village profiles at the start of each cycle, then maintains configuration records throughout the day.",
	},
	{
		name: "Scout Varro", firstName: "Scout", lastName: "Varro", age: 32,
		innate:       "observant, quick, analytical",
		learned:      "Scout Varro performs reconnaissance before each operational cycle. He scans statistics pages, caches warehouse capacities, resource levels and production rates, and reports capacity data to the team from his Scout Tower.",
		currently:    "Scout Varro is running preflight scans across all villages, gathering the latest warehouse levels, production rates, and training queues.",
		lifestyle:    "Scout Varro wakes early at 5am to begin his scans. He works from the Scout Tower until 8pm.",
		livingArea:   "travian hq:Intelligence Wing:Scout Tower",
		dailyPlanReq: "Scout Varro runs comprehensive preflight reconnaissance at the start of each cycle, scanning all villages for resource levels, warehouse capacity, and training status.",
	},
	{
		name: "Treasurer Lucius", firstName: "Treasurer", lastName: "Lucius", age: 50,
		innate:       "cautious, calculating, fair",
		learned:      "Treasurer Lucius manages all resource transfers between villages. He handles overflow to main, support to developing villages, crop redistribution, and emergency resource management. He tracks merchant capacity carefully.",
		currently:    "Treasurer Lucius is reviewing resource levels across all villages and planning transfers to optimize storage and prevent overflow.",
		lifestyle:    "Treasurer Lucius works from 7am to 10pm in the Treasury, carefully managing ledgers and calculating optimal transfer routes.",
		livingArea:   "travian hq:Economic Wing:Treasury",
		dailyPlanReq: "Treasurer Lucius manages multiple rounds of resource transfers each cycle: developed to grey zone support, overflow to main, developed to developing support, excess back to main, and crop redistribution.",
	},
	{
		name: "Builder Gaius", firstName: "Builder", lastName: "Gaius", age: 35,
		innate:       "pragmatic, industrious, patient",
		learned:      "Builder Gaius oversees all construction across the empire. He executes CSV-based build queues for developing villages, upgrades grey zone settlements, and manages main village resource field upgrades. He reads blueprint tables and manages the building queue board.",
		currently:    "Builder Gaius is reviewing the current build queues and planning which buildings to upgrade next based on available resources.",
		lifestyle:    "Builder Gaius starts work at 6am in the Construction Yard and works until 9pm, reviewing blueprints and managing queues.",
		livingArea:   "travian hq:Economic Wing:Construction Yard",
		dailyPlanReq: "Builder Gaius handles grey zone upgrades, developing village upgrades, and main village field upgrades during different phases of each operational cycle.",
	},
	{
		name: "Centurion Titus", firstName: "Centurion", lastName: "Titus", age: 40,
		innate:       "disciplined, aggressive, protective",
		learned:      "Centurion Titus manages troop training across all villages. He handles main crop emergencies by training cavalry, runs developed village defense training in barracks and stables, and manages NPC trade when crop is critical.",
		currently:    "Centurion Titus is reviewing troop rosters and planning the next round of barracks and stable training for defense troops.",
		lifestyle:    "Centurion Titus trains from dawn at 5am until 10pm. He is always ready for crop emergencies.",
		livingArea:   "travian hq:Economic Wing:Training Grounds",
		dailyPlanReq: "Centurion Titus handles main crop emergency checks, then runs troop training for main and developed villages during their respective phases.",
	},
	{
		name: "Strategist Livia", firstName: "Strategist", lastName: "Livia", age: 36,
		innate:       "focused, creative, adaptable",
		learned:      "Strategist Livia executes special focus plans that override normal operations. She handles custom build sequences, resource gathering targets, and priority overrides based on the current strategic needs of the empire.",
		currently:    "Strategist Livia is reviewing the current focus plan entries and preparing to execute priority actions for targeted villages.",
		lifestyle:    "Strategist Livia works from 8am to 9pm in the Focus Chamber, studying plans and executing custom operations.",
		livingArea:   "travian hq:Operations Wing:Focus Chamber",
		dailyPlanReq: "Strategist Livia executes focus plans during the dedicated focus phase, coordinating with Builder Gaius and Treasurer Lucius for resource support.",
	},
	{
		name: "Sentinel Felix", firstName: "Sentinel", lastName: "Felix", age: 28,
		innate:       "alert, reactive, fearless",
		learned:      "Sentinel Felix monitors all villages for incoming attacks on a separate thread. He detects hostile movements from the rally point, evaluates threat levels, classifies attack types, and initiates troop and resource evacuation to safe targets.",
		currently:    "Sentinel Felix is monitoring the threat board for incoming attacks and maintaining readiness for emergency dodge operations.",
		lifestyle:    "Sentinel Felix is always on duty in the War Room, monitoring threats 24 hours a day with rotating watch shifts.",
		livingArea:   "travian hq:Command Center:War Room",
		dailyPlanReq: "Sentinel Felix continuously monitors for incoming attacks, evaluates threats, and coordinates dodge responses when hostile movements are detected.",
	},
	{
		name: "Validator Quintus", firstName: "Validator", lastName: "Quintus", age: 55,
		innate:       "thorough, skeptical, precise",
		learned:      "Validator Quintus performs validation and consistency checks on all manager outputs. He verifies build plans against resource availability, checks resource calculations, and ensures operational logic is sound before actions are taken.",
		currently:    "Validator Quintus is reviewing the latest operational data for inconsistencies and validating the resource calculations from Treasurer Lucius.",
		lifestyle:    "Validator Quintus works methodically from 7am to 8pm in the Logic Lab, cross-referencing data and running validation checks.",
		livingArea:   "travian hq:Operations Wing:Logic Lab",
		dailyPlanReq: "Validator Quintus runs validation checks throughout the operational cycle, verifying each manager's outputs before actions are committed.",
	},
}

func main() {
	root := flag.String("root", "storage", "Storage root for simulation runs")
	sim := flag.String("sim", "base_travian_hq", "Sim code of the base simulation")
	start := flag.String("start", "February 23, 2026", "Simulation start date")
	secs := flag.Int("secs", 10, "Simulated seconds per step")
	force := flag.Bool("force", false, "Overwrite an existing base simulation")
	flag.Parse()

	dir := filepath.Join(*root, *sim)
	if _, err := os.Stat(dir); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "%s already exists, use -force to overwrite\n", dir)
		os.Exit(1)
	}

	clock := *start + ", 00:00:00"
	if _, err := domain.ParseClock(clock); err != nil {
		fmt.Fprintf(os.Stderr, "Bad start date: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Creating base simulation at: %s\n", dir)

	m := hqmap.Generate()
	st := storage.New(*root, filepath.Join(*root, "temp_storage"), *sim)

	names := make([]string, 0, len(personas))
	for _, b := range personas {
		names = append(names, b.name)
	}

	meta := domain.RunMeta{
		ForkSimCode:  *sim,
		StartDate:    *start,
		CurrTime:     clock,
		SecPerStep:   *secs,
		MazeName:     m.Name(),
		PersonaNames: names,
		Step:         0,
	}
	if err := st.SaveMeta(meta); err != nil {
		fmt.Fprintf(os.Stderr, "Write meta failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("  Written: reverie/meta.json")

	// Все менеджеры знают здание штаба целиком.
	spatial := fullSpatial(m)

	env := api.EnvironmentFile{}
	for _, b := range personas {
		spawn, ok := m.SpawnOf(b.name)
		if !ok {
			fmt.Fprintf(os.Stderr, "Map has no spawn point for %s\n", b.name)
			os.Exit(1)
		}

		sc := persona.DefaultScratch(b.name)
		sc.FirstName = b.firstName
		sc.LastName = b.lastName
		sc.Age = b.age
		sc.Innate = b.innate
		sc.Learned = b.learned
		sc.Currently = b.currently
		sc.Lifestyle = b.lifestyle
		sc.LivingArea = b.livingArea
		sc.DailyPlanReq = b.dailyPlanReq
		sc.CurrTile = []int{spawn.X, spawn.Y}

		p := persona.FromScratch(sc, spatial)
		if err := st.SavePersonaScaffold(p, domain.SimClock{}); err != nil {
			fmt.Fprintf(os.Stderr, "Write scaffold for %s failed: %v\n", b.name, err)
			os.Exit(1)
		}
		fmt.Printf("  Written: personas/%s/bootstrap_memory/\n", b.name)

		env[b.name] = api.EnvironmentEntry{Maze: m.Name(), X: spawn.X, Y: spawn.Y}
	}

	if err := st.WriteEnvironment(0, env); err != nil {
		fmt.Fprintf(os.Stderr, "Write environment failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("  Written: environment/0.json")

	fmt.Printf("Done! Base simulation %q: %d personas.\n", *sim, len(personas))
}

// fullSpatial собирает пространственную память всего здания: сектор ->
// арена -> объекты.
func fullSpatial(m *hqmap.Maze) persona.SpatialMemory {
	sectors := map[string]map[string][]string{}

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			pos := domain.Position{X: x, Y: y}
			sector, arena := m.SectorAt(pos), m.ArenaAt(pos)
			if sector == "" || arena == "" {
				continue
			}
			if sectors[sector] == nil {
				sectors[sector] = map[string][]string{}
			}
			if _, ok := sectors[sector][arena]; !ok {
				sectors[sector][arena] = []string{}
			}

			obj := m.ObjectAt(pos)
			if obj == "" {
				continue
			}
			known := false
			for _, o := range sectors[sector][arena] {
				if o == obj {
					known = true
					break
				}
			}
			if !known {
				sectors[sector][arena] = append(sectors[sector][arena], obj)
			}
		}
	}

	return persona.SpatialMemory{m.World(): sectors}
}
