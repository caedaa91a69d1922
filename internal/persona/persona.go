package persona

import (
	"strings"

	"travian-hq-server/internal/domain"
	"travian-hq-server/internal/systems"
	"travian-hq-server/pkg/hqmap"
)

// Persona - рантайм-состояние одной персоны-менеджера. Когнитивный слой
// (планирование, память, генерация реплик) живет за интерфейсом Decider;
// здесь только то, что нужно циклу синхронизации и монитору.
type Persona struct {
	Name         string
	Tile         domain.Position
	VisionRadius int
	LivingArea   string

	// ActAddress - полный адрес текущего действия
	// ("travian hq:Command Center:Strategy Hall:phase_board").
	// Пустая строка означает, что активного действия нет.
	ActAddress     string
	ActDescription string
	Pronunciatio   string

	// ActPredicate/ActObject - предикат и объект текущего события субъекта.
	ActPredicate string
	ActObject    string

	// ObjDescription/ObjPredicate/ObjObject - событие используемого объекта.
	ObjDescription string
	ObjPredicate   string
	ObjObject      string

	Chat        []domain.ChatLine
	PlannedPath []domain.Position
	Spatial     SpatialMemory

	// Decider - внешний коллаборатор, принимающий решение о следующем
	// тайле. Ядро не знает, как решение принято.
	Decider Decider

	// raw - исходный scratch целиком: неинтерпретируемые поля
	// когнитивного слоя проносятся через сохранение без изменений.
	raw Scratch

	whispers []domain.Whisper
}

// FromScratch собирает персону из дисковых scratch и spatial_memory.
func FromScratch(sc Scratch, spatial SpatialMemory) *Persona {
	p := &Persona{
		Name:         sc.Name,
		VisionRadius: sc.VisionR,
		LivingArea:   sc.LivingArea,
		Spatial:      spatial,
		raw:          sc,
	}

	if len(sc.CurrTile) == 2 {
		p.Tile = domain.Position{X: sc.CurrTile[0], Y: sc.CurrTile[1]}
	}
	p.ActAddress = deref(sc.ActAddress)
	p.ActDescription = deref(sc.ActDescription)
	p.Pronunciatio = deref(sc.ActPronunciatio)
	if len(sc.ActEvent) == 3 {
		p.ActPredicate = deref(sc.ActEvent[1])
		p.ActObject = deref(sc.ActEvent[2])
	}
	p.ObjDescription = deref(sc.ActObjDescription)
	if len(sc.ActObjEvent) == 3 {
		p.ObjPredicate = deref(sc.ActObjEvent[1])
		p.ObjObject = deref(sc.ActObjEvent[2])
	}
	p.Chat = sc.Chat
	for _, step := range sc.PlannedPath {
		p.PlannedPath = append(p.PlannedPath, domain.Position{X: step[0], Y: step[1]})
	}

	return p
}

// ToScratch возвращает scratch для сохранения: поля ядра перезаписаны
// текущим состоянием, остальное взято из исходного файла.
func (p *Persona) ToScratch(clock domain.SimClock) Scratch {
	sc := p.raw

	sc.Name = p.Name
	sc.VisionR = p.VisionRadius
	sc.LivingArea = p.LivingArea
	sc.CurrTile = []int{p.Tile.X, p.Tile.Y}
	if !clock.IsZero() {
		s := clock.String()
		sc.CurrTime = &s
	}

	sc.ActAddress = ref(p.ActAddress)
	sc.ActDescription = ref(p.ActDescription)
	sc.ActPronunciatio = ref(p.Pronunciatio)
	sc.ActEvent = []*string{&sc.Name, ref(p.ActPredicate), ref(p.ActObject)}
	sc.ActObjDescription = ref(p.ObjDescription)
	sc.ActObjEvent = []*string{ref(p.ActAddress), ref(p.ObjPredicate), ref(p.ObjObject)}

	sc.Chat = p.Chat
	sc.PlannedPath = make([][2]int, 0, len(p.PlannedPath))
	for _, step := range p.PlannedPath {
		sc.PlannedPath = append(sc.PlannedPath, [2]int{step.X, step.Y})
	}

	return sc
}

// CurrentEvent возвращает событие субъекта для леджера: бланк, пока у
// персоны нет активного действия.
func (p *Persona) CurrentEvent() domain.TileEvent {
	if p.ActAddress == "" {
		return domain.BlankEvent(p.Name)
	}
	return domain.NewEvent(p.Name, p.ActPredicate, p.ActObject, p.ActDescription)
}

// CurrentObjectEvent возвращает событие "объект занят персоной", если
// персона дошла до объекта действия.
func (p *Persona) CurrentObjectEvent() (domain.TileEvent, bool) {
	if p.ActAddress == "" {
		return domain.TileEvent{}, false
	}
	return domain.NewEvent(p.ActAddress, p.ObjPredicate, p.ObjObject, p.ObjDescription), true
}

// IsIdle сообщает, свободна ли персона: описание пустое или явно
// обозначает простой.
func (p *Persona) IsIdle() bool {
	if p.ActDescription == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.ActDescription), "idle")
}

// Whisper кладет вброшенную мысль в журнал персоны. Журнал ограничен,
// старые записи вытесняются.
func (p *Persona) Whisper(text string, clock domain.SimClock, source string) {
	p.whispers = append(p.whispers, domain.Whisper{
		Persona: p.Name,
		Text:    text,
		Clock:   clock.String(),
		Source:  source,
	})
	if len(p.whispers) > domain.MaxWhisperJournal {
		p.whispers = p.whispers[len(p.whispers)-domain.MaxWhisperJournal:]
	}
}

// TailWhispers возвращает последние n записей журнала мыслей.
func (p *Persona) TailWhispers(n int) []domain.Whisper {
	if n <= 0 || len(p.whispers) == 0 {
		return nil
	}
	if n > len(p.whispers) {
		n = len(p.whispers)
	}
	out := make([]domain.Whisper, n)
	copy(out, p.whispers[len(p.whispers)-n:])
	return out
}

// BootstrapSpatial досеивает пространственную память тем, что персона
// видит со своего тайла: арены и объекты в радиусе обзора.
func (p *Persona) BootstrapSpatial(m *hqmap.Maze) {
	if p.Spatial == nil {
		p.Spatial = SpatialMemory{}
	}
	world := m.World()
	if p.Spatial[world] == nil {
		p.Spatial[world] = map[string]map[string][]string{}
	}

	for _, tile := range systems.VisibleTiles(m, p.Tile, p.VisionRadius) {
		sector := m.SectorAt(tile)
		arena := m.ArenaAt(tile)
		if sector == "" || arena == "" {
			continue
		}
		if p.Spatial[world][sector] == nil {
			p.Spatial[world][sector] = map[string][]string{}
		}
		if _, ok := p.Spatial[world][sector][arena]; !ok {
			p.Spatial[world][sector][arena] = []string{}
		}

		obj := m.ObjectAt(tile)
		if obj == "" {
			continue
		}
		known := false
		for _, o := range p.Spatial[world][sector][arena] {
			if o == obj {
				known = true
				break
			}
		}
		if !known {
			p.Spatial[world][sector][arena] = append(p.Spatial[world][sector][arena], obj)
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
