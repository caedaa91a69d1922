package bridge

// Target - кому и куда маршрутизируется фаза бота: персона-менеджер и
// арена, в которую она должна идти, пока фаза активна.
type Target struct {
	Persona string
	Arena   string
}

// Routing - неизменяемые таблицы маршрутизации моста. Карты копируются
// при создании, поэтому несколько мостов (например, в тестах) не влияют
// друг на друга.
type Routing struct {
	phaseTargets  map[string]Target
	eventPersonas map[string]string
	phaseLines    map[string]string
	fallback      Target
}

// NewRouting строит таблицы из литералов. Входные карты копируются.
func NewRouting(
	phaseTargets map[string]Target,
	eventPersonas map[string]string,
	phaseLines map[string]string,
	fallback Target,
) Routing {
	r := Routing{
		phaseTargets:  make(map[string]Target, len(phaseTargets)),
		eventPersonas: make(map[string]string, len(eventPersonas)),
		phaseLines:    make(map[string]string, len(phaseLines)),
		fallback:      fallback,
	}
	for k, v := range phaseTargets {
		r.phaseTargets[k] = v
	}
	for k, v := range eventPersonas {
		r.eventPersonas[k] = v
	}
	for k, v := range phaseLines {
		r.phaseLines[k] = v
	}
	return r
}

// TargetForPhase возвращает (персона, арена) для фазы. Неизвестная фаза
// не ошибка: возвращается запасная пара.
func (r Routing) TargetForPhase(phase string) Target {
	if t, ok := r.phaseTargets[phase]; ok {
		return t
	}
	return r.fallback
}

// PersonaForEvent возвращает персону, которая должна "заметить" событие
// данного типа. Неизвестный тип уходит запасной персоне.
func (r Routing) PersonaForEvent(eventType string) string {
	if p, ok := r.eventPersonas[eventType]; ok {
		return p
	}
	return r.fallback.Persona
}

// PhaseLine возвращает готовую строку-описание фазы, если она есть в
// таблице.
func (r Routing) PhaseLine(phase string) (string, bool) {
	line, ok := r.phaseLines[phase]
	return line, ok
}

// Fallback возвращает запасную пару маршрутизации.
func (r Routing) Fallback() Target {
	return r.fallback
}

// Coordinator возвращает персону-координатора: ей шепчутся смены фаз.
// Это та же персона, что получает события типа phase_change.
func (r Routing) Coordinator() string {
	return r.PersonaForEvent("phase_change")
}

// DefaultRouting возвращает таблицы штаба Travian. Ключи фаз - строки,
// которые пишет сам бот, включая тире и стрелки внутри названий.
func DefaultRouting() Routing {
	phaseTargets := map[string]Target{
		// Фаза 1: профили деревень
		"Village Profiles — Loop": {Persona: "Commander Marcus", Arena: "Strategy Hall"},
		"Village Profiles":        {Persona: "Commander Marcus", Arena: "Strategy Hall"},
		// Фаза 2: предполетная проверка
		"Preflight":            {Persona: "Scout Varro", Arena: "Scout Tower"},
		"Preflight — Scanning": {Persona: "Scout Varro", Arena: "Scout Tower"},
		// Фаза 3: проверка зерна в столице
		"Main Crop Check":     {Persona: "Centurion Titus", Arena: "Training Grounds"},
		"Main Crop Emergency": {Persona: "Centurion Titus", Arena: "Training Grounds"},
		// Фазы 4-5: серая зона
		"Developed → Grey Zone (support)":  {Persona: "Treasurer Lucius", Arena: "Treasury"},
		"Grey Zone Upgrades (plan-driven)": {Persona: "Builder Gaius", Arena: "Construction Yard"},
		// Фаза 6: переполнение
		"Developed → Main (overflow)": {Persona: "Treasurer Lucius", Arena: "Treasury"},
		// Фазы 7-8: развивающиеся деревни
		"Developed → Developing (support)":  {Persona: "Treasurer Lucius", Arena: "Treasury"},
		"Developing Upgrades (plan-driven)": {Persona: "Builder Gaius", Arena: "Construction Yard"},
		// Фаза 9: возврат излишков
		"Developing → Main (excess)": {Persona: "Treasurer Lucius", Arena: "Treasury"},
		// Фаза 10: фокус-план
		"Focus": {Persona: "Strategist Livia", Arena: "Focus Chamber"},
		// Фаза 11: перераспределение зерна
		"Developed Crop → Developing": {Persona: "Treasurer Lucius", Arena: "Treasury"},
		// Фаза 12: обучение войск
		"Training": {Persona: "Centurion Titus", Arena: "Training Grounds"},
		// Фаза 13: поля столицы
		"Main Fields": {Persona: "Builder Gaius", Arena: "Construction Yard"},
		// Фаза 14: оборона развитых деревень
		"Developed Training": {Persona: "Centurion Titus", Arena: "Training Grounds"},
		// Простой / между циклами
		"init":           {Persona: "Commander Marcus", Arena: "Strategy Hall"},
		"Cycle Complete": {Persona: "Commander Marcus", Arena: "Briefing Room"},
	}

	eventPersonas := map[string]string{
		"resource_send":    "Treasurer Lucius",
		"resource_receive": "Treasurer Lucius",
		"build_start":      "Builder Gaius",
		"build_complete":   "Builder Gaius",
		"train_start":      "Centurion Titus",
		"train_complete":   "Centurion Titus",
		"dodge_triggered":  "Sentinel Felix",
		"attack_detected":  "Sentinel Felix",
		"focus_action":     "Strategist Livia",
		"profile_update":   "Archivist Petra",
		"preflight_scan":   "Scout Varro",
		"validation_error": "Validator Quintus",
		"phase_change":     "Commander Marcus",
	}

	phaseLines := map[string]string{
		"Village Profiles — Loop":           "Commander Marcus is reviewing village classifications and tier assignments.",
		"Preflight":                         "Scout Varro is running reconnaissance scans across all villages.",
		"Main Crop Check":                   "Centurion Titus is checking if the main village has a crop emergency.",
		"Developed → Grey Zone (support)":   "Treasurer Lucius is sending support resources to grey zone villages.",
		"Grey Zone Upgrades (plan-driven)":  "Builder Gaius is upgrading buildings in grey zone villages.",
		"Developed → Main (overflow)":       "Treasurer Lucius is transferring overflow resources to the main village.",
		"Developed → Developing (support)":  "Treasurer Lucius is sending support to developing villages.",
		"Developing Upgrades (plan-driven)": "Builder Gaius is upgrading buildings in developing villages.",
		"Developing → Main (excess)":        "Treasurer Lucius is transferring excess resources back to main.",
		"Focus":                             "Strategist Livia is executing special focus plan actions.",
		"Developed Crop → Developing":       "Treasurer Lucius is redistributing crop to developing villages.",
		"Training":                          "Centurion Titus is training troops across the empire.",
		"Main Fields":                       "Builder Gaius is upgrading resource fields in the main village.",
		"Developed Training":                "Centurion Titus is training defense troops in developed villages.",
		"Cycle Complete":                    "The operational cycle is complete. All managers are resting.",
	}

	return NewRouting(phaseTargets, eventPersonas, phaseLines,
		Target{Persona: "Commander Marcus", Arena: "Strategy Hall"})
}
