package hqmap

// Размеры карты и константы слоев.
const (
	Width    = 60
	Height   = 50
	TileSize = 32

	// CollisionBlockID - значение тайла-стены в collision_maze.csv.
	CollisionBlockID = "32125"

	// WorldBlockID - идентификатор мира в world_blocks.csv.
	WorldBlockID = "40001"

	// WorldName - имя мира, корень всех адресов вида
	// "travian hq:Command Center:Strategy Hall".
	WorldName = "travian hq"

	// MazeName - имя каталога карты (maze_name в meta.json ранов).
	MazeName = "travian_hq"

	// emptyCell - пустая клетка слоя в CSV.
	emptyCell = "0"
)

// SectorIDs - секторы штаба (крылья здания).
var SectorIDs = map[string]string{
	"40101": "Command Center",
	"40102": "Economic Wing",
	"40103": "Intelligence Wing",
	"40104": "Operations Wing",
	"40105": "Commons",
}

// ArenaIDs - арены (комнаты внутри секторов).
var ArenaIDs = map[string]string{
	"40201": "Strategy Hall",
	"40202": "War Room",
	"40203": "Briefing Room",
	"40204": "Treasury",
	"40205": "Construction Yard",
	"40206": "Training Grounds",
	"40207": "Archives",
	"40208": "Scout Tower",
	"40209": "Focus Chamber",
	"40210": "Logic Lab",
	"40211": "Mess Hall",
	"40212": "Courtyard",
}

// GameObjectIDs - игровые объекты, расставленные по комнатам.
var GameObjectIDs = map[string]string{
	"40301": "command_chair",
	"40302": "phase_board",
	"40303": "village_map",
	"40304": "war_table",
	"40305": "threat_board",
	"40306": "alarm_bell",
	"40307": "briefing_table",
	"40308": "projection_screen",
	"40309": "resource_ledger",
	"40310": "merchant_desk",
	"40311": "gold_vault",
	"40312": "blueprint_table",
	"40313": "building_queue_board",
	"40314": "tool_rack",
	"40315": "training_dummy",
	"40316": "barracks_desk",
	"40317": "troop_roster",
	"40318": "config_scroll",
	"40319": "village_registry",
	"40320": "profile_cabinet",
	"40321": "telescope",
	"40322": "statistics_board",
	"40323": "resource_scanner",
	"40324": "focus_crystal",
	"40325": "plan_board",
	"40326": "priority_list",
	"40327": "validation_orb",
	"40328": "rule_book",
	"40329": "dining_table",
	"40330": "food_counter",
	"40331": "notice_board",
	"40332": "fountain",
	"40333": "bench",
	"40334": "garden",
}

// SpawnIDs - точки появления персон.
var SpawnIDs = map[string]string{
	"40401": "marcus-sp-A",
	"40402": "petra-sp-A",
	"40403": "varro-sp-A",
	"40404": "lucius-sp-A",
	"40405": "gaius-sp-A",
	"40406": "titus-sp-A",
	"40407": "livia-sp-A",
	"40408": "felix-sp-A",
	"40409": "quintus-sp-A",
}

// SpawnPersona - спавн-блок -> персона, которая там появляется.
var SpawnPersona = map[string]string{
	"40401": "Commander Marcus",
	"40402": "Archivist Petra",
	"40403": "Scout Varro",
	"40404": "Treasurer Lucius",
	"40405": "Builder Gaius",
	"40406": "Centurion Titus",
	"40407": "Strategist Livia",
	"40408": "Sentinel Felix",
	"40409": "Validator Quintus",
}

// Placement - объект или спавн внутри комнаты. Координаты относительные,
// от левого верхнего угла комнаты.
type Placement struct {
	Row, Col int
	ID       string
}

// Room - прямоугольная комната штаба. Границы включительные, по периметру
// стены, двери прорезаются генератором: две клетки в центре верхней стены
// и одна в левой.
type Room struct {
	RowStart, RowEnd int
	ColStart, ColEnd int
	Sector, Arena    string
	Objects          []Placement
	Spawn            *Placement
}

// Rooms - сетка комнат 4x3. Раскладка фиксирована: от координат зависят
// сохраненные раны и пространственная память персон.
//
// Ряды: 0 - стена, 1-2 коридор, 3-12 комнаты, 13-14 коридор, 15-24 комнаты,
// 25-26 коридор, 27-36 комнаты, 37-38 коридор, 39-48 комнаты, 49 - стена.
// Колонки: 0 - стена, 1-2 коридор, 3-17, 18-19 коридор, 20-38,
// 39-40 коридор, 41-57, 58-59 - стена.
var Rooms = []Room{
	// Верхний ряд: Command Center.
	{
		RowStart: 3, RowEnd: 12, ColStart: 3, ColEnd: 17,
		Sector: "40101", Arena: "40201", // Strategy Hall
		Objects: []Placement{
			{Row: 2, Col: 3, ID: "40301"}, // command_chair
			{Row: 2, Col: 8, ID: "40302"}, // phase_board
			{Row: 5, Col: 5, ID: "40303"}, // village_map
		},
		Spawn: &Placement{Row: 4, Col: 7, ID: "40401"}, // marcus-sp-A
	},
	{
		RowStart: 3, RowEnd: 12, ColStart: 20, ColEnd: 38,
		Sector: "40101", Arena: "40202", // War Room
		Objects: []Placement{
			{Row: 2, Col: 4, ID: "40304"},  // war_table
			{Row: 2, Col: 10, ID: "40305"}, // threat_board
			{Row: 5, Col: 7, ID: "40306"},  // alarm_bell
		},
		Spawn: &Placement{Row: 4, Col: 9, ID: "40408"}, // felix-sp-A
	},
	{
		RowStart: 3, RowEnd: 12, ColStart: 41, ColEnd: 57,
		Sector: "40101", Arena: "40203", // Briefing Room
		Objects: []Placement{
			{Row: 3, Col: 4, ID: "40307"},  // briefing_table
			{Row: 3, Col: 10, ID: "40308"}, // projection_screen
		},
		// Общая комната, своего спавна нет.
	},

	// Средний ряд: Economic Wing.
	{
		RowStart: 15, RowEnd: 24, ColStart: 3, ColEnd: 17,
		Sector: "40102", Arena: "40204", // Treasury
		Objects: []Placement{
			{Row: 2, Col: 3, ID: "40309"}, // resource_ledger
			{Row: 2, Col: 8, ID: "40310"}, // merchant_desk
			{Row: 5, Col: 5, ID: "40311"}, // gold_vault
		},
		Spawn: &Placement{Row: 4, Col: 7, ID: "40404"}, // lucius-sp-A
	},
	{
		RowStart: 15, RowEnd: 24, ColStart: 20, ColEnd: 38,
		Sector: "40102", Arena: "40205", // Construction Yard
		Objects: []Placement{
			{Row: 2, Col: 4, ID: "40312"},  // blueprint_table
			{Row: 2, Col: 10, ID: "40313"}, // building_queue_board
			{Row: 5, Col: 7, ID: "40314"},  // tool_rack
		},
		Spawn: &Placement{Row: 4, Col: 9, ID: "40405"}, // gaius-sp-A
	},
	{
		RowStart: 15, RowEnd: 24, ColStart: 41, ColEnd: 57,
		Sector: "40102", Arena: "40206", // Training Grounds
		Objects: []Placement{
			{Row: 2, Col: 4, ID: "40315"},  // training_dummy
			{Row: 2, Col: 10, ID: "40316"}, // barracks_desk
			{Row: 5, Col: 7, ID: "40317"},  // troop_roster
		},
		Spawn: &Placement{Row: 4, Col: 8, ID: "40406"}, // titus-sp-A
	},

	// Третий ряд: Intelligence Wing + Operations Wing.
	{
		RowStart: 27, RowEnd: 36, ColStart: 3, ColEnd: 17,
		Sector: "40103", Arena: "40207", // Archives
		Objects: []Placement{
			{Row: 2, Col: 3, ID: "40318"}, // config_scroll
			{Row: 2, Col: 8, ID: "40319"}, // village_registry
			{Row: 5, Col: 5, ID: "40320"}, // profile_cabinet
		},
		Spawn: &Placement{Row: 4, Col: 7, ID: "40402"}, // petra-sp-A
	},
	{
		RowStart: 27, RowEnd: 36, ColStart: 20, ColEnd: 38,
		Sector: "40103", Arena: "40208", // Scout Tower
		Objects: []Placement{
			{Row: 2, Col: 4, ID: "40321"},  // telescope
			{Row: 2, Col: 10, ID: "40322"}, // statistics_board
			{Row: 5, Col: 7, ID: "40323"},  // resource_scanner
		},
		Spawn: &Placement{Row: 4, Col: 9, ID: "40403"}, // varro-sp-A
	},
	{
		RowStart: 27, RowEnd: 36, ColStart: 41, ColEnd: 57,
		Sector: "40104", Arena: "40209", // Focus Chamber
		Objects: []Placement{
			{Row: 2, Col: 4, ID: "40324"},  // focus_crystal
			{Row: 2, Col: 10, ID: "40325"}, // plan_board
			{Row: 5, Col: 7, ID: "40326"},  // priority_list
		},
		Spawn: &Placement{Row: 4, Col: 8, ID: "40407"}, // livia-sp-A
	},

	// Нижний ряд: Operations Wing + Commons.
	{
		RowStart: 39, RowEnd: 48, ColStart: 3, ColEnd: 17,
		Sector: "40104", Arena: "40210", // Logic Lab
		Objects: []Placement{
			{Row: 2, Col: 3, ID: "40327"}, // validation_orb
			{Row: 2, Col: 8, ID: "40328"}, // rule_book
		},
		Spawn: &Placement{Row: 4, Col: 7, ID: "40409"}, // quintus-sp-A
	},
	{
		RowStart: 39, RowEnd: 48, ColStart: 20, ColEnd: 38,
		Sector: "40105", Arena: "40211", // Mess Hall
		Objects: []Placement{
			{Row: 2, Col: 4, ID: "40329"},  // dining_table
			{Row: 2, Col: 10, ID: "40330"}, // food_counter
			{Row: 5, Col: 9, ID: "40331"},  // notice_board
		},
	},
	{
		RowStart: 39, RowEnd: 48, ColStart: 41, ColEnd: 57,
		Sector: "40105", Arena: "40212", // Courtyard
		Objects: []Placement{
			{Row: 3, Col: 4, ID: "40332"},  // fountain
			{Row: 3, Col: 10, ID: "40333"}, // bench
			{Row: 6, Col: 8, ID: "40334"},  // garden
		},
	},
}
