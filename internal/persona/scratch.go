package persona

import (
	"encoding/json"

	"travian-hq-server/internal/domain"
)

// Scratch - дисковый формат personas/<name>/bootstrap_memory/scratch.json.
// Формат унаследован от legacy-бэкенда: ядру синхронизации нужна лишь часть
// полей, остальные (параметры когнитивного слоя) читаются и пишутся как
// есть, чтобы не ломать чужие данные при сохранении.
type Scratch struct {
	VisionR      int     `json:"vision_r"`
	AttBandwidth int     `json:"att_bandwidth"`
	Retention    int     `json:"retention"`
	CurrTime     *string `json:"curr_time"`
	CurrTile     []int   `json:"curr_tile"` // null либо [x, y]

	DailyPlanReq string `json:"daily_plan_req"`
	Name         string `json:"name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Age          int    `json:"age"`
	Innate       string `json:"innate"`
	Learned      string `json:"learned"`
	Currently    string `json:"currently"`
	Lifestyle    string `json:"lifestyle"`
	LivingArea   string `json:"living_area"`

	// Параметры когнитивного слоя: ядро их не интерпретирует.
	ConceptForget          int     `json:"concept_forget"`
	DailyReflectionTime    int     `json:"daily_reflection_time"`
	DailyReflectionSize    int     `json:"daily_reflection_size"`
	OverlapReflectTh       int     `json:"overlap_reflect_th"`
	KwStrgEventReflectTh   int     `json:"kw_strg_event_reflect_th"`
	KwStrgThoughtReflectTh int     `json:"kw_strg_thought_reflect_th"`
	RecencyW               float64 `json:"recency_w"`
	RelevanceW             float64 `json:"relevance_w"`
	ImportanceW            float64 `json:"importance_w"`
	RecencyDecay           float64 `json:"recency_decay"`
	ImportanceTriggerMax   int     `json:"importance_trigger_max"`
	ImportanceTriggerCurr  int     `json:"importance_trigger_curr"`
	ImportanceEleN         int     `json:"importance_ele_n"`
	ThoughtCount           int     `json:"thought_count"`

	DailyReq                json.RawMessage `json:"daily_req"`
	FDailySchedule          json.RawMessage `json:"f_daily_schedule"`
	FDailyScheduleHourlyOrg json.RawMessage `json:"f_daily_schedule_hourly_org"`

	ActAddress         *string   `json:"act_address"`
	ActStartTime       *string   `json:"act_start_time"`
	ActDuration        *int      `json:"act_duration"`
	ActDescription     *string   `json:"act_description"`
	ActPronunciatio    *string   `json:"act_pronunciatio"`
	ActEvent           []*string `json:"act_event"`
	ActObjDescription  *string   `json:"act_obj_description"`
	ActObjPronunciatio *string   `json:"act_obj_pronunciatio"`
	ActObjEvent        []*string `json:"act_obj_event"`

	ChattingWith       *string           `json:"chatting_with"`
	Chat               []domain.ChatLine `json:"chat"`
	ChattingWithBuffer map[string]int    `json:"chatting_with_buffer"`
	ChattingEndTime    *string           `json:"chatting_end_time"`

	ActPathSet  bool     `json:"act_path_set"`
	PlannedPath [][2]int `json:"planned_path"`
}

// SpatialMemory - дисковый формат spatial_memory.json:
// мир -> сектор -> арена -> список объектов.
type SpatialMemory map[string]map[string]map[string][]string

// DefaultScratch возвращает scratch нового рекрута с параметрами
// когнитивного слоя, совпадающими с посевом base-симуляции.
func DefaultScratch(name string) Scratch {
	return Scratch{
		VisionR:      8,
		AttBandwidth: 8,
		Retention:    8,
		Name:         name,

		ConceptForget:          100,
		DailyReflectionTime:    180,
		DailyReflectionSize:    5,
		OverlapReflectTh:       4,
		KwStrgEventReflectTh:   10,
		KwStrgThoughtReflectTh: 9,
		RecencyW:               1,
		RelevanceW:             1,
		ImportanceW:            1,
		RecencyDecay:           0.995,
		ImportanceTriggerMax:   150,
		ImportanceTriggerCurr:  150,
		ThoughtCount:           5,

		DailyReq:                json.RawMessage("[]"),
		FDailySchedule:          json.RawMessage("[]"),
		FDailyScheduleHourlyOrg: json.RawMessage("[]"),

		ActEvent:           []*string{&name, nil, nil},
		ActObjEvent:        []*string{nil, nil, nil},
		ChattingWithBuffer: map[string]int{},
		PlannedPath:        [][2]int{},
	}
}
