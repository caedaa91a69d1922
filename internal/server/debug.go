package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"travian-hq-server/internal/bridge"
	"travian-hq-server/internal/engine"
	"travian-hq-server/internal/infrastructure/index"
)

// DebugHandler отдает внутреннее состояние сервера для отладки.
type DebugHandler struct {
	Service *engine.Service
	Bridge  *bridge.Bridge
	Index   *index.RunIndex
}

func NewDebugHandler(s *engine.Service, br *bridge.Bridge, idx *index.RunIndex) *DebugHandler {
	return &DebugHandler{Service: s, Bridge: br, Index: idx}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/state", h.handleState)
	mux.HandleFunc("/debug/bridge", h.handleBridge)
	mux.HandleFunc("/debug/runs", h.handleRuns)
	mux.HandleFunc("/debug/archives", h.handleArchives)
}

// /debug/state - последний опубликованный снимок монитора
func (h *DebugHandler) handleState(w http.ResponseWriter, r *http.Request) {
	state := h.Service.LastState()
	if state == nil {
		http.Error(w, "No state published yet", http.StatusNotFound)
		return
	}
	writeJSON(w, state)
}

// /debug/bridge - мост глазами симуляции: фаза, активная персона,
// последний закешированный снапшот бота
func (h *DebugHandler) handleBridge(w http.ResponseWriter, r *http.Request) {
	type BridgeSummary struct {
		Running       bool            `json:"running"`
		Phase         string          `json:"phase"`
		LoopIteration int             `json:"loop_iteration"`
		ActivePersona string          `json:"active_persona"`
		ActiveArena   string          `json:"active_arena"`
		Snapshot      bridge.Snapshot `json:"snapshot"`
	}

	persona, arena := h.Bridge.ActiveAgent()
	writeJSON(w, BridgeSummary{
		Running:       h.Bridge.IsRunning(),
		Phase:         h.Bridge.Phase(),
		LoopIteration: h.Bridge.LoopIteration(),
		ActivePersona: persona,
		ActiveArena:   arena,
		Snapshot:      h.Bridge.State(),
	})
}

// /debug/runs?limit=20 - последние сохраненные запуски из индекса
func (h *DebugHandler) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}

	runs, err := h.Index.Runs(limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, runs)
}

// /debug/archives?sim=<code> - архивы запуска из индекса
func (h *DebugHandler) handleArchives(w http.ResponseWriter, r *http.Request) {
	archives, err := h.Index.Archives(r.URL.Query().Get("sim"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, archives)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Локальному debug-клиенту нужен открытый CORS.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Пустой результат отдаем как [], а не null.
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
