// Package server поднимает HTTP-поверхность монитора: ws-трансляция
// снимков состояния, health-чек, версия и debug-эндпоинты. Поверхность
// только читает: команды симуляции живут в операторской консоли.
package server

import (
	"encoding/json"
	"net/http"

	"travian-hq-server/internal/bridge"
	"travian-hq-server/internal/engine"
	"travian-hq-server/internal/infrastructure/index"
	"travian-hq-server/internal/network"
	"travian-hq-server/internal/version"
	"travian-hq-server/pkg/logger"
)

type Server struct {
	Engine *engine.Service
	Hub    *network.Hub
	Bridge *bridge.Bridge
	Index  *index.RunIndex
	Addr   string
}

func New(eng *engine.Service, hub *network.Hub, br *bridge.Bridge, idx *index.RunIndex, addr string) *Server {
	return &Server{
		Engine: eng,
		Hub:    hub,
		Bridge: br,
		Index:  idx,
		Addr:   addr,
	}
}

// Run запускает HTTP сервер. Блокирует вызывающего.
func (s *Server) Run() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/healthz", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	debugHandler := NewDebugHandler(s.Engine, s.Bridge, s.Index)
	debugHandler.RegisterRoutes(mux)

	logger.Log.Infof("🗼 Monitor listening on %s", s.Addr)
	return http.ListenAndServe(s.Addr, mux)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Монитор открывается как локальный файл, origin произвольный.
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение монитора по WebSocket.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	client := NewClient(s.Engine, s.Hub, conn)

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}
