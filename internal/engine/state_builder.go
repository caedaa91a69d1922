package engine

import (
	"travian-hq-server/pkg/api"
)

// whisperTail - сколько последних мыслей персоны попадает в снимок.
const whisperTail = 5

// publishState строит снимок состояния, запоминает его для
// debug-эндпоинтов и рассылает ws-монитору. Журнал запуска очищается
// после рассылки: каждый снимок несет только новые записи.
func (s *Service) publishState() {
	state := s.buildState()

	s.stateMu.Lock()
	s.lastState = state
	s.stateMu.Unlock()

	if s.hub != nil {
		s.hub.Broadcast(*state)
	}

	s.run.Logs = s.run.Logs[:0]
}

// LastState возвращает последний опубликованный снимок (nil до первой
// публикации). Единственный способ читать состояние из чужих горутин.
func (s *Service) LastState() *api.MonitorState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.lastState
}

// buildState собирает MonitorState из текущего состояния запуска и моста.
func (s *Service) buildState() *api.MonitorState {
	r := s.run

	state := &api.MonitorState{
		Type:          "STATE",
		SimCode:       r.Store.SimCode(),
		Step:          r.Step,
		Clock:         r.Clock.String(),
		BotRunning:    s.bridge.IsRunning(),
		BotPhase:      s.bridge.Phase(),
		LoopIteration: s.bridge.LoopIteration(),
	}

	state.Personas = make([]api.PersonaView, 0, len(r.Order))
	for _, name := range r.Order {
		p := r.Personas[name]

		view := api.PersonaView{
			Name:         name,
			Pronunciatio: p.Pronunciatio,
			Description:  p.ActDescription,
		}
		view.Pos.X = p.Tile.X
		view.Pos.Y = p.Tile.Y
		for _, w := range p.TailWhispers(whisperTail) {
			view.Whispers = append(view.Whispers, w.Text)
		}
		state.Personas = append(state.Personas, view)
	}

	if len(r.Logs) > 0 {
		state.Logs = make([]api.LogEntry, len(r.Logs))
		copy(state.Logs, r.Logs)
	}

	return state
}
