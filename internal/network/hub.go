// Package network содержит хаб рассылки снимков монитора ws-клиентам.
package network

import (
	"sync"

	"travian-hq-server/pkg/api"
)

// Hub занимается только рассылкой снимков состояния подписчикам.
// Монитор односторонний: клиенты ничего не шлют через хаб обратно.
type Hub struct {
	mu sync.RWMutex
	// Мапа: ID соединения -> личный канал
	subscribers map[string]chan api.MonitorState
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]chan api.MonitorState),
	}
}

// Register создает личный канал для нового соединения. Повторная
// регистрация того же ID закрывает старый канал.
func (h *Hub) Register(id string) chan api.MonitorState {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan api.MonitorState, 16)
	h.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		close(ch)
		delete(h.subscribers, id)
	}
}

// Broadcast отправляет снимок всем подписчикам. Неблокирующая: медленный
// клиент с полным каналом пропускает кадр, цикл симуляции из-за него не
// тормозит. Монитору достаточно свежайшего состояния.
func (h *Hub) Broadcast(state api.MonitorState) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- state:
		default:
		}
	}
}

// SubscriberCount возвращает количество активных подписчиков.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
