package agent

import (
	"container/heap"
	"time"
)

// simTask - вид запланированной работы симулятора бота.
type simTask int

const (
	taskPhase simTask = iota // сдвиг фазы основного цикла
	taskDrift                // дрейф ресурсов деревень
)

// simItem обертка для элемента очереди приоритетов
type simItem struct {
	Task   simTask
	FireAt time.Time // Когда срабатывает. Чем раньше, тем выше приоритет.
	Index  int       // Индекс в куче (нужен для update)
}

// simQueue реализует heap.Interface и хранит simItems
type simQueue []*simItem

func (pq simQueue) Len() int { return len(pq) }

func (pq simQueue) Less(i, j int) bool {
	// Мы хотим MinHeap: что срабатывает раньше, то и выходит первым
	return pq[i].FireAt.Before(pq[j].FireAt)
}

func (pq simQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *simQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*simItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *simQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

// Update переносит срабатывание элемента на новое время
func (pq *simQueue) Update(item *simItem, fireAt time.Time) {
	item.FireAt = fireAt
	heap.Fix(pq, item.Index)
}
