package agent

import (
	"container/heap"
	"testing"
	"time"
)

func TestSimQueue(t *testing.T) {
	pq := make(simQueue, 0)
	heap.Init(&pq)

	base := time.Now()

	item1 := &simItem{Task: taskPhase, FireAt: base.Add(10 * time.Second)}
	item2 := &simItem{Task: taskDrift, FireAt: base.Add(5 * time.Second)}
	item3 := &simItem{Task: taskPhase, FireAt: base.Add(20 * time.Second)}

	heap.Push(&pq, item1)
	heap.Push(&pq, item2)
	heap.Push(&pq, item3)

	if pq.Len() != 3 {
		t.Errorf("Expected length 3, got %d", pq.Len())
	}

	// First pop should be item2 (+5s)
	first := heap.Pop(&pq).(*simItem)
	if first.Task != taskDrift {
		t.Errorf("Expected drift task first, got %v", first.Task)
	}

	// Update item1 to be later (+10s -> +30s)
	// Current queue: item1(+10s), item3(+20s). Top is item1.
	// After the update the new top should be item3.
	pq.Update(item1, base.Add(30*time.Second))

	second := heap.Pop(&pq).(*simItem)
	if second != item3 {
		t.Errorf("Expected item3 (+20s) second, got fire time %v", second.FireAt)
	}

	third := heap.Pop(&pq).(*simItem)
	if third != item1 {
		t.Errorf("Expected item1 (+30s) last, got fire time %v", third.FireAt)
	}
}
