package battle

import (
	"container/heap"

	"github.com/udisondev/herobattle/internal/model"
)

// delayed is an action scheduled on the battle clock.
type delayed struct {
	at  float64
	seq uint64
	fn  func(f *model.Frame)
}

// actionQueue is a min-heap ordered by fire time, then by scheduling order.
type actionQueue []delayed

func (q actionQueue) Len() int { return len(q) }

func (q actionQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q actionQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *actionQueue) Push(x any) { *q = append(*q, x.(delayed)) }

func (q *actionQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = delayed{}
	*q = old[:n-1]
	return it
}

// due pops every action whose fire time is at or before now.
func (q *actionQueue) due(now float64) []delayed {
	var out []delayed
	for q.Len() > 0 && (*q)[0].at <= now {
		out = append(out, heap.Pop(q).(delayed))
	}
	return out
}
