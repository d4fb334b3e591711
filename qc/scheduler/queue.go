package scheduler

import "container/heap"

// jobHeap orders *Job by descending rank(), breaking ties by ascending
// insertion sequence so equal-priority jobs run in FIFO order.
type jobHeap []*Job

func (h jobHeap) Len() int { return len(h) }

func (h jobHeap) Less(i, j int) bool {
	ri, rj := h[i].rank(), h[j].rank()
	if ri != rj {
		return ri > rj
	}
	return h[i].seq < h[j].seq
}

func (h jobHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *jobHeap) Push(x any) { *h = append(*h, x.(*Job)) }

func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// priorityQueue is a FIFO-stable priority queue of *Job, safe only for
// single-goroutine use; the scheduler's pool guards it with a mutex.
type priorityQueue struct {
	h       jobHeap
	nextSeq uint64
}

func newPriorityQueue() *priorityQueue {
	pq := &priorityQueue{}
	heap.Init(&pq.h)
	return pq
}

func (pq *priorityQueue) push(j *Job) {
	j.seq = pq.nextSeq
	pq.nextSeq++
	heap.Push(&pq.h, j)
}

func (pq *priorityQueue) pop() (*Job, bool) {
	if pq.h.Len() == 0 {
		return nil, false
	}
	return heap.Pop(&pq.h).(*Job), true
}

func (pq *priorityQueue) len() int { return pq.h.Len() }
