package sortedstorage

import (
	"context"
	"slices"
	"sync"
)

type scoredMember struct {
	score  float64
	member string
}

// MemorySortedQueue is an in-process sorted queue for single-instance runs.
type MemorySortedQueue struct {
	queues map[string][]scoredMember
	sync.Mutex
}

// NewMemorySortedQueue creates an empty MemorySortedQueue.
func NewMemorySortedQueue() *MemorySortedQueue {
	return &MemorySortedQueue{queues: make(map[string][]scoredMember)}
}

// Enqueue adds member under queueKey. Re-adding an existing member updates its score.
func (q *MemorySortedQueue) Enqueue(_ context.Context, queueKey string, score float64, member string) error {
	q.Lock()
	defer q.Unlock()

	members := slices.DeleteFunc(q.queues[queueKey], func(m scoredMember) bool {
		return m.member == member
	})

	// insert after every member with a score not above the new one
	idx, _ := slices.BinarySearchFunc(members, score, func(m scoredMember, s float64) int {
		if m.score <= s {
			return -1
		}
		return 1
	})
	q.queues[queueKey] = slices.Insert(members, idx, scoredMember{score: score, member: member})
	return nil
}

// DequeTops removes and returns up to amount members with the lowest scores.
func (q *MemorySortedQueue) DequeTops(_ context.Context, queueKey string, amount int64) ([]string, error) {
	q.Lock()
	defer q.Unlock()

	members := q.queues[queueKey]
	n := max(min(int(amount), len(members)), 0)
	out := make([]string, 0, n)
	for _, m := range members[:n] {
		out = append(out, m.member)
	}
	q.queues[queueKey] = members[n:]
	return out, nil
}

// Count returns the number of members under queueKey.
func (q *MemorySortedQueue) Count(_ context.Context, queueKey string) int64 {
	q.Lock()
	defer q.Unlock()
	return int64(len(q.queues[queueKey]))
}
