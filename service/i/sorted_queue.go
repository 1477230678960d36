package i

import "context"

// SortedQueue is a keyed queue whose members are ordered by score, lowest first.
type SortedQueue interface {
	// Enqueue adds member under queueKey with the given score.
	Enqueue(ctx context.Context, queueKey string, score float64, member string) error

	// DequeTops removes and returns up to amount members with the lowest scores.
	DequeTops(ctx context.Context, queueKey string, amount int64) ([]string, error)

	// Count returns the number of members under queueKey.
	Count(ctx context.Context, queueKey string) int64
}
