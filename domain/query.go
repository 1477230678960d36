package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sort keys accepted by ListQuery.
const (
	SortByCreatedAt       = "created_at"
	SortByEpisodesToSolve = "episodes_to_solve"
	SortByBestReward      = "best_reward"
	SortByDeviation       = "deviation_from_optimal"
	SortByRouteLen        = "route_len"
	SortByLearnedRouteLen = "learned_route_len"
	SortByName            = "name"
)

var (
	ErrInvalidSortKey = errors.New("invalid sort key")

	sortKeys = []string{
		SortByCreatedAt,
		SortByEpisodesToSolve,
		SortByBestReward,
		SortByDeviation,
		SortByRouteLen,
		SortByLearnedRouteLen,
		SortByName,
	}
)

// ListQuery selects and orders stored solutions.
type ListQuery struct {
	SortBy  string   // One of the SortBy* keys; created_at when empty
	Filters []string // Keep solutions whose algo, status or size matches any filter
}

// Normalize validates the query and fills in the default sort key.
func (q ListQuery) Normalize() (ListQuery, error) {
	if q.SortBy == "" {
		q.SortBy = SortByCreatedAt
	}
	if !slices.Contains(sortKeys, q.SortBy) {
		return q, fmt.Errorf("%w: %q", ErrInvalidSortKey, q.SortBy)
	}
	return q, nil
}

// Apply filters and sorts solutions in memory. The query must be normalized.
func (q ListQuery) Apply(solutions []*Solution) []*Solution {
	out := make([]*Solution, 0, len(solutions))
	for _, s := range solutions {
		if s.Matches(q.Filters) {
			out = append(out, s)
		}
	}

	slices.SortStableFunc(out, func(a, b *Solution) int {
		switch q.SortBy {
		case SortByEpisodesToSolve:
			return a.EpisodesToSolve - b.EpisodesToSolve
		case SortByBestReward:
			return a.BestReward - b.BestReward
		case SortByDeviation:
			return a.DeviationFromOptimal - b.DeviationFromOptimal
		case SortByRouteLen:
			return a.RouteLen - b.RouteLen
		case SortByLearnedRouteLen:
			return a.LearnedRouteLen - b.LearnedRouteLen
		case SortByName:
			return strings.Compare(a.Name, b.Name)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	})
	return out
}
