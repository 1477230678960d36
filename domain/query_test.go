package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQuery(t *testing.T) {
	now := time.Now()
	solutions := []*Solution{
		{Name: "c", Algo: "User", Status: StatusSolved, SizeStr: "3x3", BestReward: 10, RouteLen: 5, CreatedAt: now.Add(2 * time.Second)},
		{Name: "a", Algo: "Wilson", Status: StatusNoPath, SizeStr: "5x5", BestReward: -4, RouteLen: 0, CreatedAt: now},
		{Name: "b", Algo: "Wilson", Status: StatusSolved, SizeStr: "3x3", BestReward: 20, RouteLen: 3, CreatedAt: now.Add(time.Second)},
	}

	names := func(list []*Solution) []string {
		var out []string
		for _, s := range list {
			out = append(out, s.Name)
		}
		return out
	}

	t.Run("Default sort is creation time", func(t *testing.T) {
		q, err := ListQuery{}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, SortByCreatedAt, q.SortBy)
		assert.Equal(t, []string{"a", "b", "c"}, names(q.Apply(solutions)))
	})

	t.Run("Sort by reward", func(t *testing.T) {
		q, err := ListQuery{SortBy: SortByBestReward}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c", "b"}, names(q.Apply(solutions)))
	})

	t.Run("Filter then sort", func(t *testing.T) {
		q, err := ListQuery{SortBy: SortByRouteLen, Filters: []string{"3x3"}}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c"}, names(q.Apply(solutions)))
	})

	t.Run("Filter by algo", func(t *testing.T) {
		q, err := ListQuery{SortBy: SortByName, Filters: []string{"Wilson"}}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, names(q.Apply(solutions)))
	})

	t.Run("Sort by learned route length", func(t *testing.T) {
		learned := []*Solution{
			{Name: "long", LearnedRouteLen: 9},
			{Name: "none", LearnedRouteLen: 0},
			{Name: "short", LearnedRouteLen: 3},
		}
		q, err := ListQuery{SortBy: SortByLearnedRouteLen}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, []string{"none", "short", "long"}, names(q.Apply(learned)))
	})

	t.Run("Unknown key", func(t *testing.T) {
		_, err := ListQuery{SortBy: "password"}.Normalize()
		assert.ErrorIs(t, err, ErrInvalidSortKey)
	})
}
