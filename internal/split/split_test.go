package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsplit/internal/domain"
)

func suite(ids ...string) []domain.Item {
	items := make([]domain.Item, len(ids))
	for i, id := range ids {
		items[i] = domain.Item{ID: id, Path: "/project/" + id}
	}
	return items
}

// checkPartition verifies that groups form a proper partition of items and
// that each group's deselected list is the input minus its own selection,
// in the original order.
func checkPartition(t *testing.T, items []domain.Item, groups []domain.Group) {
	t.Helper()

	seen := make(map[string]int)
	for _, g := range groups {
		for _, item := range g.Selected {
			seen[item.ID]++
		}
	}
	require.Len(t, seen, len(items), "every item must be selected exactly once")
	for _, item := range items {
		assert.Equal(t, 1, seen[item.ID], "item %s selected %d times", item.ID, seen[item.ID])
	}

	for i, g := range groups {
		own := make(map[string]bool, len(g.Selected))
		for _, item := range g.Selected {
			own[item.ID] = true
		}
		expected := []string{}
		for _, item := range items {
			if !own[item.ID] {
				expected = append(expected, item.ID)
			}
		}
		assert.Equal(t, expected, domain.IDs(g.Deselected), "group %d deselected", i)
	}
}

func TestSchedule_BalancesByRecordedDurations(t *testing.T) {
	items := suite("a", "b", "c", "d", "e")
	durations := domain.Durations{"a": 5, "b": 4, "c": 3, "d": 2, "e": 1}

	groups := Schedule(2, items, durations)
	require.Len(t, groups, 2)

	// a fills group 0, b and c group 1, d evens group 0 out to 7, and the
	// 7/7 tie sends e to the lower index.
	assert.Equal(t, []string{"a", "d", "e"}, domain.IDs(groups[0].Selected))
	assert.Equal(t, []string{"b", "c"}, domain.IDs(groups[1].Selected))
	assert.InDelta(t, 8.0, groups[0].Duration, 1e-9)
	assert.InDelta(t, 7.0, groups[1].Duration, 1e-9)

	checkPartition(t, items, groups)
}

func TestSchedule_TieBreaksToLowestIndex(t *testing.T) {
	t.Run("zero durations never leave group 0", func(t *testing.T) {
		items := suite("a", "b", "c")
		durations := domain.Durations{"a": 0, "b": 0, "c": 0}

		groups := Schedule(2, items, durations)
		assert.Equal(t, []string{"a", "b", "c"}, domain.IDs(groups[0].Selected))
		assert.Empty(t, groups[1].Selected)
	})

	t.Run("equal durations alternate", func(t *testing.T) {
		items := suite("a", "b", "c", "d")
		durations := domain.Durations{"a": 2, "b": 2, "c": 2, "d": 2}

		groups := Schedule(2, items, durations)
		assert.Equal(t, []string{"a", "c"}, domain.IDs(groups[0].Selected))
		assert.Equal(t, []string{"b", "d"}, domain.IDs(groups[1].Selected))
	})
}

func TestSchedule_FallbackDurations(t *testing.T) {
	t.Run("no overlap counts every item as one", func(t *testing.T) {
		items := suite("f", "g", "h")
		durations := domain.Durations{"gone.php": 100}

		groups := Schedule(2, items, durations)
		assert.InDelta(t, 2.0, groups[0].Duration, 1e-9)
		assert.InDelta(t, 1.0, groups[1].Duration, 1e-9)
	})

	t.Run("partial overlap averages present items only", func(t *testing.T) {
		items := suite("a", "b", "c")
		durations := domain.Durations{"a": 4, "stale.php": 100}

		// b and c fall back to 4, the mean of the overlapping entries;
		// the stale 100 must not contribute.
		groups := Schedule(1, items, durations)
		require.Len(t, groups, 1)
		assert.InDelta(t, 12.0, groups[0].Duration, 1e-9)
	})
}

func TestSchedule_PartitionProperties(t *testing.T) {
	tests := []struct {
		name       string
		groupCount int
		items      []domain.Item
		durations  domain.Durations
	}{
		{
			name:       "single group",
			groupCount: 1,
			items:      suite("a", "b", "c"),
			durations:  domain.Durations{"a": 1, "b": 2, "c": 3},
		},
		{
			name:       "more groups than items",
			groupCount: 5,
			items:      suite("a", "b"),
			durations:  domain.Durations{"a": 1, "b": 2},
		},
		{
			name:       "no durations at all",
			groupCount: 3,
			items:      suite("a", "b", "c", "d", "e", "f", "g"),
			durations:  domain.Durations{},
		},
		{
			name:       "mixed history",
			groupCount: 4,
			items:      suite("a", "b", "c", "d", "e", "f", "g", "h", "i", "j"),
			durations:  domain.Durations{"a": 9.5, "c": 0.1, "f": 3.2, "j": 7},
		},
		{
			name:       "empty input",
			groupCount: 2,
			items:      nil,
			durations:  domain.Durations{"a": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := Schedule(tt.groupCount, tt.items, tt.durations)
			require.Len(t, groups, tt.groupCount)
			checkPartition(t, tt.items, groups)
		})
	}
}

func TestSchedule_Deterministic(t *testing.T) {
	items := suite("a", "b", "c", "d", "e", "f", "g", "h")
	durations := domain.Durations{"a": 3, "b": 3, "c": 1.5, "e": 0.2, "h": 12}

	first := Schedule(3, items, durations)
	second := Schedule(3, items, durations)
	require.Equal(t, first, second)
}

func TestByName(t *testing.T) {
	t.Run("known algorithms", func(t *testing.T) {
		for _, name := range []string{AlgorithmBalanced, AlgorithmChunks} {
			algo, err := ByName(name)
			require.NoError(t, err)
			require.NotNil(t, algo)
		}
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := ByName("fastest")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown algorithm "fastest"`)
		assert.Contains(t, err.Error(), "balanced, chunks")
	})
}
