package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsplit/internal/domain"
)

func TestScheduleChunks_ContiguousGroups(t *testing.T) {
	items := suite(
		"t01", "t02", "t03", "t04", "t05",
		"t06", "t07", "t08", "t09", "t10",
		"t11", "t12", "t13", "t14", "t15",
	)
	durations := domain.Durations{
		"t01": 1, "t02": 1, "t03": 1, "t04": 3, "t05": 5,
		"t06": 1, "t07": 4, "t08": 5, "t09": 1, "t10": 1,
		"t11": 2, "t12": 1, "t13": 1, "t14": 1, "t15": 3,
	}

	// Total 31, target just above 10.3 per group: the walk fills 11, 11
	// and leaves 9 for the last group.
	groups := ScheduleChunks(3, items, durations)
	require.Len(t, groups, 3)

	assert.Equal(t, []string{"t01", "t02", "t03", "t04", "t05"}, domain.IDs(groups[0].Selected))
	assert.Equal(t, []string{"t06", "t07", "t08", "t09"}, domain.IDs(groups[1].Selected))
	assert.Equal(t, []string{"t10", "t11", "t12", "t13", "t14", "t15"}, domain.IDs(groups[2].Selected))

	assert.InDelta(t, 11.0, groups[0].Duration, 1e-9)
	assert.InDelta(t, 11.0, groups[1].Duration, 1e-9)
	assert.InDelta(t, 9.0, groups[2].Duration, 1e-9)

	checkPartition(t, items, groups)
}

func TestScheduleChunks_LastGroupAbsorbsOverflow(t *testing.T) {
	// Once the walk reaches the last group it must stay there even when the
	// group passes the target with items still unassigned.
	items := suite("a", "b", "c", "d")
	durations := domain.Durations{"a": 2, "b": 2, "c": 0, "d": 0}

	groups := ScheduleChunks(2, items, durations)
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"a"}, domain.IDs(groups[0].Selected))
	assert.Equal(t, []string{"b", "c", "d"}, domain.IDs(groups[1].Selected))
}

func TestScheduleChunks_TrailingGroupsMayStayEmpty(t *testing.T) {
	// A front-loaded suite can satisfy the target early; later groups then
	// receive nothing but still deselect the full input.
	items := suite("a", "b", "c")
	durations := domain.Durations{"a": 10, "b": 1, "c": 1}

	groups := ScheduleChunks(3, items, durations)
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"a"}, domain.IDs(groups[0].Selected))
	assert.Equal(t, []string{"b", "c"}, domain.IDs(groups[1].Selected))
	assert.Empty(t, groups[2].Selected)
	assert.Equal(t, []string{"a", "b", "c"}, domain.IDs(groups[2].Deselected))
}

func TestScheduleChunks_FallbackForUnknownItems(t *testing.T) {
	items := suite("a", "b", "c", "d")
	durations := domain.Durations{"a": 6, "c": 2}

	// b and d fall back to 4, the mean of the present entries, so the
	// total is 16 with a target of 8 per group.
	groups := ScheduleChunks(2, items, durations)
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"a", "b"}, domain.IDs(groups[0].Selected))
	assert.Equal(t, []string{"c", "d"}, domain.IDs(groups[1].Selected))
	assert.InDelta(t, 10.0, groups[0].Duration, 1e-9)
	assert.InDelta(t, 6.0, groups[1].Duration, 1e-9)
}

func TestScheduleChunks_PartitionProperties(t *testing.T) {
	tests := []struct {
		name       string
		groupCount int
		items      []domain.Item
		durations  domain.Durations
	}{
		{"single group", 1, suite("a", "b", "c"), domain.Durations{"a": 1}},
		{"no history", 4, suite("a", "b", "c", "d", "e", "f"), domain.Durations{}},
		{"more groups than items", 4, suite("a", "b"), domain.Durations{"a": 3, "b": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := ScheduleChunks(tt.groupCount, tt.items, tt.durations)
			require.Len(t, groups, tt.groupCount)
			checkPartition(t, tt.items, groups)
		})
	}
}
