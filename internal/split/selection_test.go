package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsplit/internal/domain"
)

func TestSelection_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sel     Selection
		wantErr string
	}{
		{
			name: "neither option given",
			sel:  Selection{},
		},
		{
			name:    "splits without group",
			sel:     Selection{Splits: 2, SplitsSet: true},
			wantErr: "argument `--group` is required",
		},
		{
			name:    "group without splits",
			sel:     Selection{Group: 1, GroupSet: true},
			wantErr: "argument `--splits` is required",
		},
		{
			name:    "splits below one",
			sel:     Selection{Splits: 0, SplitsSet: true, Group: 1, GroupSet: true},
			wantErr: "argument `--splits` must be >= 1",
		},
		{
			name:    "negative splits",
			sel:     Selection{Splits: -2, SplitsSet: true, Group: 1, GroupSet: true},
			wantErr: "argument `--splits` must be >= 1",
		},
		{
			name:    "group above splits",
			sel:     Selection{Splits: 3, SplitsSet: true, Group: 4, GroupSet: true},
			wantErr: "argument `--group` must be >= 1 and <= 3",
		},
		{
			name:    "group below one",
			sel:     Selection{Splits: 3, SplitsSet: true, Group: 0, GroupSet: true},
			wantErr: "argument `--group` must be >= 1 and <= 3",
		},
		{
			name: "valid pair",
			sel:  Selection{Splits: 3, SplitsSet: true, Group: 3, GroupSet: true},
		},
		{
			name: "single split",
			sel:  Selection{Splits: 1, SplitsSet: true, Group: 1, GroupSet: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sel.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
			}
		})
	}
}

func TestSelection_Enabled(t *testing.T) {
	assert.False(t, Selection{}.Enabled())
	assert.True(t, Selection{SplitsSet: true}.Enabled())
	assert.True(t, Selection{GroupSet: true}.Enabled())
	assert.True(t, Selection{Splits: 2, SplitsSet: true, Group: 1, GroupSet: true}.Enabled())
}

func TestSelection_Pick(t *testing.T) {
	items := suite("a", "b", "c")
	groups := Schedule(3, items, domain.Durations{"a": 3, "b": 2, "c": 1})

	sel := Selection{Splits: 3, SplitsSet: true, Group: 2, GroupSet: true}
	require.NoError(t, sel.Validate())

	picked := sel.Pick(groups)
	assert.Equal(t, groups[1], picked)
}
