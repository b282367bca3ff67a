package split

import (
	"errors"
	"fmt"

	"tsplit/internal/domain"
)

// Selection carries the splits/group option pair. The Set fields record
// whether each option was given at all, since a zero value is out of range
// rather than absent.
type Selection struct {
	Splits    int
	Group     int
	SplitsSet bool
	GroupSet  bool
}

// Enabled reports whether splitting was requested.
func (s Selection) Enabled() bool {
	return s.SplitsSet || s.GroupSet
}

// Validate checks the option pair before any scheduling runs: both options
// must be given together, splits must be positive, and group must fall in
// [1, splits].
func (s Selection) Validate() error {
	if !s.SplitsSet && !s.GroupSet {
		return nil
	}
	if s.SplitsSet && !s.GroupSet {
		return errors.New("argument `--group` is required")
	}
	if s.GroupSet && !s.SplitsSet {
		return errors.New("argument `--splits` is required")
	}
	if s.Splits < 1 {
		return errors.New("argument `--splits` must be >= 1")
	}
	if s.Group < 1 || s.Group > s.Splits {
		return fmt.Errorf("argument `--group` must be >= 1 and <= %d", s.Splits)
	}
	return nil
}

// Pick returns the selected group; Group is 1-based.
func (s Selection) Pick(groups []domain.Group) domain.Group {
	return groups[s.Group-1]
}
