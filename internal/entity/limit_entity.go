package entity

import (
	"encoding/json"
	"fmt"
)

// Limit is a quota bound that is either a finite count or unlimited.
// Unlimited marshals to JSON null, matching what clients expect; a sentinel
// like -1 never crosses a boundary.
type Limit struct {
	value     int
	unlimited bool
}

func FiniteLimit(n int) Limit {
	return Limit{value: n}
}

func UnlimitedLimit() Limit {
	return Limit{unlimited: true}
}

func (l Limit) Unlimited() bool {
	return l.unlimited
}

// Value returns the finite bound. Meaningless when Unlimited.
func (l Limit) Value() int {
	return l.value
}

// Allows reports whether one more action fits under the bound given the
// current used count.
func (l Limit) Allows(used int) bool {
	if l.unlimited {
		return true
	}
	return used < l.value
}

// Remaining returns limit-used clamped at zero, or nil when unlimited.
func (l Limit) Remaining(used int) *int {
	if l.unlimited {
		return nil
	}
	left := l.value - used
	if left < 0 {
		left = 0
	}
	return &left
}

func (l Limit) MarshalJSON() ([]byte, error) {
	if l.unlimited {
		return []byte("null"), nil
	}
	return json.Marshal(l.value)
}

func (l *Limit) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = UnlimitedLimit()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("limit must be a number or null: %w", err)
	}
	*l = FiniteLimit(n)
	return nil
}

func (l Limit) String() string {
	if l.unlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d", l.value)
}
