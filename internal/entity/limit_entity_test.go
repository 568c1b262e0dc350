package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitAllows(t *testing.T) {
	tests := []struct {
		name  string
		limit Limit
		used  int
		want  bool
	}{
		{"under finite limit", FiniteLimit(3), 2, true},
		{"at finite limit", FiniteLimit(3), 3, false},
		{"over finite limit", FiniteLimit(3), 5, false},
		{"zero limit blocks everything", FiniteLimit(0), 0, false},
		{"unlimited always allows", UnlimitedLimit(), 1000000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.limit.Allows(tt.used))
		})
	}
}

func TestLimitRemaining(t *testing.T) {
	r := FiniteLimit(3).Remaining(1)
	require.NotNil(t, r)
	assert.Equal(t, 2, *r)

	// Clamped at zero even if usage overshot the limit.
	r = FiniteLimit(3).Remaining(10)
	require.NotNil(t, r)
	assert.Equal(t, 0, *r)

	assert.Nil(t, UnlimitedLimit().Remaining(42))
}

func TestLimitJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(FiniteLimit(30))
	require.NoError(t, err)
	assert.Equal(t, "30", string(b))

	b, err = json.Marshal(UnlimitedLimit())
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var l Limit
	require.NoError(t, json.Unmarshal([]byte("null"), &l))
	assert.True(t, l.Unlimited())

	require.NoError(t, json.Unmarshal([]byte("100"), &l))
	assert.False(t, l.Unlimited())
	assert.Equal(t, 100, l.Value())

	assert.Error(t, json.Unmarshal([]byte(`"many"`), &l))
}

func TestLimitInsideStruct(t *testing.T) {
	// The wire shape clients depend on: unlimited fields encode as null, not
	// as a sentinel number.
	payload := struct {
		LimitPerMonth Limit `json:"limit_per_month"`
	}{LimitPerMonth: UnlimitedLimit()}

	b, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"limit_per_month":null}`, string(b))
}
