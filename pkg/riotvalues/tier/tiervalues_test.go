package tiervalues

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test the display formatting of league entries.
func TestFormatRank(t *testing.T) {
	tests := []struct {
		name     string
		tier     string
		division string
		lp       int
		expected string
	}{
		{
			name:     "regular tier with division",
			tier:     "DIAMOND",
			division: "II",
			lp:       32,
			expected: "Diamond II 32 LP",
		},
		{
			name:     "lowest tier",
			tier:     "IRON",
			division: "IV",
			lp:       0,
			expected: "Iron IV 0 LP",
		},
		{
			name:     "apex tier omits the division",
			tier:     "MASTER",
			division: "",
			lp:       454,
			expected: "Master 454 LP",
		},
		{
			name:     "apex tier ignores a division if given",
			tier:     "CHALLENGER",
			division: "I",
			lp:       1203,
			expected: "Challenger 1203 LP",
		},
		{
			name:     "lowercase inputs are normalized",
			tier:     "gold",
			division: "iii",
			lp:       75,
			expected: "Gold III 75 LP",
		},
		{
			name:     "missing division on a regular tier",
			tier:     "SILVER",
			division: "",
			lp:       12,
			expected: "Silver 12 LP",
		},
		{
			name:     "empty tier",
			tier:     "",
			division: "I",
			lp:       50,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRank(tt.tier, tt.division, tt.lp))
		})
	}
}

// Test the numeric rank used for ordering.
func TestCalculateRank(t *testing.T) {
	tests := []struct {
		name     string
		tier     string
		rank     string
		lp       int
		expected int
	}{
		{
			name:     "iron four floor",
			tier:     "IRON",
			rank:     "IV",
			lp:       0,
			expected: 0,
		},
		{
			name:     "diamond two",
			tier:     "DIAMOND",
			rank:     "II",
			lp:       32,
			expected: 65032,
		},
		{
			name:     "apex ignores the division",
			tier:     "GRANDMASTER",
			rank:     "I",
			lp:       200,
			expected: 80200,
		},
		{
			name:     "unknown tier",
			tier:     "WOOD",
			rank:     "IV",
			lp:       50,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateRank(tt.tier, tt.rank, tt.lp))
		})
	}

	// The ordering must be strictly increasing across the ladder.
	assert.Greater(t, CalculateRank("BRONZE", "IV", 0), CalculateRank("IRON", "I", 99))
	assert.Greater(t, CalculateRank("MASTER", "", 0), CalculateRank("DIAMOND", "I", 99))
}

// Test the apex tier detection.
func TestIsApex(t *testing.T) {
	assert.True(t, IsApex("MASTER"))
	assert.True(t, IsApex("grandmaster"))
	assert.True(t, IsApex(" Challenger "))
	assert.False(t, IsApex("DIAMOND"))
	assert.False(t, IsApex(""))
}
