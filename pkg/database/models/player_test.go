package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test the riot id part accessors and the validation.
func TestPlayerRiotId(t *testing.T) {
	tests := []struct {
		name         string
		riotId       string
		expectedName string
		expectedTag  string
		valid        bool
	}{
		{
			name:         "valid riot id",
			riotId:       "Faker#KR1",
			expectedName: "Faker",
			expectedTag:  "KR1",
			valid:        true,
		},
		{
			name:         "name with spaces",
			riotId:       "Hide on bush#KR1",
			expectedName: "Hide on bush",
			expectedTag:  "KR1",
			valid:        true,
		},
		{
			name:         "missing separator",
			riotId:       "FakerKR1",
			expectedName: "FakerKR1",
			expectedTag:  "",
			valid:        false,
		},
		{
			name:         "missing tag",
			riotId:       "Faker#",
			expectedName: "Faker",
			expectedTag:  "",
			valid:        false,
		},
		{
			name:         "missing name",
			riotId:       "#KR1",
			expectedName: "",
			expectedTag:  "KR1",
			valid:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := &Player{RiotId: tt.riotId}

			assert.Equal(t, tt.expectedName, player.GameName())
			assert.Equal(t, tt.expectedTag, player.TagLine())
			assert.Equal(t, tt.valid, player.HasValidRiotId())
		})
	}
}
