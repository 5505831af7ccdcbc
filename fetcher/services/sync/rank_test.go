package syncservice

import (
	"context"
	"errors"
	leaguefetcher "riftroster/fetcher/data/league"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLeagueAPI returns canned league entries.
type fakeLeagueAPI struct {
	entries []leaguefetcher.LeagueEntry
	err     error
}

func (f *fakeLeagueAPI) GetLeagueByPuuid(ctx context.Context, puuid string) ([]leaguefetcher.LeagueEntry, error) {
	return f.entries, f.err
}

// Test the rank fetch and its formatting.
func TestGetRank(t *testing.T) {
	tests := []struct {
		name     string
		entries  []leaguefetcher.LeagueEntry
		expected *string
	}{
		{
			name: "solo queue entry",
			entries: []leaguefetcher.LeagueEntry{
				{QueueType: "RANKED_FLEX_SR", Tier: "GOLD", Rank: "I", LeaguePoints: 50},
				{QueueType: "RANKED_SOLO_5x5", Tier: "DIAMOND", Rank: "II", LeaguePoints: 32},
			},
			expected: stringPtr("Diamond II 32 LP"),
		},
		{
			name: "apex entry",
			entries: []leaguefetcher.LeagueEntry{
				{QueueType: "RANKED_SOLO_5x5", Tier: "MASTER", Rank: "I", LeaguePoints: 454},
			},
			expected: stringPtr("Master 454 LP"),
		},
		{
			name:     "no entries at all",
			entries:  nil,
			expected: nil,
		},
		{
			name: "only off queue entries",
			entries: []leaguefetcher.LeagueEntry{
				{QueueType: "RANKED_FLEX_SR", Tier: "GOLD", Rank: "I", LeaguePoints: 50},
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := NewRankFetcher(&fakeLeagueAPI{entries: tt.entries})

			rank, err := fetcher.GetRank(context.Background(), testPuuid)
			require.NoError(t, err)

			if tt.expected == nil {
				assert.Nil(t, rank)
			} else {
				require.NotNil(t, rank)
				assert.Equal(t, *tt.expected, *rank)
			}
		})
	}
}

// Upstream failures surface as errors, never as a fake unranked state.
func TestGetRankUpstreamError(t *testing.T) {
	fetcher := NewRankFetcher(&fakeLeagueAPI{err: errors.New("riot is down")})

	rank, err := fetcher.GetRank(context.Background(), testPuuid)
	assert.Error(t, err)
	assert.Nil(t, rank)
}

func stringPtr(s string) *string {
	return &s
}
