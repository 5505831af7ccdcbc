package syncservice

import (
	"context"
	leaguefetcher "riftroster/fetcher/data/league"
	tiervalues "riftroster/pkg/riotvalues/tier"
)

// LeagueAPI is the upstream surface of the rank fetch.
type LeagueAPI interface {
	GetLeagueByPuuid(ctx context.Context, puuid string) ([]leaguefetcher.LeagueEntry, error)
}

// RankFetcher retrieves and formats a players solo queue standing.
type RankFetcher struct {
	league LeagueAPI
}

// NewRankFetcher creates a rank fetcher over the given league API.
func NewRankFetcher(league LeagueAPI) *RankFetcher {
	return &RankFetcher{league: league}
}

// GetRank returns the formatted solo queue rank of a player.
// A nil string without error means the player has no solo queue entry,
// which is a legitimate state for a fresh account, not a failure.
func (r *RankFetcher) GetRank(ctx context.Context, puuid string) (*string, error) {
	entries, err := r.league.GetLeagueByPuuid(ctx, puuid)
	if err != nil {
		return nil, err
	}

	entry := leaguefetcher.SoloQueueEntry(entries)
	if entry == nil {
		return nil, nil
	}

	formatted := tiervalues.FormatRank(entry.Tier, entry.Rank, entry.LeaguePoints)
	return &formatted, nil
}
