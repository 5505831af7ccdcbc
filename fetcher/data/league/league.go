package leaguefetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"riftroster/fetcher/requests"
	"riftroster/pkg/config"
	queuevalues "riftroster/pkg/riotvalues/queue"
)

// The league fetcher with it's client and platform region.
type LeagueFetcher struct {
	client *requests.RiotClient
	region string
}

// Create a league fetcher.
func CreateLeagueFetcher(client *requests.RiotClient) *LeagueFetcher {
	return &LeagueFetcher{
		client: client,
		region: config.Riot.Region,
	}
}

// LeagueEntry is one queue entry of the league-v4 endpoint.
type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Puuid        string `json:"puuid"`
}

// GetLeagueByPuuid returns a player entries for each queue.
// A 404 is a valid empty state, a brand new account has no entries at all.
func (l *LeagueFetcher) GetLeagueByPuuid(ctx context.Context, puuid string) ([]LeagueEntry, error) {
	url := fmt.Sprintf("https://%s.api.riotgames.com/lol/league/v4/entries/by-puuid/%s",
		l.region, puuid)

	resp, err := l.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	if !resp.Ok {
		if resp.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, errors.New(resp.ErrorMessage())
	}

	var entries []LeagueEntry
	if err := resp.Decode(&entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// SoloQueueEntry selects the ranked solo queue entry from a list of entries.
// Returns nil when the player has no solo queue rank, which is not an error.
func SoloQueueEntry(entries []LeagueEntry) *LeagueEntry {
	for i := range entries {
		if entries[i].QueueType == queuevalues.RankedSoloQueueType {
			return &entries[i]
		}
	}
	return nil
}
