package matchfetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"riftroster/fetcher/requests"
	"riftroster/pkg/config"
	"strconv"
	"time"
)

// Maximum count accepted by the match-v5 ids endpoint.
const MaxPageSize = 100

// The match fetcher with it's client and routing region.
type MatchFetcher struct {
	client        *requests.RiotClient
	routingRegion string
}

// Create a instance of the match fetcher.
func CreateMatchFetcher(client *requests.RiotClient) *MatchFetcher {
	return &MatchFetcher{
		client:        client,
		routingRegion: config.Riot.RoutingRegion,
	}
}

// Handle the conversion of the int timestamps from riot.
type RiotTime time.Time

// Add the riot time UnmarshalJSON.
func (rt *RiotTime) UnmarshalJSON(b []byte) error {
	var timestamp int64
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}

	// Convert milliseconds to time.Time
	*rt = RiotTime(time.UnixMilli(timestamp))
	return nil
}

// Get the true time.
func (rt RiotTime) Time() time.Time {
	return time.Time(rt)
}

// EpochMs returns the raw riot epoch milliseconds.
func (rt RiotTime) EpochMs() int64 {
	return time.Time(rt).UnixMilli()
}

// MatchListOptions are the query parameters of the ids endpoint.
// Zero values are omitted from the request.
type MatchListOptions struct {
	Queue       int
	StartTimeMs int64 // Converted to epoch seconds on the wire.
	Start       int
	Count       int
}

// GetMatchList retrieves one page of a players match id list.
// The list comes in reverse chronological order, most recent first.
func (m *MatchFetcher) GetMatchList(ctx context.Context, puuid string, opts MatchListOptions) ([]string, error) {
	reqUrl := fmt.Sprintf("https://%s.api.riotgames.com/lol/match/v5/matches/by-puuid/%s/ids",
		m.routingRegion, puuid)

	params := url.Values{}
	params.Set("start", strconv.Itoa(opts.Start))
	if opts.Count > 0 {
		params.Set("count", strconv.Itoa(opts.Count))
	}
	if opts.Queue > 0 {
		params.Set("queue", strconv.Itoa(opts.Queue))
	}
	if opts.StartTimeMs > 0 {
		params.Set("startTime", strconv.FormatInt(opts.StartTimeMs/1000, 10))
	}

	resp, err := m.client.Get(ctx, reqUrl+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	if !resp.Ok {
		return nil, errors.New(resp.ErrorMessage())
	}

	var matches []string
	if err := resp.Decode(&matches); err != nil {
		return nil, err
	}

	return matches, nil
}

// Get a given match data.
func (m *MatchFetcher) GetMatchData(ctx context.Context, matchId string) (*MatchData, error) {
	url := fmt.Sprintf("https://%s.api.riotgames.com/lol/match/v5/matches/%s",
		m.routingRegion, matchId)

	resp, err := m.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	if !resp.Ok {
		return nil, errors.New(resp.ErrorMessage())
	}

	var matchData MatchData
	if err := resp.Decode(&matchData); err != nil {
		return nil, err
	}

	return &matchData, nil
}
