package syncservice

import (
	"context"
	"log"
	matchfetcher "riftroster/fetcher/data/match"
	"time"
)

// HistoryPage is the result of one paginated history fetch.
type HistoryPage struct {
	Records []*matchfetcher.MatchRecord

	// Consumed counts the raw ids taken from the page, including the ones
	// the season/queue filter dropped afterwards.
	Consumed int

	// HasMore is true iff the page came back full sized, a shorter page
	// deterministically signals the end of the history.
	HasMore bool
}

// HistoryFetcher retrieves slices of a players ranked match history.
type HistoryFetcher struct {
	matches       MatchAPI
	queueId       int
	seasonStartMs int64
	requestDelay  time.Duration
}

// NewHistoryFetcher creates a history fetcher over the given match API.
func NewHistoryFetcher(matches MatchAPI, queueId int, seasonStartMs int64, requestDelay time.Duration) *HistoryFetcher {
	return &HistoryFetcher{
		matches:       matches,
		queueId:       queueId,
		seasonStartMs: seasonStartMs,
		requestDelay:  requestDelay,
	}
}

// FetchPage fetches one page of match ids, filtered server side to the
// ranked queue and season window, then the detail of each id sequentially.
//
// A single match fetch failure is logged and skipped, never retried, and
// never aborts the rest of the page. Details that still fall outside the
// window are silently dropped but stay consumed for cursor purposes.
func (h *HistoryFetcher) FetchPage(ctx context.Context, puuid string, offset int, count int) (*HistoryPage, error) {
	ids, err := h.matches.GetMatchList(ctx, puuid, matchfetcher.MatchListOptions{
		Queue:       h.queueId,
		StartTimeMs: h.seasonStartMs,
		Start:       offset,
		Count:       count,
	})
	if err != nil {
		return nil, err
	}

	page := &HistoryPage{
		Consumed: len(ids),
		HasMore:  len(ids) == count,
	}

	for _, matchId := range ids {
		if err := waitFor(ctx, h.requestDelay); err != nil {
			return nil, err
		}

		data, err := h.matches.GetMatchData(ctx, matchId)
		if err != nil {
			log.Printf("Couldn't fetch match %s, skipping: %v", matchId, err)
			continue
		}

		if data.Info.GameCreation.EpochMs() < h.seasonStartMs || data.Info.QueueId != h.queueId {
			continue
		}

		record, err := data.RecordFor(puuid)
		if err != nil {
			log.Printf("Couldn't map match %s, skipping: %v", matchId, err)
			continue
		}

		page.Records = append(page.Records, record)
	}

	return page, nil
}
