package syncservice

import (
	"context"
	"fmt"
	matchfetcher "riftroster/fetcher/data/match"
	"time"
)

// Number of samples taken over the full id list before the binary search.
const estimatorSamples = 15

// MatchAPI is the narrow upstream surface the sync services need.
type MatchAPI interface {
	GetMatchList(ctx context.Context, puuid string, opts matchfetcher.MatchListOptions) ([]string, error)
	GetMatchData(ctx context.Context, matchId string) (*matchfetcher.MatchData, error)
}

// Estimator answers how many ranked matches a player has played since the
// season start in O(log n) upstream calls instead of O(n).
// Downloading full detail for hundreds of historical matches just to count
// them would burn the whole rate limit budget.
type Estimator struct {
	matches       MatchAPI
	queueId       int
	seasonStartMs int64
	pageSize      int
	requestDelay  time.Duration
}

// NewEstimator creates a estimator over the given match API.
func NewEstimator(matches MatchAPI, queueId int, seasonStartMs int64, requestDelay time.Duration) *Estimator {
	return &Estimator{
		matches:       matches,
		queueId:       queueId,
		seasonStartMs: seasonStartMs,
		pageSize:      matchfetcher.MaxPageSize,
		requestDelay:  requestDelay,
	}
}

// Estimate returns the exact count of in-season ranked matches.
//
// The unfiltered id list is paged until exhaustion, then sampled every
// total/15th id walking from the most recent towards the oldest. The first
// invalid sample brackets the season boundary, which a binary search then
// pins down exactly. Any non-ok upstream answer aborts the estimate, the
// caller treats that as a skip for this player.
func (e *Estimator) Estimate(ctx context.Context, puuid string) (int, error) {
	ids, err := e.fullMatchList(ctx, puuid)
	if err != nil {
		return 0, err
	}

	total := len(ids)
	if total == 0 {
		return 0, nil
	}

	step := total / estimatorSamples
	if step < 1 {
		step = 1
	}

	// Sampling pass. The list is reverse chronological, so walking forward
	// from offset 0 goes from most recent to oldest.
	firstInvalid := -1
	lastSampled := -1
	for i := 0; i < total; i += step {
		valid, err := e.isInSeason(ctx, ids[i])
		if err != nil {
			return 0, err
		}
		lastSampled = i

		if !valid {
			firstInvalid = i
			break
		}

		if err := waitFor(ctx, e.requestDelay); err != nil {
			return 0, err
		}
	}

	// The stride can leave a small tail unsampled. Probe the very last id
	// so an old boundary hiding in the tail is still found.
	if firstInvalid == -1 && lastSampled < total-1 {
		valid, err := e.isInSeason(ctx, ids[total-1])
		if err != nil {
			return 0, err
		}
		if !valid {
			firstInvalid = total - 1
		}
	}

	// Every sample valid, the entire list is within the season.
	if firstInvalid == -1 {
		return total, nil
	}

	// Binary search the exact boundary inside the bracketed interval.
	low := firstInvalid - step
	if low < 0 {
		low = 0
	}
	high := firstInvalid

	for low < high {
		mid := (low + high) / 2

		valid, err := e.isInSeason(ctx, ids[mid])
		if err != nil {
			return 0, err
		}

		if valid {
			low = mid + 1
		} else {
			high = mid
		}

		if err := waitFor(ctx, e.requestDelay); err != nil {
			return 0, err
		}
	}

	// The converged low is the count of valid in-season matches.
	return low, nil
}

// fullMatchList pages the unfiltered match id list until a short page
// signals exhaustion.
func (e *Estimator) fullMatchList(ctx context.Context, puuid string) ([]string, error) {
	var ids []string

	for offset := 0; ; offset += e.pageSize {
		page, err := e.matches.GetMatchList(ctx, puuid, matchfetcher.MatchListOptions{
			Start: offset,
			Count: e.pageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("couldn't get the match id list: %w", err)
		}

		ids = append(ids, page...)

		if len(page) < e.pageSize {
			return ids, nil
		}

		if err := waitFor(ctx, e.requestDelay); err != nil {
			return nil, err
		}
	}
}

// isInSeason fetches just the creation timestamp and queue of one match and
// verifies both filters.
func (e *Estimator) isInSeason(ctx context.Context, matchId string) (bool, error) {
	data, err := e.matches.GetMatchData(ctx, matchId)
	if err != nil {
		return false, fmt.Errorf("couldn't sample match %s: %w", matchId, err)
	}

	return data.Info.GameCreation.EpochMs() >= e.seasonStartMs && data.Info.QueueId == e.queueId, nil
}
