package syncservice

import (
	"context"
	"errors"
	"fmt"
	matchfetcher "riftroster/fetcher/data/match"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testQueueId     = 420
	testSeasonStart = int64(1736931600000)
)

// fakeMatchAPI serves a synthetic reverse chronological match list and the
// per match detail, counting every upstream call.
type fakeMatchAPI struct {
	ids     []string
	details map[string]*matchfetcher.MatchData

	listCalls   int
	detailCalls int

	listErr    error
	failDetail map[string]error

	// When set the list ignores the queue and start time filters, to
	// simulate entries the server filter let through anyway.
	unfilteredList bool
}

func (f *fakeMatchAPI) GetMatchList(ctx context.Context, puuid string, opts matchfetcher.MatchListOptions) ([]string, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}

	ids := f.ids

	// Simulate the server side queue and start time filter.
	if !f.unfilteredList && (opts.Queue > 0 || opts.StartTimeMs > 0) {
		filtered := make([]string, 0, len(ids))
		for _, id := range ids {
			detail := f.details[id]
			if opts.Queue > 0 && detail.Info.QueueId != opts.Queue {
				continue
			}
			if opts.StartTimeMs > 0 && detail.Info.GameCreation.EpochMs() < opts.StartTimeMs {
				continue
			}
			filtered = append(filtered, id)
		}
		ids = filtered
	}

	if opts.Start >= len(ids) {
		return nil, nil
	}

	end := len(ids)
	if opts.Count > 0 && opts.Start+opts.Count < end {
		end = opts.Start + opts.Count
	}

	return ids[opts.Start:end], nil
}

func (f *fakeMatchAPI) GetMatchData(ctx context.Context, matchId string) (*matchfetcher.MatchData, error) {
	f.detailCalls++
	if err := f.failDetail[matchId]; err != nil {
		return nil, err
	}

	detail, exists := f.details[matchId]
	if !exists {
		return nil, fmt.Errorf("unknown match %s", matchId)
	}
	return detail, nil
}

// newSeasonHistory builds a history of total matches where exactly the
// first valid ones are ranked and inside the season window.
func newSeasonHistory(total int, valid int) *fakeMatchAPI {
	fake := &fakeMatchAPI{
		ids:        make([]string, 0, total),
		details:    make(map[string]*matchfetcher.MatchData, total),
		failDetail: make(map[string]error),
	}

	for i := 0; i < total; i++ {
		id := fmt.Sprintf("NA1_%d", i)

		creation := testSeasonStart + int64((total-i)*60000)
		if i >= valid {
			creation = testSeasonStart - int64((i-valid+1)*60000)
		}

		fake.ids = append(fake.ids, id)
		fake.details[id] = newMatchDetail(id, creation, testQueueId)
	}

	return fake
}

// newMatchDetail builds a minimal match detail for the given creation.
func newMatchDetail(id string, creationMs int64, queueId int) *matchfetcher.MatchData {
	data := &matchfetcher.MatchData{}
	data.Metadata.MatchId = id
	data.Info.GameCreation = matchfetcher.RiotTime(time.UnixMilli(creationMs))
	data.Info.GameDuration = 1800
	data.Info.QueueId = queueId
	return data
}

func newTestEstimator(fake *fakeMatchAPI) *Estimator {
	return NewEstimator(fake, testQueueId, testSeasonStart, 0)
}

// The estimate must be exact for any boundary position.
func TestEstimateExactCount(t *testing.T) {
	tests := []struct {
		name  string
		total int
		valid int
	}{
		{name: "boundary in the middle", total: 200, valid: 137},
		{name: "boundary in the unsampled tail", total: 200, valid: 198},
		{name: "everything out of season", total: 200, valid: 0},
		{name: "everything in season", total: 200, valid: 200},
		{name: "small history", total: 10, valid: 3},
		{name: "single old match", total: 1, valid: 0},
		{name: "single fresh match", total: 1, valid: 1},
		{name: "boundary just past a stride", total: 105, valid: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newSeasonHistory(tt.total, tt.valid)
			estimator := newTestEstimator(fake)

			count, err := estimator.Estimate(context.Background(), "test-puuid")
			require.NoError(t, err)
			assert.Equal(t, tt.valid, count)
		})
	}
}

// The whole point of the estimator: way fewer detail calls than matches.
func TestEstimateIsSublinear(t *testing.T) {
	fake := newSeasonHistory(300, 121)
	estimator := newTestEstimator(fake)

	count, err := estimator.Estimate(context.Background(), "test-puuid")
	require.NoError(t, err)
	assert.Equal(t, 121, count)

	// 15 samples plus a log2 sized binary search, never anywhere near 300.
	assert.Less(t, fake.detailCalls, 30)
}

// A fully in-season list is answered by the sampling pass alone.
func TestEstimateAllValidNeedsNoSearch(t *testing.T) {
	fake := newSeasonHistory(200, 200)
	estimator := newTestEstimator(fake)

	count, err := estimator.Estimate(context.Background(), "test-puuid")
	require.NoError(t, err)
	assert.Equal(t, 200, count)

	// 16 strided samples plus the tail probe, no binary search happened.
	assert.LessOrEqual(t, fake.detailCalls, estimatorSamples+2)
}

// An empty history must short circuit without sampling anything.
func TestEstimateEmptyHistory(t *testing.T) {
	fake := newSeasonHistory(0, 0)
	estimator := newTestEstimator(fake)

	count, err := estimator.Estimate(context.Background(), "test-puuid")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, fake.detailCalls)
}

// Off queue matches count as invalid even when inside the window.
func TestEstimateFiltersQueue(t *testing.T) {
	fake := newSeasonHistory(10, 10)

	// Matches below index 4 keep their in-window creation but move to
	// another queue, the estimate must stop counting there.
	for i := 4; i < 10; i++ {
		id := fmt.Sprintf("NA1_%d", i)
		fake.details[id].Info.QueueId = 440
	}

	estimator := newTestEstimator(fake)

	count, err := estimator.Estimate(context.Background(), "test-puuid")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

// Upstream failures abort the estimate instead of guessing.
func TestEstimateUpstreamErrors(t *testing.T) {
	t.Run("list failure", func(t *testing.T) {
		fake := newSeasonHistory(10, 5)
		fake.listErr = errors.New("riot is down")

		_, err := newTestEstimator(fake).Estimate(context.Background(), "test-puuid")
		assert.Error(t, err)
	})

	t.Run("detail failure", func(t *testing.T) {
		fake := newSeasonHistory(10, 5)
		fake.failDetail["NA1_0"] = errors.New("riot is down")

		_, err := newTestEstimator(fake).Estimate(context.Background(), "test-puuid")
		assert.Error(t, err)
	})
}

// A long history must be paged until exhaustion before sampling.
func TestEstimatePagesTheFullList(t *testing.T) {
	fake := newSeasonHistory(250, 250)
	estimator := newTestEstimator(fake)

	count, err := estimator.Estimate(context.Background(), "test-puuid")
	require.NoError(t, err)
	assert.Equal(t, 250, count)

	// 100 per page: two full pages and the final short one.
	assert.Equal(t, 3, fake.listCalls)
}
