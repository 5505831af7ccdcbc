package testutil

import (
	"context"
	"testing"

	accountfetcher "riftroster/fetcher/data/account"
	"riftroster/fetcher/repositories"
	syncservice "riftroster/fetcher/services/sync"
	"riftroster/pkg/database/models"

	"github.com/stretchr/testify/mock"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(*testing.T) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// MockAccountResolver mocks the riot id to PUUID resolution.
type MockAccountResolver struct {
	mock.Mock
}

func (m *MockAccountResolver) GetAccountByRiotId(ctx context.Context, gameName string, tagLine string) (*accountfetcher.RiotAccount, error) {
	args := m.Called(ctx, gameName, tagLine)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountfetcher.RiotAccount), args.Error(1)
}

// MockEstimator mocks the in-season match count estimate.
type MockEstimator struct {
	mock.Mock
}

func (m *MockEstimator) Estimate(ctx context.Context, puuid string) (int, error) {
	args := m.Called(ctx, puuid)
	return args.Int(0), args.Error(1)
}

// MockHistory mocks the paginated history fetch.
type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) FetchPage(ctx context.Context, puuid string, offset int, count int) (*syncservice.HistoryPage, error) {
	args := m.Called(ctx, puuid, offset, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*syncservice.HistoryPage), args.Error(1)
}

// MockRanks mocks the solo queue rank fetch.
type MockRanks struct {
	mock.Mock
}

func (m *MockRanks) GetRank(ctx context.Context, puuid string) (*string, error) {
	args := m.Called(ctx, puuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

// MockPlayerRepository mocks the roster store.
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) GetRoster() ([]models.Player, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetPlayerByRiotId(riotId string, region string) (*models.Player, error) {
	args := m.Called(riotId, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) SetPuuid(playerId uint, puuid string) error {
	args := m.Called(playerId, puuid)
	return args.Error(0)
}

func (m *MockPlayerRepository) SetRank(playerId uint, rank *string) error {
	args := m.Called(playerId, rank)
	return args.Error(0)
}

func (m *MockPlayerRepository) SetMatchTotal(playerId uint, total int) error {
	args := m.Called(playerId, total)
	return args.Error(0)
}

func (m *MockPlayerRepository) SetTopChampions(playerId uint, topChampions string) error {
	args := m.Called(playerId, topChampions)
	return args.Error(0)
}

func (m *MockPlayerRepository) SetSynced(playerId uint) error {
	args := m.Called(playerId)
	return args.Error(0)
}

// MockMatchRepository mocks the match store.
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) UpsertMatches(matches []*models.PlayerMatch) error {
	args := m.Called(matches)
	return args.Error(0)
}

func (m *MockMatchRepository) CountInSeason(playerId uint, seasonStartMs int64) (int64, error) {
	args := m.Called(playerId, seasonStartMs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMatchRepository) GetMatchesPage(playerId uint, offset int, limit int) ([]models.PlayerMatch, error) {
	args := m.Called(playerId, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlayerMatch), args.Error(1)
}

func (m *MockMatchRepository) GetTopChampions(playerId uint, seasonStartMs int64, limit int) ([]repositories.ChampionAggregate, error) {
	args := m.Called(playerId, seasonStartMs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.ChampionAggregate), args.Error(1)
}

// MockPlayerCache mocks the player response cache.
type MockPlayerCache struct {
	mock.Mock
}

func (m *MockPlayerCache) GetPuuid(ctx context.Context, pseudo string) (string, bool) {
	args := m.Called(ctx, pseudo)
	return args.String(0), args.Bool(1)
}

func (m *MockPlayerCache) SetPuuid(ctx context.Context, pseudo string, puuid string) {
	m.Called(ctx, pseudo, puuid)
}

func (m *MockPlayerCache) GetRank(ctx context.Context, pseudo string) (*string, bool) {
	args := m.Called(ctx, pseudo)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*string), args.Bool(1)
}

func (m *MockPlayerCache) SetRank(ctx context.Context, pseudo string, rank *string) {
	m.Called(ctx, pseudo, rank)
}

func (m *MockPlayerCache) GetMatchCount(ctx context.Context, pseudo string) (int, bool) {
	args := m.Called(ctx, pseudo)
	return args.Int(0), args.Bool(1)
}

func (m *MockPlayerCache) SetMatchCount(ctx context.Context, pseudo string, count int) {
	m.Called(ctx, pseudo, count)
}
