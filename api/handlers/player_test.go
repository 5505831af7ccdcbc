package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"riftroster/api/services"
	"riftroster/api/services/testutil"
	accountfetcher "riftroster/fetcher/data/account"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Build a test router around a service wired against mocks.
func setupTestRouter() (*gin.Engine, *testutil.MockAccountResolver, *testutil.MockEstimator, *testutil.MockRanks, *testutil.MockPlayerCache) {
	gin.SetMode(gin.TestMode)

	mockAccounts := new(testutil.MockAccountResolver)
	mockEstimator := new(testutil.MockEstimator)
	mockRanks := new(testutil.MockRanks)
	mockCache := new(testutil.MockPlayerCache)

	service := services.NewPlayerService(&services.PlayerServiceDeps{
		Accounts:  mockAccounts,
		Estimator: mockEstimator,
		Ranks:     mockRanks,
		Cache:     mockCache,
		Region:    "na1",
	})
	handler := NewPlayerHandler(service)

	router := gin.New()
	router.GET("/players/:pseudo/rank", handler.GetRank)
	router.GET("/players/:pseudo/matches/count", handler.GetMatchCount)

	return router, mockAccounts, mockEstimator, mockRanks, mockCache
}

func performRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(recorder, request)
	return recorder
}

// A malformed pseudo maps to a 400 before anything upstream is touched.
func TestGetRankBadPseudo(t *testing.T) {
	router, mockAccounts, _, mockRanks, mockCache := setupTestRouter()

	recorder := performRequest(router, "/players/no-separator/rank")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])

	testutil.VerifyAllMocks(t, mockAccounts, mockRanks, mockCache)
}

// An unknown riot id maps to a 404.
func TestGetRankUnknownPlayer(t *testing.T) {
	router, mockAccounts, _, _, mockCache := setupTestRouter()

	mockCache.On("GetRank", mock.Anything, "Ghost#NA1").Return(nil, false)
	mockCache.On("GetPuuid", mock.Anything, "Ghost#NA1").Return("", false)
	mockAccounts.On("GetAccountByRiotId", mock.Anything, "Ghost", "NA1").
		Return(nil, accountfetcher.ErrPlayerNotFound)

	recorder := performRequest(router, "/players/Ghost%23NA1/rank")

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])

	testutil.VerifyAllMocks(t, mockAccounts, mockCache)
}

// A successful count comes back in the success envelope.
func TestGetMatchCount(t *testing.T) {
	router, _, mockEstimator, _, mockCache := setupTestRouter()

	mockCache.On("GetMatchCount", mock.Anything, "Faker#KR1").Return(0, false)
	mockCache.On("GetPuuid", mock.Anything, "Faker#KR1").Return("faker-puuid", true)
	mockEstimator.On("Estimate", mock.Anything, "faker-puuid").Return(137, nil)
	mockCache.On("SetMatchCount", mock.Anything, "Faker#KR1", 137).Return()

	recorder := performRequest(router, "/players/Faker%23KR1/matches/count")

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(137), body["count"])

	testutil.VerifyAllMocks(t, mockEstimator, mockCache)
}
