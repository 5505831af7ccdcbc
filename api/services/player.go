package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"riftroster/api/cache"
	"riftroster/api/dto"
	"riftroster/fetcher/assets"
	accountfetcher "riftroster/fetcher/data/account"
	"riftroster/fetcher/repositories"
	syncservice "riftroster/fetcher/services/sync"
	"riftroster/pkg/messages"
	"riftroster/pkg/redis"
	"strings"
)

// ErrInvalidPseudo marks a pseudo missing the name/tag separator.
// Rejected before any upstream call is made.
var ErrInvalidPseudo = errors.New(messages.InvalidPseudoMsg)

// Maximum page size accepted from the history endpoint.
const maxHistoryLimit = 50

// PlayerServiceDeps are the dependencies needed by the player service.
type PlayerServiceDeps struct {
	Accounts   syncservice.AccountResolver
	Estimator  syncservice.CountEstimator
	History    syncservice.HistoryAPI
	Ranks      syncservice.RankProvider
	PlayerRepo repositories.PlayerRepository
	MatchRepo  repositories.MatchRepository
	Cache      cache.PlayerCache
	Redis      *redis.RedisClient
	Syncer     *syncservice.RosterSyncer
	Region     string
}

// PlayerService proxies the riot read operations for the hosting app.
type PlayerService struct {
	accounts   syncservice.AccountResolver
	estimator  syncservice.CountEstimator
	history    syncservice.HistoryAPI
	ranks      syncservice.RankProvider
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	cache      cache.PlayerCache
	redis      *redis.RedisClient
	syncer     *syncservice.RosterSyncer
	region     string
}

// NewPlayerService creates a new instance of the player service.
func NewPlayerService(deps *PlayerServiceDeps) *PlayerService {
	return &PlayerService{
		accounts:   deps.Accounts,
		estimator:  deps.Estimator,
		history:    deps.History,
		ranks:      deps.Ranks,
		playerRepo: deps.PlayerRepo,
		matchRepo:  deps.MatchRepo,
		cache:      deps.Cache,
		redis:      deps.Redis,
		syncer:     deps.Syncer,
		region:     deps.Region,
	}
}

// ParsePseudo splits a "Name#Tag" pseudo into its parts.
func ParsePseudo(pseudo string) (string, string, error) {
	name, tag, found := strings.Cut(pseudo, "#")

	name = strings.TrimSpace(name)
	tag = strings.TrimSpace(tag)
	if !found || name == "" || tag == "" {
		return "", "", ErrInvalidPseudo
	}

	return name, tag, nil
}

// GetRank returns the formatted solo queue rank of a pseudo.
// The nil rank without error is the legitimate unranked state.
func (s *PlayerService) GetRank(ctx context.Context, pseudo string) (*string, error) {
	if _, _, err := ParsePseudo(pseudo); err != nil {
		return nil, err
	}

	if rank, ok := s.cache.GetRank(ctx, pseudo); ok {
		return rank, nil
	}

	puuid, err := s.resolvePuuid(ctx, pseudo)
	if err != nil {
		return nil, err
	}

	rank, err := s.ranks.GetRank(ctx, puuid)
	if err != nil {
		return nil, err
	}

	s.cache.SetRank(ctx, pseudo, rank)
	return rank, nil
}

// GetMatchCount returns the in-season ranked match count of a pseudo,
// computed by the sampling estimator instead of a full history download.
func (s *PlayerService) GetMatchCount(ctx context.Context, pseudo string) (int, error) {
	if _, _, err := ParsePseudo(pseudo); err != nil {
		return 0, err
	}

	if count, ok := s.cache.GetMatchCount(ctx, pseudo); ok {
		return count, nil
	}

	puuid, err := s.resolvePuuid(ctx, pseudo)
	if err != nil {
		return 0, err
	}

	count, err := s.estimator.Estimate(ctx, puuid)
	if err != nil {
		return 0, err
	}

	s.cache.SetMatchCount(ctx, pseudo, count)
	return count, nil
}

// GetMatchHistory returns one page of the ranked history of a pseudo.
func (s *PlayerService) GetMatchHistory(ctx context.Context, pseudo string, start int, limit int) (*dto.MatchHistory, error) {
	if _, _, err := ParsePseudo(pseudo); err != nil {
		return nil, err
	}

	if start < 0 {
		start = 0
	}
	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	puuid, err := s.resolvePuuid(ctx, pseudo)
	if err != nil {
		return nil, err
	}

	page, err := s.history.FetchPage(ctx, puuid, start, limit)
	if err != nil {
		return nil, err
	}

	history := &dto.MatchHistory{
		Matches: make([]dto.MatchSummary, 0, len(page.Records)),
		HasMore: page.HasMore,
	}

	for _, record := range page.Records {
		history.Matches = append(history.Matches, dto.MatchSummary{
			MatchId:          record.MatchId,
			ChampionName:     record.ChampionName,
			OpponentChampion: record.OpponentChampionName,
			Win:              record.Win,
			Kills:            record.Kills,
			Deaths:           record.Deaths,
			Assists:          record.Assists,
			GameDuration:     record.GameDurationSeconds,
			GameCreation:     record.GameCreationEpochMs,
		})
	}

	return history, nil
}

// GetTopChampions returns the stored top played champions of a roster
// player, enriched with the Data Dragon display assets.
func (s *PlayerService) GetTopChampions(ctx context.Context, pseudo string) ([]dto.TopChampion, error) {
	if _, _, err := ParsePseudo(pseudo); err != nil {
		return nil, err
	}

	player, err := s.playerRepo.GetPlayerByRiotId(pseudo, s.region)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, accountfetcher.ErrPlayerNotFound
	}

	var aggregates []repositories.ChampionAggregate
	if err := json.Unmarshal([]byte(player.TopChampions), &aggregates); err != nil {
		return nil, fmt.Errorf("can't parse the stored top champions: %v", err)
	}

	// Asset enrichment is best effort, the icons are cosmetic.
	icons := map[string]string{}
	if s.redis != nil {
		if championAssets, err := assets.GetChampionAssets(ctx, s.redis); err == nil {
			for _, asset := range championAssets {
				icons[asset.Id] = asset.Icon
			}
		}
	}

	top := make([]dto.TopChampion, 0, len(aggregates))
	for _, aggregate := range aggregates {
		entry := dto.TopChampion{
			ChampionName: aggregate.ChampionName,
			Icon:         icons[aggregate.ChampionName],
			Games:        aggregate.Games,
			Wins:         aggregate.Wins,
			Kills:        aggregate.Kills,
			Deaths:       aggregate.Deaths,
			Assists:      aggregate.Assists,
		}
		if aggregate.Games > 0 {
			entry.WinRate = float32(aggregate.Wins) / float32(aggregate.Games)
		}
		top = append(top, entry)
	}

	return top, nil
}

// SyncPlayer runs a one-off sync of one roster player.
// Safe to run while the background cycle is mid-run, the idempotent
// upsert key tolerates overlapping writes.
func (s *PlayerService) SyncPlayer(ctx context.Context, pseudo string) error {
	if _, _, err := ParsePseudo(pseudo); err != nil {
		return err
	}

	player, err := s.playerRepo.GetPlayerByRiotId(pseudo, s.region)
	if err != nil {
		return err
	}
	if player == nil {
		return accountfetcher.ErrPlayerNotFound
	}

	return s.syncer.SyncPlayer(ctx, player)
}

// resolvePuuid resolves and caches the PUUID of a pseudo.
func (s *PlayerService) resolvePuuid(ctx context.Context, pseudo string) (string, error) {
	if puuid, ok := s.cache.GetPuuid(ctx, pseudo); ok {
		return puuid, nil
	}

	name, tag, err := ParsePseudo(pseudo)
	if err != nil {
		return "", err
	}

	account, err := s.accounts.GetAccountByRiotId(ctx, name, tag)
	if err != nil {
		return "", err
	}

	s.cache.SetPuuid(ctx, pseudo, account.Puuid)
	return account.Puuid, nil
}
