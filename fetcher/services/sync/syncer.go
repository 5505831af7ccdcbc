package syncservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"riftroster/fetcher/data/account"
	"riftroster/fetcher/repositories"
	"riftroster/pkg/database/models"
	"riftroster/pkg/logger"
	"riftroster/pkg/messages"
	"sync/atomic"
	"time"
)

// Number of champions kept in the top played summary.
const topChampionCount = 3

// ErrCycleInProgress is returned when a cycle is requested while one runs.
var ErrCycleInProgress = errors.New("a sync cycle is already in progress")

// CountEstimator abstracts the match count estimate for the syncer.
type CountEstimator interface {
	Estimate(ctx context.Context, puuid string) (int, error)
}

// MatchIngestor abstracts the incremental ingestion for the syncer.
type MatchIngestor interface {
	Reconcile(ctx context.Context, player *models.Player, total int) error
}

// RankProvider abstracts the rank fetch for the syncer.
type RankProvider interface {
	GetRank(ctx context.Context, puuid string) (*string, error)
}

// AccountResolver abstracts the riot id to PUUID resolution.
type AccountResolver interface {
	GetAccountByRiotId(ctx context.Context, gameName string, tagLine string) (*accountfetcher.RiotAccount, error)
}

// RosterSyncerDeps are the dependencies needed by the roster syncer.
type RosterSyncerDeps struct {
	Accounts   AccountResolver
	Estimator  CountEstimator
	Ingestor   MatchIngestor
	Ranks      RankProvider
	PlayerRepo repositories.PlayerRepository
	MatchRepo  repositories.MatchRepository
	Logger     *logger.CycleLogger

	RequestDelay  time.Duration
	PlayerDelay   time.Duration
	CycleInterval time.Duration
	SeasonStartMs int64
}

// RosterSyncer keeps the whole roster continuously up to date.
//
// All upstream calls run sequentially, player by player and match by match.
// The shared rate limit budget is small, running anything in parallel would
// only worsen the 429 pressure.
type RosterSyncer struct {
	accounts   AccountResolver
	estimator  CountEstimator
	ingestor   MatchIngestor
	ranks      RankProvider
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	logger     *logger.CycleLogger

	requestDelay  time.Duration
	playerDelay   time.Duration
	cycleInterval time.Duration
	seasonStartMs int64

	// Single flight guard, only one cycle may run at a time.
	running atomic.Bool
}

// NewRosterSyncer creates the roster syncer.
func NewRosterSyncer(deps *RosterSyncerDeps) *RosterSyncer {
	return &RosterSyncer{
		accounts:      deps.Accounts,
		estimator:     deps.Estimator,
		ingestor:      deps.Ingestor,
		ranks:         deps.Ranks,
		playerRepo:    deps.PlayerRepo,
		matchRepo:     deps.MatchRepo,
		logger:        deps.Logger,
		requestDelay:  deps.RequestDelay,
		playerDelay:   deps.PlayerDelay,
		cycleInterval: deps.CycleInterval,
		seasonStartMs: deps.SeasonStartMs,
	}
}

// Run executes sync cycles until the context is cancelled.
// The next cycle is only armed after the current one completes, so a slow
// cycle defers the following one instead of overlapping it.
func (s *RosterSyncer) Run(ctx context.Context) {
	for {
		if err := s.RunCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Errorf("Sync cycle failed: %v", err)
		}

		if err := waitFor(ctx, s.cycleInterval); err != nil {
			return
		}
	}
}

// RunCycle runs one full roster pass.
// Returns ErrCycleInProgress when another cycle is still running.
func (s *RosterSyncer) RunCycle(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrCycleInProgress
	}
	defer s.running.Store(false)

	players, err := s.playerRepo.GetRoster()
	if err != nil {
		return fmt.Errorf("couldn't load the roster: %w", err)
	}

	// Players without a parseable riot id never enter the cycle.
	roster := make([]models.Player, 0, len(players))
	for _, player := range players {
		if player.HasValidRiotId() {
			roster = append(roster, player)
		}
	}

	s.logger.Infof("Starting sync cycle for %d players", len(roster))
	start := time.Now()

	for i := range roster {
		// The current player always runs to completion, cancellation is
		// only observed on the next scheduling decision.
		if ctx.Err() != nil {
			s.logger.Infof("Sync cycle interrupted after %d players", i)
			break
		}

		if err := s.SyncPlayer(ctx, &roster[i]); err != nil {
			// One players persistent failure never halts the batch.
			s.logger.Errorf("Player %s: %v", roster[i].RiotId, err)
		}

		waitFor(ctx, s.playerDelay)
	}

	s.logger.Infof("Sync cycle finished in %s", time.Since(start).Round(time.Second))
	s.logger.EmptyLine()

	objectKey := fmt.Sprintf("sync/cycle-%s.log", time.Now().UTC().Format("2006-01-02T15-04-05"))
	if err := s.logger.UploadToS3Bucket(objectKey); err != nil {
		s.logger.Errorf("Couldn't upload the cycle log: %v", err)
	}

	return ctx.Err()
}

// SyncPlayer runs the ordered per player steps: count the in-season
// matches, ingest the missing ones, persist the total marker, fetch the
// rank last and recompute the top played champions from stored rows.
func (s *RosterSyncer) SyncPlayer(ctx context.Context, player *models.Player) error {
	if err := s.resolvePuuid(ctx, player); err != nil {
		return err
	}

	total, err := s.estimator.Estimate(ctx, player.Puuid)
	if err != nil {
		return fmt.Errorf("match count estimate failed: %w", err)
	}

	if err := s.ingestor.Reconcile(ctx, player, total); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	if err := s.playerRepo.SetMatchTotal(player.ID, total); err != nil {
		return fmt.Errorf("couldn't persist the match total: %w", err)
	}

	if err := waitFor(ctx, s.requestDelay); err != nil {
		return err
	}

	// Rank goes last, the cheapest and least failure prone call should not
	// be lost when the earlier steps partially fail.
	rank, err := s.ranks.GetRank(ctx, player.Puuid)
	if err != nil {
		return fmt.Errorf("rank fetch failed: %w", err)
	}
	if err := s.playerRepo.SetRank(player.ID, rank); err != nil {
		return fmt.Errorf("couldn't persist the rank: %w", err)
	}

	if err := s.updateTopChampions(player); err != nil {
		s.logger.Errorf("Player %s: couldn't recompute the top champions: %v", player.RiotId, err)
	}

	if err := s.playerRepo.SetSynced(player.ID); err != nil {
		return fmt.Errorf("couldn't stamp the sync time: %w", err)
	}

	s.logger.Infof("Player %s synced, %d in-season matches", player.RiotId, total)
	return nil
}

// resolvePuuid resolves the PUUID once and reuses it on later cycles.
func (s *RosterSyncer) resolvePuuid(ctx context.Context, player *models.Player) error {
	if player.Puuid != "" {
		return nil
	}

	if !player.HasValidRiotId() {
		return errors.New(messages.InvalidPseudoMsg)
	}

	account, err := s.accounts.GetAccountByRiotId(ctx, player.GameName(), player.TagLine())
	if err != nil {
		return fmt.Errorf("couldn't resolve the riot id: %w", err)
	}

	player.Puuid = account.Puuid
	return s.playerRepo.SetPuuid(player.ID, account.Puuid)
}

// updateTopChampions recomputes the top played champions from the already
// persisted match rows. No upstream call is involved.
func (s *RosterSyncer) updateTopChampions(player *models.Player) error {
	aggregates, err := s.matchRepo.GetTopChampions(player.ID, s.seasonStartMs, topChampionCount)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(aggregates)
	if err != nil {
		return err
	}

	return s.playerRepo.SetTopChampions(player.ID, string(payload))
}

// waitFor sleeps the given duration unless the context is cancelled first.
func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
