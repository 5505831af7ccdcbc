package syncservice

import (
	"context"
	"fmt"
	"riftroster/fetcher/repositories"
	"riftroster/pkg/database/models"
	"riftroster/pkg/logger"
)

// Page size used while catching up missing matches.
const ingestionPageSize = 20

// HistoryAPI abstracts the paginated history fetch for the ingestor.
type HistoryAPI interface {
	FetchPage(ctx context.Context, puuid string, offset int, count int) (*HistoryPage, error)
}

// Ingestor reconciles the authoritative upstream total against the
// persisted matches and fetches only the delta.
type Ingestor struct {
	history   HistoryAPI
	matchRepo repositories.MatchRepository
	seasonMs  int64
	maxPerRun int
	logger    *logger.CycleLogger
}

// NewIngestor creates a ingestor.
func NewIngestor(history HistoryAPI, matchRepo repositories.MatchRepository, seasonStartMs int64, maxPerRun int, cycleLogger *logger.CycleLogger) *Ingestor {
	return &Ingestor{
		history:   history,
		matchRepo: matchRepo,
		seasonMs:  seasonStartMs,
		maxPerRun: maxPerRun,
		logger:    cycleLogger,
	}
}

// Reconcile compares the upstream total against the stored count and
// ingests the missing matches starting at the persisted low-water mark.
//
// Persisted data exceeding the upstream total breaks the model invariant,
// that case is logged and skipped without any destructive correction.
// Idempotent upserts make overlapping or retried runs safe.
func (i *Ingestor) Reconcile(ctx context.Context, player *models.Player, total int) error {
	persisted64, err := i.matchRepo.CountInSeason(player.ID, i.seasonMs)
	if err != nil {
		return fmt.Errorf("couldn't count the stored matches: %w", err)
	}
	persisted := int(persisted64)

	if persisted > total {
		i.logger.Warnf("Player %s has %d stored matches but upstream reports %d, skipping ingestion",
			player.RiotId, persisted, total)
		return nil
	}

	missing := total - persisted
	if missing == 0 {
		// Common steady state after the first full sync.
		return nil
	}

	if missing > i.maxPerRun {
		i.logger.Infof("Player %s is %d matches behind, capping this cycle at %d",
			player.RiotId, missing, i.maxPerRun)
		missing = i.maxPerRun
	}

	// The next offset to fetch is always the persisted count.
	cursor := persisted
	remaining := missing

	for remaining > 0 {
		if cursor > total {
			return fmt.Errorf("ingestion cursor %d moved past the upstream total %d", cursor, total)
		}

		count := ingestionPageSize
		if remaining < count {
			count = remaining
		}

		page, err := i.history.FetchPage(ctx, player.Puuid, cursor, count)
		if err != nil {
			return fmt.Errorf("couldn't fetch the history page at offset %d: %w", cursor, err)
		}

		rows := make([]*models.PlayerMatch, 0, len(page.Records))
		for _, record := range page.Records {
			rows = append(rows, &models.PlayerMatch{
				PlayerID:             player.ID,
				MatchId:              record.MatchId,
				ChampionId:           record.ChampionId,
				ChampionName:         record.ChampionName,
				OpponentChampionName: record.OpponentChampionName,
				Win:                  record.Win,
				Kills:                record.Kills,
				Deaths:               record.Deaths,
				Assists:              record.Assists,
				GameDuration:         record.GameDurationSeconds,
				GameCreation:         record.GameCreationEpochMs,
			})
		}

		if err := i.matchRepo.UpsertMatches(rows); err != nil {
			return fmt.Errorf("couldn't store the matches at offset %d: %w", cursor, err)
		}

		cursor += page.Consumed
		remaining -= page.Consumed

		if !page.HasMore {
			break
		}
	}

	i.logger.Infof("Player %s ingested %d missing matches", player.RiotId, missing-remaining)
	return nil
}
