package repositories

import (
	"riftroster/pkg/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChampionAggregate is one champion line of the top played summary.
type ChampionAggregate struct {
	ChampionName string `json:"championName"`
	Games        int    `json:"games"`
	Wins         int    `json:"wins"`
	Kills        int    `json:"kills"`
	Deaths       int    `json:"deaths"`
	Assists      int    `json:"assists"`
}

// MatchRepository is the public interface for accessing the stored matches.
type MatchRepository interface {
	UpsertMatches(matches []*models.PlayerMatch) error
	CountInSeason(playerId uint, seasonStartMs int64) (int64, error)
	GetMatchesPage(playerId uint, offset int, limit int) ([]models.PlayerMatch, error)
	GetTopChampions(playerId uint, seasonStartMs int64, limit int) ([]ChampionAggregate, error)
}

// Match repository structure.
type matchRepository struct {
	db *gorm.DB
}

// Create a match repository.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// UpsertMatches inserts the given matches idempotently.
// The composite key makes re-running a sync after a partial failure safe.
func (mr *matchRepository) UpsertMatches(matches []*models.PlayerMatch) error {
	if len(matches) == 0 {
		return nil
	}

	return mr.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "match_id"}},
		DoNothing: true,
	}).Create(&matches).Error
}

// CountInSeason counts the persisted in-season matches of a player.
// This count is the low-water mark for incremental fetches.
func (mr *matchRepository) CountInSeason(playerId uint, seasonStartMs int64) (int64, error) {
	var count int64
	err := mr.db.Model(&models.PlayerMatch{}).
		Where("player_id = ? AND game_creation >= ?", playerId, seasonStartMs).
		Count(&count).Error
	return count, err
}

// GetMatchesPage returns a page of stored matches, most recent first.
func (mr *matchRepository) GetMatchesPage(playerId uint, offset int, limit int) ([]models.PlayerMatch, error) {
	var matches []models.PlayerMatch
	err := mr.db.Where("player_id = ?", playerId).
		Order("game_creation DESC").
		Offset(offset).
		Limit(limit).
		Find(&matches).Error
	return matches, err
}

// GetTopChampions aggregates the stored matches of a player per champion.
// No upstream call is involved, only already persisted rows.
func (mr *matchRepository) GetTopChampions(playerId uint, seasonStartMs int64, limit int) ([]ChampionAggregate, error) {
	var aggregates []ChampionAggregate
	err := mr.db.Model(&models.PlayerMatch{}).
		Select(`champion_name,
			COUNT(*) AS games,
			SUM(CASE WHEN win THEN 1 ELSE 0 END) AS wins,
			SUM(kills) AS kills,
			SUM(deaths) AS deaths,
			SUM(assists) AS assists`).
		Where("player_id = ? AND game_creation >= ?", playerId, seasonStartMs).
		Group("champion_name").
		Order("games DESC, wins DESC").
		Limit(limit).
		Scan(&aggregates).Error
	return aggregates, err
}
