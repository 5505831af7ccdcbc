package repositories

import (
	"errors"
	"riftroster/pkg/database/models"
	"time"

	"gorm.io/gorm"
)

// PlayerRepository is the public interface for accessing the roster.
type PlayerRepository interface {
	GetRoster() ([]models.Player, error)
	GetPlayerByRiotId(riotId string, region string) (*models.Player, error)
	SetPuuid(playerId uint, puuid string) error
	SetRank(playerId uint, rank *string) error
	SetMatchTotal(playerId uint, total int) error
	SetTopChampions(playerId uint, topChampions string) error
	SetSynced(playerId uint) error
}

// Player repository structure.
type playerRepository struct {
	db *gorm.DB
}

// Create a player repository.
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

// GetRoster returns every roster player ordered by creation.
func (pr *playerRepository) GetRoster() ([]models.Player, error) {
	var players []models.Player
	if err := pr.db.Order("id ASC").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// GetPlayerByRiotId returns a player by riot id and region.
// Returns nil without error when the player does not exist.
func (pr *playerRepository) GetPlayerByRiotId(riotId string, region string) (*models.Player, error) {
	var player models.Player
	if err := pr.db.Where("riot_id = ? AND region = ?", riotId, region).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &player, nil
}

// SetPuuid stores the resolved PUUID of a player.
func (pr *playerRepository) SetPuuid(playerId uint, puuid string) error {
	return pr.db.Model(&models.Player{}).
		Where("id = ?", playerId).
		Update("puuid", puuid).Error
}

// SetRank overwrites the rank snapshot in place. No history is retained.
func (pr *playerRepository) SetRank(playerId uint, rank *string) error {
	return pr.db.Model(&models.Player{}).
		Where("id = ?", playerId).
		Update("rank", rank).Error
}

// SetMatchTotal persists the last known in-season total marker.
func (pr *playerRepository) SetMatchTotal(playerId uint, total int) error {
	return pr.db.Model(&models.Player{}).
		Where("id = ?", playerId).
		Update("match_total", total).Error
}

// SetTopChampions stores the serialized top champion summary.
func (pr *playerRepository) SetTopChampions(playerId uint, topChampions string) error {
	return pr.db.Model(&models.Player{}).
		Where("id = ?", playerId).
		Update("top_champions", topChampions).Error
}

// SetSynced stamps the last successful sync time.
func (pr *playerRepository) SetSynced(playerId uint) error {
	return pr.db.Model(&models.Player{}).
		Where("id = ?", playerId).
		Update("last_sync_at", time.Now().UTC()).Error
}
