package models

import "time"

// PlayerMatch is one ranked match from the player's perspective.
// Rows are only ever inserted by the ingestion, never mutated or deleted.
type PlayerMatch struct {
	ID       uint   `gorm:"primaryKey"`
	PlayerID uint   `gorm:"uniqueIndex:idx_player_match"`
	MatchId  string `gorm:"type:varchar(20);uniqueIndex:idx_player_match"` // Riot match id, e.g. EUW1_1234567890.

	ChampionId           int
	ChampionName         string  `gorm:"type:varchar(30)"`
	OpponentChampionName *string `gorm:"type:varchar(30)"`

	Win     bool
	Kills   int
	Deaths  int
	Assists int

	// Game duration in seconds and creation in epoch milliseconds.
	GameDuration int
	GameCreation int64 `gorm:"index"`

	CreatedAt time.Time
}
