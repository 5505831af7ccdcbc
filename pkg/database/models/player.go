package models

import (
	"strings"
	"time"
)

// Player is a roster member kept up to date by the sync engine.
// The row itself is created and edited by the roster CRUD.
type Player struct {
	ID     uint   `gorm:"primaryKey"`
	RiotId string `gorm:"type:varchar(106);uniqueIndex:idx_riot_id_region"` // "GameName#TagLine"
	Region string `gorm:"type:varchar(5);uniqueIndex:idx_riot_id_region"`

	// Resolved once and reused, only re-derived when the riot id changes.
	Puuid string `gorm:"type:char(78);index"`

	// Current rank display string, e.g. "Diamond II 32 LP".
	// NULL when the player has no solo queue entry.
	Rank *string `gorm:"type:varchar(30)"`

	// Last known in-season match total, the low-water mark for incremental fetches.
	MatchTotal int `gorm:"default:0"`

	// Serialized top played champions summary, recomputed from stored matches.
	TopChampions string `gorm:"type:jsonb;default:'[]'"`

	LastSyncAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// GameName returns the name part of the riot id.
func (p *Player) GameName() string {
	name, _, _ := strings.Cut(p.RiotId, "#")
	return name
}

// TagLine returns the tag part of the riot id.
func (p *Player) TagLine() string {
	_, tag, _ := strings.Cut(p.RiotId, "#")
	return tag
}

// HasValidRiotId verifies if the riot id contains the name/tag separator.
// Players without it are excluded from the sync roster entirely.
func (p *Player) HasValidRiotId() bool {
	name, tag, found := strings.Cut(p.RiotId, "#")
	return found && name != "" && tag != ""
}
