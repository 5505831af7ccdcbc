package jobs

import (
	"encoding/json"
	"fmt"
	"log"
	"riftroster/fetcher/repositories"
	"riftroster/pkg/config"
	"riftroster/pkg/database"
)

// Champions kept per player by the nightly recompute.
const topChampionCount = 3

// RecomputeTopChampions rebuilds the top played champion summaries of the
// whole roster from the stored match rows.
// Safety net for summaries that drifted, the sync cycle already maintains
// them incrementally.
func RecomputeTopChampions() error {
	log.Println("Starting top champion recompute")

	// Create a new connection pool.
	db, err := database.NewConnection()
	if err != nil {
		return fmt.Errorf("couldn't get database connection: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	playerRepo := repositories.NewPlayerRepository(db)
	matchRepo := repositories.NewMatchRepository(db)

	players, err := playerRepo.GetRoster()
	if err != nil {
		return fmt.Errorf("couldn't load the roster: %w", err)
	}

	for _, player := range players {
		aggregates, err := matchRepo.GetTopChampions(player.ID, config.Riot.SeasonStartMs, topChampionCount)
		if err != nil {
			log.Printf("Couldn't aggregate the champions for player %s: %v", player.RiotId, err)
			continue
		}

		payload, err := json.Marshal(aggregates)
		if err != nil {
			log.Printf("Couldn't serialize the champions for player %s: %v", player.RiotId, err)
			continue
		}

		if err := playerRepo.SetTopChampions(player.ID, string(payload)); err != nil {
			log.Printf("Couldn't store the champions for player %s: %v", player.RiotId, err)
		}
	}

	log.Println("Finished top champion recompute")
	return nil
}
