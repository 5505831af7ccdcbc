package jobs

import (
	"context"
	"log"
	"riftroster/fetcher/assets"
	"riftroster/pkg/redis"
)

// RevalidateAssetCache refreshes the Data Dragon champion assets in redis.
func RevalidateAssetCache() error {
	log.Println("Starting champion asset revalidation")

	client := redis.GetClient()

	if err := assets.RevalidateChampionCache(context.Background(), client, "en_US"); err != nil {
		log.Printf("Error revalidating the champion assets: %v", err)
		return err
	}

	log.Println("Champion asset revalidation completed successfully")
	return nil
}
