package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"riftroster/fetcher/requests"
	"riftroster/pkg/redis"
	"time"
)

const ddragon = "https://ddragon.leagueoflegends.com/"

const versionKey = "ddragon:version"
const versionTTL = 24 * time.Hour

// GetLatestVersion returns the cached Data Dragon version, fetching and
// caching it when missing.
func GetLatestVersion(ctx context.Context, client *redis.RedisClient) (string, error) {
	if cached, err := client.Get(ctx, versionKey); err == nil && cached != "" {
		return cached, nil
	}

	version, err := FetchLatestVersion(ctx)
	if err != nil {
		return "", err
	}

	client.Set(ctx, versionKey, version, versionTTL)
	return version, nil
}

// FetchLatestVersion reads the current version list from the Data Dragon.
func FetchLatestVersion(ctx context.Context) (string, error) {
	resp, err := requests.Request(ctx, ddragon+"api/versions.json")
	if err != nil {
		return "", fmt.Errorf("couldn't get the current version: %v", err)
	}
	defer resp.Body.Close()

	var versions []string
	if err := json.NewDecoder(resp.Body).Decode(&versions); err != nil {
		return "", fmt.Errorf("couldn't convert the body to json: %v", err)
	}

	if len(versions) == 0 {
		return "", errors.New("empty version list from the Data Dragon")
	}

	return versions[0], nil
}
