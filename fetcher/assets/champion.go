package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"riftroster/fetcher/requests"
	"riftroster/pkg/redis"
	"time"
)

const championsKey = "ddragon:champions"
const championsTTL = 24 * time.Hour

// ChampionAsset is the display information of one champion.
type ChampionAsset struct {
	Id   string `json:"id"`   // Data Dragon id, e.g. "MonkeyKing".
	Name string `json:"name"` // Display name, e.g. "Wukong".
	Icon string `json:"icon"` // Image file name.
}

// Raw champion list shape of the Data Dragon.
type fullChampion struct {
	Data map[string]struct {
		Id    string `json:"id"`
		Key   string `json:"key"`
		Name  string `json:"name"`
		Image struct {
			Full string `json:"full"`
		} `json:"image"`
	} `json:"data"`
}

// RevalidateChampionCache refreshes the champion list in redis, keyed by
// the numeric champion key the match data carries.
func RevalidateChampionCache(ctx context.Context, client *redis.RedisClient, language string) error {
	version, err := GetLatestVersion(ctx, client)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%scdn/%s/data/%s/champion.json", ddragon, version, language)
	resp, err := requests.Request(ctx, url)
	if err != nil {
		return fmt.Errorf("couldn't get the champion list: %v", err)
	}
	defer resp.Body.Close()

	var championsData fullChampion
	if err := json.NewDecoder(resp.Body).Decode(&championsData); err != nil {
		return fmt.Errorf("couldn't convert the body to json: %v", err)
	}

	assets := make(map[string]ChampionAsset, len(championsData.Data))
	for _, champion := range championsData.Data {
		assets[champion.Key] = ChampionAsset{
			Id:   champion.Id,
			Name: champion.Name,
			Icon: champion.Image.Full,
		}
	}

	payload, err := json.Marshal(assets)
	if err != nil {
		return err
	}

	return client.Set(ctx, championsKey, string(payload), championsTTL)
}

// GetChampionAssets returns the cached champion list, revalidating when
// the cache is cold.
func GetChampionAssets(ctx context.Context, client *redis.RedisClient) (map[string]ChampionAsset, error) {
	cached, err := client.Get(ctx, championsKey)
	if err != nil || cached == "" {
		if err := RevalidateChampionCache(ctx, client, "en_US"); err != nil {
			return nil, err
		}
		if cached, err = client.Get(ctx, championsKey); err != nil {
			return nil, err
		}
	}

	var assets map[string]ChampionAsset
	if err := json.Unmarshal([]byte(cached), &assets); err != nil {
		return nil, fmt.Errorf("can't parse the stored champion json: %v", err)
	}

	return assets, nil
}
