package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"riftroster/pkg/redis"
	"strings"
	"time"
)

// Cache durations and key formats of the player proxy operations.
const (
	puuidCacheDuration = 24 * time.Hour
	puuidKey           = "player:puuid:%s"

	rankCacheDuration = 5 * time.Minute
	rankKey           = "player:rank:%s"

	countCacheDuration = 2 * time.Minute
	countKey           = "player:matchcount:%s"
)

// PlayerCache is the public interface of the player response cache.
type PlayerCache interface {
	GetPuuid(ctx context.Context, pseudo string) (string, bool)
	SetPuuid(ctx context.Context, pseudo string, puuid string)
	GetRank(ctx context.Context, pseudo string) (*string, bool)
	SetRank(ctx context.Context, pseudo string, rank *string)
	GetMatchCount(ctx context.Context, pseudo string) (int, bool)
	SetMatchCount(ctx context.Context, pseudo string, count int)
}

// Redis backed player cache with a small in-memory front.
type playerCache struct {
	redis  *redis.RedisClient
	memory *SimpleCache
}

// NewPlayerCache creates a new instance of the player cache.
func NewPlayerCache(redis *redis.RedisClient) PlayerCache {
	return &playerCache{
		redis:  redis,
		memory: GetSimpleCache(),
	}
}

// Rank payload, wraps the pointer so "unranked" caches distinctly
// from "not cached".
type rankPayload struct {
	Rank *string `json:"rank"`
}

// GetPuuid returns the cached PUUID of a pseudo.
func (pc *playerCache) GetPuuid(ctx context.Context, pseudo string) (string, bool) {
	key := fmt.Sprintf(puuidKey, normalize(pseudo))

	if value := pc.memory.Get(key); value != nil {
		if puuid, ok := value.(string); ok {
			return puuid, true
		}
	}

	puuid, err := pc.redis.Get(ctx, key)
	if err != nil || puuid == "" {
		return "", false
	}

	pc.memory.Set(key, puuid, time.Minute)
	return puuid, true
}

// SetPuuid caches the resolved PUUID of a pseudo.
func (pc *playerCache) SetPuuid(ctx context.Context, pseudo string, puuid string) {
	key := fmt.Sprintf(puuidKey, normalize(pseudo))
	pc.memory.Set(key, puuid, time.Minute)
	pc.redis.Set(ctx, key, puuid, puuidCacheDuration)
}

// GetRank returns the cached rank of a pseudo.
func (pc *playerCache) GetRank(ctx context.Context, pseudo string) (*string, bool) {
	key := fmt.Sprintf(rankKey, normalize(pseudo))

	raw, err := pc.redis.Get(ctx, key)
	if err != nil || raw == "" {
		return nil, false
	}

	var payload rankPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, false
	}

	return payload.Rank, true
}

// SetRank caches the rank of a pseudo, including the unranked state.
func (pc *playerCache) SetRank(ctx context.Context, pseudo string, rank *string) {
	raw, err := json.Marshal(rankPayload{Rank: rank})
	if err != nil {
		return
	}

	key := fmt.Sprintf(rankKey, normalize(pseudo))
	pc.redis.Set(ctx, key, string(raw), rankCacheDuration)
}

// GetMatchCount returns the cached in-season match count of a pseudo.
func (pc *playerCache) GetMatchCount(ctx context.Context, pseudo string) (int, bool) {
	key := fmt.Sprintf(countKey, normalize(pseudo))

	raw, err := pc.redis.Get(ctx, key)
	if err != nil || raw == "" {
		return 0, false
	}

	var count int
	if err := json.Unmarshal([]byte(raw), &count); err != nil {
		return 0, false
	}

	return count, true
}

// SetMatchCount caches the in-season match count of a pseudo.
func (pc *playerCache) SetMatchCount(ctx context.Context, pseudo string, count int) {
	key := fmt.Sprintf(countKey, normalize(pseudo))
	pc.redis.Set(ctx, key, count, countCacheDuration)
}

// The cache keys are case insensitive, riot ids are too.
func normalize(pseudo string) string {
	return strings.ToLower(strings.TrimSpace(pseudo))
}
