package accountfetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"riftroster/fetcher/requests"
	"riftroster/pkg/config"
	"riftroster/pkg/messages"
)

// ErrPlayerNotFound marks a riot id that does not exist upstream.
// Surfaced to the user, unlike other upstream failures.
var ErrPlayerNotFound = errors.New(messages.PlayerNotFoundMsg)

// The account fetcher with it's client and routing region.
type AccountFetcher struct {
	client        *requests.RiotClient
	routingRegion string
}

// Create a account fetcher.
func CreateAccountFetcher(client *requests.RiotClient) *AccountFetcher {
	return &AccountFetcher{
		client:        client,
		routingRegion: config.Riot.RoutingRegion,
	}
}

// RiotAccount is the return type of the account-v1 endpoint.
type RiotAccount struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// GetAccountByRiotId resolves a game name and tag line to the stable PUUID.
func (a *AccountFetcher) GetAccountByRiotId(ctx context.Context, gameName string, tagLine string) (*RiotAccount, error) {
	reqUrl := fmt.Sprintf("https://%s.api.riotgames.com/riot/account/v1/accounts/by-riot-id/%s/%s",
		a.routingRegion, url.PathEscape(gameName), url.PathEscape(tagLine))

	resp, err := a.client.Get(ctx, reqUrl)
	if err != nil {
		return nil, err
	}

	if !resp.Ok {
		// A missing account is a user facing error, not an upstream failure.
		if resp.Status == http.StatusNotFound {
			return nil, ErrPlayerNotFound
		}
		return nil, errors.New(resp.ErrorMessage())
	}

	var account RiotAccount
	if err := resp.Decode(&account); err != nil {
		return nil, err
	}

	return &account, nil
}
