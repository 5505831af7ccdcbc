package requests

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"riftroster/pkg/config"
	"riftroster/pkg/messages"
	"strconv"
	"time"
)

// Default wait on a 429 without a usable retry-after header, in seconds.
const defaultRetryAfter = 120

// Per call ceiling to bound hung requests.
const requestTimeout = 30 * time.Second

// RiotResponse is the uniform result shape of every upstream call.
type RiotResponse struct {
	Ok     bool
	Status int
	Body   []byte
}

// RiotClient performs authenticated requests against the Riot API,
// transparently retrying on 429 with the server provided delay.
type RiotClient struct {
	httpClient *http.Client
	limiter    *RateLimiter
	apiKey     string
	baseWait   func(context.Context, time.Duration) error
}

// NewRiotClient creates the rate limited client.
// The limiter may be shared between multiple fetchers.
func NewRiotClient(limiter *RateLimiter) *RiotClient {
	return &RiotClient{
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    limiter,
		apiKey:     config.Riot.ApiKey,
		baseWait:   sleepContext,
	}
}

// Get performs a authenticated GET against the given URL.
// On 429 it waits the retry-after delay and retries, once per occurrence,
// in a plain loop so a 429 storm never grows the stack.
func (c *RiotClient) Get(ctx context.Context, url string) (*RiotResponse, error) {
	if c.apiKey == "" {
		return nil, errors.New("can't do a authenticated request without the API Key")
	}

	for {
		if c.limiter != nil {
			c.limiter.Wait()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("error creating request: %w", err)
		}
		req.Header.Set("X-Riot-Token", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf(messages.RequestFailedMsg+": %v", url, err)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("couldn't read the response body: %w", readErr)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			// Honor the server directed delay and go for another attempt.
			delay := retryAfter(resp.Header)
			log.Printf("Riot 429 on %s, waiting %s before retrying", url, delay)
			if err := c.baseWait(ctx, delay); err != nil {
				return nil, err
			}
			continue

		case resp.StatusCode == http.StatusForbidden:
			// Credential/permission failure, log the URL for the operator.
			log.Printf("Riot 403 on %s: verify the API key and its permissions", url)
			return &RiotResponse{Ok: false, Status: resp.StatusCode, Body: body}, nil

		case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
			return &RiotResponse{Ok: true, Status: resp.StatusCode, Body: body}, nil

		default:
			return &RiotResponse{Ok: false, Status: resp.StatusCode, Body: body}, nil
		}
	}
}

// Decode unmarshals the response body into the given destination.
func (r *RiotResponse) Decode(dest any) error {
	if err := json.Unmarshal(r.Body, dest); err != nil {
		return fmt.Errorf("%s: %v", messages.FailedToParseMsg, err)
	}
	return nil
}

// ErrorMessage extracts the human readable message of a non-ok response.
// Riot errors carry an optional {status:{message}} body.
func (r *RiotResponse) ErrorMessage() string {
	var riotErr struct {
		Status struct {
			Message string `json:"message"`
		} `json:"status"`
	}

	if err := json.Unmarshal(r.Body, &riotErr); err == nil && riotErr.Status.Message != "" {
		return fmt.Sprintf("Riot %d: %s", r.Status, riotErr.Status.Message)
	}

	return fmt.Sprintf("Riot %d", r.Status)
}

// Request creates a simple unauthenticated request and returns it.
// Used for the Data Dragon assets, which need no key.
func Request(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	client := &http.Client{Timeout: requestTimeout}
	return client.Do(req)
}

// retryAfter reads the retry-after header in seconds.
func retryAfter(header http.Header) time.Duration {
	value := header.Get("Retry-After")
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		seconds = defaultRetryAfter
	}
	return time.Duration(seconds) * time.Second
}

// sleepContext waits the given duration unless the context is cancelled first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
