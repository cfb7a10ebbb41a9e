package yandex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

const apiKeyHeader = "X-Yandex-API-Key"

// Client fetches current conditions from the Yandex Weather informers API.
type Client struct {
	apiKey  string
	lang    string
	baseURL string
	client  *http.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
}

func NewClient(client *http.Client, apiKey, lang string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "yandex-weather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:  apiKey,
		lang:    lang,
		baseURL: "https://api.weather.yandex.ru/v2/informers",
		client:  client,
		backoff: BackoffConfig{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		circuit: cb,
	}
}

// Fetch retrieves the current "fact" block for the given coordinates.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (Fact, error) {
	if c.apiKey == "" {
		return Fact{}, fmt.Errorf("yandex weather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", fmt.Sprintf("%f", lat))
		values.Set("lon", fmt.Sprintf("%f", lon))
		values.Set("lang", c.lang)

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set(apiKeyHeader, c.apiKey)
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.client, c.backoff, c.circuit, buildRequest)
	if err != nil {
		return Fact{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Now  int64 `json:"now"`
		Fact Fact  `json:"fact"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Fact{}, err
	}

	if payload.Fact.ObsTime == 0 {
		payload.Fact.ObsTime = payload.Now
	}

	return payload.Fact, nil
}
