package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const userAgent = "pwh-registry-geo/1.0"

// NominatimClient queries an OpenStreetMap Nominatim-compatible endpoint.
// Only the first candidate of a response is used.
type NominatimClient struct {
	baseURL string
	client  *retryablehttp.Client
}

func NewNominatimClient(baseURL string) *NominatimClient {
	c := retryablehttp.NewClient()
	c.RetryMax = 2
	c.HTTPClient.Timeout = 10 * time.Second
	c.Logger = nil
	return &NominatimClient{baseURL: baseURL, client: c}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (n *NominatimClient) Geocode(ctx context.Context, city, province string) (*Coord, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s, %s, Indonesia", city, province))
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("countrycodes", "id")

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", n.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("geocode request: unexpected status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude %q: %w", results[0].Lon, err)
	}

	return &Coord{Lat: lat, Lon: lon}, nil
}
