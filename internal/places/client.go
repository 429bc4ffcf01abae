// Package places resolves free-text place searches into typed places with
// coordinates, backed by the external place provider, a persistent SQLite
// cache, and a spatial index of recently resolved places.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wayplan.openmobility.org/internal/models"
)

const defaultBaseURL = "https://places.googleapis.com"

// ErrMissingCoordinate indicates the provider returned a place without a
// usable latitude/longitude. This is a hard failure of the lookup; places
// are never defaulted to (0,0).
var ErrMissingCoordinate = errors.New("places: response missing coordinate")

// Candidate is one autocomplete suggestion.
type Candidate struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Resolver is the port the rest of the application uses for place lookups.
type Resolver interface {
	// Autocomplete returns candidate places for a free-text query.
	Autocomplete(ctx context.Context, text string) ([]Candidate, error)
	// Details resolves a candidate ID into a full place. Fails with
	// ErrMissingCoordinate when the provider omits the location.
	Details(ctx context.Context, id string) (*models.Place, error)
}

// Client implements Resolver against the provider's HTTP API.
type Client struct {
	session *http.Client
	apiKey  string
	baseURL string
}

// NewClient builds a place Resolver authenticated with apiKey.
func NewClient(apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("places: api key is empty")
	}

	return &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}, nil
}

// WithBaseURL overrides the provider endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

type autocompleteRequest struct {
	Input string `json:"input"`
}

type autocompleteResponse struct {
	Suggestions []struct {
		PlacePrediction struct {
			PlaceID string `json:"placeId"`
			Text    struct {
				Text string `json:"text"`
			} `json:"text"`
		} `json:"placePrediction"`
	} `json:"suggestions"`
}

type detailsResponse struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress string `json:"formattedAddress"`
	Location         *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"location"`
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("Code %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return resp, nil
}

// Autocomplete returns candidate places for a free-text query. An empty
// query returns no candidates without a provider call.
func (c *Client) Autocomplete(ctx context.Context, text string) ([]Candidate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	payload, err := json.Marshal(autocompleteRequest{Input: text})
	if err != nil {
		return nil, fmt.Errorf("marshal autocomplete request: %w", err)
	}

	endpoint := c.baseURL + "/v1/places:autocomplete"
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("autocomplete %q: %w", text, err)
	}
	defer resp.Body.Close()

	var decoded autocompleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode autocomplete response: %w", err)
	}

	out := make([]Candidate, 0, len(decoded.Suggestions))
	for _, s := range decoded.Suggestions {
		if s.PlacePrediction.PlaceID == "" {
			continue
		}
		out = append(out, Candidate{
			ID:          s.PlacePrediction.PlaceID,
			Description: s.PlacePrediction.Text.Text,
		})
	}
	return out, nil
}

// Details resolves a place ID into its display name, address, and
// coordinate.
func (c *Client) Details(ctx context.Context, id string) (*models.Place, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("places: id is empty")
	}

	endpoint := c.baseURL + "/v1/places/" + id
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Goog-FieldMask", "id,displayName,formattedAddress,location")

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("place details %q: %w", id, err)
	}
	defer resp.Body.Close()

	var decoded detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode details response: %w", err)
	}

	if decoded.Location == nil || decoded.Location.Latitude == nil || decoded.Location.Longitude == nil {
		return nil, fmt.Errorf("place details %q: %w", id, ErrMissingCoordinate)
	}

	place := &models.Place{
		ID:      decoded.ID,
		Name:    decoded.DisplayName.Text,
		Address: decoded.FormattedAddress,
		Location: models.Coordinate{
			Lat: *decoded.Location.Latitude,
			Lon: *decoded.Location.Longitude,
		},
	}
	if place.ID == "" {
		place.ID = id
	}
	return place, nil
}
