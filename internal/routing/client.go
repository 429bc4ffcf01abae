package routing

import (
	"bytes"
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

const defaultBaseURL = "https://routes.googleapis.com"

// routeFieldMask limits the response to the fields the normalizer reads.
const routeFieldMask = "routes.duration,routes.distanceMeters,routes.polyline.encodedPolyline,routes.legs.steps"

// Client implements Directions against the provider's HTTP API.
// A failed leg is never retried here: the planner aborts the remaining
// legs and surfaces the error instead.
type Client struct {
	session *http.Client
	apiKey  string
	baseURL string
}

// NewClient builds a Directions client authenticated with apiKey.
func NewClient(apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("routing: api key is empty")
	}

	return &Client{
		session: &http.Client{Timeout: 15 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}, nil
}

// WithBaseURL overrides the provider endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// statusError is a non-success provider response, annotated with the HTTP
// status and body text so the failing leg can be reported verbatim.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type waypoint struct {
	Location struct {
		LatLng latLng `json:"latLng"`
	} `json:"location"`
}

type computeRoutesRequest struct {
	Origin                   waypoint `json:"origin"`
	Destination              waypoint `json:"destination"`
	TravelMode               string   `json:"travelMode"`
	DepartureTime            string   `json:"departureTime,omitempty"`
	ArrivalTime              string   `json:"arrivalTime,omitempty"`
	ComputeAlternativeRoutes bool     `json:"computeAlternativeRoutes"`
}

type computeRoutesResponse struct {
	Routes []RawRoute `json:"routes"`
}

func newWaypoint(c models.Coordinate) waypoint {
	var w waypoint
	w.Location.LatLng = latLng{Latitude: c.Lat, Longitude: c.Lon}
	return w
}

func (c *Client) newRequest(ctx context.Context, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", routeFieldMask)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

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
		return nil, &statusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// ComputeAlternatives issues one computeRoutes call and returns the raw
// candidates in provider order.
func (c *Client) ComputeAlternatives(ctx context.Context, req DirectionsRequest) ([]RawRoute, error) {
	travelMode := req.TravelMode
	if travelMode == "" {
		travelMode = "TRANSIT"
	}

	bodyObj := computeRoutesRequest{
		Origin:                   newWaypoint(req.Origin),
		Destination:              newWaypoint(req.Destination),
		TravelMode:               travelMode,
		ComputeAlternativeRoutes: true,
	}
	switch req.Mode {
	case models.ArriveBy:
		bodyObj.ArrivalTime = req.ReferenceTime
	default:
		bodyObj.DepartureTime = req.ReferenceTime
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return nil, fmt.Errorf("marshal routes request: %w", err)
	}

	endpoint := c.baseURL + "/directions/v2:computeRoutes"
	httpReq, err := c.newRequest(ctx, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	resp, err := c.do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("compute routes: %w", err)
	}
	defer resp.Body.Close()

	var decoded computeRoutesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode routes response: %w", err)
	}

	return decoded.Routes, nil
}
