package export

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayplan.openmobility.org/internal/models"
)

func exportStops() []models.Stop {
	return []models.Stop{
		{
			ID: "a",
			Place: &models.Place{
				ID:       "place-a",
				Name:     "Home",
				Location: models.Coordinate{Lat: 45.501700, Lon: -73.567300},
			},
		},
		{
			ID: "b",
			Place: &models.Place{
				ID:       "place-b",
				Name:     "Office",
				Location: models.Coordinate{Lat: 45.508800, Lon: -73.554000},
			},
		},
	}
}

func exportPlan() *models.Plan {
	duration := int64(1230)
	distance := int64(5400)
	return &models.Plan{
		ComputedAt: 1777626000000, // 2026-05-01T09:00:00Z
		Legs: []models.Leg{{
			FromStopID: "a",
			ToStopID:   "b",
			ArriveBy:   "2026-05-01T09:00:00Z",
			Options: []models.RouteOption{{
				ID:              "0",
				DurationSeconds: &duration,
				DistanceMeters:  &distance,
				KeyInstructions: []string{"Walk 4 min to Main St", "Take Bus 36 at 8:05 AM from Main St to Elm St (arrive at 8:25 AM)"},
				StartAt:         "2026-05-01T08:39:30Z",
			}},
		}},
	}
}

func TestBuildDocument(t *testing.T) {
	doc, err := Build(exportStops(), exportPlan(), nil)
	require.NoError(t, err)

	assert.Equal(t, "2026-05-01T09:00:00Z", doc.GeneratedAt)
	require.Len(t, doc.Sections, 1)

	section := doc.Sections[0]
	assert.Equal(t, "Home", section.FromName)
	assert.Equal(t, "Office", section.ToName)
	assert.Equal(t, "21 min", section.Duration)
	assert.Equal(t, "5.4 km", section.Distance)
	assert.Len(t, section.Instructions, 2)
}

func TestBuildDeepLink(t *testing.T) {
	doc, err := Build(exportStops(), exportPlan(), nil)
	require.NoError(t, err)

	parsed, err := url.Parse(doc.Sections[0].MapURL)
	require.NoError(t, err)
	assert.Equal(t, "www.google.com", parsed.Host)
	assert.Equal(t, "/maps/dir/", parsed.Path)

	query := parsed.Query()
	assert.Equal(t, "1", query.Get("api"))
	assert.Equal(t, "45.501700,-73.567300", query.Get("origin"))
	assert.Equal(t, "45.508800,-73.554000", query.Get("destination"))
	assert.Equal(t, "transit", query.Get("travelmode"))
	assert.Equal(t, "1777624770", query.Get("departure_time"), "departure rides along as epoch seconds")
}

func TestBuildOmitsDepartureWhenUnresolvable(t *testing.T) {
	plan := exportPlan()
	plan.Legs[0].Options[0].StartAt = ""

	doc, err := Build(exportStops(), plan, nil)
	require.NoError(t, err)

	parsed, err := url.Parse(doc.Sections[0].MapURL)
	require.NoError(t, err)
	assert.False(t, parsed.Query().Has("departure_time"))
}

func TestBuildUsesChosenOption(t *testing.T) {
	plan := exportPlan()
	slow := int64(3600)
	plan.Legs[0].Options = append(plan.Legs[0].Options, models.RouteOption{
		ID:              "1",
		DurationSeconds: &slow,
	})

	doc, err := Build(exportStops(), plan, models.ChosenOptions{"a": "1"})
	require.NoError(t, err)
	assert.Equal(t, "1 hr", doc.Sections[0].Duration)
}

func TestBuildLegWithoutOptions(t *testing.T) {
	plan := exportPlan()
	plan.Legs[0].Options = nil

	doc, err := Build(exportStops(), plan, nil)
	require.NoError(t, err)

	section := doc.Sections[0]
	assert.Empty(t, section.Duration)
	assert.Empty(t, section.Instructions)
	assert.NotEmpty(t, section.MapURL, "the deep link only needs the endpoints")
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(exportStops(), nil, nil)
	assert.Error(t, err)

	_, err = Build(exportStops(), &models.Plan{}, nil)
	assert.Error(t, err)

	plan := exportPlan()
	plan.Legs[0].ToStopID = "ghost"
	_, err = Build(exportStops(), plan, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestDocumentText(t *testing.T) {
	doc, err := Build(exportStops(), exportPlan(), nil)
	require.NoError(t, err)

	text := doc.Text()
	assert.True(t, strings.HasPrefix(text, "Leg 1: Home to Office\n"))
	assert.Contains(t, text, "  Duration: 21 min\n")
	assert.Contains(t, text, "  Distance: 5.4 km\n")
	assert.Contains(t, text, "  - Walk 4 min to Main St\n")
	assert.Contains(t, text, "  Map: https://www.google.com/maps/dir/?")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  int64
		expected string
	}{
		{10, "1 min"},
		{90, "2 min"},
		{1230, "21 min"},
		{3600, "1 hr"},
		{3900, "1 hr 5 min"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatDuration(tt.seconds), "formatDuration(%d)", tt.seconds)
	}
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "850 m", formatDistance(850))
	assert.Equal(t, "5.4 km", formatDistance(5400))
	assert.Equal(t, "12.0 km", formatDistance(12000))
}
