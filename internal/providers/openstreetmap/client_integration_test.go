//go:build integration

package openstreetmap

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestClient_Reverse_Integration(t *testing.T) {
	// Test coordinates: Sultanahmet, Istanbul
	lat := 41.0054
	lon := 28.9768

	client := NewClient(DefaultBaseURL, "LocationFinderIntegrationTest/1.0", 10*time.Second, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	t.Logf("Making API call to OpenStreetMap Nominatim API...")
	t.Logf("Coordinates: lat=%f, lon=%f", lat, lon)

	resp, err := client.Reverse(context.Background(), ReverseParams{Latitude: lat, Longitude: lon, Language: "en"})
	if err != nil {
		t.Fatalf("Failed to get location data: %v", err)
	}

	// Pretty print the raw response
	rawJSON, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}

	t.Logf("Raw API Response:\n%s", string(rawJSON))

	t.Logf("Location Details:")
	t.Logf("  Place ID: %s", resp.PlaceId)
	t.Logf("  Display Name: %s", resp.DisplayName)
	t.Logf("  Type: %s", resp.Type)
	t.Logf("  Class: %s", resp.Class)

	if resp.Lat == "" || resp.Lon == "" {
		t.Error("Lat/Lon fields are empty")
	}

	if resp.PlaceId == "" {
		t.Error("PlaceId is empty")
	}

	if resp.DisplayName == "" {
		t.Error("DisplayName is empty")
	}

	if len(resp.Boundingbox) != 4 {
		t.Errorf("Expected boundingbox to have 4 values, got %d", len(resp.Boundingbox))
	}
}

func TestClient_Search_Integration(t *testing.T) {
	client := NewClient(DefaultBaseURL, "LocationFinderIntegrationTest/1.0", 10*time.Second, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	places, err := client.Search(context.Background(), SearchParams{
		Query:       "istanbul",
		Limit:       3,
		CountryCode: "tr",
		Language:    "tr",
	})
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}

	if len(places) == 0 {
		t.Fatal("Expected at least one result")
	}
	if len(places) > 3 {
		t.Errorf("Expected at most 3 results, got %d", len(places))
	}

	for i, p := range places {
		t.Logf("  %d: %s (%s, %s)", i, p.DisplayName, p.Lat, p.Lon)
	}
}
