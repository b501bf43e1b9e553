package geocoding

import (
	"encoding/json"
	"fmt"
	"strconv"

	"location-finder/internal/config"
	"location-finder/internal/providers/openstreetmap"
	"location-finder/internal/types"
)

// Nominatim keys used when the configured response format does not resolve
const (
	keyDisplayName = "display_name"
	keyLat         = "lat"
	keyLon         = "lon"
)

type normalizer struct {
	format     config.ResponseFormat
	includeRaw bool
}

func newNormalizer(cfg config.GeocodingConfig) normalizer {
	format := cfg.ResponseFormat
	if format.DisplayName == "" {
		format.DisplayName = keyDisplayName
	}
	if format.Lat == "" {
		format.Lat = keyLat
	}
	if format.Lon == "" {
		format.Lon = keyLon
	}
	return normalizer{format: format, includeRaw: cfg.IncludeRaw}
}

func (n normalizer) standardFormat() bool {
	return n.format.DisplayName == keyDisplayName && n.format.Lat == keyLat && n.format.Lon == keyLon
}

// normalize turns a provider item into a LocationRecord. Items without a display
// name or usable coordinates are rejected.
func (n normalizer) normalize(place openstreetmap.Place) (types.LocationRecord, error) {
	displayName := place.DisplayName
	lat := place.Lat.String()
	lon := place.Lon.String()

	if !n.standardFormat() {
		fields, err := place.Fields()
		if err != nil {
			return types.LocationRecord{}, fmt.Errorf("failed to read item fields: %w", err)
		}
		displayName = lookupString(fields, n.format.DisplayName, displayName)
		lat = lookupString(fields, n.format.Lat, lat)
		lon = lookupString(fields, n.format.Lon, lon)
	}

	if displayName == "" {
		return types.LocationRecord{}, fmt.Errorf("missing %s", n.format.DisplayName)
	}
	if lat == "" || lon == "" {
		return types.LocationRecord{}, fmt.Errorf("missing coordinates")
	}

	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return types.LocationRecord{}, fmt.Errorf("invalid latitude %q: %w", lat, err)
	}
	longitude, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return types.LocationRecord{}, fmt.Errorf("invalid longitude %q: %w", lon, err)
	}
	if err := types.NewCoords(latitude, longitude).Validate(); err != nil {
		return types.LocationRecord{}, err
	}

	record := types.LocationRecord{
		DisplayName: displayName,
		Lat:         latitude,
		Lon:         longitude,
		Class:       place.Class,
		Type:        place.Type,
		PlaceID:     place.PlaceId.String(),
		OsmID:       place.OsmId.String(),
		OsmType:     place.OsmType,
	}
	if place.Importance != nil {
		importance := *place.Importance
		record.Importance = &importance
	}
	if n.includeRaw && len(place.Raw) > 0 {
		// re-encode so the bytes match what a cache round trip produces
		raw, err := json.Marshal(place.Raw)
		if err != nil {
			return types.LocationRecord{}, fmt.Errorf("invalid raw item: %w", err)
		}
		record.Raw = raw
	}

	return record, nil
}

// lookupString returns fields[key] rendered as a string, or fallback when the key
// is absent or null
func lookupString(fields map[string]any, key, fallback string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return fallback
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
