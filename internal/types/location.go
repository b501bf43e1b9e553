package types

import "encoding/json"

// LocationRecord is a normalized geocoding result returned to API clients
type LocationRecord struct {
	DisplayName string          `json:"display_name" example:"İstanbul, Marmara Bölgesi, Türkiye"`
	Lat         float64         `json:"lat" example:"41.0082"`
	Lon         float64         `json:"lon" example:"28.9784"`
	Class       string          `json:"class,omitempty" example:"place"`
	Type        string          `json:"type,omitempty" example:"city"`
	PlaceID     string          `json:"place_id,omitempty" example:"113735329"`
	OsmID       string          `json:"osm_id,omitempty" example:"223474"`
	OsmType     string          `json:"osm_type,omitempty" example:"relation"`
	Importance  *float64        `json:"importance,omitempty" example:"0.81"`
	Raw         json.RawMessage `json:"raw,omitempty" swaggertype:"object"`
}

// Coords returns the record position as a coordinate pair
func (r LocationRecord) Coords() Coords {
	return NewCoords(r.Lat, r.Lon)
}
