package openstreetmap

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Place is a single Nominatim result as returned by /search and /reverse with format=json
type Place struct {
	PlaceId     NumericString   `json:"place_id"`
	Licence     string          `json:"licence"`
	OsmType     string          `json:"osm_type"`
	OsmId       NumericString   `json:"osm_id"`
	Lat         NumericString   `json:"lat"`
	Lon         NumericString   `json:"lon"`
	Class       string          `json:"class"`
	Type        string          `json:"type"`
	PlaceRank   NumericString   `json:"place_rank"`
	Importance  *float64        `json:"importance"`
	Addresstype string          `json:"addresstype"`
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	Address     map[string]any  `json:"address"`
	Boundingbox []NumericString `json:"boundingbox"`

	// Raw is the item exactly as received
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps a copy of the raw item
func (p *Place) UnmarshalJSON(data []byte) error {
	type place Place
	var decoded place
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = Place(decoded)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Fields decodes the raw item into a generic map for lookups by configurable key
func (p *Place) Fields() (map[string]any, error) {
	if len(p.Raw) == 0 {
		return nil, nil
	}
	var fields map[string]any
	if err := json.Unmarshal(p.Raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// NumericString holds a value Nominatim may encode either as a JSON string or a JSON number
type NumericString string

func (n *NumericString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("numeric field: %w", err)
	}
	*n = NumericString(num.String())
	return nil
}

func (n NumericString) String() string {
	return string(n)
}

// Float parses the value as float64
func (n NumericString) Float() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// errorResponse is returned by /reverse with HTTP 200 when nothing is found
type errorResponse struct {
	Error string `json:"error"`
}
