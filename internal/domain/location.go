package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Coordinates is a WGS84 point as the backend exchanges it.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ParseCoordinates decodes the "lat,lng" form stored in a location field.
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinates{}, fmt.Errorf("invalid coordinate pair %q: expected lat,lng", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	return Coordinates{Latitude: lat, Longitude: lng}, nil
}

func (c Coordinates) String() string {
	return FormatFloat(c.Latitude) + "," + FormatFloat(c.Longitude)
}

// FormatFloat renders v in its shortest exact decimal form.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// LocationSelection is the place a user picked from an autocomplete list.
type LocationSelection struct {
	Label     string
	Latitude  float64
	Longitude float64
}

func (s LocationSelection) Coordinates() Coordinates {
	return Coordinates{Latitude: s.Latitude, Longitude: s.Longitude}
}

// Candidate is one city search result. The search endpoint names the display
// text either "label" or "text"; both are accepted.
type Candidate struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (c *Candidate) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        json.RawMessage `json:"id"`
		Label     string          `json:"label"`
		Text      string          `json:"text"`
		Latitude  *float64        `json:"latitude"`
		Longitude *float64        `json:"longitude"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Label = raw.Label
	if c.Label == "" {
		c.Label = raw.Text
	}
	c.Latitude = raw.Latitude
	c.Longitude = raw.Longitude
	c.ID = ""
	if len(raw.ID) > 0 && string(raw.ID) != "null" {
		var id Text
		if err := json.Unmarshal(raw.ID, &id); err != nil {
			return fmt.Errorf("candidate id: %w", err)
		}
		c.ID = string(id)
	}
	return nil
}

// HasCoordinates reports whether both latitude and longitude were supplied.
func (c Candidate) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Selection converts the candidate into a located selection.
func (c Candidate) Selection() (LocationSelection, bool) {
	if !c.HasCoordinates() {
		return LocationSelection{}, false
	}
	return LocationSelection{Label: c.Label, Latitude: *c.Latitude, Longitude: *c.Longitude}, true
}

// Value is what a location field stores once the candidate is chosen: the
// "lat,lng" pair when coordinates are known, otherwise the backend id.
func (c Candidate) Value() string {
	if sel, ok := c.Selection(); ok {
		return sel.Coordinates().String()
	}
	return c.ID
}

// Key identifies the candidate within one result list.
func (c Candidate) Key() string {
	if c.ID != "" {
		return c.ID
	}
	if v := c.Value(); v != "" {
		return v
	}
	return c.Label
}
