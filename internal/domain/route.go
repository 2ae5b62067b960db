package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Route preferences offered on the page.
const (
	RouteFastest     = "fastest"
	RouteShortest    = "shortest"
	RouteRecommended = "recommended"
	RouteWestBank    = "west_bank"
)

// RouteQuery is the calculate_route request body.
type RouteQuery struct {
	Start     Coordinates  `json:"start"`
	End       Coordinates  `json:"end"`
	RouteType string       `json:"route_type"`
	Vehicle   *FuelProfile `json:"vehicle_specs,omitempty"`
}

// FuelProfile carries what the backend needs to price a trip.
type FuelProfile struct {
	FuelConsumption float64 `json:"fuel_consumption"`
}

// RouteResult is the computed route as returned by the backend.
type RouteResult struct {
	Distance     Text            `json:"distance"`
	Duration     Text            `json:"duration"`
	TrafficLevel string          `json:"traffic_level"`
	Geometry     json.RawMessage `json:"geometry,omitempty"`
	FuelCost     *FuelCost       `json:"fuel_cost,omitempty"`
}

// FuelCost is attached when the request carried a fuel profile.
type FuelCost struct {
	FuelNeededLiters float64 `json:"fuel_needed_liters"`
	TotalCost        float64 `json:"total_cost"`
}

// HasGeometry reports whether a route shape was returned. The backend sends
// an empty array when it has none.
func (r *RouteResult) HasGeometry() bool {
	g := bytes.TrimSpace(r.Geometry)
	if len(g) == 0 || bytes.Equal(g, []byte("null")) {
		return false
	}
	switch g[0] {
	case '[':
		var items []json.RawMessage
		return json.Unmarshal(g, &items) == nil && len(items) > 0
	case '{':
		var fields map[string]json.RawMessage
		return json.Unmarshal(g, &fields) == nil && len(fields) > 0
	default:
		return false
	}
}

// TrafficClass is the lowercased traffic level, "unknown" when absent.
func (r *RouteResult) TrafficClass() string {
	level := strings.ToLower(strings.TrimSpace(r.TrafficLevel))
	if level == "" {
		return "unknown"
	}
	return level
}
