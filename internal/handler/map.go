package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var errEmptyGeometry = errors.New("geometry has no coordinates")

// Shown when there is no route to fit.
var defaultCenter = latLng{Lat: 31.9, Lng: 35.2}

const (
	defaultZoom = 8
	routeZoom   = 12
)

type latLng struct {
	Lat float64
	Lng float64
}

type mapData struct {
	Collection *geojson.FeatureCollection
	Bounds     [][2]float64
	Center     latLng
	Zoom       int
}

// MapHandler renders route geometry on an interactive map. It backs the map
// iframe in route mode.
type MapHandler struct {
	logger *slog.Logger
}

func NewMapHandler(logger *slog.Logger) *MapHandler {
	return &MapHandler{logger: logger.With("component", "map")}
}

func (h *MapHandler) ServeMap(w http.ResponseWriter, r *http.Request) {
	data := mapData{Center: defaultCenter, Zoom: defaultZoom}

	if raw := strings.TrimSpace(r.URL.Query().Get("geometry")); raw != "" {
		geom, err := decodeGeometry([]byte(raw))
		switch {
		case errors.Is(err, errEmptyGeometry):
			h.logger.Debug("route without geometry")
		case err != nil:
			h.logger.Debug("bad route geometry", "error", err)
			respondError(w, http.StatusBadRequest, "invalid geometry: "+err.Error())
			return
		default:
			data = routeMapData(geom)
		}
	}

	var buf bytes.Buffer
	if err := mapTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("map render failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func routeMapData(geom orb.Geometry) mapData {
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(geom))
	bound := geom.Bound()
	center := bound.Center()

	return mapData{
		Collection: fc,
		Bounds: [][2]float64{
			{bound.Min.Lat(), bound.Min.Lon()},
			{bound.Max.Lat(), bound.Max.Lon()},
		},
		Center: latLng{Lat: center.Lat(), Lng: center.Lon()},
		Zoom:   routeZoom,
	}
}

// decodeGeometry accepts a bare [[lat,lon],...] array, the decoded polyline
// the backend sends, or any GeoJSON geometry, feature or feature collection
// with GeoJSON's [lon,lat] order. An empty array, object or null yields
// errEmptyGeometry.
func decodeGeometry(data []byte) (orb.Geometry, error) {
	if string(data) == "null" {
		return nil, errEmptyGeometry
	}
	if data[0] == '[' {
		var coords [][]float64
		if err := json.Unmarshal(data, &coords); err != nil {
			return nil, fmt.Errorf("coordinate array: %w", err)
		}
		return lineFromCoordinates(coords)
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	if head.Type == "" {
		var fields map[string]json.RawMessage
		if json.Unmarshal(data, &fields) == nil && len(fields) == 0 {
			return nil, errEmptyGeometry
		}
	}

	var geom orb.Geometry
	switch head.Type {
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("geojson feature: %w", err)
		}
		geom = f.Geometry
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("geojson feature collection: %w", err)
		}
		collection := make(orb.Collection, 0, len(fc.Features))
		for _, f := range fc.Features {
			if f.Geometry != nil {
				collection = append(collection, f.Geometry)
			}
		}
		geom = collection
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("geojson geometry: %w", err)
		}
		geom = g.Geometry()
	}

	if geom == nil || isEmpty(geom) {
		return nil, errEmptyGeometry
	}
	return geom, nil
}

// lineFromCoordinates reads [lat,lon] positions.
func lineFromCoordinates(coords [][]float64) (orb.Geometry, error) {
	line := make(orb.LineString, 0, len(coords))
	for i, c := range coords {
		if len(c) < 2 {
			return nil, fmt.Errorf("position %d: need latitude and longitude", i)
		}
		line = append(line, orb.Point{c[1], c[0]})
	}
	switch len(line) {
	case 0:
		return nil, errEmptyGeometry
	case 1:
		return line[0], nil
	default:
		return line, nil
	}
}

func isEmpty(g orb.Geometry) bool {
	switch v := g.(type) {
	case orb.LineString:
		return len(v) == 0
	case orb.MultiPoint:
		return len(v) == 0
	case orb.MultiLineString:
		return len(v) == 0
	case orb.Polygon:
		return len(v) == 0
	case orb.MultiPolygon:
		return len(v) == 0
	case orb.Collection:
		return len(v) == 0
	default:
		return false
	}
}
