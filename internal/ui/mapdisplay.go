package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"strings"
	"sync"

	"roadmap/internal/domain"
)

// MapMode is what the map region currently shows.
type MapMode int

const (
	MapEmpty MapMode = iota
	MapPoint
	MapRoute
)

func (m MapMode) String() string {
	switch m {
	case MapPoint:
		return "point"
	case MapRoute:
		return "route"
	default:
		return "empty"
	}
}

type MapOptions struct {
	// EmbedURL is the public tile service page used for point mode.
	EmbedURL string
	// Margin is the half-width of the point-mode bounding box in degrees.
	Margin float64
	// RoutePath is the internal page that draws a route geometry.
	RoutePath string
}

func DefaultMapOptions() MapOptions {
	return MapOptions{
		EmbedURL:  "https://www.openstreetmap.org/export/embed.html",
		Margin:    0.1,
		RoutePath: "/map",
	}
}

// MapDisplay owns the map region and swaps a single embedded view in and out.
type MapDisplay struct {
	region Region
	opts   MapOptions
	logger *slog.Logger

	mu   sync.Mutex
	mode MapMode
}

func NewMapDisplay(region Region, opts MapOptions, logger *slog.Logger) *MapDisplay {
	return &MapDisplay{
		region: region,
		opts:   opts,
		logger: logger.With("component", "map_display"),
	}
}

// ShowPoint centers the map on a single location with a marker on it.
func (m *MapDisplay) ShowPoint(lat, lng float64) {
	m.show(MapPoint, PointEmbedURL(m.opts.EmbedURL, lat, lng, m.opts.Margin))
}

// ShowRoute embeds the route-rendering page for the given geometry.
func (m *MapDisplay) ShowRoute(geometry json.RawMessage) error {
	src, err := RouteEmbedURL(m.opts.RoutePath, geometry)
	if err != nil {
		return err
	}
	m.show(MapRoute, src)
	return nil
}

func (m *MapDisplay) Mode() MapMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

func (m *MapDisplay) show(mode MapMode, src string) {
	markup, err := renderMapFrame(src)
	if err != nil {
		m.logger.Error("map frame render failed", "mode", mode.String(), "error", err)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.region.Replace(markup)
	m.mode = mode
	m.logger.Debug("map updated", "mode", mode.String())
}

// PointEmbedURL builds the tile-service embed URL for a bounding box of
// ±margin degrees around (lat, lng) with a marker at the point.
func PointEmbedURL(base string, lat, lng, margin float64) string {
	bbox := strings.Join([]string{
		coord(lng - margin),
		coord(lat - margin),
		coord(lng + margin),
		coord(lat + margin),
	}, ",")
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "bbox=" + bbox + "&layer=mapnik&marker=" + coord(lat) + "," + coord(lng)
}

// RouteEmbedURL serializes the geometry and passes it to the route page.
func RouteEmbedURL(path string, geometry json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, geometry); err != nil {
		return "", fmt.Errorf("route geometry: %w", err)
	}
	params := url.Values{}
	params.Set("geometry", buf.String())
	return path + "?" + params.Encode(), nil
}

// coord trims float noise from margin arithmetic and always keeps a decimal
// point, so 31.9+0.1 reads "32.0".
func coord(v float64) string {
	s := domain.FormatFloat(math.Round(v*1e6) / 1e6)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
