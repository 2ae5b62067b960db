package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/paulmach/orb"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func getMap(t *testing.T, geometry string) *httptest.ResponseRecorder {
	t.Helper()
	target := "/map"
	if geometry != "" {
		target += "?" + url.Values{"geometry": {geometry}}.Encode()
	}
	rec := httptest.NewRecorder()
	NewMapHandler(discardLogger()).ServeMap(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServeMapGeometryShapes(t *testing.T) {
	tests := []struct {
		name     string
		geometry string
	}{
		{name: "decoded polyline", geometry: `[[31.9,35.2],[32.1,35.0]]`},
		{name: "geojson geometry", geometry: `{"type":"LineString","coordinates":[[35.2,31.9],[35.0,32.1]]}`},
		{name: "geojson feature", geometry: `{"type":"Feature","geometry":{"type":"LineString","coordinates":[[35.2,31.9],[35.0,32.1]]},"properties":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := getMap(t, tt.geometry)
			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d", rec.Code)
			}
			body := rec.Body.String()
			for _, want := range []string{`"FeatureCollection"`, `"LineString"`, `[[31.9,35],[32.1,35.2]]`} {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %s", want)
				}
			}
		})
	}
}

func TestServeMapWithoutGeometry(t *testing.T) {
	for _, geometry := range []string{"", "[]", "null", "{}", `{"type":"LineString","coordinates":[]}`} {
		t.Run(geometry, func(t *testing.T) {
			rec := getMap(t, geometry)
			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200", rec.Code)
			}
			body := strings.ReplaceAll(rec.Body.String(), " ", "")
			if !strings.Contains(body, "constcollection=null;") || !strings.Contains(body, "constbounds=null;") {
				t.Errorf("expected an empty map:\n%s", rec.Body.String())
			}
		})
	}
}

func TestServeMapReadsArraysAsLatLon(t *testing.T) {
	rec := getMap(t, `[[31.9,35.2],[32.1,35.0]]`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := strings.ReplaceAll(rec.Body.String(), " ", "")
	if !strings.Contains(body, "[[31.9,35],[32.1,35.2]]") {
		t.Errorf("bounds not in lat,lon order:\n%s", rec.Body.String())
	}
	if !strings.Contains(body, "setView([32,35.1") {
		t.Errorf("center not in lat,lon order:\n%s", rec.Body.String())
	}
	if !strings.Contains(body, "[[35.2,31.9],[35,32.1]]") {
		t.Errorf("geojson coordinates not in lon,lat order:\n%s", rec.Body.String())
	}
}

func TestServeMapRejectsBadGeometry(t *testing.T) {
	for _, geometry := range []string{`[[35.2]]`, `[["a","b"]]`, `{"type":"Nope"}`, `not json`} {
		t.Run(geometry, func(t *testing.T) {
			if rec := getMap(t, geometry); rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
		})
	}
}

func TestDecodeGeometrySinglePosition(t *testing.T) {
	geom, err := decodeGeometry([]byte(`[[31.9,35.2]]`))
	if err != nil {
		t.Fatalf("decodeGeometry: %v", err)
	}
	p, ok := geom.(orb.Point)
	if !ok {
		t.Fatalf("type: got %s, want Point", geom.GeoJSONType())
	}
	if p.Lat() != 31.9 || p.Lon() != 35.2 {
		t.Errorf("point: got lat %v lon %v", p.Lat(), p.Lon())
	}
}
