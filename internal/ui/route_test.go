package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"roadmap/internal/domain"
	"roadmap/pkg/roadmapapi"
)

type routeFixture struct {
	fetcher *RouteFetcher
	results *recordingRegion
	mapArea *recordingRegion
	alerts  *recordingAlerter
}

func newRouteFixture(backend *fakeBackend, origin, destination string, fuel func() *domain.FuelProfile) routeFixture {
	fx := routeFixture{
		results: &recordingRegion{},
		mapArea: &recordingRegion{},
		alerts:  &recordingAlerter{},
	}
	fx.fetcher = NewRouteFetcher(backend, RouteFetcherConfig{
		Origin:      staticField(origin),
		Destination: staticField(destination),
		Results:     fx.results,
		Map:         NewMapDisplay(fx.mapArea, DefaultMapOptions(), discardLogger()),
		Alerts:      fx.alerts,
		Messages:    Locale("en"),
		Fuel:        fuel,
	}, discardLogger())
	return fx
}

func TestRouteRequiresBothEndpoints(t *testing.T) {
	tests := []struct {
		name        string
		origin      string
		destination string
	}{
		{name: "no origin", destination: "32.1,35.0"},
		{name: "no destination", origin: "31.9,35.2"},
		{name: "neither"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			fx := newRouteFixture(backend, tt.origin, tt.destination, nil)

			fx.fetcher.Calculate(context.Background(), "fastest")

			if len(backend.routes()) != 0 {
				t.Errorf("backend called")
			}
			if got := fx.alerts.Messages(); len(got) != 1 || got[0] != Locale("en").RouteIncomplete {
				t.Errorf("alerts: got %q", got)
			}
			if fx.results.Count() != 0 || fx.mapArea.Count() != 0 {
				t.Error("display regions touched")
			}
		})
	}
}

func TestRouteSuccess(t *testing.T) {
	backend := &fakeBackend{
		route: func(ctx context.Context, q domain.RouteQuery) (*domain.RouteResult, error) {
			return &domain.RouteResult{
				Distance:     "12.4",
				Duration:     "20 min",
				TrafficLevel: "HIGH",
				Geometry:     []byte(`[[31.9,35.2],[32.1,35.0]]`),
			}, nil
		},
	}
	fx := newRouteFixture(backend, "31.9,35.2", "32.1,35.0", nil)

	fx.fetcher.Calculate(context.Background(), "")

	queries := backend.routes()
	if len(queries) != 1 {
		t.Fatalf("backend calls: got %d, want 1", len(queries))
	}
	q := queries[0]
	if q.Start != (domain.Coordinates{Latitude: 31.9, Longitude: 35.2}) || q.End != (domain.Coordinates{Latitude: 32.1, Longitude: 35.0}) {
		t.Errorf("coordinates: got start=%+v end=%+v", q.Start, q.End)
	}
	if q.RouteType != domain.RouteFastest {
		t.Errorf("route type: got %q, want default %q", q.RouteType, domain.RouteFastest)
	}
	if q.Vehicle != nil {
		t.Errorf("vehicle profile sent without a loaded spec: %+v", q.Vehicle)
	}

	if fx.results.Count() != 2 {
		t.Errorf("results updates: got %d, want loading + result", fx.results.Count())
	}
	if !strings.Contains(fx.results.Last(), `<span class="traffic-level high">HIGH</span>`) {
		t.Errorf("results:\n%s", fx.results.Last())
	}
	if !strings.Contains(fx.mapArea.Last(), "/map?geometry=") {
		t.Errorf("map not switched to the route:\n%s", fx.mapArea.Last())
	}
}

func TestRouteWithoutGeometryLeavesMap(t *testing.T) {
	backend := &fakeBackend{
		route: func(ctx context.Context, q domain.RouteQuery) (*domain.RouteResult, error) {
			return &domain.RouteResult{Distance: "3", Duration: "5 min", TrafficLevel: "LOW"}, nil
		},
	}
	fx := newRouteFixture(backend, "31.9,35.2", "32.1,35.0", nil)

	fx.fetcher.Calculate(context.Background(), "shortest")

	if fx.mapArea.Count() != 0 {
		t.Errorf("map updated without geometry")
	}
	if !strings.Contains(fx.results.Last(), "route-info") {
		t.Errorf("results:\n%s", fx.results.Last())
	}
}

func TestRouteWithEmptyGeometryLeavesMap(t *testing.T) {
	backend := &fakeBackend{
		route: func(ctx context.Context, q domain.RouteQuery) (*domain.RouteResult, error) {
			return &domain.RouteResult{Distance: "3", Duration: "5 min", TrafficLevel: "LOW", Geometry: []byte(`[]`)}, nil
		},
	}
	fx := newRouteFixture(backend, "31.9,35.2", "32.1,35.0", nil)

	fx.fetcher.Calculate(context.Background(), "fastest")

	if fx.mapArea.Count() != 0 {
		t.Errorf("map replaced for an empty geometry:\n%s", fx.mapArea.Last())
	}
	if !strings.Contains(fx.results.Last(), "route-info") {
		t.Errorf("results:\n%s", fx.results.Last())
	}
}

func TestRouteFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "error field",
			err:  &roadmapapi.APIError{Endpoint: "/api/calculate_route", Message: "X"},
			want: `<div class="error">X</div>`,
		},
		{
			name: "non-success status",
			err:  &roadmapapi.StatusError{Endpoint: "/api/calculate_route", StatusCode: 500},
			want: string(RenderError(Locale("en").RouteFailed)),
		},
		{
			name: "network error",
			err:  errors.New("connection refused"),
			want: string(RenderError(Locale("en").RouteFailed)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{
				route: func(ctx context.Context, q domain.RouteQuery) (*domain.RouteResult, error) {
					return nil, tt.err
				},
			}
			fx := newRouteFixture(backend, "31.9,35.2", "32.1,35.0", nil)

			fx.fetcher.Calculate(context.Background(), "fastest")

			if got := fx.results.Last(); got != tt.want {
				t.Errorf("results: got %q, want %q", got, tt.want)
			}
			if fx.mapArea.Count() != 0 {
				t.Error("map updated on failure")
			}
		})
	}
}

func TestRouteUnparseableEndpoint(t *testing.T) {
	backend := &fakeBackend{}
	fx := newRouteFixture(backend, "Ramallah", "32.1,35.0", nil)

	fx.fetcher.Calculate(context.Background(), "fastest")

	if len(backend.routes()) != 0 {
		t.Error("backend called with an unparseable endpoint")
	}
	if got, want := fx.results.Last(), string(RenderError(Locale("en").RouteFailed)); got != want {
		t.Errorf("results: got %q, want %q", got, want)
	}
}

func TestRouteSendsFuelProfile(t *testing.T) {
	backend := &fakeBackend{
		route: func(ctx context.Context, q domain.RouteQuery) (*domain.RouteResult, error) {
			return &domain.RouteResult{
				Distance:     "12.4",
				Duration:     "20 min",
				TrafficLevel: "LOW",
				FuelCost:     &domain.FuelCost{FuelNeededLiters: 0.93, TotalCost: 7.16},
			}, nil
		},
	}
	fuel := func() *domain.FuelProfile { return &domain.FuelProfile{FuelConsumption: 7.5} }
	fx := newRouteFixture(backend, "31.9,35.2", "32.1,35.0", fuel)

	fx.fetcher.Calculate(context.Background(), "fastest")

	q := backend.routes()[0]
	if q.Vehicle == nil || q.Vehicle.FuelConsumption != 7.5 {
		t.Errorf("vehicle profile: got %+v", q.Vehicle)
	}
	if !strings.Contains(fx.results.Last(), `class="fuel-cost"`) {
		t.Errorf("fuel-cost section missing:\n%s", fx.results.Last())
	}
}

func TestRouteDropsSupersededResponse(t *testing.T) {
	started := make(chan struct{})
	var calls int
	var mu sync.Mutex
	backend := &fakeBackend{
		route: func(ctx context.Context, q domain.RouteQuery) (*domain.RouteResult, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()
			if n == 1 {
				close(started)
				<-ctx.Done()
				return &domain.RouteResult{Distance: "999", Duration: "stale", TrafficLevel: "LOW"}, nil
			}
			return &domain.RouteResult{Distance: "12.4", Duration: "fresh", TrafficLevel: "LOW"}, nil
		},
	}
	fx := newRouteFixture(backend, "31.9,35.2", "32.1,35.0", nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		fx.fetcher.Calculate(context.Background(), "fastest")
	}()

	<-started
	fx.fetcher.Calculate(context.Background(), "shortest")
	<-done

	last := fx.results.Last()
	if !strings.Contains(last, "fresh") || strings.Contains(last, "stale") {
		t.Errorf("results should show the newest route only:\n%s", last)
	}
}
