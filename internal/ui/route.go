package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"roadmap/internal/domain"
	"roadmap/pkg/roadmapapi"
)

// RouteFetcher runs the route flow: it owns the results region and feeds the
// route geometry to the map.
type RouteFetcher struct {
	backend     RouteBackend
	origin      Field
	destination Field
	region      Region
	mapDisplay  *MapDisplay
	alerts      Alerter
	messages    *Messages
	fuel        func() *domain.FuelProfile
	logger      *slog.Logger

	inflight latest
}

type RouteFetcherConfig struct {
	Origin      Field
	Destination Field
	Results     Region
	Map         *MapDisplay
	Alerts      Alerter
	Messages    *Messages
	// Fuel, if set, supplies the vehicle profile used to price the trip.
	Fuel func() *domain.FuelProfile
}

func NewRouteFetcher(backend RouteBackend, cfg RouteFetcherConfig, logger *slog.Logger) *RouteFetcher {
	return &RouteFetcher{
		backend:     backend,
		origin:      cfg.Origin,
		destination: cfg.Destination,
		region:      cfg.Results,
		mapDisplay:  cfg.Map,
		alerts:      cfg.Alerts,
		messages:    cfg.Messages,
		fuel:        cfg.Fuel,
		logger:      logger.With("component", "route"),
	}
}

// Calculate computes the route between the two selected fields.
func (f *RouteFetcher) Calculate(ctx context.Context, routeType string) {
	origin := strings.TrimSpace(f.origin.Value())
	destination := strings.TrimSpace(f.destination.Value())
	if origin == "" || destination == "" {
		f.alerts.Alert(f.messages.RouteIncomplete)
		return
	}
	if routeType == "" {
		routeType = domain.RouteFastest
	}

	ctx, seq := f.inflight.begin(ctx)
	defer f.inflight.end(seq)

	f.inflight.commit(seq, func() {
		f.region.Replace(RenderLoading(f.messages.LoadingRoute))
	})

	start := time.Now()
	result, err := f.request(ctx, origin, destination, routeType)

	f.inflight.commit(seq, func() {
		if err != nil {
			f.fail(err)
			return
		}

		if result.HasGeometry() && f.mapDisplay != nil {
			if merr := f.mapDisplay.ShowRoute(result.Geometry); merr != nil {
				f.logger.Warn("route geometry not shown", "error", merr)
			}
		}

		markup, rerr := RenderRoute(result, f.messages)
		if rerr != nil {
			f.logger.Error("route render failed", "error", rerr)
			f.region.Replace(RenderError(f.messages.RouteFailed))
			return
		}
		f.region.Replace(markup)

		f.logger.Info("route shown",
			"route_type", routeType,
			"distance", result.Distance.String(),
			"traffic_level", result.TrafficLevel,
			"fuel_cost", result.FuelCost != nil,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (f *RouteFetcher) request(ctx context.Context, origin, destination, routeType string) (*domain.RouteResult, error) {
	start, err := domain.ParseCoordinates(origin)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	end, err := domain.ParseCoordinates(destination)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	q := domain.RouteQuery{
		Start:     start,
		End:       end,
		RouteType: routeType,
	}
	if f.fuel != nil {
		q.Vehicle = f.fuel()
	}
	return f.backend.CalculateRoute(ctx, q)
}

func (f *RouteFetcher) fail(err error) {
	var apiErr *roadmapapi.APIError
	if errors.As(err, &apiErr) {
		f.logger.Info("route rejected", "message", apiErr.Message)
		f.region.Replace(RenderError(apiErr.Message))
		return
	}
	f.logger.Error("route request failed", "error", err)
	f.region.Replace(RenderError(f.messages.RouteFailed))
}
