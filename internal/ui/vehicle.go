package ui

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"roadmap/internal/domain"
	"roadmap/pkg/roadmapapi"
)

// VehicleSpecFetcher runs the vehicle lookup flow and owns the specs region.
type VehicleSpecFetcher struct {
	backend  VehicleBackend
	region   Region
	alerts   Alerter
	messages *Messages
	logger   *slog.Logger

	inflight latest

	mu   sync.RWMutex
	last *domain.VehicleSpec
}

func NewVehicleSpecFetcher(backend VehicleBackend, region Region, alerts Alerter, messages *Messages, logger *slog.Logger) *VehicleSpecFetcher {
	return &VehicleSpecFetcher{
		backend:  backend,
		region:   region,
		alerts:   alerts,
		messages: messages,
		logger:   logger.With("component", "vehicle_specs"),
	}
}

// Fetch looks up q and renders the outcome into the specs region. Incomplete
// queries only raise an alert.
func (f *VehicleSpecFetcher) Fetch(ctx context.Context, q domain.VehicleQuery) {
	if !q.Complete() {
		f.alerts.Alert(f.messages.VehicleIncomplete)
		return
	}

	ctx, seq := f.inflight.begin(ctx)
	defer f.inflight.end(seq)

	f.inflight.commit(seq, func() {
		f.region.Replace(RenderLoading(f.messages.LoadingVehicle))
	})

	start := time.Now()
	spec, err := f.backend.GetVehicleSpecs(ctx, q)

	f.inflight.commit(seq, func() {
		if err != nil {
			f.fail(q, err)
			return
		}

		markup, rerr := RenderVehicleSpec(spec, f.messages)
		if rerr != nil {
			f.logger.Error("vehicle specs render failed", "error", rerr)
			f.region.Replace(RenderError(f.messages.VehicleFailed))
			return
		}
		f.region.Replace(markup)

		f.mu.Lock()
		f.last = spec
		f.mu.Unlock()

		f.logger.Info("vehicle specs shown",
			"brand", q.Brand,
			"model", q.Model,
			"year", q.Year,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (f *VehicleSpecFetcher) fail(q domain.VehicleQuery, err error) {
	var apiErr *roadmapapi.APIError
	if errors.As(err, &apiErr) {
		f.logger.Info("vehicle specs rejected", "brand", q.Brand, "model", q.Model, "year", q.Year, "message", apiErr.Message)
		f.region.Replace(RenderError(apiErr.Message))
		return
	}
	f.logger.Error("vehicle specs request failed", "brand", q.Brand, "model", q.Model, "year", q.Year, "error", err)
	f.region.Replace(RenderError(f.messages.VehicleFailed))
}

// Last is the most recently shown specification, nil before the first one.
func (f *VehicleSpecFetcher) Last() *domain.VehicleSpec {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.last
}

// FuelProfile is what the route flow sends so the backend can price the trip.
func (f *VehicleSpecFetcher) FuelProfile() *domain.FuelProfile {
	spec := f.Last()
	if spec == nil || spec.FuelConsumption <= 0 {
		return nil
	}
	return &domain.FuelProfile{FuelConsumption: spec.FuelConsumption}
}
