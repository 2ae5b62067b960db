package ui

import (
	"context"
	"html/template"
	"io"
	"log/slog"
	"sync"

	"roadmap/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingRegion struct {
	mu      sync.Mutex
	history []template.HTML
}

func (r *recordingRegion) Replace(markup template.HTML) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, markup)
}

func (r *recordingRegion) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.history)
}

func (r *recordingRegion) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return ""
	}
	return string(r.history[len(r.history)-1])
}

type recordingAlerter struct {
	mu       sync.Mutex
	messages []string
}

func (a *recordingAlerter) Alert(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, message)
}

func (a *recordingAlerter) Messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.messages...)
}

// fakeBackend records calls and delegates to the configured functions.
type fakeBackend struct {
	mu            sync.Mutex
	searchQueries []string
	specQueries   []domain.VehicleQuery
	routeQueries  []domain.RouteQuery

	search func(ctx context.Context, query string) ([]domain.Candidate, error)
	specs  func(ctx context.Context, q domain.VehicleQuery) (*domain.VehicleSpec, error)
	route  func(ctx context.Context, q domain.RouteQuery) (*domain.RouteResult, error)
}

func (b *fakeBackend) SearchCities(ctx context.Context, query string) ([]domain.Candidate, error) {
	b.mu.Lock()
	b.searchQueries = append(b.searchQueries, query)
	fn := b.search
	b.mu.Unlock()
	if fn == nil {
		return []domain.Candidate{}, nil
	}
	return fn(ctx, query)
}

func (b *fakeBackend) GetVehicleSpecs(ctx context.Context, q domain.VehicleQuery) (*domain.VehicleSpec, error) {
	b.mu.Lock()
	b.specQueries = append(b.specQueries, q)
	fn := b.specs
	b.mu.Unlock()
	return fn(ctx, q)
}

func (b *fakeBackend) CalculateRoute(ctx context.Context, q domain.RouteQuery) (*domain.RouteResult, error) {
	b.mu.Lock()
	b.routeQueries = append(b.routeQueries, q)
	fn := b.route
	b.mu.Unlock()
	return fn(ctx, q)
}

func (b *fakeBackend) searches() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.searchQueries...)
}

func (b *fakeBackend) specCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.specQueries)
}

func (b *fakeBackend) routes() []domain.RouteQuery {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.RouteQuery(nil), b.routeQueries...)
}

type staticField string

func (f staticField) Value() string { return string(f) }

func float(v float64) *float64 { return &v }

func ramallah() domain.Candidate {
	return domain.Candidate{ID: "31.9,35.2", Label: "Ramallah", Latitude: float(31.9), Longitude: float(35.2)}
}
