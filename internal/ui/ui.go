// Package ui holds the page components: the location autocomplete widgets, the
// vehicle-spec and route flows, their renderers and the map display. Components
// never look anything up globally; they are built once with the display regions
// they write to.
package ui

import (
	"context"
	"errors"
	"html/template"

	"roadmap/internal/domain"
)

var (
	// ErrInputTooShort is returned for search terms below the minimum length.
	ErrInputTooShort = errors.New("search term too short")
	// ErrSuperseded is returned when a newer query replaced a pending one.
	ErrSuperseded = errors.New("superseded by a newer query")
	// ErrUnknownCandidate is returned when selecting an id that was never shown.
	ErrUnknownCandidate = errors.New("unknown candidate")
)

// Region is a display area of the page. Every Replace discards what the region
// showed before.
type Region interface {
	Replace(markup template.HTML)
}

// Alerter shows a blocking validation prompt.
type Alerter interface {
	Alert(message string)
}

// Field is a form input whose current value can be read.
type Field interface {
	Value() string
}

// SearchFunc queries the city search endpoint.
type SearchFunc func(ctx context.Context, query string) ([]domain.Candidate, error)

type VehicleBackend interface {
	GetVehicleSpecs(ctx context.Context, q domain.VehicleQuery) (*domain.VehicleSpec, error)
}

type RouteBackend interface {
	CalculateRoute(ctx context.Context, q domain.RouteQuery) (*domain.RouteResult, error)
}

// Backend is everything a Page needs from the route-planning service.
type Backend interface {
	SearchCities(ctx context.Context, query string) ([]domain.Candidate, error)
	VehicleBackend
	RouteBackend
}
