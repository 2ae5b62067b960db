package ui

import (
	"log/slog"

	"roadmap/internal/domain"
)

// Field names of the two location inputs.
const (
	FieldOrigin      = "origin"
	FieldDestination = "destination"
)

// Elements are the parts of the page the components write to.
type Elements struct {
	VehicleSpecs Region
	Results      Region
	Map          Region
	Alerts       Alerter
}

type Options struct {
	Autocomplete AutocompleteOptions
	Map          MapOptions
	Messages     *Messages
}

// Page wires every component of one page instance. It is built once when the
// page is opened.
type Page struct {
	Map         *MapDisplay
	Origin      *Autocomplete
	Destination *Autocomplete
	Vehicle     *VehicleSpecFetcher
	Route       *RouteFetcher
	Messages    *Messages
}

func NewPage(backend Backend, el Elements, opts Options, logger *slog.Logger) *Page {
	messages := opts.Messages
	if messages == nil {
		messages = arabic
	}

	mapDisplay := NewMapDisplay(el.Map, opts.Map, logger)
	recenter := func(sel domain.LocationSelection) {
		mapDisplay.ShowPoint(sel.Latitude, sel.Longitude)
	}

	origin := NewAutocomplete(FieldOrigin, backend.SearchCities, opts.Autocomplete, recenter, logger)
	destination := NewAutocomplete(FieldDestination, backend.SearchCities, opts.Autocomplete, recenter, logger)
	vehicle := NewVehicleSpecFetcher(backend, el.VehicleSpecs, el.Alerts, messages, logger)

	route := NewRouteFetcher(backend, RouteFetcherConfig{
		Origin:      origin,
		Destination: destination,
		Results:     el.Results,
		Map:         mapDisplay,
		Alerts:      el.Alerts,
		Messages:    messages,
		Fuel:        vehicle.FuelProfile,
	}, logger)

	return &Page{
		Map:         mapDisplay,
		Origin:      origin,
		Destination: destination,
		Vehicle:     vehicle,
		Route:       route,
		Messages:    messages,
	}
}

// Field returns the autocomplete widget bound to name.
func (p *Page) Field(name string) (*Autocomplete, bool) {
	switch name {
	case FieldOrigin:
		return p.Origin, true
	case FieldDestination:
		return p.Destination, true
	default:
		return nil, false
	}
}
