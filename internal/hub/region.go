package hub

import (
	"html/template"
	"log/slog"
)

// Names of the page regions the browser knows how to replace.
const (
	RegionVehicleSpecs = "vehicleSpecs"
	RegionResults      = "results"
	RegionMap          = "map"
)

// Region replaces one named region of a session's page.
type Region struct {
	client *Client
	name   string
	logger *slog.Logger
}

func NewRegion(client *Client, name string, logger *slog.Logger) *Region {
	return &Region{client: client, name: name, logger: logger}
}

func (r *Region) Replace(markup template.HTML) {
	err := r.client.SendMessage(TypeRegion, RegionPayload{Region: r.name, HTML: string(markup)})
	if err != nil {
		r.logger.Warn("region update dropped", "region", r.name, "error", err)
	}
}

// Alerter shows blocking notifications in a session's browser.
type Alerter struct {
	client *Client
	logger *slog.Logger
}

func NewAlerter(client *Client, logger *slog.Logger) *Alerter {
	return &Alerter{client: client, logger: logger}
}

func (a *Alerter) Alert(message string) {
	if err := a.client.SendMessage(TypeAlert, AlertPayload{Message: message}); err != nil {
		a.logger.Warn("alert dropped", "error", err)
	}
}
