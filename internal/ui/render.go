package ui

import (
	"bytes"
	"fmt"
	"html/template"

	"roadmap/internal/domain"
)

var fragments = template.Must(template.New("fragments").Funcs(template.FuncMap{
	"num": domain.FormatFloat,
}).Parse(`
{{define "loading"}}<div class="loading">{{.}}</div>{{end}}

{{define "error"}}<div class="error">{{.}}</div>{{end}}

{{define "vehicle"}}{{$l := .L}}{{with .Spec}}
<div class="specs-section">
  <h3>{{$l.BasicSpecs}}</h3>
  <p><strong>{{$l.Brand}}:</strong> {{.Brand}}</p>
  <p><strong>{{$l.Model}}:</strong> {{.Model}}</p>
  <p><strong>{{$l.Year}}:</strong> {{.Year}}</p>
  <p><strong>{{$l.FuelConsumption}}:</strong> {{num .FuelConsumption}} {{$l.UnitConsumption}}</p>
</div>
<div class="specs-section">
  <h3>{{$l.TechnicalSpecs}}</h3>
  <p><strong>{{$l.EngineSize}}:</strong> {{.EngineSize}} {{$l.UnitEngine}}</p>
  <p><strong>{{$l.Cylinders}}:</strong> {{.Cylinders}}</p>
  <p><strong>{{$l.Transmission}}:</strong> {{.Transmission}}</p>
  <p><strong>{{$l.FuelType}}:</strong> {{.FuelType}}</p>
</div>
<div class="specs-section">
  <h3>{{$l.Performance}}</h3>
  <p><strong>{{$l.Horsepower}}:</strong> {{.Horsepower}} {{$l.UnitHorsepower}}</p>
  <p><strong>{{$l.Torque}}:</strong> {{.Torque}} {{$l.UnitTorque}}</p>
  <p><strong>{{$l.Acceleration}}:</strong> {{num .Acceleration}} {{$l.UnitSeconds}}</p>
  <p><strong>{{$l.TopSpeed}}:</strong> {{.TopSpeed}} {{$l.UnitSpeed}}</p>
  <p><strong>{{$l.FuelTank}}:</strong> {{.FuelTank}} {{$l.UnitLiters}}</p>
</div>
<div class="specs-section">
  <h3>{{$l.Safety}}</h3>
  <p><strong>{{$l.SafetyRating}}:</strong> {{.SafetyRating}}</p>
  <p><strong>{{$l.Airbags}}:</strong> {{.Airbags}}</p>
  <p><strong>{{$l.SafetySystems}}:</strong> {{.SafetySystems}}</p>
</div>
<div class="specs-section">
  <h3>{{$l.Maintenance}}</h3>
  <p><strong>{{$l.OilChange}}:</strong> {{$l.Every}} {{.Maintenance.OilChange.Distance}} {{$l.Or}} {{.Maintenance.OilChange.Time}}</p>
  <p><strong>{{$l.TireChange}}:</strong> {{$l.Every}} {{.Maintenance.TireChange.Distance}} {{$l.Or}} {{.Maintenance.TireChange.Time}}</p>
  <p><strong>{{$l.PeriodicService}}:</strong> {{$l.Every}} {{.Maintenance.Service.Distance}} {{$l.Or}} {{.Maintenance.Service.Time}}</p>
</div>
{{end}}{{end}}

{{define "route"}}{{$l := .L}}{{with .Route}}
<div class="route-info">
  <h3>{{$l.RouteInfo}}</h3>
  <p><strong>{{$l.Distance}}:</strong> {{.Distance}} {{$l.UnitDistance}}</p>
  <p><strong>{{$l.Duration}}:</strong> {{.Duration}}</p>
  <p><strong>{{$l.Traffic}}:</strong> <span class="traffic-level {{.TrafficClass}}">{{if .TrafficLevel}}{{.TrafficLevel}}{{else}}{{.TrafficClass}}{{end}}</span></p>
</div>
{{with .FuelCost}}
<div class="fuel-cost">
  <h3>{{$l.FuelCost}}</h3>
  <p><strong>{{$l.FuelNeeded}}:</strong> {{num .FuelNeededLiters}} {{$l.UnitLiters}}</p>
  <p><strong>{{$l.TotalCost}}:</strong> {{num .TotalCost}} {{$l.Currency}}</p>
</div>
{{end}}{{end}}{{end}}

{{define "mapframe"}}<iframe src="{{.}}" style="width: 100%; height: 400px; border: none;" loading="lazy"></iframe>{{end}}
`))

func render(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// RenderVehicleSpec lays out a specification in its five fixed sections.
func RenderVehicleSpec(spec *domain.VehicleSpec, l *Messages) (template.HTML, error) {
	return render("vehicle", struct {
		L    *Messages
		Spec *domain.VehicleSpec
	}{l, spec})
}

// RenderRoute shows distance, duration and the traffic badge, followed by the
// fuel-cost section when the backend priced the trip.
func RenderRoute(route *domain.RouteResult, l *Messages) (template.HTML, error) {
	return render("route", struct {
		L     *Messages
		Route *domain.RouteResult
	}{l, route})
}

func RenderError(message string) template.HTML {
	markup, err := render("error", message)
	if err != nil {
		return template.HTML(`<div class="error"></div>`)
	}
	return markup
}

func RenderLoading(message string) template.HTML {
	markup, err := render("loading", message)
	if err != nil {
		return template.HTML(`<div class="loading"></div>`)
	}
	return markup
}

func renderMapFrame(src string) (template.HTML, error) {
	return render("mapframe", src)
}
