package domain

import (
	"encoding/json"
	"testing"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Coordinates
		wantErr bool
	}{
		{name: "plain pair", in: "31.9,35.2", want: Coordinates{Latitude: 31.9, Longitude: 35.2}},
		{name: "spaces", in: " 31.9 , 35.2 ", want: Coordinates{Latitude: 31.9, Longitude: 35.2}},
		{name: "negative", in: "-33.86,151.2", want: Coordinates{Latitude: -33.86, Longitude: 151.2}},
		{name: "single value", in: "31.9", wantErr: true},
		{name: "three values", in: "1,2,3", wantErr: true},
		{name: "not a number", in: "abc,35.2", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoordinates(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCoordinates(%q): expected error, got %+v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCoordinates(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseCoordinates(%q): got %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCoordinatesStringRoundTrip(t *testing.T) {
	c := Coordinates{Latitude: 31.9, Longitude: 35.2}
	if got := c.String(); got != "31.9,35.2" {
		t.Fatalf("String: got %q, want %q", got, "31.9,35.2")
	}
	back, err := ParseCoordinates(c.String())
	if err != nil {
		t.Fatalf("ParseCoordinates: %v", err)
	}
	if back != c {
		t.Errorf("round trip: got %+v, want %+v", back, c)
	}
}

func TestCandidateUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantID    string
		wantLabel string
		wantValue string
		located   bool
	}{
		{
			name:      "label field",
			body:      `{"label":"Ramallah","latitude":31.9,"longitude":35.2}`,
			wantLabel: "Ramallah",
			wantValue: "31.9,35.2",
			located:   true,
		},
		{
			name:      "select2 shape",
			body:      `{"id":"31.9,35.2","text":"Ramallah, West Bank","latitude":31.9,"longitude":35.2}`,
			wantID:    "31.9,35.2",
			wantLabel: "Ramallah, West Bank",
			wantValue: "31.9,35.2",
			located:   true,
		},
		{
			name:      "numeric id without coordinates",
			body:      `{"id":42,"label":"Somewhere"}`,
			wantID:    "42",
			wantLabel: "Somewhere",
			wantValue: "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Candidate
			if err := json.Unmarshal([]byte(tt.body), &c); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if c.ID != tt.wantID {
				t.Errorf("ID: got %q, want %q", c.ID, tt.wantID)
			}
			if c.Label != tt.wantLabel {
				t.Errorf("Label: got %q, want %q", c.Label, tt.wantLabel)
			}
			if c.Value() != tt.wantValue {
				t.Errorf("Value: got %q, want %q", c.Value(), tt.wantValue)
			}
			if _, ok := c.Selection(); ok != tt.located {
				t.Errorf("Selection ok: got %v, want %v", ok, tt.located)
			}
		})
	}
}

func TestTextAcceptsStringsAndNumbers(t *testing.T) {
	var r RouteResult
	body := `{"distance":12.4,"duration":"20 min","traffic_level":"HIGH"}`
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r.Distance != "12.4" {
		t.Errorf("Distance: got %q, want %q", r.Distance, "12.4")
	}
	if r.Duration != "20 min" {
		t.Errorf("Duration: got %q, want %q", r.Duration, "20 min")
	}
	if r.TrafficClass() != "high" {
		t.Errorf("TrafficClass: got %q, want %q", r.TrafficClass(), "high")
	}
	if r.HasGeometry() {
		t.Error("HasGeometry: got true for a result without geometry")
	}
}

func TestVehicleQueryComplete(t *testing.T) {
	tests := []struct {
		q    VehicleQuery
		want bool
	}{
		{VehicleQuery{Brand: "Toyota", Model: "Corolla", Year: "2020"}, true},
		{VehicleQuery{Model: "Corolla", Year: "2020"}, false},
		{VehicleQuery{Brand: "Toyota", Year: "2020"}, false},
		{VehicleQuery{Brand: "Toyota", Model: "Corolla", Year: "  "}, false},
	}
	for _, tt := range tests {
		if got := tt.q.Complete(); got != tt.want {
			t.Errorf("Complete(%+v): got %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestRouteResultHasGeometry(t *testing.T) {
	tests := []struct {
		geometry string
		want     bool
	}{
		{``, false},
		{`null`, false},
		{`[]`, false},
		{` [ ] `, false},
		{`{}`, false},
		{`[[31.9,35.2],[32.1,35.0]]`, true},
		{`{"type":"LineString","coordinates":[[35.2,31.9],[35.0,32.1]]}`, true},
	}
	for _, tt := range tests {
		r := RouteResult{Geometry: json.RawMessage(tt.geometry)}
		if got := r.HasGeometry(); got != tt.want {
			t.Errorf("HasGeometry(%q): got %v, want %v", tt.geometry, got, tt.want)
		}
	}
}
