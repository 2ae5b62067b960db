package domain

import "strings"

// VehicleQuery identifies the vehicle whose specification is requested.
type VehicleQuery struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  string `json:"year"`
}

// Complete reports whether brand, model and year are all filled in.
func (q VehicleQuery) Complete() bool {
	return strings.TrimSpace(q.Brand) != "" &&
		strings.TrimSpace(q.Model) != "" &&
		strings.TrimSpace(q.Year) != ""
}

// VehicleSpec is the specification record returned by the lookup endpoint.
type VehicleSpec struct {
	Brand           string              `json:"brand"`
	Model           string              `json:"model"`
	Year            Text                `json:"year"`
	FuelConsumption float64             `json:"fuel_consumption"`
	EngineSize      int                 `json:"engine_size"`
	Cylinders       int                 `json:"cylinders"`
	Transmission    string              `json:"transmission"`
	FuelType        string              `json:"fuel_type"`
	Horsepower      int                 `json:"horsepower"`
	Torque          int                 `json:"torque"`
	Acceleration    float64             `json:"acceleration"`
	TopSpeed        int                 `json:"top_speed"`
	FuelTank        int                 `json:"fuel_tank"`
	SafetyRating    Text                `json:"safety_rating"`
	Airbags         int                 `json:"airbags"`
	SafetySystems   string              `json:"safety_systems"`
	Maintenance     MaintenanceSchedule `json:"maintenance"`
}

// MaintenanceSchedule lists the recommended service intervals.
type MaintenanceSchedule struct {
	OilChange  ServiceInterval `json:"oil_change"`
	TireChange ServiceInterval `json:"tire_change"`
	Service    ServiceInterval `json:"service"`
}

// ServiceInterval is "every Distance or Time, whichever comes first".
type ServiceInterval struct {
	Distance Text `json:"distance"`
	Time     Text `json:"time"`
}
