package ui

import (
	"golang.org/x/text/language"
)

// Messages is the text catalog of one page locale.
type Messages struct {
	Lang string
	Dir  string

	Title              string
	SearchPlaceholder  string
	MinimumInputHint   string // fmt verb: minimum length
	NoResults          string
	OriginLabel        string
	DestinationLabel   string
	RouteTypeLabel     string
	RouteTypes         map[string]string
	CalculateRoute     string
	BrandLabel         string
	ModelLabel         string
	YearLabel          string
	GetVehicleSpecs    string
	VehicleSpecsTitle  string
	RouteResultsTitle  string
	MapTitle           string
	VehicleIncomplete  string
	RouteIncomplete    string
	LoadingVehicle     string
	LoadingRoute       string
	VehicleFailed      string
	RouteFailed        string
	SearchFailed       string

	BasicSpecs       string
	Brand            string
	Model            string
	Year             string
	FuelConsumption  string
	UnitConsumption  string
	TechnicalSpecs   string
	EngineSize       string
	UnitEngine       string
	Cylinders        string
	Transmission     string
	FuelType         string
	Performance      string
	Horsepower       string
	UnitHorsepower   string
	Torque           string
	UnitTorque       string
	Acceleration     string
	UnitSeconds      string
	TopSpeed         string
	UnitSpeed        string
	FuelTank         string
	UnitLiters       string
	Safety           string
	SafetyRating     string
	Airbags          string
	SafetySystems    string
	Maintenance      string
	OilChange        string
	TireChange       string
	PeriodicService  string
	Every            string
	Or               string

	RouteInfo    string
	Distance     string
	UnitDistance string
	Duration     string
	Traffic      string
	FuelCost     string
	FuelNeeded   string
	TotalCost    string
	Currency     string
}

var arabic = &Messages{
	Lang: "ar",
	Dir:  "rtl",

	Title:             "تخطيط المسار ومواصفات المركبة",
	SearchPlaceholder: "ابحث عن مدينة أو منطقة...",
	MinimumInputHint:  "الرجاء إدخال %d أحرف أو أكثر",
	NoResults:         "لا توجد نتائج",
	OriginLabel:       "نقطة البداية",
	DestinationLabel:  "نقطة النهاية",
	RouteTypeLabel:    "نوع المسار",
	RouteTypes: map[string]string{
		"fastest":     "الأسرع",
		"shortest":    "الأقصر",
		"recommended": "الموصى به",
		"west_bank":   "الضفة الغربية",
	},
	CalculateRoute:    "احسب المسار",
	BrandLabel:        "الماركة",
	ModelLabel:        "الموديل",
	YearLabel:         "سنة الصنع",
	GetVehicleSpecs:   "جلب المواصفات",
	VehicleSpecsTitle: "مواصفات المركبة",
	RouteResultsTitle: "نتائج المسار",
	MapTitle:          "الخريطة",
	VehicleIncomplete: "الرجاء إدخال جميع بيانات المركبة",
	RouteIncomplete:   "الرجاء اختيار نقاط البداية والنهاية",
	LoadingVehicle:    "جاري جلب مواصفات المركبة...",
	LoadingRoute:      "جاري حساب المسار...",
	VehicleFailed:     "حدث خطأ أثناء جلب مواصفات المركبة",
	RouteFailed:       "حدث خطأ أثناء حساب المسار",
	SearchFailed:      "حدث خطأ أثناء البحث عن المدن",

	BasicSpecs:      "المواصفات الأساسية",
	Brand:           "الماركة",
	Model:           "الموديل",
	Year:            "سنة الصنع",
	FuelConsumption: "استهلاك الوقود",
	UnitConsumption: "لتر/100 كم",
	TechnicalSpecs:  "المواصفات الفنية",
	EngineSize:      "حجم المحرك",
	UnitEngine:      "سي سي",
	Cylinders:       "عدد الأسطوانات",
	Transmission:    "ناقل الحركة",
	FuelType:        "نوع الوقود",
	Performance:     "الأداء",
	Horsepower:      "القوة الحصانية",
	UnitHorsepower:  "حصان",
	Torque:          "عزم الدوران",
	UnitTorque:      "نيوتن متر",
	Acceleration:    "التسارع (0-100 كم/س)",
	UnitSeconds:     "ثانية",
	TopSpeed:        "السرعة القصوى",
	UnitSpeed:       "كم/س",
	FuelTank:        "سعة خزان الوقود",
	UnitLiters:      "لتر",
	Safety:          "السلامة",
	SafetyRating:    "تقييم السلامة",
	Airbags:         "عدد الوسائد الهوائية",
	SafetySystems:   "أنظمة السلامة",
	Maintenance:     "جدول الصيانة",
	OilChange:       "تغيير الزيت",
	TireChange:      "تغيير الإطارات",
	PeriodicService: "الفحص الدوري",
	Every:           "كل",
	Or:              "أو",

	RouteInfo:    "معلومات المسار",
	Distance:     "المسافة",
	UnitDistance: "كم",
	Duration:     "المدة المتوقعة",
	Traffic:      "حالة المرور",
	FuelCost:     "تكلفة الوقود",
	FuelNeeded:   "كمية الوقود المطلوبة",
	TotalCost:    "التكلفة الإجمالية",
	Currency:     "₪",
}

var english = &Messages{
	Lang: "en",
	Dir:  "ltr",

	Title:             "Route planning and vehicle specifications",
	SearchPlaceholder: "Search for a city or region...",
	MinimumInputHint:  "Please enter %d or more characters",
	NoResults:         "No results found",
	OriginLabel:       "Origin",
	DestinationLabel:  "Destination",
	RouteTypeLabel:    "Route type",
	RouteTypes: map[string]string{
		"fastest":     "Fastest",
		"shortest":    "Shortest",
		"recommended": "Recommended",
		"west_bank":   "West Bank",
	},
	CalculateRoute:    "Calculate route",
	BrandLabel:        "Brand",
	ModelLabel:        "Model",
	YearLabel:         "Year",
	GetVehicleSpecs:   "Get specifications",
	VehicleSpecsTitle: "Vehicle specifications",
	RouteResultsTitle: "Route results",
	MapTitle:          "Map",
	VehicleIncomplete: "Please enter the brand, model and year",
	RouteIncomplete:   "Please choose both an origin and a destination",
	LoadingVehicle:    "Fetching vehicle specifications...",
	LoadingRoute:      "Calculating route...",
	VehicleFailed:     "Something went wrong while fetching the vehicle specifications",
	RouteFailed:       "Something went wrong while calculating the route",
	SearchFailed:      "Something went wrong while searching for cities",

	BasicSpecs:      "Basic specifications",
	Brand:           "Brand",
	Model:           "Model",
	Year:            "Year",
	FuelConsumption: "Fuel consumption",
	UnitConsumption: "L/100 km",
	TechnicalSpecs:  "Technical specifications",
	EngineSize:      "Engine size",
	UnitEngine:      "cc",
	Cylinders:       "Cylinders",
	Transmission:    "Transmission",
	FuelType:        "Fuel type",
	Performance:     "Performance",
	Horsepower:      "Horsepower",
	UnitHorsepower:  "hp",
	Torque:          "Torque",
	UnitTorque:      "Nm",
	Acceleration:    "Acceleration (0-100 km/h)",
	UnitSeconds:     "s",
	TopSpeed:        "Top speed",
	UnitSpeed:       "km/h",
	FuelTank:        "Fuel tank",
	UnitLiters:      "L",
	Safety:          "Safety",
	SafetyRating:    "Safety rating",
	Airbags:         "Airbags",
	SafetySystems:   "Safety systems",
	Maintenance:     "Maintenance schedule",
	OilChange:       "Oil change",
	TireChange:      "Tire change",
	PeriodicService: "Periodic service",
	Every:           "every",
	Or:              "or",

	RouteInfo:    "Route information",
	Distance:     "Distance",
	UnitDistance: "km",
	Duration:     "Expected duration",
	Traffic:      "Traffic",
	FuelCost:     "Fuel cost",
	FuelNeeded:   "Fuel needed",
	TotalCost:    "Total cost",
	Currency:     "₪",
}

var (
	catalogs = []*Messages{arabic, english}
	matcher  = language.NewMatcher([]language.Tag{language.Arabic, language.English})
)

// Locale returns the catalog for a language code, Arabic when unknown.
func Locale(code string) *Messages {
	for _, m := range catalogs {
		if m.Lang == code {
			return m
		}
	}
	return arabic
}

// MatchLocale picks the catalog that best fits an Accept-Language header.
// fallback is used when the header is empty or unparseable.
func MatchLocale(acceptLanguage, fallback string) *Messages {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Locale(fallback)
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Locale(fallback)
	}
	return catalogs[index]
}
