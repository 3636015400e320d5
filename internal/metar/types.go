package metar

import "time"

// Metar is one decoded METAR or SPECI report.
type Metar struct {
	Type      string          `json:"type" yaml:"type"`
	Station   string          `json:"station" yaml:"station"`
	Time      ObservationTime `json:"time" yaml:"time"`
	Qualifier string          `json:"qualifier,omitempty" yaml:"qualifier,omitempty"`
	Report    *Report         `json:"report,omitempty" yaml:"report,omitempty"`
	Unmatched string          `json:"unmatched" yaml:"unmatched"`
}

// ObservationTime is the DDHHMMZ group. Month and year are not reported.
type ObservationTime struct {
	Day    int `json:"day" yaml:"day"`
	Hour   int `json:"hour" yaml:"hour"`
	Minute int `json:"minute" yaml:"minute"`
}

// Resolve places the observation in the latest month, up to the month of
// ref (UTC), that has the reported day and does not put the observation
// more than one day after ref. A day no month can hold is normalised
// within the month of ref.
func (t ObservationTime) Resolve(ref time.Time) time.Time {
	ref = ref.UTC()
	for back := 0; back < 12; back++ {
		obs := time.Date(ref.Year(), ref.Month()-time.Month(back), t.Day, t.Hour, t.Minute, 0, 0, time.UTC)
		if obs.Day() == t.Day && obs.Sub(ref) <= 24*time.Hour {
			return obs
		}
	}
	return time.Date(ref.Year(), ref.Month(), t.Day, t.Hour, t.Minute, 0, 0, time.UTC)
}

// Report is the body of a report that is not NIL.
type Report struct {
	Wind          *Wind         `json:"wind,omitempty" yaml:"wind,omitempty"`
	Sky           Sky           `json:"sky" yaml:"sky"`
	Temperature   *Temperature  `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	Pressure      *int          `json:"pressure,omitempty" yaml:"pressure,omitempty"` // QNH, hPa
	Supplementary Supplementary `json:"supplementary" yaml:"supplementary"`
	Remarks       *string       `json:"remarks,omitempty" yaml:"remarks,omitempty"` // not decoded
}

// Wind is the surface wind group.
type Wind struct {
	Direction    Direction `json:"direction" yaml:"direction"`
	Speed        Speed     `json:"speed" yaml:"speed"`
	Gust         *Speed    `json:"gust,omitempty" yaml:"gust,omitempty"`
	Unit         string    `json:"unit" yaml:"unit"`
	VariableFrom *int      `json:"variable_from,omitempty" yaml:"variable_from,omitempty"`
	VariableTo   *int      `json:"variable_to,omitempty" yaml:"variable_to,omitempty"`
}

// Direction is a wind direction in degrees. Marker holds VRB or /// when
// no numeric direction was reported, and Degrees is then zero.
type Direction struct {
	Degrees int    `json:"degrees" yaml:"degrees"`
	Marker  string `json:"marker,omitempty" yaml:"marker,omitempty"`
}

// Variable reports whether the direction was given as VRB.
func (d Direction) Variable() bool { return d.Marker == "VRB" }

// Speed is a wind or gust speed. Above is set for the P prefix (speed
// beyond the reportable range). Marker holds // for an unobserved speed.
type Speed struct {
	Value  int    `json:"value" yaml:"value"`
	Above  bool   `json:"above,omitempty" yaml:"above,omitempty"`
	Marker string `json:"marker,omitempty" yaml:"marker,omitempty"`
}

// Sky is either CAVOK or the explicit visibility, RVR, weather and cloud
// groups. When CAVOK is set every other field is empty.
type Sky struct {
	CAVOK      bool                `json:"cavok,omitempty" yaml:"cavok,omitempty"`
	Visibility *Visibility         `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	RVR        []RunwayVisualRange `json:"rvr,omitempty" yaml:"rvr,omitempty"`
	Weather    *Weather            `json:"weather,omitempty" yaml:"weather,omitempty"`
	Clouds     *CloudCover         `json:"clouds,omitempty" yaml:"clouds,omitempty"`
}

// Runway returns the first RVR group reported for the given runway.
func (s Sky) Runway(id string) (RunwayVisualRange, bool) {
	for _, r := range s.RVR {
		if r.Runway == id {
			return r, true
		}
	}
	return RunwayVisualRange{}, false
}

// Visibility is the prevailing visibility in metres. 9999 is reported as
// 10000 (10 km or more).
type Visibility struct {
	Distance     int    `json:"distance" yaml:"distance"`
	NDV          bool   `json:"ndv,omitempty" yaml:"ndv,omitempty"`
	MinDistance  *int   `json:"min_distance,omitempty" yaml:"min_distance,omitempty"`
	MinDirection string `json:"min_direction,omitempty" yaml:"min_direction,omitempty"`
}

// RunwayVisualRange is one RVR group, distances in metres.
type RunwayVisualRange struct {
	Runway            string `json:"runway" yaml:"runway"`
	Distance          int    `json:"distance" yaml:"distance"`
	Modifier          string `json:"modifier,omitempty" yaml:"modifier,omitempty"` // P or M
	Variation         *int   `json:"variation,omitempty" yaml:"variation,omitempty"`
	VariationModifier string `json:"variation_modifier,omitempty" yaml:"variation_modifier,omitempty"`
	Tendency          string `json:"tendency,omitempty" yaml:"tendency,omitempty"` // U, D or N
}

// Weather is the present weather. Codes keep their order in the report.
type Weather struct {
	Precipitation *Phenomena `json:"precipitation,omitempty" yaml:"precipitation,omitempty"`
	Obscuration   []string   `json:"obscuration,omitempty" yaml:"obscuration,omitempty"`
	Other         *Phenomena `json:"other,omitempty" yaml:"other,omitempty"`
}

// Phenomena is an intensity (+, -, VC or empty) and the codes it applies to.
type Phenomena struct {
	Intensity string   `json:"intensity" yaml:"intensity"`
	Codes     []string `json:"codes" yaml:"codes"`
}

// CloudCover holds exactly one of: cloud layers, a vertical visibility,
// or a sky-clear keyword.
type CloudCover struct {
	Layers             []Cloud `json:"layers,omitempty" yaml:"layers,omitempty"`
	VerticalVisibility *int    `json:"vertical_visibility,omitempty" yaml:"vertical_visibility,omitempty"`
	SkyClear           string  `json:"sky_clear,omitempty" yaml:"sky_clear,omitempty"`
}

// Cloud is one cloud layer. Height is in feet, -1 when reported as ///.
type Cloud struct {
	Amount string `json:"amount" yaml:"amount"`
	Height int    `json:"height" yaml:"height"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Temperature holds air temperature and dew point in degrees Celsius.
type Temperature struct {
	Air      int `json:"air" yaml:"air"`
	DewPoint int `json:"dew_point" yaml:"dew_point"`
}

// Supplementary is the information following QNH.
type Supplementary struct {
	RecentWeather []string     `json:"recent_weather,omitempty" yaml:"recent_weather,omitempty"`
	Windshear     *Windshear   `json:"windshear,omitempty" yaml:"windshear,omitempty"`
	SeaState      *SeaState    `json:"sea_state,omitempty" yaml:"sea_state,omitempty"`
	RunwayState   *RunwayState `json:"runway_state,omitempty" yaml:"runway_state,omitempty"`
}

// Windshear is either WS ALL RWY or a list of runways.
type Windshear struct {
	AllRunways bool     `json:"all_runways,omitempty" yaml:"all_runways,omitempty"`
	Runways    []string `json:"runways,omitempty" yaml:"runways,omitempty"`
}

// SeaState is the sea surface temperature (°C) and WMO state of the sea.
type SeaState struct {
	Temperature int `json:"temperature" yaml:"temperature"`
	State       int `json:"state" yaml:"state"`
}

// RunwayState is reserved. Runway state groups are not decoded and the
// field is always nil.
type RunwayState struct{}
