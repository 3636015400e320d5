package metar

import (
	"strconv"

	"avweather/internal/match"
	"avweather/internal/patterns"
)

// Repetition caps.
const (
	maxClouds          = 4
	maxRVR             = 10
	maxPhenomena       = 10
	maxRecentGroups    = 3
	maxWindshearRunway = 4
)

// grammar holds one start-anchored regex per report group. Groups are
// written against the base fragments in the patterns package.
var grammar = patterns.NewCompiler([]patterns.Format{
	// Identification.
	{Name: "type", Pattern: `(?P<type>{REPORT_TYPE})(?:\s+(?P<cor>COR)\b)?`},
	{Name: "location", Pattern: `(?P<station>{STATION})`},
	{Name: "time", Pattern: `(?P<day>\d{2})(?P<hour>\d{2})(?P<minute>\d{2})Z`},
	{Name: "qualifier", Pattern: `(?P<qualifier>{QUALIFIER})`},

	// Wind, e.g. 24008KT, 240P49G60KT, VRB02KT, /////KT, 31015G27KT 280V350.
	{Name: "wind", Pattern: `(?P<direction>{WIND_DIR})(?P<above>P)?(?P<speed>{WIND_SPD})` +
		`(?:G(?P<gust_above>P)?(?P<gust>\d{2,3}))?(?P<unit>{WIND_UNIT})` +
		`(?:\s+(?P<from>{DEGREES})V(?P<to>{DEGREES}))?`},

	// Sky.
	{Name: "cavok", Pattern: `CAVOK`},
	{Name: "visibility", Pattern: `(?P<distance>{DISTANCE})(?P<ndv>NDV)?` +
		`(?:\s+(?P<min_distance>{DISTANCE})(?P<min_direction>{COMPASS}))?`},
	{Name: "rvr", Pattern: `R(?P<runway>{RUNWAY})/(?P<modifier>{RVR_MOD})?(?P<distance>{DISTANCE})` +
		`(?:V(?P<variation_modifier>{RVR_MOD})?(?P<variation>{DISTANCE}))?(?P<tendency>{TENDENCY})?`},
	{Name: "intensity", Pattern: `(?P<intensity>{INTENSITY})`},
	{Name: "precipitation", Pattern: `(?P<code>{PRECIPITATION})`},
	{Name: "obscuration", Pattern: `(?P<code>{OBSCURATION})`},
	{Name: "other", Pattern: `(?P<code>{OTHER})`},
	{Name: "cloud", Pattern: `(?P<amount>{CLOUD_AMOUNT})(?P<height>{HEIGHT})(?P<type>{CLOUD_TYPE})?`},
	{Name: "vertical_visibility", Pattern: `VV(?P<height>{HEIGHT})`},
	{Name: "sky_clear", Pattern: `(?P<sky>{SKY_CLEAR})`},

	// Temperature and pressure.
	{Name: "temperature", Pattern: `(?P<air_minus>{MINUS})?(?P<air>{TEMP})/(?P<dew_minus>{MINUS})?(?P<dew>{TEMP})`},
	{Name: "pressure", Pattern: `Q(?P<qnh>{QNH})`},

	// Supplementary.
	{Name: "recent", Pattern: `RE`},
	{Name: "windshear", Pattern: `WS`},
	{Name: "windshear_all", Pattern: `ALL\s+RWY`},
	{Name: "windshear_runway", Pattern: `(?:WS\s+)?R(?:WY)?(?P<runway>{RUNWAY})`},
	{Name: "sea_state", Pattern: `W(?P<minus>{MINUS})?(?P<temp>{TEMP})/S(?P<state>{SEA_STATE})`},
}, nil).MustCompile()

// Field matchers, one per report group.
var (
	typeField      = match.Token(grammar.Regexp("type"), projectType)
	locationField  = match.Token(grammar.Regexp("location"), text("station"))
	timeField      = match.Token(grammar.Regexp("time"), projectTime)
	qualifierField = match.Token(grammar.Regexp("qualifier"), text("qualifier"))

	windField = match.Token(grammar.Regexp("wind"), projectWind)

	cavokField        = match.Literal(grammar.Regexp("cavok"))
	visibilityField   = match.Token(grammar.Regexp("visibility"), projectVisibility)
	rvrField          = match.Repeat(match.Token(grammar.Regexp("rvr"), projectRVR), maxRVR)
	intensityField    = match.Field(grammar.Regexp("intensity"), text("intensity"))
	precipitationCode = match.Glued(grammar.Regexp("precipitation"), text("code"))
	obscurationCode   = match.Glued(grammar.Regexp("obscuration"), text("code"))
	otherCode         = match.Glued(grammar.Regexp("other"), text("code"))
	cloudsField       = match.Repeat(match.Token(grammar.Regexp("cloud"), projectCloud), maxClouds)
	vvField           = match.Token(grammar.Regexp("vertical_visibility"), projectVerticalVisibility)
	skyClearField     = match.Token(grammar.Regexp("sky_clear"), text("sky"))

	temperatureField = match.Token(grammar.Regexp("temperature"), projectTemperature)
	pressureField    = match.Token(grammar.Regexp("pressure"), projectPressure)

	recentHeader     = match.Field(grammar.Regexp("recent"), text(""))
	windshearHeader  = match.Literal(grammar.Regexp("windshear"))
	windshearAll     = match.Literal(grammar.Regexp("windshear_all"))
	windshearRunways = match.Repeat(match.Token(grammar.Regexp("windshear_runway"), text("runway")), maxWindshearRunway)
	seaStateField    = match.Token(grammar.Regexp("sea_state"), projectSeaState)
)

// text projects a single capture verbatim.
func text(name string) func(match.Captures) (string, bool) {
	return func(c match.Captures) (string, bool) {
		return c.Get(name), true
	}
}

func projectType(c match.Captures) (string, bool) {
	if c.Has("cor") {
		return c.Get("type") + " COR", true
	}
	return c.Get("type"), true
}

func projectTime(c match.Captures) (ObservationTime, bool) {
	day, _ := c.Int("day")
	hour, _ := c.Int("hour")
	minute, _ := c.Int("minute")
	if day < 1 || day > 31 || hour > 23 || minute > 59 {
		return ObservationTime{}, false
	}
	return ObservationTime{Day: day, Hour: hour, Minute: minute}, true
}

func projectWind(c match.Captures) (Wind, bool) {
	w := Wind{
		Speed: speed(c.Get("speed"), c.Has("above")),
		Unit:  c.Get("unit"),
	}

	if deg, ok := c.Int("direction"); ok {
		if deg > 360 {
			return Wind{}, false
		}
		w.Direction.Degrees = deg
	} else {
		w.Direction.Marker = c.Get("direction")
	}

	if c.Has("gust") {
		g := speed(c.Get("gust"), c.Has("gust_above"))
		w.Gust = &g
	}

	if c.Has("from") {
		from, _ := c.Int("from")
		to, _ := c.Int("to")
		if from > 360 || to > 360 {
			return Wind{}, false
		}
		w.VariableFrom, w.VariableTo = &from, &to
	}

	return w, true
}

func speed(raw string, above bool) Speed {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return Speed{Above: above, Marker: raw}
	}
	return Speed{Value: n, Above: above}
}

func projectVisibility(c match.Captures) (Visibility, bool) {
	d, _ := c.Int("distance")
	if d == 9999 {
		d = 10000
	}
	return Visibility{
		Distance:     d,
		NDV:          c.Has("ndv"),
		MinDistance:  c.IntPtr("min_distance"),
		MinDirection: c.Get("min_direction"),
	}, true
}

func projectRVR(c match.Captures) (RunwayVisualRange, bool) {
	d, _ := c.Int("distance")
	return RunwayVisualRange{
		Runway:            c.Get("runway"),
		Distance:          d,
		Modifier:          c.Get("modifier"),
		Variation:         c.IntPtr("variation"),
		VariationModifier: c.Get("variation_modifier"),
		Tendency:          c.Get("tendency"),
	}, true
}

// height converts a three-digit hundreds-of-feet group to feet.
// /// reads as -1.
func height(c match.Captures) int {
	h, ok := c.Int("height")
	if !ok {
		return -1
	}
	return h * 100
}

func projectCloud(c match.Captures) (Cloud, bool) {
	return Cloud{
		Amount: c.Get("amount"),
		Height: height(c),
		Type:   c.Get("type"),
	}, true
}

func projectVerticalVisibility(c match.Captures) (int, bool) {
	return height(c), true
}

func projectTemperature(c match.Captures) (Temperature, bool) {
	return Temperature{
		Air:      signed(c, "air", "air_minus"),
		DewPoint: signed(c, "dew", "dew_minus"),
	}, true
}

func signed(c match.Captures, value, minus string) int {
	n, _ := c.Int(value)
	if c.Has(minus) {
		return -n
	}
	return n
}

func projectPressure(c match.Captures) (int, bool) {
	return c.Int("qnh")
}

func projectSeaState(c match.Captures) (SeaState, bool) {
	state, _ := c.Int("state")
	return SeaState{
		Temperature: signed(c, "temp", "minus"),
		State:       state,
	}, true
}
