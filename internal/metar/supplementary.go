package metar

import (
	"avweather/internal/match"
)

var recentGroups = match.Repeat(match.Matcher[[]string](recentGroup), maxRecentGroups)

// recentGroup reads one RE group such as RETSRA or REFZDZ. The codes are
// read as precipitation, then obscuration, then other phenomena.
func recentGroup(tail string) ([]string, bool, string) {
	_, ok, rest := recentHeader(tail)
	if !ok || match.AtBoundary(rest) {
		return nil, false, tail
	}

	var found []string
	for _, list := range []match.Matcher[[]string]{precipitationCodes, obscurationCodes, otherCodes} {
		got, _, next := list(rest)
		found = append(found, got...)
		rest = next
	}
	if len(found) == 0 || !match.AtBoundary(rest) {
		return nil, false, tail
	}
	return found, true, rest
}

// recentWeatherField flattens up to three RE groups into one code list.
func recentWeatherField(tail string) ([]string, bool, string) {
	groups, _, rest := recentGroups(tail)
	var found []string
	for _, g := range groups {
		found = append(found, g...)
	}
	return found, len(found) > 0, rest
}

// windshearField reads WS ALL RWY or WS followed by up to four runways,
// e.g. WS R03 or WS RWY21L WS R03.
func windshearField(tail string) (Windshear, bool, string) {
	_, ok, rest := windshearHeader(tail)
	if !ok {
		return Windshear{}, false, tail
	}
	if _, all, after := windshearAll(rest); all {
		return Windshear{AllRunways: true}, true, after
	}
	runways, _, after := windshearRunways(rest)
	if len(runways) == 0 {
		return Windshear{}, false, tail
	}
	return Windshear{Runways: runways}, true, after
}

// parseSupplementary reads recent weather, windshear and sea state, in that
// order, each optional. Runway state is not decoded.
func parseSupplementary(s *session, tail string) (Supplementary, string) {
	var sup Supplementary

	if recent, ok, rest := attempt(s, "recent_weather", recentWeatherField, tail); ok {
		sup.RecentWeather = recent
		tail = rest
	}
	if ws, ok, rest := attempt(s, "windshear", windshearField, tail); ok {
		sup.Windshear = &ws
		tail = rest
	}
	if sea, ok, rest := attempt(s, "sea_state", seaStateField, tail); ok {
		sup.SeaState = &sea
		tail = rest
	}

	return sup, tail
}
