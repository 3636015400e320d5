package metar

import (
	"strings"

	"avweather/internal/match"
)

// Phenomenon code lists, each bounded.
var (
	precipitationCodes = match.Repeat(precipitationCode, maxPhenomena)
	obscurationCodes   = match.Repeat(obscurationCode, maxPhenomena)
	otherCodes         = match.Repeat(otherCode, maxPhenomena)

	precipitationField = phenomena(precipitationCodes)
	otherField         = phenomena(otherCodes)
	obscurationField   = codes(obscurationCodes)
)

// phenomena is an optional intensity glued to one or more codes within a
// single token, e.g. +RASN or VCSH. An intensity without a code leaves the
// input untouched.
func phenomena(list match.Matcher[[]string]) match.Matcher[Phenomena] {
	return func(tail string) (Phenomena, bool, string) {
		intensity, ok, rest := intensityField(strings.TrimSpace(tail))
		if ok && match.AtBoundary(rest) {
			return Phenomena{}, false, tail
		}
		found, _, rest := list(rest)
		if len(found) == 0 || !match.AtBoundary(rest) {
			return Phenomena{}, false, tail
		}
		return Phenomena{Intensity: intensity, Codes: found}, true, rest
	}
}

// codes is a bare code list forming one token.
func codes(list match.Matcher[[]string]) match.Matcher[[]string] {
	return func(tail string) ([]string, bool, string) {
		found, _, rest := list(strings.TrimSpace(tail))
		if len(found) == 0 || !match.AtBoundary(rest) {
			return nil, false, tail
		}
		return found, true, rest
	}
}

// parseSky reads CAVOK, or visibility followed by RVR, present weather and
// cloud. Visibility is the only mandatory group once CAVOK is ruled out.
func parseSky(s *session, tail string) (Sky, string, error) {
	if _, ok, rest := attempt(s, "cavok", cavokField, tail); ok {
		return Sky{CAVOK: true}, rest, nil
	}

	vis, ok, tail := attempt(s, "visibility", visibilityField, tail)
	if !ok {
		return Sky{}, tail, &ParseError{Field: "visibility", Input: trim(tail), Err: ErrMissingVisibility}
	}
	sky := Sky{Visibility: &vis}

	rvr, _, tail := attempt(s, "rvr", rvrField, tail)
	if len(rvr) > 0 {
		sky.RVR = rvr
	}

	sky.Weather, tail = parseWeather(s, tail)
	sky.Clouds, tail = parseClouds(s, tail)

	return sky, tail, nil
}

func parseWeather(s *session, tail string) (*Weather, string) {
	w := &Weather{}

	if p, ok, rest := attempt(s, "precipitation", precipitationField, tail); ok {
		w.Precipitation = &p
		tail = rest
	}
	if o, ok, rest := attempt(s, "obscuration", obscurationField, tail); ok {
		w.Obscuration = o
		tail = rest
	}
	if p, ok, rest := attempt(s, "other", otherField, tail); ok {
		w.Other = &p
		tail = rest
	}

	return w, tail
}

// parseClouds tries layers, then vertical visibility, then a sky-clear
// keyword. The first that matches wins.
func parseClouds(s *session, tail string) (*CloudCover, string) {
	if layers, _, rest := attempt(s, "clouds", cloudsField, tail); len(layers) > 0 {
		return &CloudCover{Layers: layers}, rest
	}
	if vv, ok, rest := attempt(s, "vertical_visibility", vvField, tail); ok {
		return &CloudCover{VerticalVisibility: &vv}, rest
	}
	if keyword, ok, rest := attempt(s, "sky_clear", skyClearField, tail); ok {
		return &CloudCover{SkyClear: keyword}, rest
	}
	return nil, tail
}
