// Package metar decodes METAR and SPECI surface weather reports (ICAO
// Annex 3) into typed records.
//
// Groups are read strictly left to right in ICAO order. Each group either
// consumes a prefix of the remaining text or is absent; nothing is ever
// re-read. Only the identification groups (type, station, time), the NIL
// contract and visibility without CAVOK are fatal. Text that no group
// accounts for is returned in Metar.Unmatched.
//
// Parse is safe for concurrent use.
package metar

import (
	"strings"

	"avweather/internal/match"
)

// Step records one group attempt made by ParseWithTrace.
type Step struct {
	Field    string `json:"field" yaml:"field"`
	Matched  bool   `json:"matched" yaml:"matched"`
	Consumed string `json:"consumed,omitempty" yaml:"consumed,omitempty"`
}

// Parse decodes a single report. On error no record is returned.
//
// The time group must also be a possible time of day: a DDHHMMZ group with
// day outside 1-31, hour above 23 or minute above 59 counts as no time
// group, so the text is not a report.
func Parse(text string) (*Metar, error) {
	return parse(nil, text)
}

// ParseWithTrace is Parse that also returns every group attempt in order,
// including the ones that did not match.
func ParseWithTrace(text string) (*Metar, []Step, error) {
	s := &session{}
	m, err := parse(s, text)
	return m, s.steps, err
}

func parse(s *session, text string) (*Metar, error) {
	tail := strings.TrimSuffix(strings.TrimSpace(strings.ToUpper(text)), "=")

	reportType, ok, tail := attempt(s, "type", typeField, tail)
	if !ok {
		return nil, notReport("type", tail)
	}
	station, ok, tail := attempt(s, "location", locationField, tail)
	if !ok {
		return nil, notReport("location", tail)
	}
	obsTime, ok, tail := attempt(s, "time", timeField, tail)
	if !ok {
		return nil, notReport("time", tail)
	}
	qualifier, _, tail := attempt(s, "qualifier", qualifierField, tail)

	m := &Metar{
		Type:      reportType,
		Station:   station,
		Time:      obsTime,
		Qualifier: qualifier,
	}

	if qualifier == "NIL" {
		if rest := trim(tail); rest != "" {
			return nil, &ParseError{Field: "qualifier", Input: rest, Err: ErrNilWithBody}
		}
		return m, nil
	}

	report, tail, err := parseReport(s, tail)
	if err != nil {
		return nil, err
	}
	m.Report = report
	m.Unmatched = trim(tail)

	return m, nil
}

func parseReport(s *session, tail string) (*Report, string, error) {
	r := &Report{}

	if wind, ok, rest := attempt(s, "wind", windField, tail); ok {
		r.Wind = &wind
		tail = rest
	}

	sky, tail, err := parseSky(s, tail)
	if err != nil {
		return nil, tail, err
	}
	r.Sky = sky

	if temp, ok, rest := attempt(s, "temperature", temperatureField, tail); ok {
		r.Temperature = &temp
		tail = rest
	}
	if qnh, ok, rest := attempt(s, "pressure", pressureField, tail); ok {
		r.Pressure = &qnh
		tail = rest
	}

	r.Supplementary, tail = parseSupplementary(s, tail)

	return r, tail, nil
}

func notReport(field, tail string) error {
	return &ParseError{Field: field, Input: trim(tail), Err: ErrNotReport}
}

func trim(s string) string { return strings.TrimSpace(s) }

// session collects trace steps. A nil session records nothing.
type session struct {
	steps []Step
}

// attempt runs one group matcher and records the outcome when tracing.
func attempt[T any](s *session, field string, m match.Matcher[T], tail string) (T, bool, string) {
	v, ok, rest := m(tail)
	if s != nil {
		s.record(field, ok, tail, rest)
	}
	return v, ok, rest
}

func (s *session) record(field string, ok bool, before, after string) {
	step := Step{Field: field}
	t := trim(before)
	if ok && strings.HasSuffix(t, after) {
		step.Consumed = trim(t[:len(t)-len(after)])
	}
	step.Matched = step.Consumed != ""
	s.steps = append(s.steps, step)
}
