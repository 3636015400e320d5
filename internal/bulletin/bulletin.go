// Package bulletin locates METAR and SPECI reports inside free text such as
// collective bulletins or datalink messages, and decodes each of them.
//
// A report starts at a METAR or SPECI keyword followed by a station and an
// observation time. Inside a bulletin the keyword may appear once as a
// heading, so a line starting with station and time continues the last
// keyword seen, as does one following a '=' terminator. A report ends at
// '=' or where the next report starts, and may wrap over several lines.
package bulletin

import (
	"regexp"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"avweather/internal/feed"
	"avweather/internal/metar"
)

// clock supplies the reference time for messages without a timestamp.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// startRe matches the head of a report: a type keyword, a line start or a
// previous terminator, then station and DDHHMMZ.
var startRe = regexp.MustCompile(`(?m)(?:\b(METAR|SPECI)(?:\s+COR)?\s+|(?:^|=)[ \t]*)[A-Z][A-Z0-9]{3}\s+\d{6}Z\b`)

var spaceRe = regexp.MustCompile(`\s+`)

// Entry is one report found in a message.
type Entry struct {
	Raw      string       `json:"raw" yaml:"raw"`
	Observed *time.Time   `json:"observed,omitempty" yaml:"observed,omitempty"`
	Metar    *metar.Metar `json:"metar,omitempty" yaml:"metar,omitempty"`
	Error    string       `json:"error,omitempty" yaml:"error,omitempty"`

	Err error `json:"-" yaml:"-"`
}

// Result pairs a feed message with the reports found in it.
type Result struct {
	Message *feed.Message `json:"message" yaml:"message"`
	Reports []Entry       `json:"reports,omitempty" yaml:"reports,omitempty"`
}

// Failed counts the entries that did not decode.
func (r *Result) Failed() int {
	n := 0
	for _, e := range r.Reports {
		if e.Err != nil {
			n++
		}
	}
	return n
}

// Find returns the text of every report in s, in order, with whitespace
// collapsed and the terminator removed.
func Find(s string) []string {
	text := strings.ToUpper(s)
	locs := startRe.FindAllStringSubmatchIndex(text, -1)

	var reports []string
	var current string
	for i, loc := range locs {
		if loc[2] >= 0 {
			current = text[loc[2]:loc[3]]
		}
		if current == "" {
			// Station and time with no keyword seen yet.
			continue
		}

		start := loc[0]
		if text[start] == '=' {
			start++
		}
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if eq := strings.IndexByte(text[start:end], '='); eq >= 0 {
			end = start + eq
		}

		raw := strings.TrimSpace(spaceRe.ReplaceAllString(text[start:end], " "))
		if loc[2] < 0 {
			raw = current + " " + raw
		}
		reports = append(reports, raw)
	}
	return reports
}

// Extract decodes every report in s. Observation times are resolved
// against ref.
func Extract(s string, ref time.Time) []Entry {
	found := Find(s)
	if len(found) == 0 {
		return nil
	}

	entries := make([]Entry, 0, len(found))
	for _, raw := range found {
		e := Entry{Raw: raw}
		m, err := metar.Parse(raw)
		if err != nil {
			e.Err = err
			e.Error = err.Error()
		} else {
			e.Metar = m
			observed := m.Time.Resolve(ref)
			e.Observed = &observed
		}
		entries = append(entries, e)
	}
	return entries
}

// ExtractMessage decodes every report in msg. The message timestamp is the
// reference time; without one the package clock is used.
func ExtractMessage(msg *feed.Message) *Result {
	ref, ok := msg.Time()
	if !ok {
		ref = clock.Now()
	}
	return &Result{
		Message: msg,
		Reports: Extract(msg.Text, ref),
	}
}
