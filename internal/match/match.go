// Package match provides the two combinators every report field is built
// from: a single anchored field matcher and a bounded repetition of it.
//
// A Matcher never mutates its input. It returns the projected value, whether
// the field was present, and the text still to be consumed. When the field is
// absent the returned text is exactly the input.
package match

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Matcher attempts one field at the head of tail.
type Matcher[T any] func(tail string) (value T, ok bool, rest string)

// Captures is a read-only view of the named groups of one match.
// Unmatched optional groups read as the empty string.
type Captures struct {
	values map[string]string
}

// NewCaptures builds a Captures view from a name→value map. The map is
// copied so later changes by the caller are not observed.
func NewCaptures(values map[string]string) Captures {
	c := Captures{values: make(map[string]string, len(values))}
	for k, v := range values {
		c.values[k] = v
	}
	return c
}

func capturesOf(re *regexp.Regexp, m []string) Captures {
	c := Captures{values: make(map[string]string, len(m))}
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		c.values[name] = m[i]
	}
	return c
}

// Get returns the named capture, or "" when the group did not participate.
func (c Captures) Get(name string) string {
	return c.values[name]
}

// Has reports whether the named group captured non-empty text.
func (c Captures) Has(name string) bool {
	return c.values[name] != ""
}

// Int parses the named capture as a decimal integer. ok is false when the
// capture is empty or not numeric.
func (c Captures) Int(name string) (n int, ok bool) {
	v := c.values[name]
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IntPtr is Int returning nil when the capture is absent.
func (c Captures) IntPtr(name string) *int {
	n, ok := c.Int(name)
	if !ok {
		return nil
	}
	return &n
}

// Field applies an anchored grammar to the head of the trimmed input and
// projects its named captures into a typed value. An empty match is not a
// field. A projection may refuse a match by returning false, in which case
// the field counts as absent.
//
// Field may stop inside a token, which is what glued groups such as "+RASN"
// need. Use Token for groups that must stand alone.
func Field[T any](re *regexp.Regexp, project func(Captures) (T, bool)) Matcher[T] {
	return field(re, project, false)
}

// Token is Field restricted to matches that end at a token boundary
// (whitespace or end of input).
func Token[T any](re *regexp.Regexp, project func(Captures) (T, bool)) Matcher[T] {
	return field(re, project, true)
}

// Glued is Field for a group that continues the previous one inside the
// same token, such as the SN of +RASN. Leading whitespace means the token
// has ended, so the field is absent.
func Glued[T any](re *regexp.Regexp, project func(Captures) (T, bool)) Matcher[T] {
	m := field(re, project, false)
	return func(tail string) (T, bool, string) {
		if AtBoundary(tail) {
			var zero T
			return zero, false, tail
		}
		return m(tail)
	}
}

func field[T any](re *regexp.Regexp, project func(Captures) (T, bool), whole bool) Matcher[T] {
	return func(tail string) (T, bool, string) {
		var zero T

		trimmed := strings.TrimSpace(tail)
		loc := re.FindStringSubmatchIndex(trimmed)
		if loc == nil || loc[0] != 0 || loc[1] == 0 {
			return zero, false, tail
		}
		if whole && !AtBoundary(trimmed[loc[1]:]) {
			return zero, false, tail
		}

		m := make([]string, len(loc)/2)
		for i := range m {
			if loc[2*i] >= 0 {
				m[i] = trimmed[loc[2*i]:loc[2*i+1]]
			}
		}

		value, ok := project(capturesOf(re, m))
		if !ok {
			return zero, false, tail
		}
		return value, true, trimmed[loc[1]:]
	}
}

// AtBoundary reports whether rest starts at a token boundary.
func AtBoundary(rest string) bool {
	return rest == "" || unicode.IsSpace(rune(rest[0]))
}

// Repeat applies m until it reports absent or limit values have been
// collected. The values keep their left-to-right order. Repeat always
// succeeds; no occurrences yields an empty slice and the unchanged input.
func Repeat[T any](m Matcher[T], limit int) Matcher[[]T] {
	if limit < 1 {
		panic("match: repeat limit must be a positive integer")
	}
	return func(tail string) ([]T, bool, string) {
		values := []T{}
		for len(values) < limit {
			v, ok, rest := m(tail)
			if !ok {
				break
			}
			values = append(values, v)
			tail = rest
		}
		return values, true, tail
	}
}

// Literal matches a fixed whole-token grammar and yields the matched text.
func Literal(re *regexp.Regexp) Matcher[string] {
	m := Token(re, func(Captures) (struct{}, bool) { return struct{}{}, true })
	return func(tail string) (string, bool, string) {
		_, ok, rest := m(tail)
		if !ok {
			return "", false, tail
		}
		trimmed := strings.TrimSpace(tail)
		return trimmed[:len(trimmed)-len(rest)], true, rest
	}
}
