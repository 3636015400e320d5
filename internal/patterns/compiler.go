// Package patterns provides the grok-style grammar compiler used by the
// METAR field parsers.
package patterns

import (
	"fmt"
	"regexp"
	"strings"
)

// maxExpandDepth bounds nested {PLACEHOLDER} expansion.
const maxExpandDepth = 8

// placeholderRe matches {NAME} references. Regex quantifiers such as {2,3}
// never match because names must start with a letter or underscore.
var placeholderRe = regexp.MustCompile(`\{([A-Z_][A-Z0-9_]*)\}`)

// Format represents one field grammar with named capture groups.
type Format struct {
	Name     string         // Field name for identification
	Pattern  string         // Pattern with {PLACEHOLDER} syntax
	Compiled *regexp.Regexp // Start-anchored regex (populated by Compile)
}

// Compiler manages pattern compilation for a set of field grammars.
type Compiler struct {
	basePatterns map[string]string
	formats      []Format
	byName       map[string]int
}

// NewCompiler creates a new pattern compiler with the given formats.
// It merges the provided base patterns with the global BasePatterns,
// allowing local patterns to override global ones.
func NewCompiler(formats []Format, localPatterns map[string]string) *Compiler {
	c := &Compiler{
		basePatterns: make(map[string]string, len(BasePatterns)+len(localPatterns)),
		formats:      make([]Format, len(formats)),
		byName:       make(map[string]int, len(formats)),
	}

	for k, v := range BasePatterns {
		c.basePatterns[k] = v
	}
	for k, v := range localPatterns {
		c.basePatterns[k] = v
	}

	copy(c.formats, formats)
	for i, f := range c.formats {
		c.byName[f.Name] = i
	}

	return c
}

// Compile expands all {PLACEHOLDER} references and compiles every format
// anchored at the start of input. Matching is left-to-right and never scans
// into the middle of the text.
func (c *Compiler) Compile() error {
	for i := range c.formats {
		expanded, err := c.expand(c.formats[i].Pattern, 0)
		if err != nil {
			return fmt.Errorf("format %s: %w", c.formats[i].Name, err)
		}
		re, err := regexp.Compile(`^(?:` + expanded + `)`)
		if err != nil {
			return fmt.Errorf("format %s: %w", c.formats[i].Name, err)
		}
		c.formats[i].Compiled = re
	}
	return nil
}

// MustCompile is like Compile but panics on error. It is intended for
// package-level grammar tables.
func (c *Compiler) MustCompile() *Compiler {
	if err := c.Compile(); err != nil {
		panic("patterns: " + err.Error())
	}
	return c
}

// expand replaces {PLACEHOLDER} with the referenced base pattern, recursively.
func (c *Compiler) expand(pattern string, depth int) (string, error) {
	if depth > maxExpandDepth {
		return "", fmt.Errorf("placeholder nesting deeper than %d", maxExpandDepth)
	}

	var missing []string
	result := placeholderRe.ReplaceAllStringFunc(pattern, func(ref string) string {
		name := ref[1 : len(ref)-1]
		regex, ok := c.basePatterns[name]
		if !ok {
			missing = append(missing, name)
			return ref
		}
		return regex
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("unknown placeholder(s): %s", strings.Join(missing, ", "))
	}

	if placeholderRe.MatchString(result) {
		return c.expand(result, depth+1)
	}
	return result, nil
}

// Regexp returns the compiled regex for the named format.
// It panics if the format is unknown or Compile has not succeeded.
func (c *Compiler) Regexp(name string) *regexp.Regexp {
	i, ok := c.byName[name]
	if !ok || c.formats[i].Compiled == nil {
		panic("patterns: format " + name + " not compiled")
	}
	return c.formats[i].Compiled
}

// Expanded returns the expanded regex source for the named format, or an
// empty string if it is unknown. Useful for debugging grammars.
func (c *Compiler) Expanded(name string) string {
	i, ok := c.byName[name]
	if !ok {
		return ""
	}
	if c.formats[i].Compiled != nil {
		return c.formats[i].Compiled.String()
	}
	expanded, err := c.expand(c.formats[i].Pattern, 0)
	if err != nil {
		return ""
	}
	return expanded
}

// Names returns the format names in declaration order.
func (c *Compiler) Names() []string {
	names := make([]string, len(c.formats))
	for i, f := range c.formats {
		names[i] = f.Name
	}
	return names
}
