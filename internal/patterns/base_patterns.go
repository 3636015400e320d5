// Package patterns provides the grok-style grammar compiler used by the
// METAR field parsers.
// This file contains the base patterns for METAR/SPECI groups.

package patterns

// BasePatterns defines reusable regex components for grok-style pattern composition.
// These are referenced in format patterns using {PATTERN_NAME} syntax.
// Alternations are unbracketed; wrap them in a group where they are used.
var BasePatterns = map[string]string{
	// Identification groups.
	"REPORT_TYPE": `METAR|SPECI`,
	"STATION":     `[A-Z][A-Z0-9]{3}`, // ICAO location indicator
	"DAYTIME":     `\d{6}`,            // DDHHMM
	"QUALIFIER":   `AUTO|NIL`,

	// Wind.
	"WIND_DIR":  `\d{3}|VRB|///`, // Degrees, variable, or not observed
	"WIND_SPD":  `\d{2,3}|//`,
	"WIND_UNIT": `KT|KMH|MPS`,
	"DEGREES":   `\d{3}`,

	// Visibility and runway visual range.
	"DISTANCE": `\d{4}`, // Metres
	"COMPASS":  `NE|NW|SE|SW|N|E|S|W`,
	"RUNWAY":   `\d{2}[LCR]?`,
	"RVR_MOD":  `[PM]`, // Above / below the measurable range
	"TENDENCY": `[UDN]`,

	// Present weather, ICAO Annex 3 Table A3-1.
	// Longer codes come first so alternation never stops at a prefix.
	"INTENSITY": `\+|-|VC`,
	"PRECIPITATION": `FZDZ|FZRA|FZUP|SHGR|SHGS|SHRA|SHSN|SHUP|TSGR|TSGS|TSPL|TSRA|TSSN|TSUP|SGRA|` +
		`DZ|RA|SN|SG|PL|DS|SS|UP`,
	"OBSCURATION": `BCFG|BLDU|BLSA|BLSN|DRDU|DRSA|DRSN|FZFG|MIFG|PRFG|` +
		`IC|FG|BR|SA|DU|HZ|FU|VA|SQ|PO|FC|TS`,
	"OTHER": `BLSN|BLSA|BLDU|FG|PO|FC|DS|SS|TS|SH|VA`,

	// Cloud.
	"CLOUD_AMOUNT": `FEW|SCT|BKN|OVC`,
	"HEIGHT":       `\d{3}|///`, // Hundreds of feet, or not observed
	"CLOUD_TYPE":   `CB|TCU|///`,
	"SKY_CLEAR":    `SKC|NSC|NCD|CLR`,

	// Temperature and pressure.
	"MINUS": `M`,
	"TEMP":  `\d{2}`,
	"QNH":   `\d{4}`, // Hectopascals

	// Supplementary information.
	"SEA_STATE": `\d`,
}
