package chart

import "math"

// snellenUnitMm is the letter height in millimeters, per Snellen
// denominator unit, at the 6-meter design distance. A 6/6 letter subtends
// 5 minutes of arc at 6 m, which is 6000mm * tan(5') ~= 8.727mm, so one
// denominator unit is a sixth of that.
var snellenUnitMm = 6000.0 * math.Tan(5.0*math.Pi/(180.0*60.0)) / 6.0

// sixSixMm is the 6/6 (logMAR 0.0) letter height at the design distance.
var sixSixMm = snellenUnitMm * 6.0

// BaseOrientedMm is the top-row size of the tumbling-E and Landolt-C
// grids, equivalent to the 6/60 Snellen line. Row i shows BaseOrientedMm
// divided by i+1.
var BaseOrientedMm = snellenUnitMm * 60.0

// ChartLine is one row of an acuity chart: an ordered sequence of symbols
// sharing a single physical size. A symbol is normally one letter; "FP" is
// the composite two-letter optotype from the classic Snellen second row.
type ChartLine struct {
	Symbols []string
	SizeMm  float64
}

// snellenLine builds a line from its Snellen denominator (6/denom).
func snellenLine(denom int, symbols ...string) ChartLine {
	return ChartLine{Symbols: symbols, SizeMm: snellenUnitMm * float64(denom)}
}

// logmarLine builds a line from its logMAR value. Each 0.1 step is a
// tenth-of-a-decade change in the minimum angle of resolution.
func logmarLine(logmar float64, symbols ...string) ChartLine {
	return ChartLine{Symbols: symbols, SizeMm: sixSixMm * math.Pow(10, logmar)}
}

// LanguageProfile holds the chart data and instruction text for one
// language. Profiles are static: loaded once, never mutated.
type LanguageProfile struct {
	Lines        map[Kind][]ChartLine
	Instructions string
}

// Catalog is the static lookup for per-language chart content.
type Catalog struct {
	profiles map[string]*LanguageProfile
}

// DefaultLanguage is used when a requested language has no data for the
// active test.
const DefaultLanguage = "english"

// NewCatalog returns the compiled-in catalog.
func NewCatalog() *Catalog {
	return &Catalog{profiles: builtinProfiles}
}

// LinesFor returns the chart lines for a language and test kind. A
// language without data for the kind falls back to the English profile;
// if English lacks it too, the result is nil and the section renders
// empty. Never an error.
func (c *Catalog) LinesFor(language string, kind Kind) []ChartLine {
	if p, ok := c.profiles[language]; ok {
		if lines, ok := p.Lines[kind]; ok {
			return lines
		}
	}
	if p, ok := c.profiles[DefaultLanguage]; ok {
		return p.Lines[kind]
	}
	return nil
}

// InstructionsFor returns the instruction sentence for a language,
// falling back to English.
func (c *Catalog) InstructionsFor(language string) string {
	if p, ok := c.profiles[language]; ok {
		return p.Instructions
	}
	if p, ok := c.profiles[DefaultLanguage]; ok {
		return p.Instructions
	}
	return ""
}

// Languages returns the set of known language tags.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.profiles))
	for lang := range c.profiles {
		out = append(out, lang)
	}
	return out
}

var builtinProfiles = map[string]*LanguageProfile{
	"english": {
		Instructions: "Cover one eye and read the smallest line you can",
		Lines: map[Kind][]ChartLine{
			KindSnellen: {
				snellenLine(60, "E"),
				snellenLine(36, "FP"),
				snellenLine(24, "T", "O", "Z"),
				snellenLine(18, "L", "P", "E", "D"),
				snellenLine(12, "P", "E", "C", "F", "D"),
				snellenLine(9, "E", "D", "F", "C", "Z", "P"),
				snellenLine(6, "F", "E", "L", "O", "P", "Z", "D"),
			},
			KindLogMAR: {
				logmarLine(1.0, "E", "Z", "P"),
				logmarLine(0.8, "D", "F", "O", "T"),
				logmarLine(0.6, "C", "L", "E", "P", "Z"),
				logmarLine(0.4, "T", "D", "O", "F", "C"),
				logmarLine(0.2, "Z", "P", "L", "E", "D"),
				logmarLine(0.0, "O", "F", "C", "T", "Z"),
			},
			KindNumbers: {
				snellenLine(60, "8"),
				snellenLine(36, "5", "3"),
				snellenLine(24, "2", "9", "6"),
				snellenLine(18, "7", "4", "3", "5"),
				snellenLine(12, "6", "1", "8", "2", "9"),
				snellenLine(6, "3", "7", "5", "9", "4", "6"),
			},
			// Duochrome shows one shared letter column over the red/green
			// split; the single line is repeated down the boundary.
			KindDuochrome: {
				snellenLine(12, "E", "C", "D", "Z", "P", "O", "F", "L", "T"),
			},
			KindContrast: {
				snellenLine(18, "C", "O", "D", "E", "Z"),
			},
		},
	},
	"hindi": {
		Instructions: "एक आँख बंद करें और सबसे छोटी पंक्ति पढ़ें",
		Lines: map[Kind][]ChartLine{
			KindSnellen: {
				snellenLine(60, "क"),
				snellenLine(36, "ब", "म"),
				snellenLine(24, "प", "ट", "द"),
				snellenLine(18, "र", "ल", "ख", "ग"),
				snellenLine(12, "च", "न", "ध", "स", "ज"),
				snellenLine(9, "ट", "क", "भ", "प", "य", "व"),
				snellenLine(6, "म", "ह", "ब", "द", "श", "ग", "त"),
			},
			// The Hindi profile deliberately has no "numbers" or "logmar"
			// data; those kinds fall back to the English lines.
		},
	},
}
