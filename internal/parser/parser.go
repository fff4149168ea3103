// Package parser scrapes chartable figures out of free-form LLM replies.
//
// Every extractor targets one phrasing convention the advisor's system prompt
// asks for ("$1.2B total addressable market", "• Segment: $400M",
// "Pain: 73% ..."). Text that does not follow a convention yields a Field with
// Found == false; nothing here returns an error.
package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Amount is a number with an optional magnitude suffix
type Amount struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
	Raw   string  `json:"raw"`
}

type Segment struct {
	Name string `json:"name"`
	Size Amount `json:"size"`
}

type PainPoint struct {
	Severity    int    `json:"severity"`
	Description string `json:"description"`
}

type Persona struct {
	Name       string        `json:"name"`
	Size       Field[Amount] `json:"size"`
	Income     Field[Amount] `json:"income"`
	PainPoints []PainPoint   `json:"painPoints"`
}

type Competitor struct {
	Name        string  `json:"name"`
	MarketShare float64 `json:"marketShare"`
}

type Features struct {
	MustHave   []string `json:"mustHave"`
	NiceToHave []string `json:"niceToHave"`
}

// Extraction is everything recognized in one reply
type Extraction struct {
	TAM         Field[Amount]       `json:"tam"`
	Growth      Field[float64]      `json:"growth"`
	Segments    Field[[]Segment]    `json:"segments"`
	Personas    Field[[]Persona]    `json:"personas"`
	Competitors Field[[]Competitor] `json:"competitors"`
	Features    Field[Features]     `json:"features"`
}

// Empty reports whether nothing at all was recognized
func (e Extraction) Empty() bool {
	return !e.TAM.Found && !e.Growth.Found && !e.Segments.Found &&
		!e.Personas.Found && !e.Competitors.Found && !e.Features.Found
}

const (
	number = `(\d+(?:\.\d+)?)`
	unit   = `(?:(trillion|billion|million|thousand|T|B|M|K)\b)?`
)

var multipliers = map[string]float64{
	"T": 1e12,
	"B": 1e9,
	"M": 1e6,
	"K": 1e3,
}

var (
	tamAfterRe  = regexp.MustCompile(`(?i)\$\s?` + number + `\s*` + unit + `[^\n.$]{0,40}?(?:total addressable market|\bTAM\b|market size|market opportunity)`)
	tamBeforeRe = regexp.MustCompile(`(?i)(?:total addressable market|\bTAM\b|market size)[^$\n]{0,30}\$\s?` + number + `\s*` + unit)

	growthRe       = regexp.MustCompile(`(?i)` + number + `\s*%\s*(?:(?:annual|annually|yearly|year-over-year|YoY)\s*)?(?:growth|CAGR)`)
	growthPhraseRe = regexp.MustCompile(`(?i)grow(?:th|ing)(?:\s+rate)?(?:\s+(?:of|at|by))?\s+` + number + `\s*%`)

	segmentRe = regexp.MustCompile(`(?m)^[ \t]*(?:[•▪◦*\-]|\d+\.)[ \t]*(?:\*\*)?([A-Za-z][^:\n$*]{0,60}?)(?:\*\*)?[ \t]*[:\-–][ \t]*\$\s?` + number + `\s*` + unit)

	personaHeaderRe = regexp.MustCompile(`(?mi)^[ \t#>*•\-]*(?:👤|persona(?:[ \t]*\d+)?[ \t]*:)[ \t*]*([^\n|(*]+)`)
	sizeRe          = regexp.MustCompile(`(?i)size:\s*~?\s*` + number + `\s*` + unit)
	incomeRe        = regexp.MustCompile(`(?i)income:\s*~?\s*\$\s?` + number + `\s*` + unit)
	painRe          = regexp.MustCompile(`(?im)pain:\s*(\d{1,3})\s*%\s*[-–:]?\s*([^\n|]+)`)

	competitorRe = regexp.MustCompile(`(?m)^[ \t]*(?:[•▪*\-]|\d+\.)?[ \t]*(?:\*\*)?([A-Z][\w.&' ]{0,40}?)(?:\*\*)?[ \t]*(?::|\(|-|–)[ \t]*~?` + number + `\s*%\s*(?i:(?:of\s+the\s+)?market\s+share)`)

	mustHaveHeaderRe   = regexp.MustCompile(`(?i)^\W*must[\s-]*haves?(?:\s+features)?\b\W*`)
	niceToHaveHeaderRe = regexp.MustCompile(`(?i)^\W*nice[\s-]*to[\s-]*haves?(?:\s+features)?\b\W*`)
	bulletRe           = regexp.MustCompile(`^\s*(?:[•▪◦✅*\-]|\d+[.)])\s+(.+)$`)
	amountRe           = regexp.MustCompile(`(?i)^\$?\s*` + number + `\s*` + unit + `$`)
)

// Parse runs every extractor over text
func Parse(text string) Extraction {
	return Extraction{
		TAM:         ExtractTAM(text),
		Growth:      ExtractGrowth(text),
		Segments:    ExtractSegments(text),
		Personas:    ExtractPersonas(text),
		Competitors: ExtractCompetitors(text),
		Features:    ExtractFeatures(text),
	}
}

// ParseAmount converts strings like "$1.2B", "400M" or "65K" into an Amount
func ParseAmount(raw string) (Amount, bool) {
	m := amountRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Amount{}, false
	}
	return newAmount(m[1], m[2], strings.TrimSpace(raw))
}

func newAmount(digits, suffix, raw string) (Amount, bool) {
	n, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return Amount{}, false
	}
	unitKey := ""
	switch strings.ToLower(suffix) {
	case "":
	case "thousand":
		unitKey = "K"
	default:
		unitKey = strings.ToUpper(suffix[:1])
	}
	value := n
	if mult, ok := multipliers[unitKey]; ok {
		value = math.Round(n*mult*100) / 100
	}
	return Amount{Value: value, Unit: unitKey, Raw: raw}, true
}

// ExtractTAM finds "$1.2B total addressable market" or "TAM of $1.2B"
func ExtractTAM(text string) Field[Amount] {
	for _, re := range []*regexp.Regexp{tamAfterRe, tamBeforeRe} {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		digits := text[loc[2]:loc[3]]
		suffix := ""
		if loc[4] >= 0 {
			suffix = text[loc[4]:loc[5]]
		}
		if amount, ok := newAmount(digits, suffix, strings.TrimSpace(text[loc[0]:loc[1]])); ok {
			return Some(amount)
		}
	}
	return Field[Amount]{}
}

// ExtractGrowth finds "15% annual growth" or "growing at 15%"
func ExtractGrowth(text string) Field[float64] {
	for _, re := range []*regexp.Regexp{growthRe, growthPhraseRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			if n, err := strconv.ParseFloat(m[1], 64); err == nil {
				return Some(n)
			}
		}
	}
	return Field[float64]{}
}

// ExtractSegments finds bullet lines of the form "• Name: $400M"
func ExtractSegments(text string) Field[[]Segment] {
	var segments []Segment
	for _, m := range segmentRe.FindAllStringSubmatch(text, -1) {
		name := cleanName(m[1])
		lower := strings.ToLower(name)
		if name == "" || lower == "tam" || strings.Contains(lower, "addressable market") || strings.Contains(lower, "market size") {
			continue
		}
		amount, ok := newAmount(m[2], m[3], strings.TrimSpace(m[0]))
		if !ok {
			continue
		}
		segments = append(segments, Segment{Name: name, Size: amount})
	}
	if len(segments) == 0 {
		return Field[[]Segment]{}
	}
	return Some(segments)
}

// ExtractPersonas splits the text into blocks opened by "👤 Name" or
// "Persona: Name" and reads Size, Income and Pain lines within each block.
func ExtractPersonas(text string) Field[[]Persona] {
	headers := personaHeaderRe.FindAllStringSubmatchIndex(text, -1)
	var personas []Persona
	for i, h := range headers {
		name := cleanName(text[h[2]:h[3]])
		if name == "" {
			continue
		}
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		block := text[h[1]:end]

		persona := Persona{Name: name, PainPoints: []PainPoint{}}
		if m := sizeRe.FindStringSubmatch(block); m != nil {
			if amount, ok := newAmount(m[1], m[2], strings.TrimSpace(m[0])); ok {
				persona.Size = Some(amount)
			}
		}
		if m := incomeRe.FindStringSubmatch(block); m != nil {
			if amount, ok := newAmount(m[1], m[2], strings.TrimSpace(m[0])); ok {
				persona.Income = Some(amount)
			}
		}
		for _, m := range painRe.FindAllStringSubmatch(block, -1) {
			severity, err := strconv.Atoi(m[1])
			if err != nil || severity > 100 {
				continue
			}
			persona.PainPoints = append(persona.PainPoints, PainPoint{
				Severity:    severity,
				Description: strings.TrimSpace(strings.Trim(m[2], "*")),
			})
		}
		personas = append(personas, persona)
	}
	if len(personas) == 0 {
		return Field[[]Persona]{}
	}
	return Some(personas)
}

// ExtractCompetitors finds "Name: 35% market share" and "Name (35% market share)"
func ExtractCompetitors(text string) Field[[]Competitor] {
	var competitors []Competitor
	for _, m := range competitorRe.FindAllStringSubmatch(text, -1) {
		name := cleanName(m[1])
		share, err := strconv.ParseFloat(m[2], 64)
		if name == "" || err != nil || share > 100 {
			continue
		}
		competitors = append(competitors, Competitor{Name: name, MarketShare: share})
	}
	if len(competitors) == 0 {
		return Field[[]Competitor]{}
	}
	return Some(competitors)
}

// ExtractFeatures collects bullets under "Must-have" and "Nice-to-have"
// headings. Inline lists after the heading ("Must-have: A, B") count too.
func ExtractFeatures(text string) Field[Features] {
	features := Features{MustHave: []string{}, NiceToHave: []string{}}
	var current *[]string

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case mustHaveHeaderRe.MatchString(trimmed):
			current = &features.MustHave
			appendInline(current, mustHaveHeaderRe.ReplaceAllString(trimmed, ""))
		case niceToHaveHeaderRe.MatchString(trimmed):
			current = &features.NiceToHave
			appendInline(current, niceToHaveHeaderRe.ReplaceAllString(trimmed, ""))
		case trimmed == "":
		case current != nil:
			m := bulletRe.FindStringSubmatch(trimmed)
			if m == nil {
				current = nil
				continue
			}
			if item := cleanName(m[1]); item != "" {
				*current = append(*current, item)
			}
		}
	}

	if len(features.MustHave) == 0 && len(features.NiceToHave) == 0 {
		return Field[Features]{}
	}
	return Some(features)
}

func appendInline(list *[]string, rest string) {
	for _, item := range strings.Split(rest, ",") {
		if item = cleanName(item); item != "" {
			*list = append(*list, item)
		}
	}
}

func cleanName(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), ":-–,."))
}
