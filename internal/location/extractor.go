package location

import (
	"regexp"
	"strings"
)

// DefaultFallback is returned when no known district appears in the text.
const DefaultFallback = "Tamil Nadu District"

// Districts is the closed set of canonical Tamil Nadu district names the
// extractor recognizes.
var Districts = []string{
	"Chennai", "Tiruvallur", "Kancheepuram", "Chengalpattu", "Vellore",
	"Ranipet", "Tirupathur", "Tiruvannamalai", "Villupuram", "Kallakurichi",
	"Salem", "Erode", "Namakkal", "Coimbatore", "Tiruppur", "Nilgiris",
	"Dharmapuri", "Krishnagiri",
	"Tiruchirappalli", "Karur", "Perambalur", "Ariyalur", "Pudukkottai",
	"Thanjavur", "Thiruvarur", "Nagapattinam",
	"Madurai", "Dindigul", "Theni", "Virudhunagar", "Sivagangai",
	"Ramanathapuram", "Thoothukudi", "Tirunelveli", "Tenkasi", "Kanniyakumari",
}

// Extractor maps free text to a canonical district name. It is pure and
// total: unknown text maps to the fallback label, never to an error.
type Extractor struct {
	districts []string
	canonical map[string]string
	pattern   *regexp.Regexp
	fallback  string
}

// New builds an extractor for the given district set. Empty districts fall
// back to the built-in list, an empty fallback to DefaultFallback.
func New(districts []string, fallback string) *Extractor {
	if len(districts) == 0 {
		districts = Districts
	}
	if fallback == "" {
		fallback = DefaultFallback
	}

	canonical := make(map[string]string, len(districts))
	quoted := make([]string, 0, len(districts))
	for _, d := range districts {
		canonical[strings.ToLower(d)] = d
		quoted = append(quoted, regexp.QuoteMeta(d))
	}
	// Case-insensitive whole-token match; the regexp engine returns the
	// leftmost occurrence, which gives first-match-wins over the text.
	pattern := regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)

	return &Extractor{
		districts: districts,
		canonical: canonical,
		pattern:   pattern,
		fallback:  fallback,
	}
}

// Extract returns the canonical name of the first district mentioned in
// text, or the fallback label when none is found. Multiple districts resolve
// to the leftmost occurrence; no disambiguation is attempted.
func (e *Extractor) Extract(text string) string {
	match := e.pattern.FindString(text)
	if match == "" {
		return e.fallback
	}
	if name, ok := e.canonical[strings.ToLower(match)]; ok {
		return name
	}
	return e.fallback
}

// Fallback returns the configured generic label.
func (e *Extractor) Fallback() string {
	return e.fallback
}
