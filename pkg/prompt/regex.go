package prompt

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/dreamhouse/pkg/plan"
	"github.com/matzehuels/dreamhouse/pkg/render/styles"
)

var (
	reBHK       = regexp.MustCompile(`(\d+)\s*bhk`)
	reBedrooms  = regexp.MustCompile(`(\d+)\s*bed(room)?s?`)
	reBathrooms = regexp.MustCompile(`(\d+)\s*bath(room)?s?`)
	reKitchens  = regexp.MustCompile(`(\d+)\s*kitchen(s)?`)
	reLooseBeds = regexp.MustCompile(`(\d+)[^\d]*(bed|room|bhk)`)
)

// RegexParser matches numbers and keywords. It never fails.
type RegexParser struct{}

// NewRegexParser returns the keyword parser.
func NewRegexParser() *RegexParser { return &RegexParser{} }

// Name implements [Parser].
func (*RegexParser) Name() string { return ParserRegex }

// Parse implements [Parser].
func (*RegexParser) Parse(_ context.Context, prompt string) (plan.Counts, error) {
	return ParseText(prompt), nil
}

// ParseText extracts counts from prompt. Matching is case-insensitive:
//
//   - bedrooms from "N bhk", else "N bed", "N bedrooms"; "studio" means one;
//     as a last resort a number followed later by "bed", "room" or "bhk"
//   - bathrooms from "N bath", "N bathrooms"
//   - kitchens from "N kitchens", else one if "kitchen" appears
//   - one hall if "hall" or "living" appears
//   - style traditional, else minimal, else modern
//   - balcony, garden, and parking or garage as extras
func ParseText(prompt string) plan.Counts {
	text := strings.ToLower(prompt)
	var c plan.Counts

	if n, ok := firstInt(reBHK, text); ok {
		c.Bedrooms = n
	} else if n, ok := firstInt(reBedrooms, text); ok {
		c.Bedrooms = n
	}
	if n, ok := firstInt(reBathrooms, text); ok {
		c.Bathrooms = n
	}
	if n, ok := firstInt(reKitchens, text); ok {
		c.Kitchens = n
	} else if strings.Contains(text, "kitchen") {
		c.Kitchens = 1
	}
	if strings.Contains(text, "hall") || strings.Contains(text, "living") {
		c.Halls = 1
	}

	if c.Bedrooms == 0 && strings.Contains(text, "studio") {
		c.Bedrooms = 1
	}
	if c.Bedrooms == 0 {
		if n, ok := firstInt(reLooseBeds, text); ok {
			c.Bedrooms = n
		}
	}

	switch {
	case strings.Contains(text, styles.Traditional):
		c.Style = styles.Traditional
	case strings.Contains(text, styles.Minimal):
		c.Style = styles.Minimal
	default:
		c.Style = styles.Modern
	}

	c.Balcony = strings.Contains(text, "balcony")
	c.Garden = strings.Contains(text, "garden")
	c.Parking = strings.Contains(text, "parking") || strings.Contains(text, "garage")
	return c
}

func firstInt(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Digit runs too long for int.
		return 0, false
	}
	return n, true
}
