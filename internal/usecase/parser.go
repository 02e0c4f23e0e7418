package usecase

import (
	"regexp"
	"strings"

	"github.com/guptaji3010/Biovalley-AI-Scanner/internal/domain"
)

// The model is instructed to answer with an ANALYSIS section followed by
// pipe-delimited PRODUCT lines, but nothing enforces that format. This parser
// recovers a Diagnosis from whatever the model actually produced: missing
// labels, markdown noise, stray pipes, and truncated output all degrade to a
// defined default instead of an error.

// Defaults used when the model output yields no usable structure
const (
	defaultAnalysisMessage = "We couldn't generate a specific analysis."
	placeholderProductName = "Bio Valley Product"

	// Analysis candidates at or below this trimmed length are considered
	// too thin to show and are replaced by the default message.
	minAnalysisLength = 10
)

// Package-level compiled regex patterns for performance
var (
	// Paired emphasis markers corrupt field boundaries if left in place
	emphasisRegex = regexp.MustCompile(`\*\*|__`)

	// Captures the narrative between the ANALYSIS label and whatever the
	// model used to introduce its recommendations
	analysisSectionRegex = regexp.MustCompile(`(?is)ANALYSIS:?(.*?)(?:RECOMMENDATIONS?|Given the|Here are|$)`)

	// Markdown heading announcing the recommendations section
	recommendationHeadingRegex = regexp.MustCompile(`(?i)##?\s*RECOMMENDATION`)

	// First sign of a product list when the ANALYSIS label is absent
	sectionBreakRegex = regexp.MustCompile(`(?i)\d+\.|PRODUCT:|##? RECOMMENDATION`)

	analysisLabelRegex = regexp.MustCompile(`(?i)ANALYSIS:?`)
	leadingMarkupRegex = regexp.MustCompile(`^[\s#:\-]+`)

	// Currency amount: rupee symbol or Rs prefix, digit groups with optional
	// thousands separators and decimals
	currencyRegex = regexp.MustCompile(`(?i)(?:₹|Rs\.?)\s*[\d,]+(?:\.\d+)?`)

	// List markers that may precede a product name: numbered entries,
	// the PRODUCT label, or a markdown bullet-with-bold opener
	listPrefixRegex = regexp.MustCompile(`(?i)(?:^|\s+)(?:\d+\.\s+|PRODUCT:\s*|- \*\*)`)

	leadingBulletRegex = regexp.MustCompile(`^[\s\-\*:]+`)
)

// fallbackRecommendation is the synthetic entry emitted when no valid
// product triples can be extracted
func fallbackRecommendation() domain.Recommendation {
	return domain.Recommendation{
		Name:        "Bio Valley Original Catalog",
		Description: "View our natural skin and body care range",
		URL:         "https://bio-valley.com/",
	}
}

// ParseDiagnosis converts a raw model response into a Diagnosis.
// It is a pure function: no I/O, no shared state, deterministic for the same
// input. Every branch terminates in a valid Diagnosis with a non-empty
// analysis and at least one recommendation.
func ParseDiagnosis(raw string) domain.Diagnosis {
	clean := emphasisRegex.ReplaceAllString(raw, "")

	analysis, labeled := extractAnalysisText(clean)
	recommendations := extractRecommendations(clean)

	// No pipes and no ANALYSIS label means the model abandoned the
	// structured format entirely; the whole blob is the narrative.
	if !labeled && !strings.Contains(clean, "|") {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			analysis = trimmed
		}
	}

	if len(recommendations) == 0 {
		recommendations = []domain.Recommendation{fallbackRecommendation()}
	}

	return domain.Diagnosis{
		AnalysisText:    analysis,
		Recommendations: recommendations,
	}
}

// analysisStrategy is one attempt at isolating the narrative section.
// ok reports whether the strategy recognized the input shape; the candidate
// it returns is still subject to the acceptance rule.
type analysisStrategy struct {
	name    string
	extract func(clean string) (candidate string, ok bool)
}

// Tried in order; the first strategy that recognizes the input wins, even
// when its candidate is rejected in favor of the default message.
var analysisStrategies = []analysisStrategy{
	{name: "labeled-section", extract: extractLabeledAnalysis},
	{name: "delimiter-split", extract: extractAnalysisBeforeList},
}

// extractAnalysisText runs the strategy chain and applies the acceptance
// rule. The second return reports whether the labeled-section strategy
// recognized the input.
func extractAnalysisText(clean string) (string, bool) {
	for _, strategy := range analysisStrategies {
		candidate, ok := strategy.extract(clean)
		if !ok {
			continue
		}

		labeled := strategy.name == "labeled-section"
		if len(candidate) > minAnalysisLength {
			return candidate, labeled
		}
		return defaultAnalysisMessage, labeled
	}
	return defaultAnalysisMessage, false
}

// extractLabeledAnalysis captures the text between the ANALYSIS label and
// the start of the recommendations
func extractLabeledAnalysis(clean string) (string, bool) {
	m := analysisSectionRegex.FindStringSubmatch(clean)
	if m == nil || m[1] == "" {
		return "", false
	}

	candidate := leadingMarkupRegex.ReplaceAllString(m[1], "")

	// The section regex can under-match; snip at any recommendation heading
	// still embedded in the candidate
	if loc := recommendationHeadingRegex.FindStringIndex(candidate); loc != nil {
		candidate = candidate[:loc[0]]
	}

	return strings.TrimSpace(candidate), true
}

// extractAnalysisBeforeList treats everything before the first list marker
// as the analysis candidate. Always recognizes the input, so it terminates
// the strategy chain.
func extractAnalysisBeforeList(clean string) (string, bool) {
	head := clean
	if loc := sectionBreakRegex.FindStringIndex(head); loc != nil {
		head = head[:loc[0]]
	}

	// Drop the first ANALYSIS label if one survived
	if loc := analysisLabelRegex.FindStringIndex(head); loc != nil {
		head = head[:loc[0]] + head[loc[1]:]
	}

	head = leadingMarkupRegex.ReplaceAllString(head, "")
	return strings.TrimSpace(head), true
}

// looksLikeURL is the anchor predicate: only segments carrying an http(s)
// scheme may delimit a recommendation triple
func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http")
}

// extractRecommendations scans the pipe-delimited segments for product
// triples shaped "name/description | url | price".
//
// Anchor candidates sit at odd cursor positions: in the expected shape each
// price segment and the following entry's name segment share one split
// token, so valid URLs keep landing on odd indices. A candidate that fails
// the anchor predicate is skipped without aborting the scan, which makes the
// walk self-resynchronizing against stray pipes in prose.
func extractRecommendations(clean string) []domain.Recommendation {
	segments := strings.Split(clean, "|")
	if len(segments) < 3 {
		return nil
	}

	var recs []domain.Recommendation
	for cursor := 1; cursor < len(segments); cursor += 2 {
		anchor := strings.TrimSpace(segments[cursor])
		if !looksLikeURL(anchor) {
			continue
		}

		name, description := splitNameDescription(cleanNameSegment(segments[cursor-1]))

		price := ""
		if cursor+1 < len(segments) {
			price = extractPrice(segments[cursor+1])
		}

		recs = append(recs, domain.Recommendation{
			Name:        name,
			Description: description,
			URL:         anchor,
			Price:       price,
		})
	}

	return recs
}

// cleanNameSegment prepares the segment preceding a URL anchor for the
// name/description split
func cleanNameSegment(segment string) string {
	// A trailing price from the previous triple shares this segment; drop
	// currency amounts before anything else so they cannot leak into the name
	s := currencyRegex.ReplaceAllString(segment, "")

	// Keep only what follows the last list marker so nested numbering and
	// leftover labels don't end up in the name
	parts := listPrefixRegex.Split(s, -1)
	s = parts[len(parts)-1]

	s = leadingBulletRegex.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// splitNameDescription splits a cleaned name segment into name and
// description: first at a colon, else at a dash, else the whole segment is
// the name
func splitNameDescription(s string) (string, string) {
	var name, description string

	if idx := strings.Index(s, ":"); idx >= 0 {
		name, description = s[:idx], s[idx+1:]
	} else if idx := strings.Index(s, "-"); idx >= 0 {
		name, description = s[:idx], s[idx+1:]
	} else {
		name = s
	}

	name = strings.TrimSpace(strings.ReplaceAll(name, "#", ""))
	description = strings.TrimSpace(strings.ReplaceAll(description, "#", ""))

	if name == "" {
		name = placeholderProductName
	}

	return name, description
}

// extractPrice pulls a price out of the segment following a URL anchor.
// Prefers a currency amount; falls back to the first whitespace-delimited
// token after stripping bullet markup.
func extractPrice(segment string) string {
	if match := currencyRegex.FindString(segment); match != "" {
		return match
	}

	rest := strings.TrimSpace(leadingBulletRegex.ReplaceAllString(segment, ""))
	if fields := strings.Fields(rest); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
