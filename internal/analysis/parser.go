package analysis

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	maxKeySkills     = 4
	maxMissingSkills = 3
)

// Result holds the structured fields extracted from a model reply.
type Result struct {
	Domain        string   `json:"domain"`
	KeySkills     []string `json:"key_skills"`
	MissingSkills []string `json:"missing_skills"`
	Score         int      `json:"score"`
	Overview      string   `json:"overview"`
}

var (
	domainPattern = regexp.MustCompile(`Professional Domain:?\s*([^\n]+)`)

	keySkillsLabel     = regexp.MustCompile(`Key Skills:?`)
	missingSkillsLabel = regexp.MustCompile(`Missing Skills:?`)
	scoreLabel         = regexp.MustCompile(`Resume Score(?:[ \t]*\([^)\n]*\))?:?`)
	overviewLabel      = regexp.MustCompile(`Resume Overview:?`)

	// Section ends are only recognised at the start of a line.
	missingSkillsEnd  = regexp.MustCompile(`\n\s*Missing Skills`)
	scoreEnd          = regexp.MustCompile(`\n\s*Resume Score`)
	scoreSectionEnd   = regexp.MustCompile(`\n\s*Resume (?:Overview|Content)`)
	resumeContentEnd  = regexp.MustCompile(`\n\s*Resume Content`)
	bulletPattern     = regexp.MustCompile(`(?m)^[ \t]*[-•*][ \t]*([^\n]*)`)
	scoreValuePattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

	sectionLabels = []string{
		"Professional Domain",
		"Key Skills",
		"Missing Skills",
		"Resume Score",
		"Resume Overview",
		"Resume Content",
	}
)

// Parse extracts the analysis fields from a free-text model reply. Missing or
// malformed sections fall back to their zero values; Parse never fails.
func Parse(reply string) Result {
	result := Result{
		KeySkills:     []string{},
		MissingSkills: []string{},
	}

	if domain, ok := extractDomain(reply); ok {
		result.Domain = domain
	}

	if span, ok := section(reply, keySkillsLabel, missingSkillsEnd); ok {
		result.KeySkills = extractList(span, maxKeySkills)
	}

	if span, ok := section(reply, missingSkillsLabel, scoreEnd); ok {
		result.MissingSkills = extractList(span, maxMissingSkills)
	}

	if span, ok := section(reply, scoreLabel, scoreSectionEnd); ok {
		result.Score = extractScore(span)
	}

	if span, ok := section(reply, overviewLabel, resumeContentEnd); ok {
		result.Overview = strings.TrimSpace(span)
	}

	return result
}

// extractDomain reads the rest of the label's line, or the next non-blank
// line when the label stands alone. A bare section label found on a later
// line means the domain was left empty.
func extractDomain(text string) (string, bool) {
	loc := domainPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", false
	}

	domain := strings.TrimSpace(text[loc[2]:loc[3]])
	laterLine := strings.Contains(text[loc[0]:loc[2]], "\n")
	if laterLine && isSectionLabel(domain) {
		return "", false
	}
	return domain, true
}

// section returns the text between the first occurrence of label and the
// first match of end after it, or the end of text when end never matches.
func section(text string, label, end *regexp.Regexp) (string, bool) {
	loc := label.FindStringIndex(text)
	if loc == nil {
		return "", false
	}

	rest := text[loc[1]:]
	if stop := end.FindStringIndex(rest); stop != nil {
		rest = rest[:stop[0]]
	}
	return rest, true
}

func extractList(span string, limit int) []string {
	var candidates []string
	for _, match := range bulletPattern.FindAllStringSubmatch(span, -1) {
		candidates = append(candidates, match[1])
	}

	if len(candidates) == 0 {
		candidates = strings.Split(span, "\n")
	}

	items := make([]string, 0, limit)
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		items = append(items, candidate)
		if len(items) == limit {
			break
		}
	}
	return items
}

// extractScore is only called when the score label exists, so anything it
// cannot read yields the neutral score of 5 rather than 0.
func extractScore(span string) int {
	raw := scoreValuePattern.FindString(span)
	if raw == "" {
		return 5
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value >= math.MaxInt {
		return 5
	}
	return int(math.Trunc(value))
}

func isSectionLabel(line string) bool {
	line = strings.TrimSpace(strings.TrimSuffix(line, ":"))
	for _, label := range sectionLabels {
		if line == label {
			return true
		}
	}
	return false
}
