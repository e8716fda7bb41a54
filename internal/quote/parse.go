package quote

import (
	"regexp"
	"strings"
)

// Section-anchored extraction patterns for provider responses.
var (
	verseRe       = regexp.MustCompile(`(?i)\*\*Verse:\*\*\s*(\d+)\.(\d+)`)
	sanskritRe    = regexp.MustCompile(`(?s)\*\*Sanskrit:\*\*\s*(.+?)(?:\*\*|$)`)
	translationRe = regexp.MustCompile(`(?s)\*\*Translation:\*\*\s*(.+?)(?:\*\*|$)`)
	wisdomRe      = regexp.MustCompile(`(?s)\*\*(?:Today's Wisdom|Daily Reflection|Practical Guidance):\*\*\s*(.+?)(?:\*\*|$)`)

	boldHeaderRe = regexp.MustCompile(`\*\*([^*]+):\*\*`)
	emphasisRe   = regexp.MustCompile(`\*([^*]+)\*`)
	blankRunsRe  = regexp.MustCompile(`\n\s*\n\s*\n`)
)

// parseResponse extracts the labeled sections from a raw provider
// response. Missing sections come back empty.
func parseResponse(raw string) Parsed {
	p := Parsed{
		Sanskrit:    extract(sanskritRe, raw, 1),
		Translation: extract(translationRe, raw, 1),
		Wisdom:      extract(wisdomRe, raw, 1),
	}

	if m := verseRe.FindStringSubmatch(raw); m != nil {
		p.Chapter = m[1]
		p.VerseNumber = m[2]
		p.VerseRef = m[1] + "." + m[2]
	}

	return p
}

// extract returns the cleaned capture group of the first match, or "".
func extract(re *regexp.Regexp, raw string, group int) string {
	m := re.FindStringSubmatch(raw)
	if m == nil || group >= len(m) {
		return ""
	}

	s := strings.ReplaceAll(m[group], "**", "")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// hasBasicContent reports whether the response carries at least one
// recognizable section.
func hasBasicContent(raw string, p Parsed) bool {
	return p.VerseRef != "" || p.Sanskrit != "" || p.Translation != "" || strings.Contains(raw, "Verse:")
}

// cleanFormattedText normalizes the raw response for storage and
// display: headers get their own line, emphasis markers are stripped,
// and blank-line runs are collapsed.
func cleanFormattedText(raw string) string {
	s := boldHeaderRe.ReplaceAllString(raw, "**$1:**\n")
	s = emphasisRe.ReplaceAllString(s, "$1")
	s = blankRunsRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
