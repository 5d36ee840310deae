package synth

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// genericTitles are placeholder chat titles that carry no subject
// information and must never become a draft subject.
var genericTitles = map[string]bool{
	"new research":      true,
	"research":          true,
	"company research":  true,
	"prospect research": true,
	"market research":   true,
	"research chat":     true,
	"new chat":          true,
	"untitled":          true,
}

// fallbackSubject is used when no subject can be recovered from any input.
const fallbackSubject = "Untitled Research"

const maxSubjectLen = 120

var (
	researchPrefixRe = regexp.MustCompile(`(?i)^research\s+(?:on\s+|into\s+|about\s+)?(.+)$`)
	subjectPrefixRe  = regexp.MustCompile(`(?i)^(?:research report|company research|company profile|research)\s*[:\-–—]\s*`)
)

var titleCaser = cases.Title(language.English)

// ResolveSubject determines the business entity the draft is about.
// Priority: chat title (unless generic), first markdown heading, the
// "research <subject>" tail of the user message, the user message verbatim,
// then a generic fallback.
func ResolveSubject(chatTitle, narrative, userMessage string) string {
	if t := strings.TrimSpace(chatTitle); t != "" && !genericTitles[strings.ToLower(t)] {
		return truncate(t, maxSubjectLen)
	}

	if hs := scanHeadings(narrative); len(hs) > 0 {
		if s := cleanSubject(hs[0].text); s != "" {
			return truncate(s, maxSubjectLen)
		}
	}

	if um := strings.TrimSpace(userMessage); um != "" {
		if m := researchPrefixRe.FindStringSubmatch(um); m != nil {
			if s := strings.TrimSpace(m[1]); s != "" {
				return truncate(s, maxSubjectLen)
			}
		}
		return truncate(um, maxSubjectLen)
	}

	return fallbackSubject
}

// SanitizeSubject guards against persisting a placeholder subject. A generic
// or empty result is replaced by the externally supplied active subject when
// one is available. All-lowercase subjects are title-cased.
func SanitizeSubject(subject, activeSubject string) string {
	s := strings.TrimSpace(subject)
	if s == "" || s == fallbackSubject || genericTitles[strings.ToLower(s)] {
		if as := strings.TrimSpace(activeSubject); as != "" {
			s = as
		} else if s == "" {
			s = fallbackSubject
		}
	}
	if s != fallbackSubject && s == strings.ToLower(s) {
		s = titleCaser.String(s)
	}
	return s
}

// cleanSubject strips emphasis markers and report-style prefixes from a
// heading so "# Research Report: Acme Corp" resolves to "Acme Corp".
func cleanSubject(heading string) string {
	s := strings.TrimSpace(heading)
	s = strings.Trim(s, "*_`")
	s = subjectPrefixRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(strings.TrimRight(s, ":"))
	return s
}

// truncate cuts a string to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}
