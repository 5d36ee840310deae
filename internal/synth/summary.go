package synth

import (
	"regexp"
	"strings"
)

const (
	summaryMaxLen      = 400 // hard cap on the executive summary
	summaryMaxSentence = 3   // sentences kept
	summaryMinSentence = 4   // shortest sentence that is not a stray artifact
	summaryRawFallback = 320 // raw-text cap when no sentence qualifies
)

var (
	mdLinkRe     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdImageRe    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	mdEmphasisRe = regexp.MustCompile(`(\*\*|__|\*|_|` + "`" + `)`)
	bulletRe     = regexp.MustCompile(`^\s*(?:[-*+]|\d+[.)])\s+`)
)

// BuildSummary derives a short sentence-bounded executive summary. The
// Executive Summary section is preferred; the whole narrative is the
// fallback. Returns "" only for empty input.
func BuildSummary(narrative string) string {
	body := narrative
	if sec := FindSection(narrative, "Executive Summary"); sec != nil && strings.TrimSpace(sec.Body) != "" {
		body = sec.Body
	}

	prose := flattenMarkdown(body)

	var kept []string
	for _, s := range splitSentences(prose) {
		if len(s) >= summaryMinSentence && containsLetter(s) {
			kept = append(kept, s)
			if len(kept) == summaryMaxSentence {
				break
			}
		}
	}

	if len(kept) == 0 {
		return truncate(strings.TrimSpace(prose), summaryRawFallback)
	}

	out := strings.Join(kept, " ")
	if len([]rune(out)) > summaryMaxLen {
		out = truncate(out, summaryMaxLen-1) + "…"
	}
	return out
}

// flattenMarkdown normalizes list and heading markers into sentence-
// terminated prose and strips inline markdown syntax.
func flattenMarkdown(md string) string {
	var lines []string
	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}
		if m := headingMarkerRe.FindStringSubmatch(trimmed); m != nil {
			trimmed = ensureTerminated(m[2])
		} else if bulletRe.MatchString(trimmed) {
			trimmed = ensureTerminated(bulletRe.ReplaceAllString(trimmed, ""))
		}
		lines = append(lines, trimmed)
	}
	joined := strings.Join(lines, " ")
	joined = mdImageRe.ReplaceAllString(joined, "")
	joined = mdLinkRe.ReplaceAllString(joined, "$1")
	joined = mdEmphasisRe.ReplaceAllString(joined, "")
	return strings.Join(strings.Fields(joined), " ")
}

// ensureTerminated appends a period when a fragment lacks terminal
// punctuation, so bullets read as sentences after flattening.
func ensureTerminated(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?', ':', ';':
		return s
	}
	return s + "."
}

// splitSentences splits prose at sentence-terminating punctuation followed
// by whitespace or end of text, keeping the punctuation with the sentence.
func splitSentences(prose string) []string {
	var sentences []string
	start := 0
	runes := []rune(prose)
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		atEnd := i == len(runes)-1
		if !atEnd && runes[i+1] != ' ' && runes[i+1] != '\n' && runes[i+1] != '\t' {
			continue
		}
		s := strings.TrimSpace(string(runes[start : i+1]))
		if s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func containsLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
