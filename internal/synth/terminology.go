package synth

import "strings"

// signalSectionKeywords identify the signals/indicators section when the
// user's preferred label does not match a heading exactly.
var signalSectionKeywords = []string{"signal", "indicator", "trigger"}

// defaultIndicatorsLabel names the appended section when the user configured
// indicator phrases but no label.
const defaultIndicatorsLabel = "Buying Signals"

// AdaptTerminology rewrites the signals/indicators section to match the
// user's configured vocabulary: the heading takes the preferred label, the
// configured indicator phrases are prepended as bullets, and existing
// bullets duplicating a configured phrase are dropped so repeated runs
// produce identical output. When no matching section exists but indicator
// phrases are configured, a new section is appended. No-op when neither a
// label nor phrases are configured.
func AdaptTerminology(narrative, label string, indicators []string) string {
	label = strings.TrimSpace(label)
	if label == "" && len(indicators) == 0 {
		return narrative
	}

	var sec *Section
	if label != "" {
		sec = FindSection(narrative, label)
	}
	if sec == nil {
		sec = FindSectionContaining(narrative, signalSectionKeywords...)
	}

	if sec == nil {
		if len(indicators) == 0 {
			return narrative
		}
		heading := label
		if heading == "" {
			heading = defaultIndicatorsLabel
		}
		return strings.TrimRight(narrative, " \t\n") +
			"\n\n## " + heading + "\n\n" + indicatorBullets(indicators) + "\n"
	}

	heading := sec.Heading
	if label != "" {
		heading = label
	}

	rest := stripDuplicateBullets(sec.Body, indicators)

	var b strings.Builder
	b.WriteString(strings.Repeat("#", sec.Level))
	b.WriteString(" ")
	b.WriteString(heading)
	b.WriteString("\n")
	if len(indicators) > 0 {
		b.WriteString("\n")
		b.WriteString(indicatorBullets(indicators))
		b.WriteString("\n")
	}
	if rest != "" {
		b.WriteString("\n")
		b.WriteString(rest)
		b.WriteString("\n")
	}

	out := narrative[:sec.Start] + b.String()
	tail := narrative[sec.End:]
	if tail != "" {
		out += "\n" + tail
	}
	return out
}

// indicatorBullets renders configured phrases as a markdown bullet list.
func indicatorBullets(indicators []string) string {
	lines := make([]string, 0, len(indicators))
	for _, ind := range indicators {
		ind = strings.TrimSpace(ind)
		if ind != "" {
			lines = append(lines, "- "+ind)
		}
	}
	return strings.Join(lines, "\n")
}

// stripDuplicateBullets removes bullet lines whose text duplicates a
// configured indicator phrase, case-insensitively, and trims the surrounding
// whitespace of what remains.
func stripDuplicateBullets(body string, indicators []string) string {
	if len(indicators) == 0 {
		return strings.TrimSpace(body)
	}

	configured := make(map[string]bool, len(indicators))
	for _, ind := range indicators {
		configured[normalizeBullet(ind)] = true
	}

	var kept []string
	for _, line := range strings.Split(body, "\n") {
		if bulletRe.MatchString(line) && configured[normalizeBullet(bulletRe.ReplaceAllString(line, ""))] {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// normalizeBullet canonicalizes bullet text for duplicate comparison.
func normalizeBullet(s string) string {
	s = strings.TrimSpace(s)
	s = contactMarkersRe.ReplaceAllString(s, "")
	s = strings.TrimRight(s, ".")
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
