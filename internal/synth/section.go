package synth

import (
	"regexp"
	"strings"
)

// Section is a named subsection of a markdown narrative, located by heading.
type Section struct {
	Heading string // heading text as written, without the # markers
	Level   int    // 1–6
	Start   int    // byte offset of the heading line
	End     int    // byte offset one past the section body (next peer heading or EOF)
	Body    string // text between the heading line and End
}

// headingLine is a raw markdown heading found during a scan.
type headingLine struct {
	level     int
	lineStart int // byte offset of the '#'-line start
	lineEnd   int // byte offset one past the trailing newline (or EOF)
	text      string
}

var headingMarkerRe = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*#*\s*$`)

// scanHeadings returns every markdown heading in the text with byte offsets.
func scanHeadings(text string) []headingLine {
	var found []headingLine
	offset := 0
	for offset <= len(text) {
		lineEnd := strings.IndexByte(text[offset:], '\n')
		var next int
		var line string
		if lineEnd < 0 {
			line = text[offset:]
			next = len(text) + 1
		} else {
			line = text[offset : offset+lineEnd]
			next = offset + lineEnd + 1
		}
		if m := headingMarkerRe.FindStringSubmatch(line); m != nil {
			found = append(found, headingLine{
				level:     len(m[1]),
				lineStart: offset,
				lineEnd:   min(next, len(text)),
				text:      m[2],
			})
		}
		if lineEnd < 0 {
			break
		}
		offset = next
	}
	return found
}

var headingNumberPrefixRe = regexp.MustCompile(`^\d+(?:\.\d+)*[.)]?\s+`)

// normalizeHeading lowercases a heading label and strips numbering prefixes,
// emphasis markers, trailing colons, and extra whitespace so that
// "## 2. Executive Summary:" matches "executive summary".
func normalizeHeading(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*_`")
	s = headingNumberPrefixRe.ReplaceAllString(s, "")
	s = strings.TrimRight(s, ":")
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

// FindSection locates a section whose heading matches the label at any
// heading depth, case-insensitively. Returns nil when no heading matches.
func FindSection(text, label string) *Section {
	want := normalizeHeading(label)
	if want == "" {
		return nil
	}
	for _, h := range scanHeadings(text) {
		if normalizeHeading(h.text) == want {
			return sectionAt(text, h)
		}
	}
	return nil
}

// FindSectionContaining locates the first section whose normalized heading
// contains any of the given keywords.
func FindSectionContaining(text string, keywords ...string) *Section {
	for _, h := range scanHeadings(text) {
		norm := normalizeHeading(h.text)
		for _, kw := range keywords {
			if strings.Contains(norm, strings.ToLower(kw)) {
				return sectionAt(text, h)
			}
		}
	}
	return nil
}

// sectionAt builds a Section from a matched heading: the body runs to the
// next heading of the same or higher prominence, or end of document.
func sectionAt(text string, h headingLine) *Section {
	end := len(text)
	for _, other := range scanHeadings(text) {
		if other.lineStart > h.lineStart && other.level <= h.level {
			end = other.lineStart
			break
		}
	}
	return &Section{
		Heading: h.text,
		Level:   h.level,
		Start:   h.lineStart,
		End:     end,
		Body:    text[min(h.lineEnd, end):end],
	}
}

// RemoveSection returns the text with the section's heading and body cut out.
func RemoveSection(text string, sec *Section) string {
	if sec == nil {
		return text
	}
	return strings.TrimSpace(text[:sec.Start] + text[sec.End:])
}
