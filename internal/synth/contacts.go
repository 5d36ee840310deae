package synth

import (
	"regexp"
	"strings"

	"github.com/sells-group/prospect-intel/internal/model"
)

// DefaultMaxContacts caps extraction when the caller does not.
const DefaultMaxContacts = 6

// roleKeywords is the built-in vocabulary a title must match. Callers can
// extend it with target-title hints.
var roleKeywords = []string{
	"ceo", "cto", "cfo", "coo", "cio", "cmo", "cro", "cpo", "chro",
	"chief", "president", "vice president", "vp", "evp", "svp",
	"director", "head of", "founder", "co-founder", "owner",
	"manager", "lead", "principal", "partner", "officer",
}

// nameShapeRe accepts capitalized multi-word names (2–4 words), allowing
// initials, hyphens, and apostrophes: "Jane Doe", "Mary-Ann O'Neil",
// "John Q. Public".
var nameShapeRe = regexp.MustCompile(`^[A-Z][A-Za-z'’.\-]*(?: [A-Z][A-Za-z'’.\-]*){1,3}$`)

// contactSectionKeywords locate the section to scan before falling back to
// the whole document.
var contactSectionKeywords = []string{"decision makers", "key contacts", "leadership", "key people"}

// contactMatcher tries one line shape and returns a (name, title) candidate.
// Candidates are validated by the caller; a matcher only parses.
type contactMatcher func(line string) (name, title string, ok bool)

// contactMatchers are tried in order per line; the first shape that yields a
// valid candidate wins. Independent functions, not a hierarchy, so each is
// testable on its own.
var contactMatchers = []contactMatcher{
	matchTableRow,
	matchDashPair,
	matchNameParenTitle,
	matchCommaPair,
	matchColonPair,
	matchTitleParenName,
}

var (
	tableRowRe       = regexp.MustCompile(`^\|\s*([^|]+?)\s*\|\s*([^|]+?)\s*\|`)
	tableRuleRe      = regexp.MustCompile(`^\|[\s:|-]+\|?$`)
	dashPairRe       = regexp.MustCompile(`^(.+?)\s+[—–-]\s+(.+)$`)
	parenRe          = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)\s*$`)
	commaPairRe      = regexp.MustCompile(`^([^,]+),\s*(.+)$`)
	colonPairRe      = regexp.MustCompile(`^([^:]+):\s*(.+)$`)
	contactMarkersRe = regexp.MustCompile(`(\*\*|__|\*|_|` + "`" + `)`)
)

func matchTableRow(line string) (string, string, bool) {
	if tableRuleRe.MatchString(line) {
		return "", "", false
	}
	m := tableRowRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func matchDashPair(line string) (string, string, bool) {
	m := dashPairRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func matchNameParenTitle(line string) (string, string, bool) {
	m := parenRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func matchCommaPair(line string) (string, string, bool) {
	m := commaPairRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func matchColonPair(line string) (string, string, bool) {
	m := colonPairRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// matchTitleParenName handles the inverted shape "CEO (Jane Doe)".
func matchTitleParenName(line string) (string, string, bool) {
	m := parenRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[2], m[1], true
}

// ContactOptions configures contact extraction.
type ContactOptions struct {
	// TargetTitles extends the role-keyword vocabulary (e.g. the user's
	// configured buyer personas).
	TargetTitles []string
	// MaxContacts caps the result; <=0 uses DefaultMaxContacts.
	MaxContacts int
}

// ExtractContacts recovers named decision-makers from the narrative. The
// scan is restricted to a decision-makers/leadership section when one
// exists. A candidate is kept only when the name passes the capitalized
// multi-word shape check AND the title matches the role vocabulary.
// Duplicate (name, title) pairs are suppressed case-insensitively.
func ExtractContacts(narrative string, opts ContactOptions) []model.Contact {
	maxContacts := opts.MaxContacts
	if maxContacts <= 0 {
		maxContacts = DefaultMaxContacts
	}

	scan := narrative
	if sec := FindSectionContaining(narrative, contactSectionKeywords...); sec != nil {
		scan = sec.Body
	}

	seen := make(map[string]bool)
	var contacts []model.Contact
	for _, raw := range strings.Split(scan, "\n") {
		line := cleanContactLine(raw)
		if line == "" {
			continue
		}
		for _, match := range contactMatchers {
			name, title, ok := match(line)
			if !ok {
				continue
			}
			name = strings.TrimSpace(name)
			title = strings.TrimSpace(title)
			if !nameShapeRe.MatchString(name) || !titleMatchesRole(title, opts.TargetTitles) {
				continue
			}
			key := strings.ToLower(name) + "|" + strings.ToLower(title)
			if seen[key] {
				break
			}
			seen[key] = true
			contacts = append(contacts, model.Contact{Name: name, Title: title})
			break
		}
		if len(contacts) >= maxContacts {
			break
		}
	}
	return contacts
}

// cleanContactLine strips bullet markers and emphasis so the shape matchers
// see plain "Name — Title" text. Table pipes are preserved.
func cleanContactLine(raw string) string {
	line := strings.TrimSpace(raw)
	if !strings.HasPrefix(line, "|") {
		line = bulletRe.ReplaceAllString(line, "")
	}
	line = contactMarkersRe.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}

// titleMatchesRole checks the extracted title against the built-in role
// vocabulary plus any caller-supplied target titles.
func titleMatchesRole(title string, targetTitles []string) bool {
	lower := strings.ToLower(title)
	if lower == "" {
		return false
	}
	for _, kw := range roleKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, kw := range targetTitles {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
