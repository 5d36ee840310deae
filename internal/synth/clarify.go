package synth

import "strings"

// clarificationPhrases are characteristic of the agent asking the user to
// choose a research depth or scope instead of delivering findings. Matching
// is case-insensitive substring.
var clarificationPhrases = []string{
	"what type of research would be most helpful",
	"what kind of research would be most helpful",
	"pick from these or list your own",
	"which of these would you like",
	"which option would you like",
	"would you like a quick overview or a deep dive",
	"quick overview or a deep dive",
	"what would you like me to focus on",
	"how deep should i go",
	"before i start researching",
	"let me know which",
	"could you clarify what",
}

// minAnswerLength is the shortest narrative that can pass the structural
// check without headings or a source URL.
const minAnswerLength = 400

// IsClarification reports whether the narrative is a mid-conversation
// question rather than a completed research answer. True when any known
// clarification phrase appears, or when the text has no structure at all:
// no headings, no recoverable URL, and under the minimum length.
func IsClarification(narrative string) bool {
	lower := strings.ToLower(narrative)
	for _, phrase := range clarificationPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	if len(scanHeadings(narrative)) == 0 &&
		!bareURLRe.MatchString(narrative) &&
		len(strings.TrimSpace(narrative)) < minAnswerLength {
		return true
	}
	return false
}
