package synth

import (
	"math"
	"strings"
)

// ScoreSet holds the heuristic 0–100 scores computed for one draft. All
// four are always computed together.
type ScoreSet struct {
	Coverage  int `json:"coverage"`
	ICPFit    int `json:"icp_fit"`
	Signal    int `json:"signal"`
	Composite int `json:"composite"`
}

// Composite weights: 30% ICP fit, 40% signal, 30% coverage.
const (
	compositeICPWeight      = 0.30
	compositeSignalWeight   = 0.40
	compositeCoverageWeight = 0.30
)

// Keyword families. Hits count distinct keywords present, not occurrences,
// so scoring stays deterministic and bounded.
var (
	icpKeywords    = []string{"icp", "ideal customer profile", "fit score"}
	signalKeywords = []string{"signal", "trigger", "intent", "buying"}
)

// ComputeScores is a pure function of the narrative text and the source
// count. It is monotonic in source count: more sources never lower a score.
func ComputeScores(narrative string, sourceCount int) ScoreSet {
	lower := strings.ToLower(narrative)

	coverage := coverageScore(narrative)
	sourceBoost := min(5*sourceCount, 20)

	icp := clampScore(40 + sourceBoost + min(8*keywordHits(lower, icpKeywords), 24))
	signal := clampScore(35 + sourceBoost + min(10*keywordHits(lower, signalKeywords), 30))

	composite := clampScore(int(math.Round(
		compositeICPWeight*float64(icp) +
			compositeSignalWeight*float64(signal) +
			compositeCoverageWeight*float64(coverage))))

	return ScoreSet{
		Coverage:  coverage,
		ICPFit:    icp,
		Signal:    signal,
		Composite: composite,
	}
}

// coverageScore rates how much structured narrative there is to work with:
// word volume plus section and list structure.
func coverageScore(narrative string) int {
	words := len(strings.Fields(narrative))
	score := min(words/12, 60)
	score += 5 * min(len(scanHeadings(narrative)), 5)
	for _, line := range strings.Split(narrative, "\n") {
		if bulletRe.MatchString(line) {
			score += 10
			break
		}
	}
	return clampScore(score)
}

// keywordHits counts how many family keywords appear in the lowercased text.
func keywordHits(lower string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return hits
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
