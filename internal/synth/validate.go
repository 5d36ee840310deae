package synth

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sells-group/prospect-intel/internal/model"
)

// Minimum-quality contract enforced before a draft may be persisted.
const (
	minSubjectLen = 3
	minSummaryLen = 40
	minReportWord = 60
)

// ValidateDraft enforces the persistable record's minimum-quality contract.
// It returns a field-indexed error map — empty when the draft is valid —
// so a caller can surface every offending field at once. Zero sources is
// valid; malformed or duplicate source URLs are not.
func ValidateDraft(d *model.ResearchDraft) map[string]string {
	errs := make(map[string]string)

	if len(strings.TrimSpace(d.Subject)) < minSubjectLen {
		errs["subject"] = fmt.Sprintf("subject must be at least %d characters", minSubjectLen)
	}
	if len(strings.TrimSpace(d.ExecutiveSummary)) < minSummaryLen {
		errs["executive_summary"] = fmt.Sprintf("executive summary must be at least %d characters", minSummaryLen)
	}
	if len(strings.Fields(d.MarkdownReport)) < minReportWord {
		errs["markdown_report"] = fmt.Sprintf("report must be at least %d words", minReportWord)
	}

	seen := make(map[string]int)
	for i, s := range d.Sources {
		field := fmt.Sprintf("sources[%d].url", i)
		u, err := url.Parse(s.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs[field] = "source URL is not a well-formed absolute URL"
			continue
		}
		key := strings.ToLower(s.URL)
		if first, dup := seen[key]; dup {
			errs[field] = fmt.Sprintf("duplicate of sources[%d].url", first)
			continue
		}
		seen[key] = i
	}

	return errs
}
