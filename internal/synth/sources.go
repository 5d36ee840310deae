package synth

import (
	"regexp"
	"strings"

	"github.com/sells-group/prospect-intel/internal/model"
)

// bareURLRe recovers URLs embedded in narrative prose.
var bareURLRe = regexp.MustCompile(`https?://[^\s)\]>"'` + "`" + `]+`)

// NormalizeSources merges pre-shaped source records and raw search batches
// into a single URL-deduplicated list. Order and query attribution are
// first-seen; duplicates differ-by-case are collapsed. When nothing was
// supplied, the first bare URL in the narrative is adopted as a best-effort
// single source. Idempotent: normalizing an already-normalized list is a
// no-op.
func NormalizeSources(shaped []model.Source, batches []model.SearchBatch, narrative string) []model.Source {
	seen := make(map[string]bool)
	out := []model.Source{}

	add := func(rawURL, query string) {
		u := strings.TrimRight(strings.TrimSpace(rawURL), ".,;")
		if u == "" {
			return
		}
		key := strings.ToLower(u)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, model.Source{URL: u, Query: query})
	}

	for _, s := range shaped {
		add(s.URL, s.Query)
	}
	for _, b := range batches {
		for _, u := range b.URLs {
			add(u, b.Query)
		}
	}

	if len(out) == 0 {
		if m := bareURLRe.FindString(narrative); m != "" {
			add(m, "")
		}
	}
	return out
}
