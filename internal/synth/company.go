package synth

import (
	"regexp"
	"strings"
)

// Company data field keys. The company_data map only ever contains these;
// a missing key means the field was not recovered, never "present but
// unknown".
const (
	FieldIndustry = "industry"
	FieldSize     = "size"
	FieldLocation = "location"
	FieldFounded  = "founded"
	FieldWebsite  = "website"
)

// fieldPattern pairs a company_data key with one extraction pattern. The
// list is ordered; the first match per field wins.
type fieldPattern struct {
	field string
	re    *regexp.Regexp
}

// companyFieldPatterns target the field-label conventions research agents
// use in company overview sections ("Industry: SaaS", "- Founded: 1998").
var companyFieldPatterns = []fieldPattern{
	{FieldIndustry, regexp.MustCompile(`(?im)^[\s>*-]*\**(?:industry|sector)\**\s*[:\-–—]\s*(.+)$`)},
	{FieldSize, regexp.MustCompile(`(?im)^[\s>*-]*\**(?:company size|headcount|employees|employee count)\**\s*[:\-–—]\s*(.+)$`)},
	{FieldSize, regexp.MustCompile(`(?i)(\d[\d,]*\+?)\s+employees`)},
	{FieldLocation, regexp.MustCompile(`(?im)^[\s>*-]*\**(?:headquarters|location|hq)\**\s*[:\-–—]\s*(.+)$`)},
	{FieldLocation, regexp.MustCompile(`(?i)(?:headquartered|based)\s+in\s+([^.\n]+)`)},
	{FieldFounded, regexp.MustCompile(`(?i)founded(?:\s+in)?\s*[:\-–—]?\s*((?:18|19|20)\d{2})`)},
	{FieldWebsite, regexp.MustCompile(`(?im)^[\s>*-]*\**website\**\s*[:\-–—]\s*(\S+)`)},
	{FieldWebsite, regexp.MustCompile(`(?i)website[^\n]*?(https?://[^\s)\]>"']+)`)},
}

const maxFieldValueLen = 150

// ExtractCompanyData pulls structured company attributes from the
// narrative. Fields with no match are absent from the result.
func ExtractCompanyData(narrative string) map[string]string {
	data := make(map[string]string)
	for _, fp := range companyFieldPatterns {
		if _, done := data[fp.field]; done {
			continue
		}
		m := fp.re.FindStringSubmatch(narrative)
		if m == nil {
			continue
		}
		if v := cleanFieldValue(m[1]); v != "" {
			data[fp.field] = v
		}
	}
	return data
}

// cleanFieldValue strips markdown syntax and trailing punctuation from an
// extracted value.
func cleanFieldValue(v string) string {
	v = strings.TrimSpace(v)
	v = mdLinkRe.ReplaceAllString(v, "$1")
	v = mdEmphasisRe.ReplaceAllString(v, "")
	v = strings.TrimRight(v, " .,;|")
	return truncate(strings.TrimSpace(v), maxFieldValueLen)
}
