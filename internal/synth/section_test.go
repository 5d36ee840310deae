package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sectionFixture = `# Acme Corp Research

Intro paragraph.

## Executive Summary

Acme builds robots. Revenue is growing.

## Market Details

More detail here.

### Regional Breakdown

Deep detail.

## 3. Buying Signals:

- Recent funding
`

func TestFindSection(t *testing.T) {
	tests := []struct {
		name        string
		label       string
		wantHeading string
		wantLevel   int
		wantInBody  string
		notInBody   string
	}{
		{
			name:        "exact match",
			label:       "Executive Summary",
			wantHeading: "Executive Summary",
			wantLevel:   2,
			wantInBody:  "Acme builds robots.",
			notInBody:   "More detail",
		},
		{
			name:        "case-insensitive",
			label:       "executive summary",
			wantHeading: "Executive Summary",
			wantLevel:   2,
			wantInBody:  "Revenue is growing.",
		},
		{
			name:        "deeper heading stays inside section",
			label:       "Market Details",
			wantHeading: "Market Details",
			wantLevel:   2,
			wantInBody:  "Deep detail.",
			notInBody:   "Recent funding",
		},
		{
			name:        "numbered heading with trailing colon",
			label:       "Buying Signals",
			wantHeading: "3. Buying Signals:",
			wantLevel:   2,
			wantInBody:  "Recent funding",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sec := FindSection(sectionFixture, tc.label)
			require.NotNil(t, sec)
			assert.Equal(t, tc.wantHeading, sec.Heading)
			assert.Equal(t, tc.wantLevel, sec.Level)
			assert.Contains(t, sec.Body, tc.wantInBody)
			if tc.notInBody != "" {
				assert.NotContains(t, sec.Body, tc.notInBody)
			}
		})
	}
}

func TestFindSectionMissing(t *testing.T) {
	assert.Nil(t, FindSection(sectionFixture, "Decision Makers"))
	assert.Nil(t, FindSection(sectionFixture, ""))
	assert.Nil(t, FindSection("no headings at all", "Executive Summary"))
}

func TestFindSectionContaining(t *testing.T) {
	sec := FindSectionContaining(sectionFixture, "signal", "indicator", "trigger")
	require.NotNil(t, sec)
	assert.Equal(t, "3. Buying Signals:", sec.Heading)

	assert.Nil(t, FindSectionContaining(sectionFixture, "pricing"))
}

func TestSectionRunsToEndOfDocument(t *testing.T) {
	sec := FindSection(sectionFixture, "Buying Signals")
	require.NotNil(t, sec)
	assert.Equal(t, len(sectionFixture), sec.End)
}

func TestRemoveSection(t *testing.T) {
	sec := FindSection(sectionFixture, "Executive Summary")
	require.NotNil(t, sec)

	out := RemoveSection(sectionFixture, sec)
	assert.NotContains(t, out, "Acme builds robots.")
	assert.NotContains(t, out, "## Executive Summary")
	assert.Contains(t, out, "## Market Details")
	assert.Contains(t, out, "Intro paragraph.")

	assert.Equal(t, sectionFixture, RemoveSection(sectionFixture, nil))
}

func TestNormalizeHeading(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Executive Summary", "executive summary"},
		{"  Executive   Summary: ", "executive summary"},
		{"2. Executive Summary", "executive summary"},
		{"1.2 Market Overview", "market overview"},
		{"**Key Contacts**", "key contacts"},
		{"", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, normalizeHeading(tc.input), "normalizeHeading(%q)", tc.input)
	}
}
