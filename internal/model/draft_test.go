package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResearchTypeForAgent(t *testing.T) {
	tests := []struct {
		agentType string
		want      ResearchType
	}{
		{"company_research", ResearchTypeCompany},
		{"company", ResearchTypeCompany},
		{"prospect_research", ResearchTypeProspect},
		{"competitive_analysis", ResearchTypeCompetitive},
		{"competitor", ResearchTypeCompetitive},
		{"market_research", ResearchTypeMarket},
		{"market", ResearchTypeMarket},
		{"", ResearchTypeCompany},
		{"unknown_agent", ResearchTypeCompany},
	}

	for _, tc := range tests {
		got := ResearchTypeForAgent(tc.agentType)
		assert.Equal(t, tc.want, got, "ResearchTypeForAgent(%q)", tc.agentType)
	}
}

func TestPriorityForComposite(t *testing.T) {
	tests := []struct {
		composite int
		want      PriorityLevel
	}{
		{100, PriorityHot},
		{80, PriorityHot},
		{79, PriorityWarm},
		{60, PriorityWarm},
		{59, PriorityStandard},
		{0, PriorityStandard},
	}

	for _, tc := range tests {
		got := PriorityForComposite(tc.composite)
		assert.Equal(t, tc.want, got, "PriorityForComposite(%d)", tc.composite)
	}
}

func TestConfidenceForSources(t *testing.T) {
	tests := []struct {
		sources int
		want    ConfidenceLevel
	}{
		{5, ConfidenceHigh},
		{3, ConfidenceHigh},
		{2, ConfidenceMedium},
		{1, ConfidenceMedium},
		{0, ConfidenceLow},
	}

	for _, tc := range tests {
		got := ConfidenceForSources(tc.sources)
		assert.Equal(t, tc.want, got, "ConfidenceForSources(%d)", tc.sources)
	}
}

func TestHasScores(t *testing.T) {
	icp, sig, comp := 70, 55, 60

	full := ResearchDraft{ICPFitScore: &icp, SignalScore: &sig, CompositeScore: &comp}
	assert.True(t, full.HasScores())

	partial := ResearchDraft{ICPFitScore: &icp}
	assert.False(t, partial.HasScores())

	empty := ResearchDraft{}
	assert.False(t, empty.HasScores())
}

func TestIsClarification(t *testing.T) {
	clarification := ResearchDraft{Subject: "Acme Corp"}
	assert.True(t, clarification.IsClarification())

	answered := ResearchDraft{Subject: "Acme Corp", ExecutiveSummary: "Summary.", MarkdownReport: "# Report"}
	assert.False(t, answered.IsClarification())
}
