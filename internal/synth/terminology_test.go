package synth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const terminologyFixture = `# Acme Corp

## Overview

Acme builds robots.

## Buying Signals

Context paragraph about the signals below.

- Recent Series B funding
- Hiring surge in sales

## Next Steps

Call them.
`

func TestAdaptTerminologyNoOp(t *testing.T) {
	assert.Equal(t, terminologyFixture, AdaptTerminology(terminologyFixture, "", nil))
}

func TestAdaptTerminologyRenamesSection(t *testing.T) {
	got := AdaptTerminology(terminologyFixture, "Growth Indicators", nil)

	assert.Contains(t, got, "## Growth Indicators")
	assert.NotContains(t, got, "## Buying Signals")
	assert.Contains(t, got, "- Recent Series B funding")
	assert.Contains(t, got, "Context paragraph about the signals below.")
	assert.Contains(t, got, "## Next Steps")
}

func TestAdaptTerminologyPrependsIndicators(t *testing.T) {
	got := AdaptTerminology(terminologyFixture, "Growth Indicators", []string{"New CTO hired", "Office expansion"})

	assert.Contains(t, got, "## Growth Indicators")
	assert.Contains(t, got, "- New CTO hired")
	assert.Contains(t, got, "- Office expansion")
	// Original bullets and prose survive.
	assert.Contains(t, got, "- Recent Series B funding")
	assert.Contains(t, got, "Context paragraph about the signals below.")
}

func TestAdaptTerminologyDropsDuplicateBullets(t *testing.T) {
	got := AdaptTerminology(terminologyFixture, "", []string{"Recent Series B funding"})

	assert.Equal(t, 1, strings.Count(got, "- Recent Series B funding"))
	assert.Contains(t, got, "- Hiring surge in sales")
}

func TestAdaptTerminologyAppendsSectionWhenMissing(t *testing.T) {
	narrative := "# Acme Corp\n\n## Overview\n\nAcme builds robots.\n"

	got := AdaptTerminology(narrative, "Growth Indicators", []string{"New CTO hired"})
	assert.Contains(t, got, "## Growth Indicators")
	assert.Contains(t, got, "- New CTO hired")

	// Without configured indicators there is nothing to append.
	same := AdaptTerminology(narrative, "Growth Indicators", nil)
	assert.Equal(t, narrative, same)
}

func TestAdaptTerminologyIdempotent(t *testing.T) {
	tests := []struct {
		name       string
		narrative  string
		label      string
		indicators []string
	}{
		{"rewrite existing section", terminologyFixture, "Growth Indicators", []string{"New CTO hired", "Recent Series B funding"}},
		{"default label", terminologyFixture, "", []string{"New CTO hired"}},
		{"append new section", "# Acme Corp\n\nBody text.\n", "Growth Indicators", []string{"New CTO hired"}},
		{"append with default label", "# Acme Corp\n\nBody text.\n", "", []string{"New CTO hired"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			once := AdaptTerminology(tc.narrative, tc.label, tc.indicators)
			twice := AdaptTerminology(once, tc.label, tc.indicators)
			assert.Equal(t, once, twice)
		})
	}
}
