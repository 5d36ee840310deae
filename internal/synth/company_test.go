package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCompanyData(t *testing.T) {
	narrative := `# Acme Corp

## Company Overview

- **Industry**: Enterprise SaaS
- **Employees**: 1,200
- Headquarters: Austin, TX
- Founded in 1998
- Website: https://acme.example.com

Acme sells workflow software to logistics companies.
`
	data := ExtractCompanyData(narrative)

	assert.Equal(t, "Enterprise SaaS", data[FieldIndustry])
	assert.Equal(t, "1,200", data[FieldSize])
	assert.Equal(t, "Austin, TX", data[FieldLocation])
	assert.Equal(t, "1998", data[FieldFounded])
	assert.Equal(t, "https://acme.example.com", data[FieldWebsite])
}

func TestExtractCompanyDataFirstMatchWins(t *testing.T) {
	narrative := `Industry: Robotics
Sector: Logistics
`
	data := ExtractCompanyData(narrative)
	assert.Equal(t, "Robotics", data[FieldIndustry])
}

func TestExtractCompanyDataInlineFallbacks(t *testing.T) {
	narrative := "Acme Corp, based in Denver, Colorado, has grown to 500+ employees since it was founded in 2011."
	data := ExtractCompanyData(narrative)

	assert.Equal(t, "500+", data[FieldSize])
	assert.Equal(t, "Denver, Colorado, has grown to 500+ employees since it was founded in 2011", data[FieldLocation])
	assert.Equal(t, "2011", data[FieldFounded])
}

func TestExtractCompanyDataMissingFieldsAbsent(t *testing.T) {
	data := ExtractCompanyData("Acme makes robots. Nothing structured here.")

	assert.Empty(t, data)
	_, ok := data[FieldIndustry]
	assert.False(t, ok, "missing field must be absent, not empty")
}

func TestCleanFieldValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Enterprise SaaS.  ", "Enterprise SaaS"},
		{"**Robotics**", "Robotics"},
		{"[acme.com](https://acme.com)", "acme.com"},
		{"Austin, TX |", "Austin, TX"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, cleanFieldValue(tc.input), "cleanFieldValue(%q)", tc.input)
	}
}
