package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-intel/internal/model"
)

func TestExtractContactsLineShapes(t *testing.T) {
	tests := []struct {
		name      string
		narrative string
		want      []model.Contact
	}{
		{
			name:      "dash pair",
			narrative: "## Decision Makers\n- Jane Doe — CEO\n",
			want:      []model.Contact{{Name: "Jane Doe", Title: "CEO"}},
		},
		{
			name:      "hyphen pair",
			narrative: "## Decision Makers\n- John Smith - VP of Engineering\n",
			want:      []model.Contact{{Name: "John Smith", Title: "VP of Engineering"}},
		},
		{
			name:      "name paren title",
			narrative: "## Decision Makers\nMary Johnson (Chief Revenue Officer)\n",
			want:      []model.Contact{{Name: "Mary Johnson", Title: "Chief Revenue Officer"}},
		},
		{
			name:      "comma pair",
			narrative: "## Decision Makers\nJohn Smith, VP of Sales\n",
			want:      []model.Contact{{Name: "John Smith", Title: "VP of Sales"}},
		},
		{
			name:      "colon pair",
			narrative: "## Decision Makers\nAlice Brown: Head of Procurement\n",
			want:      []model.Contact{{Name: "Alice Brown", Title: "Head of Procurement"}},
		},
		{
			name:      "title paren name",
			narrative: "## Decision Makers\nCFO (Bob White)\n",
			want:      []model.Contact{{Name: "Bob White", Title: "CFO"}},
		},
		{
			name:      "table row",
			narrative: "## Decision Makers\n| Name | Title |\n| --- | --- |\n| Alice Brown | CTO |\n",
			want:      []model.Contact{{Name: "Alice Brown", Title: "CTO"}},
		},
		{
			name:      "bold markers stripped",
			narrative: "## Leadership\n- **Jane Doe** — **CEO**\n",
			want:      []model.Contact{{Name: "Jane Doe", Title: "CEO"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractContacts(tc.narrative, ContactOptions{})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractContactsRejectsNonRoleTitles(t *testing.T) {
	// Name shape passes; title fails the role-keyword check.
	narrative := "## Decision Makers\n- Random Person — Gardener\n"
	got := ExtractContacts(narrative, ContactOptions{})
	assert.Empty(t, got)
}

func TestExtractContactsTargetTitlesExtendVocabulary(t *testing.T) {
	narrative := "## Decision Makers\n- Random Person — Gardener\n"
	got := ExtractContacts(narrative, ContactOptions{TargetTitles: []string{"gardener"}})
	require.Len(t, got, 1)
	assert.Equal(t, "Random Person", got[0].Name)
}

func TestExtractContactsRejectsBadNameShape(t *testing.T) {
	tests := []string{
		"## Decision Makers\n- jane doe — CEO\n",   // lowercase
		"## Decision Makers\n- Jane — CEO\n",       // single word
		"## Decision Makers\n- THE ACME TEAM OF MANY PEOPLE HERE — CEO\n", // too many words
	}
	for _, narrative := range tests {
		assert.Empty(t, ExtractContacts(narrative, ContactOptions{}), "narrative %q", narrative)
	}
}

func TestExtractContactsDeduplicates(t *testing.T) {
	narrative := "## Leadership\n- Jane Doe — CEO\n- jane doe — ceo\n- Jane Doe (CEO)\n"
	got := ExtractContacts(narrative, ContactOptions{})
	require.Len(t, got, 1)
	assert.Equal(t, model.Contact{Name: "Jane Doe", Title: "CEO"}, got[0])
}

func TestExtractContactsCap(t *testing.T) {
	narrative := `## Decision Makers
- Ann Smith — CEO
- Bob Jones — CTO
- Carl White — CFO
- Dana Black — COO
- Eve Green — CMO
- Frank Gray — CIO
- Gail Brown — CRO
`
	got := ExtractContacts(narrative, ContactOptions{})
	assert.Len(t, got, DefaultMaxContacts)

	got = ExtractContacts(narrative, ContactOptions{MaxContacts: 2})
	assert.Len(t, got, 2)
}

func TestExtractContactsSectionRestriction(t *testing.T) {
	narrative := `## Key Contacts

- Jane Doe — CEO

## Customer Quotes

- Sam Spade — Director of Quotes at Somewhere Else
`
	got := ExtractContacts(narrative, ContactOptions{})
	require.Len(t, got, 1)
	assert.Equal(t, "Jane Doe", got[0].Name)
}

func TestExtractContactsWholeDocumentFallback(t *testing.T) {
	narrative := "Acme is led by its founders.\n\nJane Doe, CEO\n"
	got := ExtractContacts(narrative, ContactOptions{})
	require.Len(t, got, 1)
	assert.Equal(t, model.Contact{Name: "Jane Doe", Title: "CEO"}, got[0])
}
