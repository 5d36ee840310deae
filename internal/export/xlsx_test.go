package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/prospect-intel/internal/model"
)

func storedDraft(id, subject string) model.StoredDraft {
	icp, signal, composite := 72, 85, 80
	return model.StoredDraft{
		ID:     id,
		UserID: "user-1",
		Draft: model.ResearchDraft{
			Subject:          subject,
			ResearchType:     model.ResearchTypeCompany,
			ExecutiveSummary: "Builds industrial robots for mid-market logistics companies.",
			MarkdownReport:   "## Company Overview\n\nSteady growth.",
			Sources: []model.Source{
				{URL: "https://acme.example.com/about", Query: "acme about"},
				{URL: "https://news.example.com/acme", Query: "acme news"},
			},
			ICPFitScore:     &icp,
			SignalScore:     &signal,
			CompositeScore:  &composite,
			PriorityLevel:   model.PriorityHot,
			ConfidenceLevel: model.ConfidenceMedium,
		},
		CreatedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.xlsx")

	err := WriteXLSX(path, []model.StoredDraft{
		storedDraft("d1", "Acme Corp"),
		storedDraft("d2", "Globex Industries"),
	})
	require.NoError(t, err)

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	sheet, ok := f.Sheet["Drafts"]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)

	header := sheet.Rows[0]
	assert.Equal(t, "ID", header.Cells[0].String())
	assert.Equal(t, "Subject", header.Cells[2].String())

	first := sheet.Rows[1]
	assert.Equal(t, "d1", first.Cells[0].String())
	assert.Equal(t, "Acme Corp", first.Cells[2].String())
	assert.Equal(t, "company_research", first.Cells[3].String())
	assert.Equal(t, "hot", first.Cells[4].String())
	assert.Equal(t, "80", first.Cells[8].String())
	assert.Equal(t, "2", first.Cells[10].String())
	assert.Equal(t, "2026-03-14T10:00:00Z", first.Cells[11].String())
}

func TestWriteXLSX_ClarificationLeavesScoresBlank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.xlsx")

	sd := model.StoredDraft{
		ID:     "d3",
		UserID: "user-1",
		Draft: model.ResearchDraft{
			Subject:      "Acme Corp",
			ResearchType: model.ResearchTypeCompany,
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, WriteXLSX(path, []model.StoredDraft{sd}))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	row := f.Sheet["Drafts"].Rows[1]
	assert.Empty(t, row.Cells[6].String())
	assert.Empty(t, row.Cells[7].String())
	assert.Empty(t, row.Cells[8].String())
}

func TestWriteXLSX_EmptyDrafts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.xlsx")

	require.NoError(t, WriteXLSX(path, nil))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheet["Drafts"].Rows, 1)
}
