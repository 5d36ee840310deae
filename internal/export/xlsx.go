// Package export renders stored drafts for downstream consumers.
package export

import (
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/prospect-intel/internal/model"
)

// xlsxHeader is the column order of the draft worksheet.
var xlsxHeader = []string{
	"ID", "User", "Subject", "Research Type", "Priority", "Confidence",
	"ICP Fit", "Signal", "Composite", "Executive Summary", "Sources", "Created At",
}

// WriteXLSX writes stored drafts to an Excel workbook at path, one row per
// draft. Clarification drafts carry no scores and leave those cells blank.
func WriteXLSX(path string, drafts []model.StoredDraft) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Drafts")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range xlsxHeader {
		header.AddCell().SetString(h)
	}

	for _, sd := range drafts {
		row := sheet.AddRow()
		row.AddCell().SetString(sd.ID)
		row.AddCell().SetString(sd.UserID)
		row.AddCell().SetString(sd.Draft.Subject)
		row.AddCell().SetString(string(sd.Draft.ResearchType))
		row.AddCell().SetString(string(sd.Draft.PriorityLevel))
		row.AddCell().SetString(string(sd.Draft.ConfidenceLevel))
		addScoreCell(row, sd.Draft.ICPFitScore)
		addScoreCell(row, sd.Draft.SignalScore)
		addScoreCell(row, sd.Draft.CompositeScore)
		row.AddCell().SetString(sd.Draft.ExecutiveSummary)
		row.AddCell().SetString(strconv.Itoa(len(sd.Draft.Sources)))
		row.AddCell().SetString(sd.CreatedAt.UTC().Format(time.RFC3339))
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

func addScoreCell(row *xlsx.Row, score *int) {
	cell := row.AddCell()
	if score != nil {
		cell.SetInt(*score)
	}
}
