package notion

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-intel/internal/model"
)

// notionTextLimit is Notion's per-rich-text content cap.
const notionTextLimit = 2000

// ExportDrafts pushes stored drafts into the given database, one page per
// draft. Drafts whose subject already has a page are skipped, so re-running
// an export never duplicates rows. Returns the number of pages created.
func ExportDrafts(ctx context.Context, c Client, dbID string, drafts []model.StoredDraft) (int, error) {
	pages, err := QueryAll(ctx, c, dbID, nil)
	if err != nil {
		return 0, eris.Wrap(err, "notion: list existing drafts")
	}

	existing := make(map[string]struct{}, len(pages))
	for _, page := range pages {
		if title := pageTitle(page); title != "" {
			existing[strings.ToLower(title)] = struct{}{}
		}
	}

	created := 0
	for _, sd := range drafts {
		if ctx.Err() != nil {
			return created, eris.Wrap(ctx.Err(), "notion: export cancelled")
		}
		if _, ok := existing[strings.ToLower(sd.Draft.Subject)]; ok {
			zap.L().Debug("notion: draft already exported", zap.String("subject", sd.Draft.Subject))
			continue
		}

		req := &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: notionapi.DatabaseID(dbID),
			},
			Properties: buildDraftProperties(sd),
		}
		if _, err := c.CreatePage(ctx, req); err != nil {
			return created, eris.Wrapf(err, "notion: create page for %s", sd.Draft.Subject)
		}
		existing[strings.ToLower(sd.Draft.Subject)] = struct{}{}
		created++
	}

	return created, nil
}

// UpdateDraftPage overwrites the properties of an existing draft page.
func UpdateDraftPage(ctx context.Context, c Client, pageID string, sd model.StoredDraft) error {
	_, err := c.UpdatePage(ctx, pageID, &notionapi.PageUpdateRequest{
		Properties: buildDraftProperties(sd),
	})
	if err != nil {
		return eris.Wrapf(err, "notion: update page %s", pageID)
	}
	return nil
}

// buildDraftProperties converts a stored draft to Notion page properties.
func buildDraftProperties(sd model.StoredDraft) notionapi.Properties {
	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Type:  notionapi.PropertyTypeTitle,
			Title: richText(sd.Draft.Subject),
		},
		"Research Type": notionapi.SelectProperty{
			Type:   notionapi.PropertyTypeSelect,
			Select: notionapi.Option{Name: string(sd.Draft.ResearchType)},
		},
		"Executive Summary": notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(truncateText(sd.Draft.ExecutiveSummary)),
		},
	}

	if sd.Draft.PriorityLevel != "" {
		props["Priority"] = notionapi.SelectProperty{
			Type:   notionapi.PropertyTypeSelect,
			Select: notionapi.Option{Name: string(sd.Draft.PriorityLevel)},
		}
	}
	if sd.Draft.ConfidenceLevel != "" {
		props["Confidence"] = notionapi.SelectProperty{
			Type:   notionapi.PropertyTypeSelect,
			Select: notionapi.Option{Name: string(sd.Draft.ConfidenceLevel)},
		}
	}
	if sd.Draft.HasScores() {
		props["ICP Fit"] = numberProperty(*sd.Draft.ICPFitScore)
		props["Signal"] = numberProperty(*sd.Draft.SignalScore)
		props["Composite"] = numberProperty(*sd.Draft.CompositeScore)
	}
	if len(sd.Draft.Sources) > 0 {
		props["Primary Source"] = notionapi.URLProperty{
			Type: notionapi.PropertyTypeURL,
			URL:  sd.Draft.Sources[0].URL,
		}
	}

	return props
}

func numberProperty(n int) notionapi.NumberProperty {
	return notionapi.NumberProperty{
		Type:   notionapi.PropertyTypeNumber,
		Number: float64(n),
	}
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{
		{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: s}},
	}
}

func truncateText(s string) string {
	runes := []rune(s)
	if len(runes) <= notionTextLimit {
		return s
	}
	return string(runes[:notionTextLimit])
}

// pageTitle extracts the plain title from a page's properties.
func pageTitle(page notionapi.Page) string {
	for _, prop := range page.Properties {
		switch p := prop.(type) {
		case *notionapi.TitleProperty:
			return plainText(p.Title)
		case notionapi.TitleProperty:
			return plainText(p.Title)
		}
	}
	return ""
}

func plainText(rich []notionapi.RichText) string {
	var b strings.Builder
	for _, rt := range rich {
		if rt.Text != nil {
			b.WriteString(rt.Text.Content)
		} else {
			b.WriteString(rt.PlainText)
		}
	}
	return b.String()
}
