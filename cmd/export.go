package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-intel/internal/export"
	"github.com/sells-group/prospect-intel/internal/model"
	"github.com/sells-group/prospect-intel/internal/store"
	"github.com/sells-group/prospect-intel/pkg/notion"
	sfpkg "github.com/sells-group/prospect-intel/pkg/salesforce"
)

var (
	exportUser     string
	exportPriority string
	exportType     string
	exportSubject  string
	exportLimit    int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored drafts to downstream systems",
}

// loadDrafts fetches drafts matching the shared export filter flags.
func loadDrafts(ctx context.Context) ([]model.StoredDraft, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	drafts, err := st.ListDrafts(ctx, store.DraftFilter{
		UserID:       exportUser,
		Priority:     model.PriorityLevel(exportPriority),
		ResearchType: model.ResearchType(exportType),
		Subject:      exportSubject,
		Limit:        exportLimit,
	})
	if err != nil {
		return nil, eris.Wrap(err, "list drafts")
	}
	if len(drafts) == 0 {
		zap.L().Warn("no drafts matched the export filter")
	}
	return drafts, nil
}

var exportXLSXCmd = &cobra.Command{
	Use:   "xlsx <file.xlsx>",
	Short: "Write matching drafts to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		drafts, err := loadDrafts(cmd.Context())
		if err != nil {
			return err
		}
		if err := export.WriteXLSX(args[0], drafts); err != nil {
			return err
		}
		zap.L().Info("xlsx export complete",
			zap.String("path", args[0]),
			zap.Int("drafts", len(drafts)),
		)
		return nil
	},
}

var exportNotionCmd = &cobra.Command{
	Use:   "notion",
	Short: "Create Notion pages for matching drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Notion.Token == "" || cfg.Notion.DraftDB == "" {
			return eris.New("notion token and draft database ID are required")
		}

		drafts, err := loadDrafts(cmd.Context())
		if err != nil {
			return err
		}

		client := notion.NewClient(cfg.Notion.Token)
		created, err := notion.ExportDrafts(cmd.Context(), client, cfg.Notion.DraftDB, drafts)
		if err != nil {
			return err
		}
		zap.L().Info("notion export complete",
			zap.Int("created", created),
			zap.Int("skipped", len(drafts)-created),
		)
		return nil
	},
}

var exportSalesforceCmd = &cobra.Command{
	Use:   "salesforce",
	Short: "Push matching drafts onto Salesforce Accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		drafts, err := loadDrafts(ctx)
		if err != nil {
			return err
		}

		client, err := initSalesforce()
		if err != nil {
			return err
		}

		pushed, created := 0, 0
		for _, sd := range drafts {
			if sd.Draft.IsClarification() {
				continue
			}
			_, wasCreated, err := sfpkg.PushDraft(ctx, client, sd.Draft)
			if err != nil {
				zap.L().Error("salesforce push failed",
					zap.String("subject", sd.Draft.Subject),
					zap.Error(err),
				)
				continue
			}
			pushed++
			if wasCreated {
				created++
			}
		}
		zap.L().Info("salesforce export complete",
			zap.Int("pushed", pushed),
			zap.Int("accounts_created", created),
		)
		return nil
	},
}

func init() {
	exportCmd.PersistentFlags().StringVar(&exportUser, "user", "", "filter by draft owner")
	exportCmd.PersistentFlags().StringVar(&exportPriority, "priority", "", "filter by priority level (hot, warm, standard)")
	exportCmd.PersistentFlags().StringVar(&exportType, "research-type", "", "filter by research type")
	exportCmd.PersistentFlags().StringVar(&exportSubject, "subject", "", "filter by subject substring")
	exportCmd.PersistentFlags().IntVar(&exportLimit, "limit", 0, "max drafts to export")

	exportCmd.AddCommand(exportXLSXCmd)
	exportCmd.AddCommand(exportNotionCmd)
	exportCmd.AddCommand(exportSalesforceCmd)
	rootCmd.AddCommand(exportCmd)
}
