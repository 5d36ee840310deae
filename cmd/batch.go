package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-intel/internal/batch"
	"github.com/sells-group/prospect-intel/internal/model"
)

var (
	batchConcurrency int
	batchOut         string
	batchSave        bool
	batchUser        string
)

var batchCmd = &cobra.Command{
	Use:   "batch <inputs.jsonl>",
	Short: "Synthesize drafts for a JSONL file of conversation exchanges",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		inputs, err := batch.ReadInputs(args[0])
		if err != nil {
			return err
		}

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.MaxConcurrent
		}

		results, err := batch.Run(ctx, inputs, synthOptions(), concurrency)
		if err != nil {
			return err
		}

		if batchSave {
			var valid []model.ResearchDraft
			for _, r := range results {
				if r.Valid() && !r.Draft.IsClarification() {
					valid = append(valid, r.Draft)
				}
			}
			if len(valid) > 0 {
				st, err := initStore(ctx)
				if err != nil {
					return err
				}
				defer st.Close()

				stored, err := st.SaveDrafts(ctx, batchUser, valid)
				if err != nil {
					return eris.Wrap(err, "save drafts")
				}
				zap.L().Info("drafts saved", zap.Int("count", len(stored)))
			}
		}

		out := os.Stdout
		if batchOut != "" {
			f, err := os.Create(batchOut)
			if err != nil {
				return eris.Wrapf(err, "create %s", batchOut)
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return eris.Wrap(err, "write result")
			}
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max concurrent syntheses (default from config)")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "write results JSONL to a file instead of stdout")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "persist drafts that pass validation")
	batchCmd.Flags().StringVar(&batchUser, "user", "", "owner recorded on saved drafts")
	rootCmd.AddCommand(batchCmd)
}
