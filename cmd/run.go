package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-intel/internal/synth"
	"github.com/sells-group/prospect-intel/pkg/agent"
)

var (
	runAgentType string
	runSave      bool
	runUser      string
)

var runCmd = &cobra.Command{
	Use:   "run <subject>",
	Short: "Research a subject end to end and synthesize a draft",
	Long:  "Asks the research agent for a narrative about the subject, then synthesizes, validates, and optionally persists the resulting draft.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		subject := strings.Join(args, " ")

		if cfg.Agent.Key == "" {
			return eris.New("agent API key is required (PROSPECT_AGENT_KEY)")
		}

		client := agent.NewClient(cfg.Agent.Key, agent.WithRateLimit(cfg.Agent.RPS))
		researcher := agent.NewResearcher(client, cfg.Agent.Model, cfg.Agent.MaxTokens)

		input, err := researcher.Research(ctx, subject, runAgentType)
		if err != nil {
			return err
		}

		draft := synth.Synthesize(*input, synthOptions())
		if draft.IsClarification() {
			zap.L().Warn("agent asked for clarification instead of a report",
				zap.String("subject", subject))
			return printJSON(draft)
		}

		errs := synth.ValidateDraft(&draft)
		if len(errs) > 0 {
			if err := printJSON(map[string]any{"draft": draft, "errors": errs}); err != nil {
				return err
			}
			return eris.Errorf("draft failed validation with %d error(s)", len(errs))
		}

		if runSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			saved, err := st.SaveDraft(ctx, runUser, draft)
			if err != nil {
				return eris.Wrap(err, "save draft")
			}
			return printJSON(saved)
		}
		return printJSON(draft)
	},
}

func init() {
	runCmd.Flags().StringVar(&runAgentType, "agent-type", "company_research", "research agent type")
	runCmd.Flags().BoolVar(&runSave, "save", false, "persist the draft after validation")
	runCmd.Flags().StringVar(&runUser, "user", "", "owner recorded on the saved draft")
	rootCmd.AddCommand(runCmd)
}
