package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-intel/internal/model"
	"github.com/sells-group/prospect-intel/internal/synth"
)

var (
	synthSave     bool
	synthUser     string
	synthContacts bool
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize [input.json]",
	Short: "Synthesize a research draft from a conversation exchange",
	Long:  "Reads a draft input document (assistant narrative plus conversational context) from a file or stdin and prints the synthesized draft as JSON.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		var input model.DraftInput
		if err := readJSON(path, &input); err != nil {
			return err
		}

		draft := synth.Synthesize(input, synthOptions())

		if synthSave {
			if errs := synth.ValidateDraft(&draft); len(errs) > 0 {
				zap.L().Warn("draft failed validation, not saving", zap.Int("errors", len(errs)))
				if err := printJSON(map[string]any{"draft": draft, "errors": errs}); err != nil {
					return err
				}
				return eris.New("draft failed validation")
			}

			st, err := initStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			saved, err := st.SaveDraft(cmd.Context(), synthUser, draft)
			if err != nil {
				return eris.Wrap(err, "save draft")
			}
			return printJSON(saved)
		}

		if synthContacts {
			return printJSON(map[string]any{
				"draft":    draft,
				"contacts": synth.Contacts(input, synthOptions()),
			})
		}
		return printJSON(draft)
	},
}

func init() {
	synthesizeCmd.Flags().BoolVar(&synthSave, "save", false, "validate and persist the draft")
	synthesizeCmd.Flags().StringVar(&synthUser, "user", "", "owner recorded on the saved draft")
	synthesizeCmd.Flags().BoolVar(&synthContacts, "contacts", false, "include extracted contacts in the output")
	rootCmd.AddCommand(synthesizeCmd)
}
