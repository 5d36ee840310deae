package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/prospect-intel/internal/model"
	"github.com/sells-group/prospect-intel/internal/synth"
)

var validateCmd = &cobra.Command{
	Use:   "validate [draft.json]",
	Short: "Validate a research draft against the minimum-quality contract",
	Long:  "Reads a draft from a file or stdin and prints a field-indexed error map. Exits non-zero when the draft fails validation.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		var draft model.ResearchDraft
		if err := readJSON(path, &draft); err != nil {
			return err
		}

		errs := synth.ValidateDraft(&draft)
		if err := printJSON(map[string]any{"valid": len(errs) == 0, "errors": errs}); err != nil {
			return err
		}
		if len(errs) > 0 {
			return eris.Errorf("draft failed validation with %d error(s)", len(errs))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
