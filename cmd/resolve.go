package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/smazurov/ledintent/internal/intent"
	"github.com/spf13/cobra"
)

// CreateResolveCmd creates the resolve command.
func CreateResolveCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve <intent> [key=value...]",
		Short: "Resolve an intent without contacting the LED backend",
		Long: `Resolves an intent and its parameters to a 4-LED pattern and prints it. ` +
			`Example: ledintent resolve setmood mood=calm`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}

			action, err := intent.Resolve(args[0], params)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(actionJSON{
					Intent:  string(action.Intent),
					Action:  string(action.Kind),
					Pattern: action.Pattern.String(),
				})
			}

			if action.Kind == intent.ActionStatus {
				fmt.Fprintf(out, "%s %s\n", bold(action.Intent), dim("(status query)"))
				return nil
			}
			fmt.Fprintf(out, "%s %s  %s\n", bold(action.Intent), action.Pattern, renderPattern(action.Pattern))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the resolution as JSON")
	cmd.SilenceUsage = true

	return cmd
}

type actionJSON struct {
	Intent   string          `json:"intent"`
	Action   string          `json:"action"`
	Pattern  string          `json:"pattern,omitempty"`
	Response json.RawMessage `json:"result,omitempty"`
}
