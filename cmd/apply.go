package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/smazurov/ledintent/internal/intent"
	"github.com/smazurov/ledintent/internal/led"
	"github.com/smazurov/ledintent/internal/ledapi"
	"github.com/smazurov/ledintent/internal/logging"
	"github.com/spf13/cobra"
)

// CreateApplyCmd creates the apply command.
func CreateApplyCmd() *cobra.Command {
	var (
		backendURL string
		kind       string
		timeout    time.Duration
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "apply <intent> [key=value...]",
		Short: "Resolve an intent and send it to the LED backend",
		Long: `Resolves an intent and performs a single backend call: setLedStatus for ` +
			`pattern intents, status for getstatus. The backend response is printed as received.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}

			logger := logging.GetLogger("backend")
			gateway, err := led.New(led.Options{
				Kind:       kind,
				BackendURL: backendURL,
				Timeout:    timeout,
				Logger:     logger,
			})
			if err != nil {
				return err
			}

			service := intent.NewService(intent.ServiceOptions{
				Gateway: gateway,
				Logger:  logging.GetLogger("intent"),
			})

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout+time.Second)
			defer cancel()

			result, err := service.Handle(ctx, args[0], params)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(actionJSON{
					Intent:   string(result.Intent),
					Action:   string(result.Kind),
					Pattern:  result.Pattern.String(),
					Response: result.Response,
				})
			}

			if result.Kind == intent.ActionApply {
				fmt.Fprintf(out, "%s %s  %s\n", bold(result.Intent), result.Pattern, renderPattern(result.Pattern))
			}
			fmt.Fprintf(out, "%s\n", result.Response)
			return nil
		},
	}

	cmd.Flags().StringVar(&backendURL, "backend", ledapi.DefaultBaseURL, "LedAPI base URL")
	cmd.Flags().StringVar(&kind, "kind", led.KindHTTP, "Backend kind (http, memory, sysfs)")
	cmd.Flags().DurationVar(&timeout, "timeout", ledapi.DefaultTimeout, "Backend request timeout")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.SilenceUsage = true

	return cmd
}
