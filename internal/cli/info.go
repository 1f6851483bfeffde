package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newInfoCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info <id>",
		Short: "Show the full record of one anime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.build(cmd)
			if err != nil {
				return err
			}

			result, err := app.Client.FetchDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Fallback {
				fmt.Fprintf(out, "Could not load anime %s, showing placeholder.\n", args[0])
			}

			data, err := json.MarshalIndent(result.Detail, "", "  ")
			if err != nil {
				return fmt.Errorf("encode detail: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		},
	}
}
