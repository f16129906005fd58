package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newServeCmd(a *App) *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the timer as an MCP server (stdio or HTTP)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if transport != "" {
				a.Config.Transport.Mode = transport
			}
			if err := a.Config.Validate(); err != nil {
				return err
			}
			if a.Serve == nil {
				return errors.New("serve is not configured")
			}
			return a.Serve(cmd.Context(), a.Config)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "stdio or http (overrides MOVEIT_TRANSPORT)")
	return cmd
}
