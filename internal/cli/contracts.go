package cli

import (
	"github.com/spf13/cobra"

	"github.com/bachi-network/bachi-deploy/internal/cli/render"
)

// NewContractsCmd creates the contracts command
func NewContractsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contracts",
		Short: "List compiled contracts found in the artifacts directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListContracts.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewContractsRenderer(cmd.OutOrStdout(), app.Config.Output).Render(result)
		},
	}
}
