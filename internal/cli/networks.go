package cli

import (
	"github.com/spf13/cobra"

	"github.com/bachi-network/bachi-deploy/internal/cli/render"
	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List configured networks",
		Long: `List the networks from networks.toml (or the built-in taiko network).

Networks without a configured chain_id are queried for it over RPC.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout(), app.Config.Output).Render(result)
		},
	}

	return cmd
}
