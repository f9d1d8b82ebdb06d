package cli

import (
	"github.com/spf13/cobra"

	"github.com/bachi-network/bachi-deploy/internal/cli/render"
	"github.com/bachi-network/bachi-deploy/internal/domain"
)

// NewDeployCmd creates the generic deploy command
func NewDeployCmd() *cobra.Command {
	var signer string

	cmd := &cobra.Command{
		Use:   "deploy <contract> [args...]",
		Short: "Deploy any compiled contract",
		Long: `Deploy a compiled contract by name (or path:Name when the name is
ambiguous) with the given constructor arguments.

Arguments are coerced to the constructor's ABI types. Arrays are passed as
JSON, e.g. '["0x...","0x..."]'. Use the literal "deployer" for an address
parameter to pass the signer's own address.`,
		Example: `  bachi-deploy deploy BachiToken BachiToken BN
  bachi-deploy deploy contracts/Node.sol:Node "BACHI NODE" BACHI 0x5FbDB2315678afecb367f032d93F642f64180aa3
  bachi-deploy deploy NodeManager deployer --network taiko`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			constructorArgs := make([]any, 0, len(args)-1)
			for _, arg := range args[1:] {
				if arg == "deployer" {
					constructorArgs = append(constructorArgs, domain.DeployerAddress)
					continue
				}
				constructorArgs = append(constructorArgs, arg)
			}

			req := domain.NewDeploymentRequest(args[0], signer, constructorArgs...)
			return runDeployment(cmd, req)
		},
	}

	cmd.Flags().StringVar(&signer, "signer", "", "Account to deploy from: index or address of a configured key (defaults to the first)")

	return cmd
}

// runDeployment executes a deployment request and renders the result
func runDeployment(cmd *cobra.Command, req domain.DeploymentRequest) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.DeployContract.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	return render.NewDeploymentRenderer(cmd.OutOrStdout(), app.Config.Output).Render(result)
}
