package cli

import (
	"github.com/spf13/cobra"

	"github.com/bachi-network/bachi-deploy/internal/config"
	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

// NewDeployTokenCmd creates the BachiToken preset
func NewDeployTokenCmd() *cobra.Command {
	var signer string

	cmd := &cobra.Command{
		Use:   "deploy-token",
		Short: "Deploy BachiToken(name, symbol)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			return runDeployment(cmd, usecase.TokenRequest(app.Config.Deploy, signer))
		},
	}

	cmd.Flags().String("name", "BachiToken", "Token name")
	cmd.Flags().String("symbol", "BN", "Token symbol")
	bindConfigKey(cmd, "name", "token_name")
	bindConfigKey(cmd, "symbol", "token_symbol")
	cmd.Flags().StringVar(&signer, "signer", "", "Account to deploy from (index or address)")

	return cmd
}

// NewDeployNodeCmd creates the Node preset
func NewDeployNodeCmd() *cobra.Command {
	var signer string

	cmd := &cobra.Command{
		Use:   "deploy-node",
		Short: "Deploy Node(name, symbol, nodeManager)",
		Long: `Deploy the Node contract. The node manager address is required; pass
--node-manager deployer to use the deploying account itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			req, err := usecase.NodeRequest(app.Config.Deploy, signer)
			if err != nil {
				return err
			}
			return runDeployment(cmd, req)
		},
	}

	cmd.Flags().String("name", "BACHI NODE", "Node collection name")
	cmd.Flags().String("symbol", "BACHI", "Node collection symbol")
	bindConfigKey(cmd, "name", "node_name")
	bindConfigKey(cmd, "symbol", "node_symbol")
	cmd.Flags().String("node-manager", "", "NodeManager address, or \"deployer\" (env BACHI_NODE_MANAGER)")
	cmd.Flags().StringVar(&signer, "signer", "", "Account to deploy from (index or address)")

	return cmd
}

// NewDeployNodeManagerCmd creates the NodeManager preset
func NewDeployNodeManagerCmd() *cobra.Command {
	var signer string

	cmd := &cobra.Command{
		Use:   "deploy-node-manager",
		Short: "Deploy NodeManager(nodeContract)",
		Long: `Deploy the NodeManager contract. The node contract address is required;
pass --node-contract deployer to use the deploying account itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			req, err := usecase.NodeManagerRequest(app.Config.Deploy, signer)
			if err != nil {
				return err
			}
			return runDeployment(cmd, req)
		},
	}

	cmd.Flags().String("node-contract", "", "Node contract address, or \"deployer\" (env BACHI_NODE_CONTRACT)")
	cmd.Flags().StringVar(&signer, "signer", "", "Account to deploy from (index or address)")

	return cmd
}

// bindConfigKey maps a flag to a config key other than its own name
func bindConfigKey(cmd *cobra.Command, flag, key string) {
	if err := cmd.Flags().SetAnnotation(flag, config.ConfigKeyAnnotation, []string{key}); err != nil {
		panic(err)
	}
}
