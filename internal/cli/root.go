package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bachi-network/bachi-deploy/internal/adapters/progress"
	"github.com/bachi-network/bachi-deploy/internal/app"
	"github.com/bachi-network/bachi-deploy/internal/cli/render"
	"github.com/bachi-network/bachi-deploy/internal/config"
	domainconfig "github.com/bachi-network/bachi-deploy/internal/domain/config"
	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bachi-deploy",
		Short: "Contract deployment runner for the Bachi network",
		Long: `bachi-deploy deploys compiled Hardhat artifacts (BachiToken, Node,
NodeManager or any other contract) to a configured network, waits for
the creation transaction to be mined and prints the deployed address.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			// Set up viper with the flags of the running command
			v := config.SetupViper(cmd)

			appInstance, err := app.InitApp(v, newProgressSink(cmd, v))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to deploy to (defaults to default_network, then taiko)")
	rootCmd.PersistentFlags().String("project-root", "", "Project root (defaults to the nearest directory with networks.toml, hardhat.config.js or .env)")
	rootCmd.PersistentFlags().String("artifacts", "artifacts", "Hardhat artifacts directory, relative to the project root")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts and spinners")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format: text, json or yaml")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Give up after this long (0 waits for confirmation indefinitely)")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "deployment",
		Title: "Deployment Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Deployment commands
	for _, cmd := range []*cobra.Command{
		NewDeployCmd(),
		NewDeployTokenCmd(),
		NewDeployNodeCmd(),
		NewDeployNodeManagerCmd(),
	} {
		cmd.GroupID = "deployment"
		rootCmd.AddCommand(cmd)
	}

	// Management commands
	contractsCmd := NewContractsCmd()
	contractsCmd.GroupID = "management"
	rootCmd.AddCommand(contractsCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// newProgressSink builds the progress sink for the running command. Text
// output announces the deploying account on stdout; the spinner goes to
// stderr and is skipped in non-interactive mode.
func newProgressSink(cmd *cobra.Command, v *viper.Viper) usecase.ProgressSink {
	var sink usecase.ProgressSink = usecase.NopProgress{}
	if !v.GetBool("non_interactive") {
		sink = progress.NewSpinnerProgressReporterTo(os.Stderr)
	}
	if domainconfig.OutputFormat(strings.ToLower(v.GetString("output"))) == domainconfig.OutputText {
		sink = render.NewAccountAnnouncer(cmd.OutOrStdout(), sink)
	}
	return sink
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
