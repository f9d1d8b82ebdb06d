package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bachi-network/bachi-deploy/internal/domain/config"
)

// ConfigKeyAnnotation overrides the viper key a flag is bound to. Commands
// use it when a short flag name like --name maps to a longer config key.
const ConfigKeyAnnotation = "bachi_config_key"

// projectMarkers are the files that identify a project root
var projectMarkers = []string{NetworksFileName, "hardhat.config.js", "hardhat.config.ts", ".env"}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}
	projectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	// .env has to be loaded before network values are expanded
	loadEnvFiles(projectRoot)

	networks, defaultNetwork, err := LoadNetworks(projectRoot)
	if err != nil {
		return nil, err
	}

	networkName := v.GetString("network")
	if networkName == "" {
		networkName = defaultNetwork
	}
	network, ok := networks[networkName]
	if !ok {
		names := lo.Keys(networks)
		sort.Strings(names)
		return nil, fmt.Errorf("unknown network %q (available: %s)", networkName, strings.Join(names, ", "))
	}

	output := config.OutputFormat(strings.ToLower(v.GetString("output")))
	switch output {
	case config.OutputText, config.OutputJSON, config.OutputYAML:
	default:
		return nil, fmt.Errorf("unsupported output format %q (expected text, json or yaml)", output)
	}

	artifactsDir := v.GetString("artifacts")
	if !filepath.IsAbs(artifactsDir) {
		artifactsDir = filepath.Join(projectRoot, artifactsDir)
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		ArtifactsDir:   artifactsDir,
		Network:        network,
		Networks:       networks,
		Debug:          v.GetBool("debug"),
		LogLevel:       v.GetString("log_level"),
		NonInteractive: v.GetBool("non_interactive"),
		Output:         output,
		Timeout:        v.GetDuration("timeout"),
		Deploy: config.DeployConfig{
			TokenName:    v.GetString("token_name"),
			TokenSymbol:  v.GetString("token_symbol"),
			NodeName:     v.GetString("node_name"),
			NodeSymbol:   v.GetString("node_symbol"),
			NodeManager:  v.GetString("node_manager"),
			NodeContract: v.GetString("node_contract"),
		},
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory to the first directory
// holding a project marker. The working directory is used when none is found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance bound to the command flags
func SetupViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("BACHI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("artifacts", "artifacts")
	v.SetDefault("output", string(config.OutputText))
	v.SetDefault("timeout", "0s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("token_name", "BachiToken")
	v.SetDefault("token_symbol", "BN")
	v.SetDefault("node_name", "BACHI NODE")
	v.SetDefault("node_symbol", "BACHI")

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if keys := f.Annotations[ConfigKeyAnnotation]; len(keys) > 0 {
			key = keys[0]
		}
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}
