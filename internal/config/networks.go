package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/samber/lo"

	"github.com/bachi-network/bachi-deploy/internal/domain"
	"github.com/bachi-network/bachi-deploy/internal/domain/config"
)

const (
	// NetworksFileName is the network mapping read from the project root
	NetworksFileName = "networks.toml"

	// DefaultNetworkName is selected when neither --network nor default_network is set
	DefaultNetworkName = "taiko"
)

// defaultNetworksFile mirrors the mapping used when no networks.toml exists
func defaultNetworksFile() config.NetworksFile {
	return config.NetworksFile{
		DefaultNetwork: DefaultNetworkName,
		Networks: map[string]config.NetworkConfig{
			DefaultNetworkName: {
				URL:      "${RPC_URL}",
				Accounts: []string{"${YOUR_PRIVATE_KEY}"},
			},
		},
	}
}

// loadEnvFiles loads .env files from the project root. Variables already set
// in the process environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadNetworks reads networks.toml (or the built-in mapping), expands
// ${VAR} references and returns the networks with the default network name.
func LoadNetworks(projectRoot string) (map[string]*domain.Network, string, error) {
	file := defaultNetworksFile()

	path := filepath.Join(projectRoot, NetworksFileName)
	if _, err := os.Stat(path); err == nil {
		file = config.NetworksFile{}
		if _, err := toml.DecodeFile(path, &file); err != nil {
			return nil, "", fmt.Errorf("failed to parse %s: %w", NetworksFileName, err)
		}
		if len(file.Networks) == 0 {
			return nil, "", fmt.Errorf("%s defines no networks", NetworksFileName)
		}
	}

	networks := make(map[string]*domain.Network, len(file.Networks))
	for name, nc := range file.Networks {
		accounts := lo.FilterMap(nc.Accounts, func(account string, _ int) (string, bool) {
			expanded := strings.TrimSpace(os.ExpandEnv(account))
			return expanded, expanded != ""
		})
		networks[name] = &domain.Network{
			Name:     name,
			RPCURL:   strings.TrimSpace(os.ExpandEnv(nc.URL)),
			ChainID:  nc.ChainID,
			Accounts: accounts,
		}
	}

	defaultNetwork := file.DefaultNetwork
	if defaultNetwork == "" {
		if len(networks) == 1 {
			defaultNetwork = lo.Keys(networks)[0]
		} else {
			defaultNetwork = DefaultNetworkName
		}
	}

	return networks, defaultNetwork, nil
}
