package config

import (
	"time"

	"github.com/bachi-network/bachi-deploy/internal/domain"
)

// OutputFormat selects how command results are printed
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// RuntimeConfig represents the complete runtime configuration.
// It is built once by the config provider and injected into adapters and use
// cases; nothing below the CLI layer reads the process environment.
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	ArtifactsDir string

	// Selected network, always non-nil after loading. Its RPC URL and accounts
	// may still be empty; Network.Validate reports that before any RPC call.
	Network  *domain.Network
	Networks map[string]*domain.Network

	// Execution settings
	Debug          bool
	LogLevel       string // BACHI_LOG_LEVEL, overrides Debug when set
	NonInteractive bool
	Output         OutputFormat
	Timeout        time.Duration // zero means wait for confirmation indefinitely

	Deploy DeployConfig
}

// DeployConfig carries the explicit parameters of the preset deployments
type DeployConfig struct {
	TokenName   string
	TokenSymbol string
	NodeName    string
	NodeSymbol  string

	// NodeManager is the manager address passed to the Node constructor.
	// NodeContract is the node address passed to the NodeManager constructor.
	// Both are required for their preset; the value "deployer" selects the
	// signer's own address.
	NodeManager  string
	NodeContract string
}

// NetworksFile is the on-disk network mapping (networks.toml)
type NetworksFile struct {
	DefaultNetwork string                   `toml:"default_network"`
	Networks       map[string]NetworkConfig `toml:"networks"`
}

// NetworkConfig is one entry of NetworksFile
type NetworkConfig struct {
	URL      string   `toml:"url"`
	ChainID  uint64   `toml:"chain_id,omitempty"`
	Accounts []string `toml:"accounts"`
}
