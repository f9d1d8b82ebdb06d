package domain

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// deployerMarker is the type of DeployerAddress
type deployerMarker struct{}

func (deployerMarker) String() string { return "deployer" }

// DeployerAddress can be placed in DeploymentRequest.Args to pass the signer's
// own address as a constructor argument. It has to be chosen explicitly; the
// runner never substitutes it on its own.
var DeployerAddress = deployerMarker{}

// DeploymentRequest describes a single contract creation
type DeploymentRequest struct {
	// Contract is the artifact identifier, either "Name" or "path/File.sol:Name"
	Contract string
	// Args are the constructor arguments in declaration order. Strings are
	// coerced to the ABI type of the matching parameter.
	Args []any
	// Signer references a configured account: "" for the first one, a
	// zero-based index, or the account address.
	Signer string
}

// NewDeploymentRequest copies args so the request cannot be mutated through
// the caller's slice.
func NewDeploymentRequest(contract string, signer string, args ...any) DeploymentRequest {
	copied := make([]any, len(args))
	copy(copied, args)
	return DeploymentRequest{
		Contract: contract,
		Args:     copied,
		Signer:   signer,
	}
}

// DeploymentResult is the outcome of a confirmed contract creation
type DeploymentResult struct {
	Contract    string `json:"contract" yaml:"contract"`
	Address     string `json:"address" yaml:"address"`
	TxHash      string `json:"transactionHash" yaml:"transactionHash"`
	Deployer    string `json:"deployer" yaml:"deployer"`
	Network     string `json:"network" yaml:"network"`
	ChainID     uint64 `json:"chainId" yaml:"chainId"`
	BlockNumber uint64 `json:"blockNumber" yaml:"blockNumber"`
}

// Network represents a configured chain endpoint
type Network struct {
	Name     string   `json:"name"`
	RPCURL   string   `json:"rpcUrl"`
	ChainID  uint64   `json:"chainId,omitempty"`
	Accounts []string `json:"-"`
}

// Validate checks the fields needed before any RPC call is made
func (n *Network) Validate() error {
	if n == nil {
		return fmt.Errorf("network not specified")
	}
	if n.RPCURL == "" {
		return fmt.Errorf("network %s: %w (set RPC_URL)", n.Name, ErrMissingRPCURL)
	}
	if len(n.Accounts) == 0 {
		return fmt.Errorf("network %s: %w (set YOUR_PRIVATE_KEY)", n.Name, ErrMissingPrivateKey)
	}
	return nil
}

// Signer is a resolved signing identity
type Signer struct {
	Address common.Address
	Key     *ecdsa.PrivateKey
}
