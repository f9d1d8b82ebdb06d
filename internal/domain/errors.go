package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrContractNotFound is returned when no artifact matches a contract identifier
	ErrContractNotFound = errors.New("contract not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrMissingRPCURL is returned when the selected network has no RPC endpoint
	ErrMissingRPCURL = errors.New("RPC URL not configured")

	// ErrMissingPrivateKey is returned when the selected network has no accounts
	ErrMissingPrivateKey = errors.New("no account private key configured")

	// ErrSignerNotFound is returned when a signer reference matches no configured account
	ErrSignerNotFound = errors.New("signer not found")

	// ErrArgumentCount is returned when constructor arguments don't match the ABI arity
	ErrArgumentCount = errors.New("constructor argument count mismatch")

	// ErrUnlinkedLibrary is returned for artifacts whose bytecode still has library placeholders
	ErrUnlinkedLibrary = errors.New("bytecode requires library linking")

	// ErrDeploymentReverted is returned when the creation transaction was mined but failed
	ErrDeploymentReverted = errors.New("deployment transaction reverted")

	// ErrNoCodeAfterDeploy is returned when no code exists at the deployed address
	ErrNoCodeAfterDeploy = errors.New("no contract code after deployment")

	// ErrChainIDMismatch is returned when the RPC endpoint reports an unexpected chain ID
	ErrChainIDMismatch = errors.New("chain ID mismatch")
)

// DeploymentFailure wraps whatever went wrong while deploying a contract.
// Callers inspect the cause with errors.Is / errors.As.
type DeploymentFailure struct {
	Contract string
	Err      error
}

func (e *DeploymentFailure) Error() string {
	if e.Contract == "" {
		return fmt.Sprintf("deployment failed: %v", e.Err)
	}
	return fmt.Sprintf("deployment of %s failed: %v", e.Contract, e.Err)
}

func (e *DeploymentFailure) Unwrap() error {
	return e.Err
}

// NewDeploymentFailure wraps err unless it already is a DeploymentFailure.
func NewDeploymentFailure(contract string, err error) error {
	if err == nil {
		return nil
	}
	var failure *DeploymentFailure
	if errors.As(err, &failure) {
		return err
	}
	return &DeploymentFailure{Contract: contract, Err: err}
}

// ContractRef identifies one artifact in an ambiguity report
type ContractRef struct {
	Name string
	Path string
}

type AmbiguousContractErr struct {
	Query   string
	Matches []ContractRef
}

func (e AmbiguousContractErr) Error() string {
	sorted := make([]ContractRef, len(e.Matches))
	copy(sorted, e.Matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path+":"+sorted[i].Name < sorted[j].Path+":"+sorted[j].Name
	})

	var suggestions []string
	for _, ref := range sorted {
		suggestions = append(suggestions, fmt.Sprintf("  - %s:%s", ref.Path, ref.Name))
	}

	return fmt.Sprintf("multiple contracts found matching %q - use path:contract format to disambiguate:\n%s",
		e.Query, strings.Join(suggestions, "\n"))
}
