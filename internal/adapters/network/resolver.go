package network

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/samber/lo"

	"github.com/bachi-network/bachi-deploy/internal/domain"
	"github.com/bachi-network/bachi-deploy/internal/domain/config"
	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

// chainIDTimeout bounds the chain ID lookup of a single network
const chainIDTimeout = 5 * time.Second

type chainIDFunc func(ctx context.Context, rpcURL string) (uint64, error)

// Resolver resolves configured networks, asking the RPC endpoint for the
// chain ID when none is configured
type Resolver struct {
	networks map[string]*domain.Network
	chainID  chainIDFunc
}

// NewResolver creates a network resolver over the configured networks
func NewResolver(cfg *config.RuntimeConfig) *Resolver {
	return &Resolver{
		networks: cfg.Networks,
		chainID:  dialChainID,
	}
}

// GetNetworks returns the configured network names
func (r *Resolver) GetNetworks(ctx context.Context) []string {
	return lo.Keys(r.networks)
}

// ResolveNetwork returns the named network with its chain ID filled in
func (r *Resolver) ResolveNetwork(ctx context.Context, networkName string) (*domain.Network, error) {
	if networkName == "" {
		return nil, fmt.Errorf("network not specified")
	}

	network, ok := r.networks[networkName]
	if !ok {
		// Case-insensitive lookup
		for name, n := range r.networks {
			if strings.EqualFold(name, networkName) {
				network, ok = n, true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("unknown network: %s", networkName)
	}

	resolved := *network
	if resolved.RPCURL == "" {
		return &resolved, fmt.Errorf("network %s: %w", resolved.Name, domain.ErrMissingRPCURL)
	}
	if resolved.ChainID != 0 {
		return &resolved, nil
	}

	chainID, err := r.chainID(ctx, resolved.RPCURL)
	if err != nil {
		return &resolved, fmt.Errorf("network %s: %w", resolved.Name, err)
	}
	resolved.ChainID = chainID
	return &resolved, nil
}

// dialChainID connects to rpcURL and returns the reported chain ID
func dialChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, chainIDTimeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return chainID.Uint64(), nil
}

// Ensure the resolver implements the interface
var _ usecase.NetworkResolver = (*Resolver)(nil)
