package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/bachi-network/bachi-deploy/internal/domain"
	"github.com/bachi-network/bachi-deploy/internal/domain/config"
	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

// Backend is the subset of an Ethereum client needed to deploy contracts
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Client implements usecase.ChainClient on top of ethclient. The RPC
// connection is opened on first use so that offline commands never dial.
type Client struct {
	network *domain.Network
	log     *slog.Logger

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
}

// NewClient creates a chain client for the configured network
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{network: cfg.Network, log: log}
}

// NewClientWithBackend creates a chain client around an existing backend
func NewClientWithBackend(backend Backend, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{backend: backend, log: log}
}

// connect returns the backend, dialing the RPC endpoint if needed, and
// verifies the chain ID against the configured one
func (c *Client) connect(ctx context.Context) (Backend, *big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend == nil {
		if c.network == nil || c.network.RPCURL == "" {
			return nil, nil, domain.ErrMissingRPCURL
		}
		c.log.Debug("connecting to RPC", "network", c.network.Name)
		client, err := ethclient.DialContext(ctx, c.network.RPCURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to RPC: %w", err)
		}
		c.backend = client
	}

	if c.chainID == nil {
		chainID, err := c.backend.ChainID(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
		}
		if c.network != nil && c.network.ChainID != 0 && chainID.Uint64() != c.network.ChainID {
			return nil, nil, fmt.Errorf("%w: expected %d, got %d", domain.ErrChainIDMismatch, c.network.ChainID, chainID.Uint64())
		}
		c.chainID = chainID
	}

	return c.backend, c.chainID, nil
}

// ChainID returns the chain ID reported by the endpoint
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	_, chainID, err := c.connect(ctx)
	if err != nil {
		return 0, err
	}
	return chainID.Uint64(), nil
}

// SubmitCreation signs and sends a single contract creation transaction.
// Nonce, gas limit and fees come from the node.
func (c *Client) SubmitCreation(ctx context.Context, signer *domain.Signer, contractABI *abi.ABI, bytecode []byte, args []any) (*types.Transaction, error) {
	if signer == nil || signer.Key == nil {
		return nil, domain.ErrMissingPrivateKey
	}
	if contractABI == nil {
		contractABI = &abi.ABI{}
	}

	backend, chainID, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(signer.Key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx

	address, tx, _, err := bind.DeployContract(opts, *contractABI, bytecode, backend, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to send deployment transaction: %w", err)
	}

	c.log.Debug("deployment transaction sent",
		"tx_hash", tx.Hash().Hex(),
		"nonce", tx.Nonce(),
		"gas", tx.Gas(),
		"expected_address", address.Hex(),
	)
	return tx, nil
}

// WaitForDeployment waits until tx is mined, then checks that it succeeded
// and left code at the created address
func (c *Client) WaitForDeployment(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if tx.To() != nil {
		return nil, fmt.Errorf("transaction %s is not a contract creation", tx.Hash().Hex())
	}

	backend, _, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, fmt.Errorf("wait for receipt: %w", err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w in block %s", domain.ErrDeploymentReverted, receipt.BlockNumber)
	}

	code, err := backend.CodeAt(ctx, receipt.ContractAddress, receipt.BlockNumber)
	if err != nil {
		return receipt, fmt.Errorf("failed to check code: %w", err)
	}
	if len(code) == 0 {
		return receipt, fmt.Errorf("%w at %s", domain.ErrNoCodeAfterDeploy, receipt.ContractAddress.Hex())
	}

	c.log.Debug("deployment confirmed",
		"address", receipt.ContractAddress.Hex(),
		"block", receipt.BlockNumber,
		"gas_used", receipt.GasUsed,
	)
	return receipt, nil
}

// Ensure the client implements the interface
var _ usecase.ChainClient = (*Client)(nil)
