package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/bachi-network/bachi-deploy/internal/domain"
	"github.com/bachi-network/bachi-deploy/internal/domain/models"
)

// ContractRepository provides access to compiled contract artifacts
type ContractRepository interface {
	// GetContract returns the artifact for "Name" or "path:Name". An
	// ambiguous name yields domain.AmbiguousContractErr.
	GetContract(ctx context.Context, key string) (*models.Contract, error)
	// SearchContracts returns every artifact with the given contract name
	SearchContracts(ctx context.Context, name string) ([]*models.Contract, error)
	ListContracts(ctx context.Context) ([]*models.Contract, error)
}

// SignerResolver resolves a signer reference to a signing key
type SignerResolver interface {
	ResolveSigner(ctx context.Context, ref string) (*domain.Signer, error)
}

// ArgumentEncoder converts loosely typed constructor arguments into the Go
// values expected by the ABI packer
type ArgumentEncoder interface {
	EncodeArgs(inputs abi.Arguments, args []any) ([]any, error)
}

// ChainClient submits contract creations and waits for them to be mined
type ChainClient interface {
	ChainID(ctx context.Context) (uint64, error)
	// SubmitCreation signs and sends exactly one creation transaction
	SubmitCreation(ctx context.Context, signer *domain.Signer, contractABI *abi.ABI, bytecode []byte, args []any) (*types.Transaction, error)
	// WaitForDeployment blocks until the transaction is mined and code exists
	// at the created address. Only ctx bounds the wait.
	WaitForDeployment(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*domain.Network, error)
}

// ContractSelector handles interactive selection of contracts
type ContractSelector interface {
	SelectContract(ctx context.Context, contracts []*models.Contract, prompt string) (*models.Contract, error)
}

// Progress tracking interfaces

// ExecutionStage names a step of a deployment
type ExecutionStage string

const (
	StageResolving  ExecutionStage = "resolving"
	StageSubmitting ExecutionStage = "submitting"
	StageConfirming ExecutionStage = "confirming"
	StageCompleted  ExecutionStage = "completed"
	StageFailed     ExecutionStage = "failed"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    ExecutionStage
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
