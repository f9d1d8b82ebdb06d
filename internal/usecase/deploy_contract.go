package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bachi-network/bachi-deploy/internal/domain"
	"github.com/bachi-network/bachi-deploy/internal/domain/config"
	"github.com/bachi-network/bachi-deploy/internal/domain/models"
)

// DeployContract submits a single contract creation and reports its outcome
type DeployContract struct {
	cfg       *config.RuntimeConfig
	contracts ContractRepository
	signers   SignerResolver
	encoder   ArgumentEncoder
	chain     ChainClient
	selector  ContractSelector
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	contracts ContractRepository,
	signers SignerResolver,
	encoder ArgumentEncoder,
	chain ChainClient,
	selector ContractSelector,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	if progress == nil {
		progress = NopProgress{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &DeployContract{
		cfg:       cfg,
		contracts: contracts,
		signers:   signers,
		encoder:   encoder,
		chain:     chain,
		selector:  selector,
		progress:  progress,
		log:       log,
	}
}

// Run deploys the requested contract. Any failure is returned as a
// *domain.DeploymentFailure; nothing is retried.
func (uc *DeployContract) Run(ctx context.Context, req domain.DeploymentRequest) (*domain.DeploymentResult, error) {
	result, err := uc.run(ctx, req)
	if err != nil {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageFailed, Message: err.Error()})
		return nil, domain.NewDeploymentFailure(req.Contract, err)
	}
	return result, nil
}

func (uc *DeployContract) run(ctx context.Context, req domain.DeploymentRequest) (*domain.DeploymentResult, error) {
	if req.Contract == "" {
		return nil, fmt.Errorf("contract identifier is required")
	}

	// Configuration problems surface before the chain is touched
	if err := uc.cfg.Network.Validate(); err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageResolving,
		Message: fmt.Sprintf("Resolving %s", req.Contract),
	})

	contract, err := uc.resolveContract(ctx, req.Contract)
	if err != nil {
		return nil, err
	}

	contractABI, err := contract.Artifact.ParseABI()
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", contract.ArtifactPath, err)
	}
	if contract.Artifact.Bytecode.IsEmpty() {
		return nil, fmt.Errorf("artifact %s has no creation bytecode (abstract contract or interface?)", contract.ArtifactPath)
	}
	if contract.Artifact.Bytecode.NeedsLinking() {
		return nil, fmt.Errorf("artifact %s: %w", contract.ArtifactPath, domain.ErrUnlinkedLibrary)
	}
	bytecode, err := contract.Artifact.Bytecode.Bytes()
	if err != nil {
		return nil, fmt.Errorf("artifact %s has invalid bytecode: %w", contract.ArtifactPath, err)
	}

	signer, err := uc.signers.ResolveSigner(ctx, req.Signer)
	if err != nil {
		return nil, err
	}

	args, err := uc.encoder.EncodeArgs(contractABI.Constructor.Inputs, substituteDeployer(req.Args, signer.Address))
	if err != nil {
		return nil, err
	}

	uc.log.Debug("submitting contract creation",
		"contract", contract.FullName(),
		"artifact", contract.ArtifactPath,
		"deployer", signer.Address.Hex(),
		"args", len(args),
		"network", uc.cfg.Network.Name,
	)
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageSubmitting,
		Message:  fmt.Sprintf("Deploying %s with the account %s", contract.Name, signer.Address.Hex()),
		Spinner:  true,
		Metadata: signer.Address,
	})

	tx, err := uc.chain.SubmitCreation(ctx, signer, contractABI, bytecode, args)
	if err != nil {
		return nil, err
	}

	uc.log.Info("transaction submitted, waiting for confirmation", "tx_hash", tx.Hash().Hex())
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageConfirming,
		Message:  fmt.Sprintf("Waiting for %s to be mined", tx.Hash().Hex()),
		Spinner:  true,
		Metadata: tx.Hash(),
	})

	receipt, err := uc.chain.WaitForDeployment(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", tx.Hash().Hex(), err)
	}

	result := &domain.DeploymentResult{
		Contract: contract.Name,
		Address:  receipt.ContractAddress.Hex(),
		TxHash:   tx.Hash().Hex(),
		Deployer: signer.Address.Hex(),
		Network:  uc.cfg.Network.Name,
	}
	if tx.ChainId() != nil {
		result.ChainID = tx.ChainId().Uint64()
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageCompleted,
		Message:  fmt.Sprintf("%s deployed at %s", contract.Name, result.Address),
		Metadata: result,
	})

	return result, nil
}

// resolveContract looks the artifact up, asking the selector to break ties
// when running interactively
func (uc *DeployContract) resolveContract(ctx context.Context, key string) (*models.Contract, error) {
	contract, err := uc.contracts.GetContract(ctx, key)
	if err == nil {
		return contract, nil
	}

	var ambiguous domain.AmbiguousContractErr
	if !errors.As(err, &ambiguous) || uc.selector == nil || uc.cfg.NonInteractive {
		return nil, err
	}

	candidates, searchErr := uc.contracts.SearchContracts(ctx, key)
	if searchErr != nil {
		return nil, searchErr
	}
	return uc.selector.SelectContract(ctx, candidates, fmt.Sprintf("Multiple artifacts named %s, select one", key))
}

// substituteDeployer replaces DeployerAddress markers with the signer address
func substituteDeployer(args []any, deployer common.Address) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		if arg == domain.DeployerAddress {
			out[i] = deployer
			continue
		}
		out[i] = arg
	}
	return out
}
