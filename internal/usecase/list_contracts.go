package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/samber/lo"
)

// ContractSummary describes one indexed artifact
type ContractSummary struct {
	Name         string
	Path         string
	ArtifactPath string
	Constructor  string // e.g. "(string name, string symbol)"
	Deployable   bool
	Error        error
}

// ListContractsResult contains the indexed artifacts
type ListContractsResult struct {
	Contracts []ContractSummary
}

// ListContracts lists the artifacts that can be deployed
type ListContracts struct {
	contracts ContractRepository
}

// NewListContracts creates a new ListContracts use case
func NewListContracts(contracts ContractRepository) *ListContracts {
	return &ListContracts{contracts: contracts}
}

// Run executes the use case
func (uc *ListContracts) Run(ctx context.Context) (*ListContractsResult, error) {
	contracts, err := uc.contracts.ListContracts(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ContractSummary, 0, len(contracts))
	for _, contract := range contracts {
		summary := ContractSummary{
			Name:         contract.Name,
			Path:         contract.Path,
			ArtifactPath: contract.ArtifactPath,
			Deployable:   !contract.Artifact.Bytecode.IsEmpty() && !contract.Artifact.Bytecode.NeedsLinking(),
		}

		parsed, err := contract.Artifact.ParseABI()
		if err != nil {
			summary.Error = err
			summary.Deployable = false
		} else {
			params := lo.Map(parsed.Constructor.Inputs, func(arg abi.Argument, _ int) string {
				if arg.Name == "" {
					return arg.Type.String()
				}
				return arg.Type.String() + " " + arg.Name
			})
			summary.Constructor = "(" + strings.Join(params, ", ") + ")"
		}

		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Name != summaries[j].Name {
			return summaries[i].Name < summaries[j].Name
		}
		return summaries[i].Path < summaries[j].Path
	})

	return &ListContractsResult{Contracts: summaries}, nil
}
