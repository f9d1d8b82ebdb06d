package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bachi-network/bachi-deploy/internal/domain"
	"github.com/bachi-network/bachi-deploy/internal/domain/config"
	"github.com/bachi-network/bachi-deploy/internal/domain/models"
	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

// Repository discovers and indexes compiled contract artifacts
type Repository struct {
	artifactsDir  string
	contracts     map[string]*models.Contract   // key: "path:contractName"
	contractNames map[string][]*models.Contract // key: contract name, value: all contracts with that name
	log           *slog.Logger
	mu            sync.RWMutex
	indexed       bool
}

// NewRepository creates a new artifact repository for the configured directory
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return NewRepositoryAt(cfg.ArtifactsDir, log)
}

// NewRepositoryAt creates a repository reading artifacts from dir
func NewRepositoryAt(dir string, log *slog.Logger) *Repository {
	if log == nil {
		log = slog.Default()
	}
	return &Repository{
		artifactsDir:  dir,
		log:           log,
		contracts:     make(map[string]*models.Contract),
		contractNames: make(map[string][]*models.Contract),
	}
}

// Index discovers all artifacts. It runs once; later calls are no-ops.
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	r.contracts = make(map[string]*models.Contract)
	r.contractNames = make(map[string][]*models.Contract)

	info, err := os.Stat(r.artifactsDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("artifacts directory %s not found (compile the contracts first)", r.artifactsDir)
	}

	err = filepath.Walk(r.artifactsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if info.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip non-artifacts and Hardhat debug files
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}

		return r.processArtifact(path)
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	r.indexed = true
	r.log.Debug("indexed artifacts", "dir", r.artifactsDir, "contracts", len(r.contracts))
	return nil
}

// processArtifact processes a single artifact file
func (r *Repository) processArtifact(artifactPath string) error {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		// Not an artifact
		r.log.Debug("skipping unreadable artifact", "path", artifactPath, "error", err)
		return nil
	}
	if len(artifact.ABI) == 0 {
		return nil
	}

	contractName, sourceName := artifact.ContractName, artifact.SourceName
	if contractName == "" || sourceName == "" {
		for source, contract := range artifact.Metadata.Settings.CompilationTarget {
			sourceName = source
			contractName = contract
			break // There should only be one entry
		}
	}
	if contractName == "" {
		contractName = strings.TrimSuffix(filepath.Base(artifactPath), ".json")
	}
	relArtifactPath, _ := filepath.Rel(r.artifactsDir, artifactPath)
	if sourceName == "" {
		sourceName = filepath.ToSlash(filepath.Dir(relArtifactPath))
	}

	contract := &models.Contract{
		Name:         contractName,
		Path:         sourceName,
		ArtifactPath: relArtifactPath,
		Artifact:     &artifact,
	}

	fullKey := contract.FullName()
	if _, exists := r.contracts[fullKey]; exists {
		return nil
	}
	r.contracts[fullKey] = contract
	r.contractNames[contractName] = append(r.contractNames[contractName], contract)

	return nil
}

// GetContract retrieves a contract by key (name or path:name)
func (r *Repository) GetContract(ctx context.Context, key string) (*models.Contract, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if contract, exists := r.contracts[key]; exists {
		return contract, nil
	}

	matches := r.contractNames[key]
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", domain.ErrContractNotFound, key)
	case 1:
		return matches[0], nil
	default:
		refs := make([]domain.ContractRef, 0, len(matches))
		for _, m := range matches {
			refs = append(refs, domain.ContractRef{Name: m.Name, Path: m.Path})
		}
		return nil, domain.AmbiguousContractErr{Query: key, Matches: refs}
	}
}

// SearchContracts returns all contracts with the given name
func (r *Repository) SearchContracts(ctx context.Context, name string) ([]*models.Contract, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]*models.Contract, len(r.contractNames[name]))
	copy(results, r.contractNames[name])
	sortContracts(results)
	return results, nil
}

// ListContracts returns every indexed contract
func (r *Repository) ListContracts(ctx context.Context) ([]*models.Contract, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]*models.Contract, 0, len(r.contracts))
	for _, contract := range r.contracts {
		results = append(results, contract)
	}
	sortContracts(results)
	return results, nil
}

func sortContracts(contracts []*models.Contract) {
	sort.Slice(contracts, func(i, j int) bool {
		return contracts[i].FullName() < contracts[j].FullName()
	})
}

// Ensure the repository implements the interface
var _ usecase.ContractRepository = (*Repository)(nil)
