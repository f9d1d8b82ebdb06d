package contracts

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bachi-network/bachi-deploy/internal/domain"
	"github.com/bachi-network/bachi-deploy/internal/testutil"
)

func newTestArtifacts(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "artifacts")
	testutil.WritePresetArtifacts(t, dir)
	testutil.WriteArtifact(t, dir, "contracts/legacy/Node.sol", "Node", testutil.NodeABI, testutil.Returns42Bytecode)

	// Hardhat noise that must be ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contracts/BachiToken.sol/BachiToken.dbg.json"),
		[]byte(`{"_format":"hh-sol-dbg-1","buildInfo":"../../build-info/abc.json"}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "build-info"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build-info", "abc.json"),
		[]byte(`{"id":"abc","output":{"contracts":{}}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not json"), 0o644))
	return dir
}

func TestRepository_GetContract(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryAt(newTestArtifacts(t), nil)

	t.Run("by unique name", func(t *testing.T) {
		contract, err := repo.GetContract(ctx, "BachiToken")
		require.NoError(t, err)
		assert.Equal(t, "BachiToken", contract.Name)
		assert.Equal(t, "contracts/BachiToken.sol", contract.Path)
		assert.Equal(t, filepath.Join("contracts", "BachiToken.sol", "BachiToken.json"), contract.ArtifactPath)
		assert.False(t, contract.Artifact.Bytecode.IsEmpty())
	})

	t.Run("by full name", func(t *testing.T) {
		contract, err := repo.GetContract(ctx, "contracts/legacy/Node.sol:Node")
		require.NoError(t, err)
		assert.Equal(t, "contracts/legacy/Node.sol", contract.Path)
	})

	t.Run("ambiguous name", func(t *testing.T) {
		_, err := repo.GetContract(ctx, "Node")
		require.Error(t, err)

		var ambiguous domain.AmbiguousContractErr
		require.ErrorAs(t, err, &ambiguous)
		assert.Len(t, ambiguous.Matches, 2)
		assert.Contains(t, err.Error(), "contracts/legacy/Node.sol:Node")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetContract(ctx, "Missing")
		assert.ErrorIs(t, err, domain.ErrContractNotFound)
	})
}

func TestRepository_Listing(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryAt(newTestArtifacts(t), nil)

	t.Run("search returns sorted matches", func(t *testing.T) {
		matches, err := repo.SearchContracts(ctx, "Node")
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "contracts/Node.sol:Node", matches[0].FullName())
		assert.Equal(t, "contracts/legacy/Node.sol:Node", matches[1].FullName())
	})

	t.Run("list skips debug and build-info files", func(t *testing.T) {
		all, err := repo.ListContracts(ctx)
		require.NoError(t, err)

		var names []string
		for _, c := range all {
			names = append(names, c.FullName())
		}
		assert.Equal(t, []string{
			"contracts/BachiToken.sol:BachiToken",
			"contracts/Node.sol:Node",
			"contracts/NodeManager.sol:NodeManager",
			"contracts/legacy/Node.sol:Node",
		}, names)
	})
}

func TestRepository_FoundryLayout(t *testing.T) {
	dir := t.TempDir()
	artifact := `{
  "abi": [],
  "bytecode": {"object": "0x6001600055"},
  "metadata": {"settings": {"compilationTarget": {"src/Counter.sol": "Counter"}}}
}`
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Counter.sol"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Counter.sol", "Counter.json"), []byte(artifact), 0o644))

	contract, err := NewRepositoryAt(dir, nil).GetContract(context.Background(), "Counter")
	require.NoError(t, err)
	assert.Equal(t, "src/Counter.sol", contract.Path)
	assert.Equal(t, "0x6001600055", string(contract.Artifact.Bytecode))
}

func TestRepository_MissingDirectory(t *testing.T) {
	repo := NewRepositoryAt(filepath.Join(t.TempDir(), "nope"), nil)

	_, err := repo.ListContracts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile the contracts first")
}

func TestRepository_ConcurrentAccess(t *testing.T) {
	repo := NewRepositoryAt(newTestArtifacts(t), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.GetContract(context.Background(), "BachiToken")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
