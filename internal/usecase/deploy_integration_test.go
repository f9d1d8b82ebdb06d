package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	abiadapter "github.com/bachi-network/bachi-deploy/internal/adapters/abi"
	"github.com/bachi-network/bachi-deploy/internal/adapters/blockchain"
	"github.com/bachi-network/bachi-deploy/internal/adapters/repository/contracts"
	"github.com/bachi-network/bachi-deploy/internal/adapters/senders"
	"github.com/bachi-network/bachi-deploy/internal/domain"
	"github.com/bachi-network/bachi-deploy/internal/domain/config"
	"github.com/bachi-network/bachi-deploy/internal/testutil"
	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

type chainHarness struct {
	sim *simulated.Backend
	cfg *config.RuntimeConfig
	uc  *usecase.DeployContract
}

// newChainHarness wires the real adapters against a simulated chain that
// funds the first development account
func newChainHarness(t *testing.T, keys ...string) *chainHarness {
	t.Helper()

	artifactsDir := filepath.Join(t.TempDir(), "artifacts")
	testutil.WritePresetArtifacts(t, artifactsDir)

	sim := testutil.NewSimulatedChain(t, testutil.DevAddress0)
	testutil.AutoCommit(t, sim)

	if len(keys) == 0 {
		keys = []string{testutil.DevKey0}
	}
	cfg := &config.RuntimeConfig{
		ArtifactsDir:   artifactsDir,
		Network:        &domain.Network{Name: "simulated", RPCURL: "simulated://", Accounts: keys},
		NonInteractive: true,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	uc := usecase.NewDeployContract(
		cfg,
		contracts.NewRepository(cfg, log),
		senders.NewManager(cfg),
		abiadapter.NewArgumentEncoder(),
		blockchain.NewClientWithBackend(sim.Client(), log),
		nil,
		nil,
		log,
	)
	return &chainHarness{sim: sim, cfg: cfg, uc: uc}
}

func TestDeployContract_SimulatedChain(t *testing.T) {
	ctx := context.Background()

	t.Run("deploys BachiToken", func(t *testing.T) {
		h := newChainHarness(t)

		result, err := h.uc.Run(ctx, usecase.TokenRequest(config.DeployConfig{TokenName: "BachiToken", TokenSymbol: "BN"}, ""))
		require.NoError(t, err)

		assert.True(t, common.IsHexAddress(result.Address))
		assert.Len(t, common.HexToAddress(result.Address).Bytes(), 20)
		assert.Len(t, common.FromHex(result.TxHash), 32)
		assert.Equal(t, testutil.DevAddress0.Hex(), result.Deployer)
		assert.Equal(t, crypto.CreateAddress(testutil.DevAddress0, 0).Hex(), result.Address)

		chainID, err := h.sim.Client().ChainID(ctx)
		require.NoError(t, err)
		assert.Equal(t, chainID.Uint64(), result.ChainID)

		code, err := h.sim.Client().CodeAt(ctx, common.HexToAddress(result.Address), nil)
		require.NoError(t, err)
		assert.NotEmpty(t, code)
	})

	t.Run("identical requests yield distinct addresses", func(t *testing.T) {
		h := newChainHarness(t)
		req := domain.NewDeploymentRequest("BachiToken", "", "BachiToken", "BN")

		first, err := h.uc.Run(ctx, req)
		require.NoError(t, err)
		second, err := h.uc.Run(ctx, req)
		require.NoError(t, err)

		assert.NotEqual(t, first.Address, second.Address)
		assert.NotEqual(t, first.TxHash, second.TxHash)
	})

	t.Run("deployer keyword encodes the signer address", func(t *testing.T) {
		h := newChainHarness(t)

		req, err := usecase.NodeRequest(config.DeployConfig{NodeName: "BACHI NODE", NodeSymbol: "BACHI", NodeManager: "deployer"}, "")
		require.NoError(t, err)

		result, err := h.uc.Run(ctx, req)
		require.NoError(t, err)

		tx, _, err := h.sim.Client().TransactionByHash(ctx, common.HexToHash(result.TxHash))
		require.NoError(t, err)
		assert.True(t, strings.Contains(common.Bytes2Hex(tx.Data()), strings.ToLower(testutil.DevAddress0.Hex()[2:])))
	})

	t.Run("unfunded signer fails and leaves nonce unchanged", func(t *testing.T) {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)
		unfunded := crypto.PubkeyToAddress(key.PublicKey)
		h := newChainHarness(t, common.Bytes2Hex(crypto.FromECDSA(key)))

		_, err = h.uc.Run(ctx, usecase.TokenRequest(config.DeployConfig{TokenName: "BachiToken", TokenSymbol: "BN"}, ""))
		require.Error(t, err)

		var failure *domain.DeploymentFailure
		require.ErrorAs(t, err, &failure)
		assert.Equal(t, "BachiToken", failure.Contract)

		nonce, err := h.sim.Client().NonceAt(ctx, unfunded, nil)
		require.NoError(t, err)
		assert.Zero(t, nonce)
	})

	t.Run("deploys with second account by address", func(t *testing.T) {
		h := newChainHarness(t, testutil.DevKey1, testutil.DevKey0)

		result, err := h.uc.Run(ctx, domain.NewDeploymentRequest("NodeManager", testutil.DevAddress0.Hex(), "0x5FbDB2315678afecb367f032d93F642f64180aa3"))
		require.NoError(t, err)
		assert.Equal(t, testutil.DevAddress0.Hex(), result.Deployer)
	})
}
