package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bachi-network/bachi-deploy/internal/domain"
	"github.com/bachi-network/bachi-deploy/internal/domain/config"
	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

var testResult = &domain.DeploymentResult{
	Contract:    "BachiToken",
	Address:     "0x5FbDB2315678afecb367f032d93F642f64180aa3",
	TxHash:      "0x4f2d5c3a1a0c6e7b8d9f0e1d2c3b4a5968778695a4b3c2d1e0f1a2b3c4d5e6f7",
	Deployer:    "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
	Network:     "taiko",
	ChainID:     167000,
	BlockNumber: 12,
}

func TestDeploymentRenderer(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewDeploymentRenderer(&out, config.OutputText).Render(testResult))

		assert.Contains(t, out.String(), "Contract deployed successfully.\n")
		assert.Contains(t, out.String(), "Deployer: "+testResult.Deployer+"\n")
		assert.Contains(t, out.String(), "Deployed to: "+testResult.Address+"\n")
		assert.Contains(t, out.String(), "Transaction hash: "+testResult.TxHash+"\n")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewDeploymentRenderer(&out, config.OutputJSON).Render(testResult))

		var doc map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
		assert.Equal(t, testResult.Address, doc["address"])
		assert.Equal(t, testResult.TxHash, doc["transactionHash"])
		assert.Equal(t, float64(167000), doc["chainId"])
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewDeploymentRenderer(&out, config.OutputYAML).Render(testResult))

		var doc domain.DeploymentResult
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
		assert.Equal(t, *testResult, doc)
	})
}

type recordingSink struct {
	usecase.NopProgress
	events []usecase.ProgressEvent
}

func (s *recordingSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	s.events = append(s.events, event)
}

func TestAccountAnnouncer(t *testing.T) {
	var out bytes.Buffer
	next := &recordingSink{}
	sink := NewAccountAnnouncer(&out, next)
	deployer := common.HexToAddress(testResult.Deployer)

	sink.OnProgress(context.Background(), usecase.ProgressEvent{Stage: usecase.StageResolving})
	sink.OnProgress(context.Background(), usecase.ProgressEvent{Stage: usecase.StageSubmitting, Metadata: deployer})

	assert.Equal(t, "Deploying contracts with the account: "+testResult.Deployer+"\n", out.String())
	assert.Len(t, next.events, 2)
}

func TestNetworksRenderer(t *testing.T) {
	result := &usecase.ListNetworksResult{
		Current: "taiko",
		Networks: []usecase.NetworkStatus{
			{Name: "hekla", Error: domain.ErrMissingRPCURL},
			{Name: "taiko", ChainID: 167000, Accounts: 1},
		},
	}

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewNetworksRenderer(&out, config.OutputText).Render(result))

		assert.Contains(t, out.String(), "hekla - Error: RPC URL not configured")
		assert.Contains(t, out.String(), "taiko - Chain ID: 167000 (1 account)")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewNetworksRenderer(&out, config.OutputJSON).Render(result))

		var docs []networkDocument
		require.NoError(t, json.Unmarshal(out.Bytes(), &docs))
		require.Len(t, docs, 2)
		assert.False(t, docs[0].Current)
		assert.NotEmpty(t, docs[0].Error)
		assert.True(t, docs[1].Current)
	})

	t.Run("empty", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewNetworksRenderer(&out, config.OutputText).Render(&usecase.ListNetworksResult{}))
		assert.Equal(t, "No networks configured\n", out.String())
	})
}

func TestContractsRenderer(t *testing.T) {
	result := &usecase.ListContractsResult{
		Contracts: []usecase.ContractSummary{
			{Name: "BachiToken", Path: "contracts/BachiToken.sol", Constructor: "(string name, string symbol)", Deployable: true},
			{Name: "IERC20", Path: "contracts/IERC20.sol", Constructor: "()"},
			{Name: "Broken", Path: "contracts/Broken.sol", Error: errors.New("bad abi")},
		},
	}

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewContractsRenderer(&out, config.OutputText).Render(result))

		assert.Contains(t, out.String(), "BachiToken")
		assert.Contains(t, out.String(), "(string name, string symbol)")
		assert.Contains(t, out.String(), "invalid abi")
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewContractsRenderer(&out, config.OutputYAML).Render(result))

		var docs []contractDocument
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &docs))
		require.Len(t, docs, 3)
		assert.True(t, docs[0].Deployable)
		assert.Equal(t, "bad abi", docs[2].Error)
	})
}
