// Package testutil holds fixtures shared by package tests: Hardhat style
// artifacts, well-known development keys and a simulated chain.
package testutil

import (
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/require"
)

// Returns42Bytecode is creation code whose runtime returns 42. Appended
// constructor arguments are ignored.
const Returns42Bytecode = "0x600a600c600039600a6000f3602a60005260206000f3"

// Constructor ABIs of the preset contracts
const (
	TokenABI       = `[{"type":"constructor","inputs":[{"name":"name","type":"string"},{"name":"symbol","type":"string"}],"stateMutability":"nonpayable"}]`
	NodeABI        = `[{"type":"constructor","inputs":[{"name":"name","type":"string"},{"name":"symbol","type":"string"},{"name":"nodeManager","type":"address"}],"stateMutability":"nonpayable"}]`
	NodeManagerABI = `[{"type":"constructor","inputs":[{"name":"nodeContract","type":"address"}],"stateMutability":"nonpayable"}]`
	InterfaceABI   = `[{"type":"function","name":"totalSupply","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"}]`
)

// Hardhat/anvil development accounts
const (
	DevKey0 = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	DevKey1 = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
)

var (
	DevAddress0 = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	DevAddress1 = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

type hardhatArtifact struct {
	Format       string          `json:"_format"`
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// WriteArtifact writes a Hardhat artifact under artifactsDir at
// <sourceName>/<contractName>.json and returns its path
func WriteArtifact(t testing.TB, artifactsDir, sourceName, contractName, abiJSON, bytecode string) string {
	t.Helper()

	data, err := json.MarshalIndent(hardhatArtifact{
		Format:       "hh-sol-artifact-1",
		ContractName: contractName,
		SourceName:   sourceName,
		ABI:          json.RawMessage(abiJSON),
		Bytecode:     bytecode,
	}, "", "  ")
	require.NoError(t, err)

	dir := filepath.Join(artifactsDir, filepath.FromSlash(sourceName))
	require.NoError(t, os.MkdirAll(dir, 0o755))

	path := filepath.Join(dir, contractName+".json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// WritePresetArtifacts writes BachiToken, Node and NodeManager artifacts
func WritePresetArtifacts(t testing.TB, artifactsDir string) {
	t.Helper()
	WriteArtifact(t, artifactsDir, "contracts/BachiToken.sol", "BachiToken", TokenABI, Returns42Bytecode)
	WriteArtifact(t, artifactsDir, "contracts/Node.sol", "Node", NodeABI, Returns42Bytecode)
	WriteArtifact(t, artifactsDir, "contracts/NodeManager.sol", "NodeManager", NodeManagerABI, Returns42Bytecode)
}

// NewSimulatedChain starts an in-memory chain funding the given accounts
// with 100 ether each
func NewSimulatedChain(t testing.TB, funded ...common.Address) *simulated.Backend {
	t.Helper()

	balance, _ := new(big.Int).SetString("100000000000000000000", 10)
	alloc := types.GenesisAlloc{}
	for _, addr := range funded {
		alloc[addr] = types.Account{Balance: balance}
	}

	sim := simulated.NewBackend(alloc)
	t.Cleanup(func() { _ = sim.Close() })
	return sim
}

// AutoCommit mines a block every few milliseconds until the test ends
func AutoCommit(t testing.TB, sim *simulated.Backend) {
	t.Helper()

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				sim.Commit()
			}
		}
	}()
	t.Cleanup(func() {
		close(done)
		<-stopped
	})
}
