package adapters

import (
	"github.com/google/wire"

	abiadapter "github.com/bachi-network/bachi-deploy/internal/adapters/abi"
	"github.com/bachi-network/bachi-deploy/internal/adapters/blockchain"
	"github.com/bachi-network/bachi-deploy/internal/adapters/interactive"
	"github.com/bachi-network/bachi-deploy/internal/adapters/network"
	"github.com/bachi-network/bachi-deploy/internal/adapters/repository/contracts"
	"github.com/bachi-network/bachi-deploy/internal/adapters/senders"
	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

// RepositorySet provides artifact-backed implementations
var RepositorySet = wire.NewSet(
	contracts.NewRepository,
	wire.Bind(new(usecase.ContractRepository), new(*contracts.Repository)),
)

// BlockchainSet provides RPC-backed implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.ChainClient), new(*blockchain.Client)),

	abiadapter.NewArgumentEncoder,
	wire.Bind(new(usecase.ArgumentEncoder), new(*abiadapter.ArgumentEncoder)),
)

// SignerSet provides signer resolution from configured accounts
var SignerSet = wire.NewSet(
	senders.NewManager,
	wire.Bind(new(usecase.SignerResolver), new(*senders.Manager)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.ContractSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	network.NewResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*network.Resolver)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RepositorySet,
	BlockchainSet,
	SignerSet,
	InteractiveSet,
	ConfigSet,
)
