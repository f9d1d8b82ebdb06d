package usecase

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/bachi-network/bachi-deploy/internal/domain"
	"github.com/bachi-network/bachi-deploy/internal/domain/config"
)

// Contract identifiers of the preset deployments
const (
	BachiTokenContract  = "BachiToken"
	NodeContract        = "Node"
	NodeManagerContract = "NodeManager"
)

// deployerKeyword explicitly selects the signer's own address
const deployerKeyword = "deployer"

// TokenRequest builds the BachiToken(name, symbol) deployment
func TokenRequest(cfg config.DeployConfig, signer string) domain.DeploymentRequest {
	return domain.NewDeploymentRequest(BachiTokenContract, signer, cfg.TokenName, cfg.TokenSymbol)
}

// NodeRequest builds the Node(name, symbol, nodeManager) deployment
func NodeRequest(cfg config.DeployConfig, signer string) (domain.DeploymentRequest, error) {
	manager, err := addressParam("node manager", "--node-manager", "BACHI_NODE_MANAGER", cfg.NodeManager)
	if err != nil {
		return domain.DeploymentRequest{}, err
	}
	return domain.NewDeploymentRequest(NodeContract, signer, cfg.NodeName, cfg.NodeSymbol, manager), nil
}

// NodeManagerRequest builds the NodeManager(nodeContract) deployment
func NodeManagerRequest(cfg config.DeployConfig, signer string) (domain.DeploymentRequest, error) {
	node, err := addressParam("node contract", "--node-contract", "BACHI_NODE_CONTRACT", cfg.NodeContract)
	if err != nil {
		return domain.DeploymentRequest{}, err
	}
	return domain.NewDeploymentRequest(NodeManagerContract, signer, node), nil
}

// addressParam validates a required address parameter. "deployer" maps to
// domain.DeployerAddress.
func addressParam(name, flag, env, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return nil, fmt.Errorf("%s address is required: set %s or %s (use %q for the signer's own address)",
			name, flag, env, deployerKeyword)
	case strings.EqualFold(value, deployerKeyword):
		return domain.DeployerAddress, nil
	case common.IsHexAddress(value):
		return common.HexToAddress(value), nil
	default:
		return nil, fmt.Errorf("%s %q: %w", name, value, domain.ErrInvalidAddress)
	}
}
