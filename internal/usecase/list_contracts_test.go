package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bachi-network/bachi-deploy/internal/domain/models"
	"github.com/bachi-network/bachi-deploy/internal/testutil"
	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

func TestListContracts(t *testing.T) {
	ctx := context.Background()

	t.Run("summarizes artifacts", func(t *testing.T) {
		repo := new(MockContractRepository)
		repo.On("ListContracts", ctx).Return([]*models.Contract{
			testContract("NodeManager", "contracts/NodeManager.sol", testutil.NodeManagerABI, testutil.Returns42Bytecode),
			testContract("IToken", "contracts/IToken.sol", testutil.InterfaceABI, "0x"),
			testContract("BachiToken", "contracts/BachiToken.sol", testutil.TokenABI, testutil.Returns42Bytecode),
			testContract("Broken", "contracts/Broken.sol", `{"not":"an abi"`, "0x00"),
		}, nil)

		result, err := usecase.NewListContracts(repo).Run(ctx)
		require.NoError(t, err)
		require.Len(t, result.Contracts, 4)

		names := []string{}
		for _, c := range result.Contracts {
			names = append(names, c.Name)
		}
		assert.Equal(t, []string{"BachiToken", "Broken", "IToken", "NodeManager"}, names)

		assert.Equal(t, "(string name, string symbol)", result.Contracts[0].Constructor)
		assert.True(t, result.Contracts[0].Deployable)

		assert.Error(t, result.Contracts[1].Error)
		assert.False(t, result.Contracts[1].Deployable)

		assert.Equal(t, "()", result.Contracts[2].Constructor)
		assert.False(t, result.Contracts[2].Deployable)

		assert.Equal(t, "(address nodeContract)", result.Contracts[3].Constructor)
		repo.AssertExpectations(t)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := new(MockContractRepository)
		repo.On("ListContracts", ctx).Return(nil, errors.New("artifacts directory missing"))

		_, err := usecase.NewListContracts(repo).Run(ctx)
		assert.EqualError(t, err, "artifacts directory missing")
	})
}
