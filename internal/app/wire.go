//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"

	"github.com/bachi-network/bachi-deploy/internal/adapters"
	"github.com/bachi-network/bachi-deploy/internal/config"
	"github.com/bachi-network/bachi-deploy/internal/logging"
	"github.com/bachi-network/bachi-deploy/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewListNetworks,
		usecase.NewListContracts,

		// App
		NewApp,
	)
	return nil, nil
}
