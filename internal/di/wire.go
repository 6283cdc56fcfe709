//go:build wireinject
// +build wireinject

package di

import (
	"SignalLog/pkg/config"
	"SignalLog/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvideClock,

		// Domain services and storage
		ProvideSchema,
		ProvideSignalStore,

		// Use cases
		ProvideSignalLogger,

		// Transport
		ProvideSignalsHandler,
		ProvideHTTPServer,

		// Application
		ProvideApp,
	)
	return &server.App{}, nil
}
