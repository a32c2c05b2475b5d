// Package di provides dependency injection configuration for the card catalog server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/Ryuseikaiz/Ichu-Database/internal/auth"
	"github.com/Ryuseikaiz/Ichu-Database/internal/config"
	"github.com/Ryuseikaiz/Ichu-Database/internal/di/providers"
	"github.com/Ryuseikaiz/Ichu-Database/internal/logger"
	"github.com/Ryuseikaiz/Ichu-Database/internal/service"
	"github.com/Ryuseikaiz/Ichu-Database/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideCardService)
	do.Provide(injector, providers.ProvideAuthService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services in dependency order and starts the
// HTTP listener.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)

	steps := []func() error{
		func() error { _, err := do.Invoke[providers.AuthKey](injector); return err },
		func() error { _, err := do.Invoke[*providers.StoreHandle](injector); return err },
		func() error { _, err := do.Invoke[*auth.TokenService](injector); return err },
		func() error { _, err := do.Invoke[*validation.Validator](injector); return err },
		func() error { _, err := do.Invoke[*service.CardService](injector); return err },
		func() error { _, err := do.Invoke[*service.AuthService](injector); return err },
		func() error { _, err := do.Invoke[*providers.HTTPServerHandle](injector); return err },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
