//go:build wireinject

package main

import (
	"github.com/google/wire"

	"agentdesk/internal/infrastructure"
	"agentdesk/internal/interfaces"
	"agentdesk/internal/interfaces/httpserver/handlers"
	"agentdesk/internal/interfaces/httpserver/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		ServiceProvider,
		infrastructure.InfrastructureProvider,
		handlers.HandlerProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}

func CreateDataInitializer() (*DataInitializer, error) {
	wire.Build(
		ServiceProvider,
		infrastructure.InfrastructureProvider,
		wire.Struct(new(DataInitializer), "*"),
	)
	return nil, nil
}
