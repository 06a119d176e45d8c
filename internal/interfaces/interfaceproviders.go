package interfaces

import (
	"github.com/google/wire"

	"agentdesk/internal/interfaces/httpserver"
)

var InterfacesProvider = wire.NewSet(
	httpserver.NewHttpServer,
)
