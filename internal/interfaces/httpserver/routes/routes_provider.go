package routes

import (
	"github.com/google/wire"

	"agentdesk/internal/interfaces/httpserver/routes/auth"
	v1 "agentdesk/internal/interfaces/httpserver/routes/v1"
	"agentdesk/internal/interfaces/httpserver/routes/v1/conversations"
	"agentdesk/internal/interfaces/httpserver/routes/v1/gpts"
	"agentdesk/internal/interfaces/httpserver/routes/v1/team"
)

var RouteProvider = wire.NewSet(
	auth.NewAuthRoute,
	v1.NewV1Route,
	gpts.NewGPTRoute,
	conversations.NewConversationRoute,
	team.NewTeamRoute,
)
