package handlers

import (
	"github.com/google/wire"

	"agentdesk/internal/interfaces/httpserver/handlers/authhandler"
	"agentdesk/internal/interfaces/httpserver/handlers/conversationhandler"
	"agentdesk/internal/interfaces/httpserver/handlers/gpthandler"
	"agentdesk/internal/interfaces/httpserver/handlers/invitationhandler"
	"agentdesk/internal/interfaces/httpserver/handlers/teamhandler"
)

var HandlerProvider = wire.NewSet(
	authhandler.NewAuthHandler,
	gpthandler.NewGPTHandler,
	conversationhandler.NewConversationHandler,
	teamhandler.NewTeamHandler,
	invitationhandler.NewInvitationHandler,
)
