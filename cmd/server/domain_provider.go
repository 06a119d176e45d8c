package main

import (
	"github.com/google/wire"

	"agentdesk/internal/config"
	"agentdesk/internal/domain/conversation"
	"agentdesk/internal/domain/customgpt"
	"agentdesk/internal/domain/invitation"
	"agentdesk/internal/domain/user"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// User domain
	user.NewService,

	// Assistant domain
	customgpt.NewService,

	// Conversation domain
	conversation.NewEchoResponder,
	wire.Bind(new(conversation.Responder), new(*conversation.EchoResponder)),
	conversation.NewService,

	// Invitations
	ProvideInvitationConfig,
	invitation.NewService,
)

func ProvideInvitationConfig(cfg *config.Config) invitation.Config {
	return invitation.Config{
		TTL:         cfg.InvitationTTL,
		TokenSecret: []byte(cfg.JWTSecret),
	}
}
