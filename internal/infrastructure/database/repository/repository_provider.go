package repository

import (
	"agentdesk/internal/infrastructure/database/repository/conversationrepo"
	"agentdesk/internal/infrastructure/database/repository/customgptrepo"
	"agentdesk/internal/infrastructure/database/repository/invitationrepo"
	"agentdesk/internal/infrastructure/database/repository/userrepo"

	"github.com/google/wire"
)

var RepositoryProvider = wire.NewSet(
	userrepo.NewUserMongoRepository,
	customgptrepo.NewCustomGPTMongoRepository,
	conversationrepo.NewConversationMongoRepository,
	invitationrepo.NewInvitationMongoRepository,
)
