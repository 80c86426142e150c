package app

import (
	"github.com/ternarybob/arbor"

	"github.com/lebonkosi/foliochat/internal/common"
	"github.com/lebonkosi/foliochat/internal/handlers"
	"github.com/lebonkosi/foliochat/internal/interfaces"
	"github.com/lebonkosi/foliochat/internal/services/chat"
	"github.com/lebonkosi/foliochat/internal/services/llm"
	"github.com/lebonkosi/foliochat/internal/services/profile"
	"github.com/lebonkosi/foliochat/internal/services/scheduler"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Services
	LLMService     interfaces.LLMService
	ProfileService interfaces.ProfileService
	ChatService    interfaces.ChatService
	Scheduler      *scheduler.Service

	// Handlers
	ChatHandler *handlers.ChatHandler
	APIHandler  *handlers.APIHandler
}

// New wires configuration, services, and handlers into a runnable app.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	providerFactory := llm.NewProviderFactory(&config.Gemini, &config.Claude, &config.LLM, logger)
	llmService := llm.NewService(providerFactory, config.Chat.OwnerName, logger)

	profileService := profile.NewService(&config.Profile, logger)
	chatService := chat.NewService(llmService, profileService, &config.Chat, logger)

	refresher := scheduler.NewService(profileService, config.Profile.RefreshSchedule, logger)
	if err := refresher.Start(); err != nil {
		return nil, err
	}

	return &App{
		Config:         config,
		Logger:         logger,
		LLMService:     llmService,
		ProfileService: profileService,
		ChatService:    chatService,
		Scheduler:      refresher,
		ChatHandler:    handlers.NewChatHandler(chatService, logger),
		APIHandler:     handlers.NewAPIHandler(),
	}, nil
}

// Close releases application resources.
func (a *App) Close() {
	a.Scheduler.Stop()
	if err := a.LLMService.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
	}
}
