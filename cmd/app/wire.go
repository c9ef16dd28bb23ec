//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/clima-assistant/internal/bootstrap"
	"github.com/yanqian/clima-assistant/internal/domain/suggestion"
	"github.com/yanqian/clima-assistant/internal/infra/config"
	httpiface "github.com/yanqian/clima-assistant/internal/interface/http"
	"github.com/yanqian/clima-assistant/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		bootstrap.NewResources,
		provideSuggestionConfig,
		provideChatClient,
		provideTokenCounter,
		provideClock,
		provideSuggestionStore,
		provideInteractionLog,
		provideInteractionRecorder,
		provideWeatherProvider,
		suggestion.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
