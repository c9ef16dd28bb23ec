//go:build !wireinject

// Hand-written counterpart of the injector in wire.go. Running
// `wire ./cmd/app` replaces it with generated output.

package main

import (
	"github.com/yanqian/clima-assistant/internal/bootstrap"
	"github.com/yanqian/clima-assistant/internal/domain/suggestion"
	"github.com/yanqian/clima-assistant/internal/infra/config"
	"github.com/yanqian/clima-assistant/internal/interface/http"
	"github.com/yanqian/clima-assistant/pkg/logger"
)

// Injectors from wire.go:

func initializeApp() (*bootstrap.App, error) {
	configConfig, err := config.Load()
	if err != nil {
		return nil, err
	}
	slogLogger := logger.New()
	resources := bootstrap.NewResources()
	suggestionConfig := provideSuggestionConfig(configConfig)
	chatClient := provideChatClient(configConfig, slogLogger)
	store := provideSuggestionStore(configConfig, resources, slogLogger)
	interactionLog := provideInteractionLog(configConfig, resources, slogLogger)
	interactionRecorder := provideInteractionRecorder(interactionLog)
	tokenCounter := provideTokenCounter(configConfig, slogLogger)
	clock := provideClock(configConfig, slogLogger)
	service := suggestion.NewService(suggestionConfig, chatClient, store, interactionRecorder, tokenCounter, clock, slogLogger)
	weatherProvider := provideWeatherProvider(configConfig, slogLogger)
	handler := http.NewHandler(service, weatherProvider, interactionLog, slogLogger)
	server := http.NewRouter(configConfig, handler)
	app := bootstrap.NewApp(configConfig, slogLogger, server, resources)
	return app, nil
}
