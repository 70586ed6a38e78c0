package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/speaktech/transqiita/internal/adapters/driven/ai"
	"github.com/speaktech/transqiita/internal/adapters/driven/config/file"
	"github.com/speaktech/transqiita/internal/adapters/driven/storage/sqlite"
	"github.com/speaktech/transqiita/internal/adapters/driving/cli"
	"github.com/speaktech/transqiita/internal/connectors"
	"github.com/speaktech/transqiita/internal/core/domain"
	"github.com/speaktech/transqiita/internal/core/ports/driven"
	"github.com/speaktech/transqiita/internal/core/ports/driving"
	"github.com/speaktech/transqiita/internal/core/services"
	"github.com/speaktech/transqiita/internal/logger"
	"github.com/speaktech/transqiita/internal/postprocessors"
)

// bootstrap opens the config and history stores under configDir.
// Repository and translator are only created when a command needs them.
func bootstrap(configDir string) (*cli.Services, error) {
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("config directory: %w", err)
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	prompts, err := file.NewPromptStore(filepath.Join(configDir, "prompts"))
	if err != nil {
		return nil, fmt.Errorf("prompts: %w", err)
	}

	store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	logger.Debug("history database: %s", store.Path())

	history := store.HistoryStore()
	runs := store.RunStore()

	return &cli.Services{
		Settings: settingsService,
		History:  services.NewHistoryService(history),
		Runs:     runs,
		Open: func(ctx context.Context, token string) (*cli.Runtime, error) {
			return openRuntime(ctx, settingsService, prompts, history, token)
		},
		NewScheduler: func(
			spec string, rt *cli.Runtime, req driving.PublishRequest, report func(domain.RunRecord),
		) driving.Scheduler {
			s := services.NewScheduler(spec, rt.Worklist, rt.Publish, req).WithRunStore(runs)
			s.OnRun(func(summary services.RunSummary) {
				report(summary.Record())
			})
			return s
		},
		Close: store.Close,
	}, nil
}

// openRuntime binds the repository credential and builds the translation
// services. A non-empty token replaces the configured one.
func openRuntime(
	ctx context.Context,
	settingsService driving.SettingsService,
	prompts driven.PromptStore,
	history driven.HistoryStore,
	token string,
) (*cli.Runtime, error) {
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}
	if token != "" {
		settings.Repository.Token = token
	}

	done := logger.Timed("open repository")
	repo, err := connectors.Open(ctx, settings.Repository)
	done()
	if err != nil {
		return nil, fmt.Errorf("open %s repository: %w", settings.Repository.Kind, err)
	}

	translator, err := ai.CreateTranslator(ctx, &settings.Translator, prompts)
	if err != nil {
		return nil, err
	}

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := registry.BuildPipeline(settings.Pipeline.Processors, nil)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	target := settings.Translator.TargetLanguage
	translation := services.NewTranslationService(translator, target,
		services.WithMaxChunkSize(settings.Translator.MaxChunkSize),
		services.WithBanner(settings.Pipeline.Banner),
		services.WithRepair(pipeline),
	)
	classifier := services.NewClassifier(translator, target)

	return &cli.Runtime{
		Repository: repo,
		Worklist:   services.NewWorklistService(repo, classifier),
		Publish:    services.NewPublishService(repo, translation, history),
	}, nil
}
