//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"potatoguard/internal"
	"potatoguard/internal/controllers"
	"potatoguard/internal/persistence"
	"potatoguard/internal/providers"
	"potatoguard/internal/remote"
	"potatoguard/internal/services"
	"potatoguard/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		remote.NewApiClient,
		services.NewSessionService,
		services.NewAnalysisService,
		services.NewHistoryService,
		services.NewFeedbackService,
		services.NewChatService,
		services.NewExportService,

		persistence.NewZstdCompressor,
		persistence.NewFileManager,
		persistence.NewScheduler,

		controllers.NewAuthController,
		controllers.NewAnalyzeController,
		controllers.NewResultsController,
		controllers.NewHistoryController,
		controllers.NewFeedbackController,
		controllers.NewChatController,
		controllers.NewHealthController,

		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
