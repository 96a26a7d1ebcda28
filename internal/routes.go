package internal

import (
	"net/http"
	"potatoguard/internal/controllers"
	"potatoguard/internal/providers"
)

func InitRoutes(
	authController *controllers.AuthController,
	analyzeController *controllers.AnalyzeController,
	resultsController *controllers.ResultsController,
	historyController *controllers.HistoryController,
	feedbackController *controllers.FeedbackController,
	chatController *controllers.ChatController,
) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/auth/login", http.HandlerFunc(authController.Login))
	routers.Post("/auth/signup", http.HandlerFunc(authController.Signup))
	routers.Post("/auth/logout", http.HandlerFunc(authController.Logout))
	routers.Get("/auth/me", http.HandlerFunc(authController.Me))

	routers.Post("/analyze", http.HandlerFunc(analyzeController.Analyze))
	routers.Get("/results", http.HandlerFunc(resultsController.Results))
	routers.Get("/results/image", http.HandlerFunc(resultsController.SaveImage))
	routers.Get("/preview", http.HandlerFunc(resultsController.Preview))

	routers.Get("/history", http.HandlerFunc(historyController.List))
	routers.Post("/history/replay", http.HandlerFunc(historyController.Replay))

	routers.Get("/feedback", http.HandlerFunc(feedbackController.List))
	routers.Post("/feedback", http.HandlerFunc(feedbackController.Submit))
	routers.Get("/feedback/random", http.HandlerFunc(feedbackController.Random))

	routers.Post("/chat", http.HandlerFunc(chatController.Message))
	return routers
}
