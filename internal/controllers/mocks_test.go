package controllers

import (
	"context"
	"potatoguard/internal/models"
	"potatoguard/internal/providers"
	"potatoguard/internal/services"
	"potatoguard/internal/testutil"
)

// --- local mocks (scoped to controller tests) ---

type mockLogger struct{}

func (m *mockLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Close()                                                  {}

type mockApiClient struct {
	loginUser *models.User
	loginErr  error
	signupErr error
}

func (m *mockApiClient) Login(_ context.Context, _, _ string) (*models.User, error) {
	return m.loginUser, m.loginErr
}
func (m *mockApiClient) Signup(_ context.Context, _, _, _ string) error { return m.signupErr }
func (m *mockApiClient) Analyze(_ context.Context, _ *models.UploadedImage, _ string) (*models.ResultPayload, error) {
	return nil, nil
}
func (m *mockApiClient) History(_ context.Context, _ string) ([]models.HistoryItem, error) {
	return nil, nil
}
func (m *mockApiClient) ListFeedback(_ context.Context) ([]models.FeedbackItem, error) {
	return nil, nil
}
func (m *mockApiClient) RandomFeedback(_ context.Context, _ int) ([]models.FeedbackItem, error) {
	return nil, nil
}
func (m *mockApiClient) SubmitFeedback(_ context.Context, _ *models.FeedbackSubmission) error {
	return nil
}
func (m *mockApiClient) Chat(_ context.Context, _ string) (string, error) { return "", nil }

type mockAnalysis struct {
	result *models.AnalysisResult
	err    error
	calls  int
	upload *models.UploadedImage
}

func (m *mockAnalysis) Analyze(_ context.Context, _ string, upload *models.UploadedImage) (*models.AnalysisResult, error) {
	m.calls++
	m.upload = upload
	return m.result, m.err
}

type mockExport struct {
	exported *services.ExportedImage
	err      error
	lastRef  string
}

func (m *mockExport) Export(_ context.Context, ref string) (*services.ExportedImage, error) {
	m.lastRef = ref
	return m.exported, m.err
}

type mockHistory struct {
	items     []models.HistoryItem
	listErr   error
	replayErr error
	replayed  string
}

func (m *mockHistory) List(_ context.Context, _ string) ([]models.HistoryItem, error) {
	return m.items, m.listErr
}

func (m *mockHistory) Replay(_, id string) error {
	m.replayed = id
	return m.replayErr
}

type mockFeedback struct {
	listing   *services.FeedbackListing
	listErr   error
	samples   []models.FeedbackItem
	degraded  bool
	submitErr error
	rating    int
	comment   string
}

func (m *mockFeedback) List(_ context.Context) (*services.FeedbackListing, error) {
	return m.listing, m.listErr
}

func (m *mockFeedback) Testimonials(_ context.Context, _ int) ([]models.FeedbackItem, bool) {
	return m.samples, m.degraded
}

func (m *mockFeedback) Submit(_ context.Context, _ string, rating int, comment string) error {
	m.rating = rating
	m.comment = comment
	return m.submitErr
}

type mockChat struct {
	reply string
	err   error
}

func (m *mockChat) Reply(_ context.Context, _ string) (string, error) { return m.reply, m.err }

// --- helpers ---

func newSessionStore() services.SessionServiceInterface {
	return services.NewSessionService(testutil.NewMockCache(), &mockLogger{}, testutil.NewMockMetrics())
}
