package services

import (
	"context"
	"potatoguard/internal/models"
	"sync"
)

// mockApiClient records calls and lets tests steer each endpoint.
type mockApiClient struct {
	mu sync.Mutex

	analyzeCalls int
	analyzeResp  *models.ResultPayload
	analyzeErr   error
	// analyzeHook runs inside Analyze, before returning, while the call
	// is considered in flight.
	analyzeHook func()

	historyCalls int
	historyItems []models.HistoryItem
	historyErr   error

	feedbackItems []models.FeedbackItem
	feedbackErr   error
	randomItems   []models.FeedbackItem
	randomErr     error
	submitErr     error
	submitted     []*models.FeedbackSubmission

	chatReply string
	chatErr   error
}

func (m *mockApiClient) Login(_ context.Context, _, _ string) (*models.User, error) {
	return nil, nil
}

func (m *mockApiClient) Signup(_ context.Context, _, _, _ string) error {
	return nil
}

func (m *mockApiClient) Analyze(_ context.Context, _ *models.UploadedImage, _ string) (*models.ResultPayload, error) {
	m.mu.Lock()
	m.analyzeCalls++
	hook := m.analyzeHook
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
	return m.analyzeResp, m.analyzeErr
}

func (m *mockApiClient) History(_ context.Context, _ string) ([]models.HistoryItem, error) {
	m.mu.Lock()
	m.historyCalls++
	m.mu.Unlock()
	return m.historyItems, m.historyErr
}

func (m *mockApiClient) ListFeedback(_ context.Context) ([]models.FeedbackItem, error) {
	return m.feedbackItems, m.feedbackErr
}

func (m *mockApiClient) RandomFeedback(_ context.Context, _ int) ([]models.FeedbackItem, error) {
	return m.randomItems, m.randomErr
}

func (m *mockApiClient) SubmitFeedback(_ context.Context, sub *models.FeedbackSubmission) error {
	m.mu.Lock()
	m.submitted = append(m.submitted, sub)
	m.mu.Unlock()
	return m.submitErr
}

func (m *mockApiClient) Chat(_ context.Context, _ string) (string, error) {
	return m.chatReply, m.chatErr
}

func (m *mockApiClient) AnalyzeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.analyzeCalls
}
