package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"potatoguard/internal/models"
	"potatoguard/internal/providers"
	"potatoguard/internal/structures"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const maxErrorBodySize = 2048

// ApiClientInterface covers the endpoints of the remote detection backend.
// Every call is fire-once: no retries, no backoff. Failures carry the
// server's detail message so callers can surface it verbatim.
type ApiClientInterface interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Signup(ctx context.Context, username, email, password string) error
	Analyze(ctx context.Context, upload *models.UploadedImage, username string) (*models.ResultPayload, error)
	History(ctx context.Context, username string) ([]models.HistoryItem, error)
	ListFeedback(ctx context.Context) ([]models.FeedbackItem, error)
	RandomFeedback(ctx context.Context, limit int) ([]models.FeedbackItem, error)
	SubmitFeedback(ctx context.Context, sub *models.FeedbackSubmission) error
	Chat(ctx context.Context, message string) (string, error)
}

type ApiClient struct {
	baseURL    string
	httpClient *http.Client
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewApiClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) ApiClientInterface {
	logger.Infof(providers.TypeApp, "Backend API at %s", conf.Backend.BaseURL)
	return &ApiClient{
		baseURL:    strings.TrimRight(conf.Backend.BaseURL, "/"),
		httpClient: &http.Client{Timeout: conf.Backend.Timeout},
		logger:     logger,
		metrics:    metrics,
	}
}

// httpError is a non-2xx backend response with its extracted detail.
type httpError struct {
	Status int
	Detail string
}

func (e *httpError) Error() string { return e.Detail }

// detailMessage pulls the user-facing message out of a failed response:
// the JSON `detail` field when the body is JSON, otherwise the transport
// status text.
func detailMessage(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}

	if text := strings.TrimSpace(resp.Status); text != "" {
		return text
	}
	return "request failed"
}

func (c *ApiClient) do(req *http.Request, out any, endpoint string) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveRemoteCallDuration(endpoint, time.Since(start))
	if err != nil {
		c.metrics.IncRemoteCalls(endpoint, "transport_error")
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.IncRemoteCalls(endpoint, "http_error")
		return &httpError{Status: resp.StatusCode, Detail: detailMessage(resp)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.metrics.IncRemoteCalls(endpoint, "decode_error")
			return fmt.Errorf("decode %s response: %w", endpoint, err)
		}
	}

	c.metrics.IncRemoteCalls(endpoint, "ok")
	return nil
}

func (c *ApiClient) postJSON(ctx context.Context, path string, payload, out any, endpoint string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out, endpoint)
}

func (c *ApiClient) getJSON(ctx context.Context, path string, out any, endpoint string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", endpoint, err)
	}
	return c.do(req, out, endpoint)
}

func (c *ApiClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	payload := map[string]string{"email": email, "password": password}
	var user models.User
	if err := c.postJSON(ctx, "/auth/login", payload, &user, "login"); err != nil {
		c.logger.Warnf(providers.TypePost, "Login failed: %s", err)
		return nil, models.NewAuthError(err.Error())
	}
	return &user, nil
}

func (c *ApiClient) Signup(ctx context.Context, username, email, password string) error {
	payload := map[string]string{"username": username, "email": email, "password": password}
	if err := c.postJSON(ctx, "/auth/signup", payload, nil, "signup"); err != nil {
		c.logger.Warnf(providers.TypePost, "Signup failed: %s", err)
		return models.NewAuthError(err.Error())
	}
	return nil
}

func (c *ApiClient) Analyze(ctx context.Context, upload *models.UploadedImage, username string) (*models.ResultPayload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", upload.Filename)
	if err != nil {
		return nil, models.NewAnalysisError(err.Error())
	}
	if _, err = part.Write(upload.Data); err != nil {
		return nil, models.NewAnalysisError(err.Error())
	}
	if err = mw.WriteField("username", username); err != nil {
		return nil, models.NewAnalysisError(err.Error())
	}
	if err = mw.Close(); err != nil {
		return nil, models.NewAnalysisError(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict/", &buf)
	if err != nil {
		return nil, models.NewAnalysisError(err.Error())
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var payload models.ResultPayload
	if err := c.do(req, &payload, "predict"); err != nil {
		c.logger.Errorf(providers.TypePost, "Analysis failed for %s: %s", username, err)
		return nil, models.NewAnalysisError(err.Error())
	}
	return &payload, nil
}

func (c *ApiClient) History(ctx context.Context, username string) ([]models.HistoryItem, error) {
	var out struct {
		History []models.HistoryItem `json:"history"`
	}
	if err := c.getJSON(ctx, "/history/"+username, &out, "history"); err != nil {
		c.logger.Errorf(providers.TypeGet, "History fetch failed for %s: %s", username, err)
		return nil, models.NewHistoryError(err.Error())
	}
	return out.History, nil
}

func (c *ApiClient) ListFeedback(ctx context.Context) ([]models.FeedbackItem, error) {
	var items []models.FeedbackItem
	if err := c.getJSON(ctx, "/feedback", &items, "feedback"); err != nil {
		return nil, models.NewFeedbackError(err.Error())
	}
	return items, nil
}

func (c *ApiClient) RandomFeedback(ctx context.Context, limit int) ([]models.FeedbackItem, error) {
	var items []models.FeedbackItem
	path := "/feedback/random?limit=" + strconv.Itoa(limit)
	if err := c.getJSON(ctx, path, &items, "feedback_random"); err != nil {
		return nil, models.NewFeedbackError(err.Error())
	}
	return items, nil
}

func (c *ApiClient) SubmitFeedback(ctx context.Context, sub *models.FeedbackSubmission) error {
	if err := c.postJSON(ctx, "/feedback", sub, nil, "feedback_submit"); err != nil {
		c.logger.Warnf(providers.TypePost, "Feedback submit failed: %s", err)
		return models.NewFeedbackError(err.Error())
	}
	return nil
}

func (c *ApiClient) Chat(ctx context.Context, message string) (string, error) {
	payload := map[string]string{"message": message}
	var out struct {
		Response string `json:"response"`
	}
	if err := c.postJSON(ctx, "/chat/", payload, &out, "chat"); err != nil {
		return "", models.NewChatError(err.Error())
	}
	return out.Response, nil
}
