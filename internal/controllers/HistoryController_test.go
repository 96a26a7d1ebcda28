package controllers

import (
	"net/http"
	"net/http/httptest"
	"potatoguard/internal/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryList_RequiresSession(t *testing.T) {
	hc := NewHistoryController(&mockLogger{}, &mockHistory{})

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rr := httptest.NewRecorder()
	hc.List(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHistoryList_Summaries(t *testing.T) {
	history := &mockHistory{items: []models.HistoryItem{
		{ID: "h1", Detections: []models.Detection{{ClassName: "Late Blight", Confidence: 0.92}}},
		{ID: "h2", Detections: []models.Detection{{ClassName: "Healthy", Confidence: 0.99}}},
		{ID: "h3"},
	}}
	hc := NewHistoryController(&mockLogger{}, history)

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sid1"})
	rr := httptest.NewRecorder()
	hc.List(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `"primary_class":"Late Blight"`)
	assert.Contains(t, body, `"primary_class":"Healthy"`)
	assert.Contains(t, body, `"primary_class":"Unknown Disease"`)
}

func TestHistoryList_BackendError(t *testing.T) {
	history := &mockHistory{listErr: models.NewHistoryError("history service down")}
	hc := NewHistoryController(&mockLogger{}, history)

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sid1"})
	rr := httptest.NewRecorder()
	hc.List(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "history service down")
}

func TestReplay_RedirectsToResults(t *testing.T) {
	history := &mockHistory{}
	hc := NewHistoryController(&mockLogger{}, history)

	req := httptest.NewRequest(http.MethodPost, "/history/replay", strings.NewReader(`{"id":"h1"}`))
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sid1"})
	rr := httptest.NewRecorder()
	hc.Replay(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"redirect":"/results"`)
	assert.Equal(t, "h1", history.replayed)
}

func TestReplay_MissingID(t *testing.T) {
	hc := NewHistoryController(&mockLogger{}, &mockHistory{})

	req := httptest.NewRequest(http.MethodPost, "/history/replay", strings.NewReader(`{}`))
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sid1"})
	rr := httptest.NewRecorder()
	hc.Replay(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestReplay_UnknownItem(t *testing.T) {
	history := &mockHistory{replayErr: models.ErrHistoryNotLoaded}
	hc := NewHistoryController(&mockLogger{}, history)

	req := httptest.NewRequest(http.MethodPost, "/history/replay", strings.NewReader(`{"id":"missing"}`))
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "sid1"})
	rr := httptest.NewRecorder()
	hc.Replay(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
