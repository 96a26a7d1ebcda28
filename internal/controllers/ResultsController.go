package controllers

import (
	"errors"
	"net/http"
	"potatoguard/internal/models"
	"potatoguard/internal/providers"
	"potatoguard/internal/services"
)

type ResultsController struct {
	logger   providers.Logger
	sessions services.SessionServiceInterface
	export   services.ExportServiceInterface
}

func NewResultsController(logger providers.Logger, sessions services.SessionServiceInterface, export services.ExportServiceInterface) *ResultsController {
	return &ResultsController{
		logger:   logger,
		sessions: sessions,
		export:   export,
	}
}

type resultsResponse struct {
	Result       *models.AnalysisResult `json:"result"`
	Image        string                 `json:"image"`
	ImageKind    string                 `json:"image_kind"`
	Healthy      bool                   `json:"healthy"`
	PrimaryClass string                 `json:"primary_class"`
}

// Results consumes the one-shot result slot. A refresh after the first read
// finds the slot empty and is sent back to the upload page.
func (rc *ResultsController) Results(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		writeServiceError(w, models.ErrLoginRequired)
		return
	}

	result, err := rc.sessions.TakeResult(c.Value)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if result == nil {
		writeJSON(w, http.StatusOK, map[string]string{"redirect": "/upload"})
		return
	}

	ref, kind := models.ResolveImageRef(result)
	writeJSON(w, http.StatusOK, resultsResponse{
		Result:       result,
		Image:        ref,
		ImageKind:    kind.String(),
		Healthy:      models.IsHealthy(result.Result.Detections),
		PrimaryClass: models.PrimaryClass(result.Result.Detections),
	})
}

// SaveImage turns the displayed reference into a download. When re-encoding
// a remote image fails, the browser is redirected to the original URL.
func (rc *ResultsController) SaveImage(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		writeServiceError(w, models.ErrLoginRequired)
		return
	}
	if _, ok := rc.sessions.LoadUser(c.Value); !ok {
		writeServiceError(w, models.ErrLoginRequired)
		return
	}

	src := r.URL.Query().Get("src")

	exported, err := rc.export.Export(r.Context(), src)
	if err != nil {
		var openErr *models.OpenOriginalError
		if errors.As(err, &openErr) {
			http.Redirect(w, r, openErr.URL, http.StatusFound)
			return
		}
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", exported.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+exported.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(exported.Data)
}

// Preview serves the locally stashed upload back to the browser while the
// backend has no copy of its own to show.
func (rc *ResultsController) Preview(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("t")
	if token == "" {
		writeServiceError(w, models.ErrImageUnavailable)
		return
	}

	upload, ok := rc.sessions.LoadPreview(token)
	if !ok {
		writeServiceError(w, models.ErrImageUnavailable)
		return
	}

	w.Header().Set("Content-Type", upload.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(upload.Data)
}
