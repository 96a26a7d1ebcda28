package controllers

import (
	"errors"
	"io"
	"net/http"
	"potatoguard/internal/models"
	"potatoguard/internal/providers"
	"potatoguard/internal/services"
)

type AnalyzeController struct {
	logger   providers.Logger
	analysis services.AnalysisServiceInterface
}

func NewAnalyzeController(logger providers.Logger, analysis services.AnalysisServiceInterface) *AnalyzeController {
	return &AnalyzeController{
		logger:   logger,
		analysis: analysis,
	}
}

func (ac *AnalyzeController) Analyze(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		writeServiceError(w, models.ErrLoginRequired)
		return
	}

	// The form ceiling sits slightly above the image ceiling so an
	// oversized image yields the friendly validation message rather than
	// an opaque body-too-large failure.
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadSize+(1<<20))

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, "Validation Error", "Please upload an image smaller than 10MB.")
			return
		}
		writeError(w, http.StatusBadRequest, "Validation Error", "Please select an image to detect disease.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Failed to read upload: %s", err)
		writeError(w, http.StatusBadRequest, "Validation Error", "Could not read the uploaded image.")
		return
	}

	upload := &models.UploadedImage{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	if _, err := ac.analysis.Analyze(r.Context(), c.Value, upload); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"redirect": "/results"})
}
