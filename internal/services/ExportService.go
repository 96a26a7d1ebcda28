package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"net/http"
	"net/url"
	"potatoguard/internal/models"
	"potatoguard/internal/providers"
	"potatoguard/internal/structures"
	"strings"
	"time"
)

// ExportedImage is a ready-to-download image file.
type ExportedImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportServiceInterface turns a displayed image reference into a download.
// Three ordered tiers: serve inline data directly; re-fetch a remote URL and
// re-encode it as PNG; and, when re-encoding fails, hand the original URL
// back so the user can save it manually. Each tier is attempted only when
// the previous one does not apply or has failed, and tier two fires at most
// once.
type ExportServiceInterface interface {
	Export(ctx context.Context, ref string) (*ExportedImage, error)
}

type ExportService struct {
	httpClient  *http.Client
	backendHost string
	logger      providers.Logger
}

func NewExportService(conf *structures.Config, logger providers.Logger) ExportServiceInterface {
	host := ""
	if u, err := url.Parse(conf.Backend.BaseURL); err == nil {
		host = u.Host
	}
	return &ExportService{
		httpClient:  &http.Client{Timeout: conf.Backend.Timeout},
		backendHost: host,
		logger:      logger,
	}
}

// allowedOrigin limits remote refs to the backend the gateway is configured
// against. The ref comes straight from a query parameter; fetching or
// redirecting to arbitrary hosts would turn the download route into a
// request proxy.
func (s *ExportService) allowedOrigin(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return s.backendHost != "" && u.Host == s.backendHost
}

func exportFilename(ext string) string {
	return "potato-analysis-" + time.Now().Format("2006-01-02") + ext
}

func (s *ExportService) Export(ctx context.Context, ref string) (*ExportedImage, error) {
	switch models.ClassifyRef(ref) {
	case models.RefInlineData:
		return exportInline(ref)
	case models.RefRemoteURL:
		if !s.allowedOrigin(ref) {
			s.logger.Warnf(providers.TypeGet, "Refusing image export for foreign origin: %s", ref)
			return nil, models.ErrImageUnavailable
		}
		img, err := s.reencodeRemote(ctx, ref)
		if err != nil {
			// Degrade to opening the original in a new browsing context.
			s.logger.Warnf(providers.TypeGet, "Image re-encode failed, falling back to original URL: %s", err)
			return nil, &models.OpenOriginalError{URL: ref}
		}
		return img, nil
	default:
		return nil, models.ErrImageUnavailable
	}
}

func exportInline(ref string) (*ExportedImage, error) {
	meta, payload, ok := strings.Cut(ref, ",")
	if !ok {
		return nil, models.ErrImageUnavailable
	}

	contentType := strings.TrimPrefix(meta, "data:")
	contentType = strings.TrimSuffix(contentType, ";base64")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, models.ErrImageUnavailable
	}

	ext := ".png"
	if strings.Contains(contentType, "jpeg") || strings.Contains(contentType, "jpg") {
		ext = ".jpg"
	}

	return &ExportedImage{
		Filename:    exportFilename(ext),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func (s *ExportService) reencodeRemote(ctx context.Context, url string) (*ExportedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch image: %s", resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return &ExportedImage{
		Filename:    exportFilename(".png"),
		ContentType: "image/png",
		Data:        buf.Bytes(),
	}, nil
}
