package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"potatoguard/internal/models"
	"potatoguard/internal/structures"
	"potatoguard/internal/testutil"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExportService(backendURL string) ExportServiceInterface {
	conf := &structures.Config{}
	conf.Backend.BaseURL = backendURL
	conf.Backend.Timeout = 5 * time.Second
	return NewExportService(conf, &testutil.MockLogger{})
}

func encodedPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestExport_InlinePNG(t *testing.T) {
	raw := encodedPNG(t)
	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	exported, err := newExportService("http://localhost:8000").Export(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "image/png", exported.ContentType)
	assert.Equal(t, raw, exported.Data)
	assert.Contains(t, exported.Filename, "potato-analysis-")
	assert.Contains(t, exported.Filename, ".png")
}

func TestExport_InlineJPEGExtension(t *testing.T) {
	ref := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpegbytes"))

	exported, err := newExportService("http://localhost:8000").Export(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", exported.ContentType)
	assert.Contains(t, exported.Filename, ".jpg")
}

func TestExport_InlineMalformedBase64(t *testing.T) {
	_, err := newExportService("http://localhost:8000").Export(context.Background(), "data:image/png;base64,!!!not-base64!!!")
	assert.ErrorIs(t, err, models.ErrImageUnavailable)
}

func TestExport_RemoteReencodedAsPNG(t *testing.T) {
	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Header().Set("Content-Type", "image/png")
		w.Write(encodedPNG(t))
	}))
	defer srv.Close()

	exported, err := newExportService(srv.URL).Export(context.Background(), srv.URL+"/img.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", exported.ContentType)
	assert.Equal(t, int32(1), fetches.Load())

	_, err = png.Decode(bytes.NewReader(exported.Data))
	assert.NoError(t, err)
}

func TestExport_RemoteUndecodableFallsBackToURL(t *testing.T) {
	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Write([]byte("not an image"))
	}))
	defer srv.Close()

	url := srv.URL + "/img.png"
	_, err := newExportService(srv.URL).Export(context.Background(), url)

	var openErr *models.OpenOriginalError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, url, openErr.URL)
	assert.Equal(t, int32(1), fetches.Load(), "second tier fires at most once")
}

func TestExport_RemoteErrorStatusFallsBackToURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newExportService(srv.URL).Export(context.Background(), srv.URL+"/gone.png")
	var openErr *models.OpenOriginalError
	assert.ErrorAs(t, err, &openErr)
}

// A remote ref on any host other than the configured backend is refused
// outright: no server-side fetch, and no redirect fallback to leak through.
func TestExport_ForeignOriginRejected(t *testing.T) {
	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Write(encodedPNG(t))
	}))
	defer srv.Close()

	_, err := newExportService("http://localhost:8000").Export(context.Background(), srv.URL+"/img.png")
	assert.ErrorIs(t, err, models.ErrImageUnavailable)

	var openErr *models.OpenOriginalError
	assert.False(t, errors.As(err, &openErr))
	assert.Equal(t, int32(0), fetches.Load())
}

func TestExport_UnresolvableRef(t *testing.T) {
	for _, ref := range []string{"", "/preview?t=abc", "blob:local"} {
		_, err := newExportService("http://localhost:8000").Export(context.Background(), ref)
		assert.ErrorIs(t, err, models.ErrImageUnavailable, ref)
	}
}
