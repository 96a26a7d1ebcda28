package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRef_DataURL(t *testing.T) {
	assert.Equal(t, RefInlineData, ClassifyRef("data:image/png;base64,AAAA"))
	assert.Equal(t, RefInlineData, ClassifyRef("data:image/jpeg;base64,/9j/4AAQ"))
}

func TestClassifyRef_RemoteURL(t *testing.T) {
	assert.Equal(t, RefRemoteURL, ClassifyRef("http://backend/images/1.png"))
	assert.Equal(t, RefRemoteURL, ClassifyRef("https://backend/images/1.png"))
}

func TestClassifyRef_Invalid(t *testing.T) {
	assert.Equal(t, RefInvalid, ClassifyRef(""))
	assert.Equal(t, RefInvalid, ClassifyRef("/preview?t=abc"))
	assert.Equal(t, RefInvalid, ClassifyRef("ftp://host/img.png"))
	assert.Equal(t, RefInvalid, ClassifyRef("data:text/plain;base64,AAAA"))
}

func TestResolveImageRef_InlineWinsOverServerURL(t *testing.T) {
	result := &AnalysisResult{
		Image: "data:image/png;base64,AAAA",
		Result: ResultPayload{
			ImageURL: "https://backend/images/1.png",
		},
	}

	ref, kind := ResolveImageRef(result)
	assert.Equal(t, "data:image/png;base64,AAAA", ref)
	assert.Equal(t, RefInlineData, kind)
}

func TestResolveImageRef_ServerURLWinsOverPreview(t *testing.T) {
	result := &AnalysisResult{
		Image: "/preview?t=abc",
		Result: ResultPayload{
			ImageURL: "https://backend/images/1.png",
		},
	}

	ref, kind := ResolveImageRef(result)
	assert.Equal(t, "https://backend/images/1.png", ref)
	assert.Equal(t, RefRemoteURL, kind)
}

func TestResolveImageRef_PreviewLastResortIsInvalid(t *testing.T) {
	result := &AnalysisResult{Image: "/preview?t=abc"}

	ref, kind := ResolveImageRef(result)
	assert.Equal(t, "/preview?t=abc", ref)
	assert.Equal(t, RefInvalid, kind)
}

func TestResolveImageRef_Empty(t *testing.T) {
	ref, kind := ResolveImageRef(&AnalysisResult{})
	assert.Equal(t, "", ref)
	assert.Equal(t, RefInvalid, kind)

	ref, kind = ResolveImageRef(nil)
	assert.Equal(t, "", ref)
	assert.Equal(t, RefInvalid, kind)
}

func TestIsHealthy_AllHealthy(t *testing.T) {
	detections := []Detection{
		{ClassName: "Healthy", Confidence: 0.98},
		{ClassName: "Healthy", Confidence: 0.91},
	}
	assert.True(t, IsHealthy(detections))
}

func TestIsHealthy_MixedNeverHealthy(t *testing.T) {
	detections := []Detection{
		{ClassName: "Healthy", Confidence: 0.98},
		{ClassName: "Late Blight", Confidence: 0.92},
	}
	assert.False(t, IsHealthy(detections))
}

func TestIsHealthy_Diseased(t *testing.T) {
	assert.False(t, IsHealthy([]Detection{{ClassName: "Early Blight", Confidence: 0.75}}))
}

func TestIsHealthy_Empty(t *testing.T) {
	assert.True(t, IsHealthy(nil))
}

func TestPrimaryClass(t *testing.T) {
	assert.Equal(t, "Late Blight", PrimaryClass([]Detection{{ClassName: "Late Blight"}, {ClassName: "Healthy"}}))
	assert.Equal(t, "Unknown Disease", PrimaryClass(nil))
}
