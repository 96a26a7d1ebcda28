package models

import "strings"

// RefKind classifies an image reference for display and export purposes.
type RefKind int

const (
	// RefInvalid covers empty references and unrecognized schemes, including
	// the transient local preview paths that expired with their session.
	RefInvalid RefKind = iota
	// RefInlineData is a self-contained data URL, renderable without a fetch.
	RefInlineData
	// RefRemoteURL is an http(s) location owned by the backend.
	RefRemoteURL
)

func (k RefKind) String() string {
	switch k {
	case RefInlineData:
		return "inline"
	case RefRemoteURL:
		return "remote"
	default:
		return "invalid"
	}
}

// ClassifyRef maps a candidate reference string onto its kind.
func ClassifyRef(ref string) RefKind {
	switch {
	case strings.HasPrefix(ref, "data:image"):
		return RefInlineData
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return RefRemoteURL
	default:
		return RefInvalid
	}
}

// ResolveImageRef selects exactly one displayable reference from an analysis
// result. Priority: an inline data URL wins over the server image_url, which
// wins over whatever local preview reference is left. The returned kind
// classifies the chosen string; RefInvalid means the caller should render
// the "image unavailable" placeholder.
func ResolveImageRef(result *AnalysisResult) (string, RefKind) {
	if result == nil {
		return "", RefInvalid
	}

	var chosen string
	switch {
	case ClassifyRef(result.Image) == RefInlineData:
		chosen = result.Image
	case result.Result.ImageURL != "":
		chosen = result.Result.ImageURL
	default:
		chosen = result.Image
	}

	return chosen, ClassifyRef(chosen)
}
