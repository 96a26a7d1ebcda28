package models

// ResultPayload is the raw classification response of the remote API.
type ResultPayload struct {
	Detections []Detection `json:"detections"`
	ImageURL   string      `json:"image_url,omitempty"`
}

// AnalysisResult is the unit stashed in the session store and rendered by
// the results route. Image holds the locally served preview reference (or,
// after a history replay, the hydrated base64 image), while Result.ImageURL
// is the server-asserted location. Exactly one of them is chosen for display
// via ResolveImageRef.
type AnalysisResult struct {
	Image  string        `json:"image"`
	Result ResultPayload `json:"result"`
}

type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// HistoryItem is a server-owned record, read-only to this gateway.
type HistoryItem struct {
	ID          string      `json:"id"`
	ImageURL    string      `json:"image_url"`
	ImageBase64 string      `json:"image_base64"`
	Timestamp   string      `json:"timestamp"`
	Detections  []Detection `json:"detections"`
}

type FeedbackItem struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Timestamp string `json:"timestamp"`
}

// FeedbackSubmission is the client payload for a new feedback entry.
// Username is filled from the session, never from the request body.
type FeedbackSubmission struct {
	Username string `json:"username"`
	Rating   int    `json:"rating" validate:"required|int|min:1|max:5"`
	Comment  string `json:"comment" validate:"required"`
}
