package models

import (
	"errors"
	"fmt"
)

// Sentinel errors caught at the call site and rendered as user notifications.
var (
	ErrLoginRequired      = errors.New("please log in to use the detection feature")
	ErrSubmissionInFlight = errors.New("analysis already in progress")
	ErrImageUnavailable   = errors.New("no image available to save")
	ErrHistoryNotLoaded   = errors.New("history item not found")
)

// ValidationError rejects input before any network call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// remoteError carries the server's own detail message for a failed call.
// The message must reach the user verbatim.
type remoteError struct {
	Message string
}

func (e *remoteError) Error() string { return e.Message }

type AuthError struct{ remoteError }

type AnalysisError struct{ remoteError }

type HistoryError struct{ remoteError }

type FeedbackError struct{ remoteError }

type ChatError struct{ remoteError }

func NewAuthError(msg string) *AuthError         { return &AuthError{remoteError{Message: msg}} }
func NewAnalysisError(msg string) *AnalysisError { return &AnalysisError{remoteError{Message: msg}} }
func NewHistoryError(msg string) *HistoryError   { return &HistoryError{remoteError{Message: msg}} }
func NewFeedbackError(msg string) *FeedbackError { return &FeedbackError{remoteError{Message: msg}} }
func NewChatError(msg string) *ChatError         { return &ChatError{remoteError{Message: msg}} }

// OpenOriginalError signals the last export tier: re-encoding failed and the
// caller should send the user to the original URL to save it manually.
type OpenOriginalError struct {
	URL string
}

func (e *OpenOriginalError) Error() string {
	return fmt.Sprintf("open original image at %s", e.URL)
}
