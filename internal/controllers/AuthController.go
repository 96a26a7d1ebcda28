package controllers

import (
	"net/http"
	"potatoguard/internal/models"
	"potatoguard/internal/providers"
	"potatoguard/internal/remote"
	"potatoguard/internal/services"
	"strings"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type AuthController struct {
	logger   providers.Logger
	client   remote.ApiClientInterface
	sessions services.SessionServiceInterface
}

func NewAuthController(logger providers.Logger, client remote.ApiClientInterface, sessions services.SessionServiceInterface) *AuthController {
	return &AuthController{
		logger:   logger,
		client:   client,
		sessions: sessions,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Validation Error", "Invalid request body.")
		return
	}
	if strings.TrimSpace(payload.Email) == "" || payload.Password == "" {
		writeError(w, http.StatusBadRequest, "Validation Error", "Email and password are required.")
		return
	}

	user, err := ac.client.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	sid := ensureSession(w, r)
	ac.sessions.SaveUser(sid, user)
	ac.logger.Infof(providers.TypePost, "User %s logged in", user.Username)

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload signupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Validation Error", "Invalid request body.")
		return
	}
	if strings.TrimSpace(payload.Username) == "" || strings.TrimSpace(payload.Email) == "" || payload.Password == "" {
		writeError(w, http.StatusBadRequest, "Validation Error", "Username, email and password are required.")
		return
	}

	if err := ac.client.Signup(r.Context(), payload.Username, payload.Email, payload.Password); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Account created. Please log in."})
}

func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		ac.sessions.ClearUser(c.Value)
	}
	dropSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out."})
}

func (ac *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		writeServiceError(w, models.ErrLoginRequired)
		return
	}

	user, ok := ac.sessions.LoadUser(c.Value)
	if !ok {
		writeServiceError(w, models.ErrLoginRequired)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
