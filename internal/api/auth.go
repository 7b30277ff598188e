package api

import (
	"errors"
	"net/http"

	"github.com/nerrad567/homehub-core/internal/auth"
)

const (
	msgAuthNotConfigured  = "Authentication is not configured"
	msgInvalidCredentials = "Invalid username or password"
	msgLoginFailed        = "Failed to log in"
)

// loginResponse is the data of a successful POST /api/auth/login.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// handleLogin authenticates a user and returns a JWT access token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.secCfg.JWT.Secret == "" {
		writeError(w, http.StatusServiceUnavailable, msgAuthNotConfigured)
		return
	}

	var creds auth.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		writeDecodeError(w, err)
		return
	}

	user, err := auth.Authenticate(r.Context(), s.users, creds)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Info("login rejected", "username", creds.Username, "request_id", r.Context().Value(ctxKeyRequestID))
			writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		s.logger.Error("login failed", "username", creds.Username, "error", err)
		writeError(w, http.StatusInternalServerError, msgLoginFailed)
		return
	}

	ttl := auth.TokenTTLMinutes(s.secCfg.JWT.AccessTokenTTL)
	token, err := auth.GenerateAccessToken(user, s.secCfg.JWT.Secret, ttl)
	if err != nil {
		s.logger.Error("issuing token failed", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, msgLoginFailed)
		return
	}

	writeData(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   ttl * 60,
	})
}
