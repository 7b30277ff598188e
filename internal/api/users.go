package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/homehub-core/internal/auth"
	"github.com/nerrad567/homehub-core/internal/events"
)

var (
	opListUsers  = operation{name: "users.list", failed: "Failed to fetch users"}
	opGetUser    = operation{name: "users.get", notFound: "User not found", failed: "Failed to fetch user"}
	opCreateUser = operation{name: "users.create", conflict: "Username or email already exists", failed: "Failed to create user"}
)

// handleListUsers returns all users ordered by ID, without password hashes.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.fail(w, r, opListUsers, "", err)
		return
	}
	writeData(w, http.StatusOK, users)
}

// handleGetUser returns a single user by ID.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, ok := parseID(raw)
	if !ok {
		writeError(w, http.StatusNotFound, opGetUser.notFound)
		return
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		s.fail(w, r, opGetUser, raw, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

// handleCreateUser validates the account fields, hashes the password and
// inserts the user. A taken username or email answers 409.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req auth.NewUser
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	in, err := auth.ValidateNewUser(req)
	if err != nil {
		s.fail(w, r, opCreateUser, "", err)
		return
	}

	hash, err := auth.HashPassword(in.Password, s.secCfg.BcryptCost)
	if err != nil {
		s.fail(w, r, opCreateUser, "", err)
		return
	}

	user, err := s.users.Create(r.Context(), in.Username, in.Email, hash)
	if err != nil {
		s.fail(w, r, opCreateUser, "", err)
		return
	}

	s.publish(events.EntityUser, events.ActionCreated, user.ID, user)
	writeData(w, http.StatusCreated, user)
}
