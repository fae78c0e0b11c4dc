package api

import (
	"encoding/json"
	"net/http"

	"github.com/happythoughts/thoughts-service/internal/api/respond"
	"github.com/happythoughts/thoughts-service/internal/api/validate"
	"github.com/happythoughts/thoughts-service/internal/auth"
	"github.com/happythoughts/thoughts-service/internal/services"
)

// UserHandler exposes registration, login and the caller-identity lookup.
type UserHandler struct {
	svc  *services.UserService
	auth auth.Authenticator
}

func NewUserHandler(svc *services.UserService, a auth.Authenticator) *UserHandler {
	return &UserHandler{svc: svc, auth: a}
}

// Register POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteFailure(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := validate.Registration(req.Username, req.Email, req.Password); err != nil {
		respond.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusCreated, user)
}

// Login POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteFailure(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, result)
}

// Me GET /auth/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Authenticate(r.Context(), r)
	if err != nil {
		writeAuthError(w)
		return
	}
	profile, err := h.svc.Me(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, profile)
}
