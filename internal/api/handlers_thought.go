package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/happythoughts/thoughts-service/internal/api/respond"
	"github.com/happythoughts/thoughts-service/internal/auth"
	"github.com/happythoughts/thoughts-service/internal/model"
	"github.com/happythoughts/thoughts-service/internal/services"
)

// ThoughtHandler is a thin HTTP transport over the ThoughtService. Write
// endpoints resolve the caller from the bearer token before touching the
// service; ownership itself is enforced one layer down, inside the store
// write.
type ThoughtHandler struct {
	svc  *services.ThoughtService
	auth auth.Authenticator
}

func NewThoughtHandler(svc *services.ThoughtService, a auth.Authenticator) *ThoughtHandler {
	return &ThoughtHandler{svc: svc, auth: a}
}

// ListThoughts GET /thoughts
func (h *ThoughtHandler) ListThoughts(w http.ResponseWriter, r *http.Request) {
	req, err := parseListRequest(r)
	if err != nil {
		respond.WriteFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	items, meta, err := h.svc.List(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if meta.TotalCount == 0 {
		respond.WriteFailure(w, http.StatusNotFound, "No thoughts found")
		return
	}
	respond.WritePage(w, http.StatusOK, items, meta)
}

// GetThought GET /thoughts/{thoughtId}
func (h *ThoughtHandler) GetThought(w http.ResponseWriter, r *http.Request) {
	th, err := h.svc.Get(r.Context(), mux.Vars(r)["thoughtId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, th)
}

// CreateThought POST /thoughts
func (h *ThoughtHandler) CreateThought(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Authenticate(r.Context(), r)
	if err != nil {
		writeAuthError(w)
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteFailure(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	th, err := h.svc.Create(r.Context(), user.UserID, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusCreated, th)
}

// ReplaceThought PUT /thoughts/{thoughtId}
func (h *ThoughtHandler) ReplaceThought(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Authenticate(r.Context(), r)
	if err != nil {
		writeAuthError(w)
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteFailure(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	th, err := h.svc.Replace(r.Context(), mux.Vars(r)["thoughtId"], user.UserID, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, th)
}

// PatchThought PATCH /thoughts/{thoughtId}
func (h *ThoughtHandler) PatchThought(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Authenticate(r.Context(), r)
	if err != nil {
		writeAuthError(w)
		return
	}
	var req struct {
		Message *string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteFailure(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	th, err := h.svc.PartialUpdate(r.Context(), mux.Vars(r)["thoughtId"], user.UserID, req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, th)
}

// DeleteThought DELETE /thoughts/{thoughtId}
func (h *ThoughtHandler) DeleteThought(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Authenticate(r.Context(), r)
	if err != nil {
		writeAuthError(w)
		return
	}
	thoughtID := mux.Vars(r)["thoughtId"]
	if err := h.svc.Delete(r.Context(), thoughtID, user.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, map[string]string{"deletedId": thoughtID})
}

// LikeThought POST /thoughts/{thoughtId}/like
func (h *ThoughtHandler) LikeThought(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Authenticate(r.Context(), r)
	if err != nil {
		writeAuthError(w)
		return
	}
	th, err := h.svc.Like(r.Context(), mux.Vars(r)["thoughtId"], user.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, th)
}

func parseListRequest(r *http.Request) (model.ListThoughtsRequest, error) {
	q := r.URL.Query()
	var req model.ListThoughtsRequest

	var err error
	if req.Page, err = intParam(q.Get("page"), 1); err != nil {
		return req, fmt.Errorf("invalid page parameter")
	}
	if req.Limit, err = intParam(q.Get("limit"), services.DefaultPageLimit); err != nil {
		return req, fmt.Errorf("invalid limit parameter")
	}
	if req.Hearts, err = optionalIntParam(q.Get("hearts")); err != nil {
		return req, fmt.Errorf("invalid hearts parameter")
	}
	if req.MinHearts, err = optionalIntParam(q.Get("minHearts")); err != nil {
		return req, fmt.Errorf("invalid minHearts parameter")
	}
	req.SortBy = model.SortField(q.Get("sortBy"))
	req.Order = model.SortOrder(q.Get("order"))
	if v := q.Get("sortBy"); v != "" && !model.ValidSortField(req.SortBy) {
		return req, fmt.Errorf("invalid sortBy parameter")
	}
	if v := q.Get("order"); v != "" && !model.ValidSortOrder(req.Order) {
		return req, fmt.Errorf("invalid order parameter")
	}
	return req, nil
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("not a positive integer")
	}
	return n, nil
}

func optionalIntParam(v string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("not a non-negative integer")
	}
	return &n, nil
}
