// Package crudhandler exposes a datastore.Resource as list/get/create/
// replace/patch/delete routes.
package crudhandler

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrerp/internal/platform/datastore"
	"hrerp/internal/transport/http/api"
	"hrerp/internal/transport/http/middleware"
	"hrerp/internal/transport/http/shared"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Registrar is anything that mounts routes on a router.
type Registrar interface {
	RegisterRoutes(r chi.Router)
}

// Handler serves one entity. Filters maps accepted query parameters to the
// columns they filter by equality.
type Handler[T any] struct {
	Path     string
	Resource *datastore.Resource[T]
	Read     string
	Write    string
	Filters  map[string]string
	OrderBy  []datastore.Order
	Perms    middleware.Authorizer
}

func (h *Handler[T]) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(h.Read, h.Perms)
	write := middleware.RequirePermission(h.Write, h.Perms)
	r.Route(h.Path, func(r chi.Router) {
		r.With(read).Get("/", h.handleList)
		r.With(write).Post("/", h.handleCreate)
		r.With(read).Get("/{id}", h.handleGet)
		r.With(write).Put("/{id}", h.handleReplace)
		r.With(write).Patch("/{id}", h.handlePatch)
		r.With(write).Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler[T]) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	page := shared.ParsePagination(r, defaultLimit, maxLimit)
	q := datastore.Query{OrderBy: h.OrderBy, Limit: page.Limit, Offset: page.Offset}
	values := r.URL.Query()
	params := make([]string, 0, len(h.Filters))
	for param := range h.Filters {
		params = append(params, param)
	}
	sort.Strings(params)
	var issues datastore.Issues
	for _, param := range params {
		raw := values.Get(param)
		if raw == "" {
			continue
		}
		column := h.Filters[param]
		if strings.HasSuffix(column, "_id") {
			issues.UUID(param, &raw)
		}
		q = q.Where(datastore.Eq(column, raw))
	}
	if err := issues.Err(); err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	items, err := h.Resource.List(r.Context(), user.TenantID, q)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.SuccessPage(w, items, api.Page{Limit: page.Limit, Offset: page.Offset, Count: len(items)}, middleware.GetRequestID(r.Context()))
}

// rowID returns the {id} path parameter. Ids are UUIDs, so anything else
// cannot name a row and is answered with 404 here.
func rowID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "resource not found", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return id, true
}

func (h *Handler[T]) handleGet(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	id, ok := rowID(w, r)
	if !ok {
		return
	}
	item, err := h.Resource.Get(r.Context(), user.TenantID, id)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, item, middleware.GetRequestID(r.Context()))
}

func (h *Handler[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var item T
	if !Decode(w, r, &item) {
		return
	}
	created, err := h.Resource.Create(r.Context(), user.TenantID, item)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler[T]) handleReplace(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	id, ok := rowID(w, r)
	if !ok {
		return
	}
	var item T
	if !Decode(w, r, &item) {
		return
	}
	updated, err := h.Resource.Replace(r.Context(), user.TenantID, id, item)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

// handlePatch merges the body onto the stored row and writes it back
// through the same validation as a replace.
func (h *Handler[T]) handlePatch(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	id, ok := rowID(w, r)
	if !ok {
		return
	}
	item, err := h.Resource.Get(r.Context(), user.TenantID, id)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if !Decode(w, r, &item) {
		return
	}
	updated, err := h.Resource.Replace(r.Context(), user.TenantID, id, item)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	id, ok := rowID(w, r)
	if !ok {
		return
	}
	if err := h.Resource.Delete(r.Context(), user.TenantID, id); err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Decode reads a JSON body into dst and writes the error response itself
// when it cannot.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := shared.DecodeJSON(r, dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", middleware.GetRequestID(r.Context()))
		return false
	}
	api.Fail(w, http.StatusBadRequest, "invalid_json", err.Error(), middleware.GetRequestID(r.Context()))
	return false
}
