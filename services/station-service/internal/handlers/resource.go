package handlers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/md-rashed-zaman/fuelstation/libs/docstore"
	"github.com/md-rashed-zaman/fuelstation/libs/httpx"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/reports"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/validation"
)

// payload is a decoded request body for one entity.
type payload[T any] interface {
	validate(partial bool) validation.Violations
	build(id string, now time.Time) (T, error)
	patch(now time.Time) (docstore.Patch, error)
}

type reportLayout[T any] struct {
	title    string
	filename string
	columns  []string
	rows     func(ctx context.Context, docs []T) ([][]string, error)
}

// resource serves the CRUD and report routes of one collection. The optional
// hooks add entity rules around the shared flow.
type resource[T any, P payload[T]] struct {
	entity   string
	noun     string
	plural   string
	conflict string

	store      docstore.Collection[T]
	newPayload func() P
	logger     *slog.Logger
	now        func() time.Time
	heading    string

	verify      func(ctx context.Context, p P) (validation.Violations, error)
	amend       func(ctx context.Context, id string, patch docstore.Patch) error
	present     func(ctx context.Context, doc T) (any, error)
	presentAll  func(ctx context.Context, docs []T) (any, error)
	afterCreate func(ctx context.Context, doc T)
	afterUpdate func(ctx context.Context, before, after T)
	report      reportLayout[T]
}

func (h *resource[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := h.newPayload()
	if !decodeJSON(w, r, p) {
		return
	}
	if v := p.validate(false); !v.Empty() {
		validationFailed(w, v)
		return
	}
	if !h.verified(w, r, p, "creating") {
		return
	}

	id := uuid.NewString()
	doc, err := p.build(id, h.now().UTC())
	if err != nil {
		h.fail(w, r, "creating", h.noun, err)
		return
	}
	if err := h.store.Insert(ctx, id, doc); err != nil {
		if errors.Is(err, docstore.ErrConflict) {
			httpx.Error(w, http.StatusConflict, h.conflictMessage())
			return
		}
		h.fail(w, r, "creating", h.noun, err)
		return
	}
	if h.afterCreate != nil {
		h.afterCreate(ctx, doc)
	}
	h.respond(w, r, http.StatusCreated, doc, "creating")
}

func (h *resource[T, P]) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docs, err := h.store.Find(ctx, nil)
	if err != nil {
		h.fail(w, r, "fetching", h.plural, err)
		return
	}
	if h.presentAll == nil {
		httpx.JSON(w, http.StatusOK, docs)
		return
	}
	out, err := h.presentAll(ctx, docs)
	if err != nil {
		h.fail(w, r, "fetching", h.plural, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *resource[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, h.entity+" not found")
			return
		}
		h.fail(w, r, "fetching", h.noun, err)
		return
	}
	h.respond(w, r, http.StatusOK, doc, "fetching")
}

func (h *resource[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]
	p := h.newPayload()
	if !decodeJSON(w, r, p) {
		return
	}
	if v := p.validate(true); !v.Empty() {
		validationFailed(w, v)
		return
	}
	if !h.verified(w, r, p, "updating") {
		return
	}

	patch, err := p.patch(h.now().UTC())
	if err != nil {
		h.fail(w, r, "updating", h.noun, err)
		return
	}

	var before T
	if h.afterUpdate != nil {
		if before, err = h.store.Get(ctx, id); err != nil {
			h.updateFailed(w, r, err)
			return
		}
	}
	if h.amend != nil {
		if err := h.amend(ctx, id, patch); err != nil {
			h.updateFailed(w, r, err)
			return
		}
	}

	updated, err := h.store.Update(ctx, id, patch)
	if err != nil {
		h.updateFailed(w, r, err)
		return
	}
	if h.afterUpdate != nil {
		h.afterUpdate(ctx, before, updated)
	}
	h.respond(w, r, http.StatusOK, updated, "updating")
}

func (h *resource[T, P]) updateFailed(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, h.entity+" not found")
	case errors.Is(err, docstore.ErrConflict):
		httpx.Error(w, http.StatusConflict, h.conflictMessage())
	default:
		h.fail(w, r, "updating", h.noun, err)
	}
}

func (h *resource[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, h.entity+" not found")
			return
		}
		h.fail(w, r, "deleting", h.noun, err)
		return
	}
	httpx.JSON(w, http.StatusOK, messageResponse{Message: h.entity + " deleted successfully"})
}

func (h *resource[T, P]) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	format, err := reports.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "Unsupported report format")
		return
	}
	docs, err := h.store.Find(ctx, nil)
	if err != nil {
		h.fail(w, r, "generating", h.noun+" report", err)
		return
	}
	rows, err := h.report.rows(ctx, docs)
	if err != nil {
		h.fail(w, r, "generating", h.noun+" report", err)
		return
	}

	var buf bytes.Buffer
	table := reports.Table{Title: h.report.title, Heading: h.heading, Columns: h.report.columns, Rows: rows}
	if err := table.Write(&buf, format); err != nil {
		h.fail(w, r, "generating", h.noun+" report", err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+h.report.filename+"."+string(format)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *resource[T, P]) conflictMessage() string {
	if h.conflict == "" {
		return h.entity + " already exists"
	}
	return h.conflict
}

func (h *resource[T, P]) verified(w http.ResponseWriter, r *http.Request, p P, verb string) bool {
	if h.verify == nil {
		return true
	}
	v, err := h.verify(r.Context(), p)
	if err != nil {
		h.fail(w, r, verb, h.noun, err)
		return false
	}
	if !v.Empty() {
		validationFailed(w, v)
		return false
	}
	return true
}

func (h *resource[T, P]) respond(w http.ResponseWriter, r *http.Request, status int, doc T, verb string) {
	if h.present == nil {
		httpx.JSON(w, status, doc)
		return
	}
	out, err := h.present(r.Context(), doc)
	if err != nil {
		h.fail(w, r, verb, h.noun, err)
		return
	}
	httpx.JSON(w, status, out)
}

// fail logs the cause and answers with a generic message.
func (h *resource[T, P]) fail(w http.ResponseWriter, r *http.Request, verb, what string, err error) {
	h.logger.Error("request failed",
		"entity", h.noun,
		"op", verb,
		"err", err,
		"request_id", httpx.RequestIDFromContext(r.Context()),
	)
	httpx.Error(w, http.StatusInternalServerError, "Error "+verb+" "+what)
}
