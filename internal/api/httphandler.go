package api

import (
	"errors"
	"intranet/internal/flow"
	"intranet/internal/ports"
	"intranet/internal/types"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzhttp"
	log "github.com/sirupsen/logrus"
)

const (
	MsgAlreadyExists = "Client ID already exists."
	MsgNotFound      = "Client not found."
	MsgInternal      = "Internal Server Error"
	MsgRouteNotFound = "Not Found"
	MsgNotAllowed    = "Method Not Allowed"
	MsgBodyTooLarge  = "Request body too large"

	maxBodyBytes = 1 << 20
)

type Handler struct {
	ClientStore ports.ClientStore
	Metrics     *Metrics
}

func NewHandler(cs ports.ClientStore, m *Metrics) *Handler {
	if m == nil {
		m = NewMetrics()
	}
	return &Handler{
		ClientStore: cs,
		Metrics:     m,
	}
}

// detailResponse is the body of every non-validation error.
type detailResponse struct {
	Detail string `json:"detail"`
}

// validationDetail is one entry of a 422 body.
type validationDetail struct {
	Type string   `json:"type"`
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
}

type validationResponse struct {
	Detail []validationDetail `json:"detail"`
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Recoverer)
	r.Use(RequestLogger)
	r.Use(h.Metrics.instrument)
	r.Use(compress)

	r.Post("/clients/", h.handleCreate)
	r.Post("/clients", h.handleCreate)
	r.Get("/clients/{client_id}", h.handleGet)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", h.Metrics.Handler())
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = writeJSON(w, http.StatusNotFound, detailResponse{Detail: MsgRouteNotFound})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = writeJSON(w, http.StatusMethodNotAllowed, detailResponse{Detail: MsgNotAllowed})
	})
	return r
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	defer func() {
		_ = r.Body.Close()
	}()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			_ = writeJSON(w, http.StatusRequestEntityTooLarge, detailResponse{Detail: MsgBodyTooLarge})
			return
		}
		writeBodyError(w, "json_invalid", "could not read request body")
		return
	}
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		writeBodyError(w, "json_invalid", "JSON decode error")
		return
	}
	fields, ok := decoded.(map[string]any)
	if !ok {
		writeBodyError(w, "model_attributes_type", "Input should be a valid dictionary or object to extract fields from")
		return
	}

	ctx := r.Context()
	record, outcome, err := flow.CreateClient(ctx, h.ClientStore, fields)
	h.Metrics.observeClientOp("create", outcome)
	if err != nil {
		writeError(w, err)
		return
	}
	log.WithFields(log.Fields{
		"clientID":  record.ClientID,
		"requestID": RequestIDFromContext(ctx),
	}).Info("Client created")
	if err := writeJSON(w, http.StatusOK, record); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	clientID := clientIDParam(r)
	record, outcome, err := flow.GetClient(r.Context(), h.ClientStore, clientID)
	h.Metrics.observeClientOp("get", outcome)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, record); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

// clientIDParam returns the decoded {client_id}. chi matches on the raw path
// when the request carries escaped separators, leaving the param escaped.
func clientIDParam(r *http.Request) string {
	id := chi.URLParam(r, "client_id")
	if r.URL.RawPath != "" {
		if u, err := url.PathUnescape(id); err == nil {
			return u
		}
	}
	return id
}

// writeError maps the typed client errors onto HTTP responses. Anything not
// recognised is an internal error.
func writeError(w http.ResponseWriter, err error) {
	var ves types.ValidationErrors
	switch {
	case errors.As(err, &ves):
		resp := validationResponse{Detail: make([]validationDetail, 0, len(ves))}
		for _, ve := range ves {
			resp.Detail = append(resp.Detail, validationDetail{
				Type: ve.Kind,
				Loc:  []string{"body", ve.Field},
				Msg:  ve.Reason,
			})
		}
		_ = writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.Is(err, types.ErrAlreadyExists):
		_ = writeJSON(w, http.StatusBadRequest, detailResponse{Detail: MsgAlreadyExists})
	case errors.Is(err, types.ErrNotFound):
		_ = writeJSON(w, http.StatusNotFound, detailResponse{Detail: MsgNotFound})
	default:
		_ = writeJSON(w, http.StatusInternalServerError, detailResponse{Detail: MsgInternal})
	}
}

func writeBodyError(w http.ResponseWriter, kind, msg string) {
	_ = writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Detail: []validationDetail{{
		Type: kind,
		Loc:  []string{"body"},
		Msg:  msg,
	}}})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

// compress gzips responses for clients that accept it.
func compress(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}
