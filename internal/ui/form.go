package ui

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"intranet/internal/api"
	"intranet/internal/apiclient"
	"intranet/internal/ports"
	"intranet/internal/types"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"
	log "github.com/sirupsen/logrus"
)

//go:embed templates/form.html
var templates embed.FS

var formTmpl = template.Must(template.New("form.html").Option("missingkey=zero").ParseFS(templates, "templates/form.html"))

// Notice is the notification shown above the form after a submit.
type Notice struct {
	Text     string
	Positive bool
}

type formView struct {
	Notice *Notice
	Values map[string]string
}

// FormServer serves the "Client Information" form and forwards submissions
// to the client API.
type FormServer struct {
	API ports.ClientAPI
}

func NewFormServer(api ports.ClientAPI) *FormServer {
	return &FormServer{API: api}
}

func (f *FormServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(api.RequestID)
	r.Use(api.Recoverer)
	r.Use(api.RequestLogger)
	r.Use(func(next http.Handler) http.Handler { return gzhttp.GzipHandler(next) })

	r.Get("/", f.handleShow)
	r.Post("/", f.handleSubmit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func (f *FormServer) handleShow(w http.ResponseWriter, r *http.Request) {
	f.render(w, http.StatusOK, formView{Values: map[string]string{}})
}

func (f *FormServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	values := make(map[string]string, len(types.Fields))
	for _, name := range types.Fields {
		values[name] = r.PostForm.Get(name)
	}

	notice := Submit(r.Context(), f.API, values)
	view := formView{Notice: &notice, Values: values}
	if notice.Positive {
		view.Values = map[string]string{}
	}
	f.render(w, http.StatusOK, view)
}

func (f *FormServer) render(w http.ResponseWriter, code int, view formView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := formTmpl.Execute(w, view); err != nil {
		log.WithError(err).Error("failed to render form")
	}
}

// Submit sends the form values to the API and turns the answer into the
// notification shown to the user.
func Submit(ctx context.Context, clients ports.ClientAPI, values map[string]string) Notice {
	payload := make(map[string]any, len(values))
	for k, v := range values {
		payload[k] = v
	}

	record, err := clients.Create(ctx, payload)
	if err == nil {
		log.WithField("clientID", record.ClientID).Info("Client saved from form")
		return Notice{Text: fmt.Sprintf("Client %s %s saved.", record.FirstName, record.LastName), Positive: true}
	}

	var se *apiclient.StatusError
	if errors.As(err, &se) {
		log.WithFields(log.Fields{
			"clientID": values[types.FieldClientID],
			"status":   se.StatusCode,
		}).Info("Client rejected by api")
		if se.StatusCode == http.StatusBadRequest {
			return Notice{Text: "Client ID already exists."}
		}
		return Notice{Text: "Error: " + se.Body}
	}
	log.WithError(err).Warn("Client api unreachable")
	return Notice{Text: fmt.Sprintf("Unexpected error: %v", err)}
}
