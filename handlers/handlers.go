package handlers

import (
	"bytes"
	"context"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/arunsworld/farefinder"
	"github.com/gorilla/mux"
	"github.com/unrolled/logger"
)

// FareFinder is the part of farefinder.Finder the handlers depend on.
type FareFinder interface {
	Airports() ([]farefinder.Airport, error)
	Search(ctx context.Context, req farefinder.SearchRequest) farefinder.SearchResult
}

type Settings struct {
	Today           func() time.Time
	HorizonDays     int
	DefaultSpanDays int
	DefaultDays     []time.Weekday
	CurrencySymbol  string
}

func RegisterHandlers(handler *mux.Router, finder FareFinder, settings Settings, static fs.FS, templates fs.FS) {
	h := handlers{
		handler:  handler,
		finder:   finder,
		settings: settings,
	}
	tmpls, err := template.New("").Delims("[[", "]]").ParseFS(templates, "*.html")
	if err != nil {
		panic(err)
	}
	h.tmpls = tmpls

	l := logger.New(logger.Options{
		Prefix:             "farefinder",
		IgnoredRequestURIs: []string{"/favicon.ico"},
	})
	handler.Use(l.Handler)

	h.registerStatic(static)
	h.registerSearchHandlers()
	h.registerAPIHandlers()
}

type handlers struct {
	handler  *mux.Router
	tmpls    *template.Template
	finder   FareFinder
	settings Settings
}

func (h handlers) render(w http.ResponseWriter, status int, name string, data any) {
	buf := &bytes.Buffer{}
	if err := h.tmpls.ExecuteTemplate(buf, name, data); err != nil {
		log.Printf("ERROR rendering %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
