package handler

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"roadmap/internal/domain"
	"roadmap/internal/ui"
)

//go:embed web
var webFS embed.FS

var (
	indexTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))
	mapTemplate   = template.Must(template.ParseFS(webFS, "web/map.html"))
)

var routeTypeOrder = []string{
	domain.RouteFastest,
	domain.RouteShortest,
	domain.RouteRecommended,
	domain.RouteWestBank,
}

type routeTypeOption struct {
	Value string
	Label string
}

type indexData struct {
	M          *ui.Messages
	RouteTypes []routeTypeOption
}

// PageHandler serves the page shell and its static assets.
type PageHandler struct {
	defaultLocale string
	static        http.Handler
	logger        *slog.Logger
}

func NewPageHandler(defaultLocale string, logger *slog.Logger) *PageHandler {
	web, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	return &PageHandler{
		defaultLocale: defaultLocale,
		static:        http.FileServerFS(web),
		logger:        logger.With("component", "page"),
	}
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	m := ui.MatchLocale(r.Header.Get("Accept-Language"), h.defaultLocale)

	options := make([]routeTypeOption, 0, len(routeTypeOrder))
	for _, rt := range routeTypeOrder {
		options = append(options, routeTypeOption{Value: rt, Label: m.RouteTypes[rt]})
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, indexData{M: m, RouteTypes: options}); err != nil {
		h.logger.Error("index render failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", m.Lang)
	w.Header().Set("Vary", "Accept-Language")
	w.Write(buf.Bytes())
}

// Static serves /static/*.
func (h *PageHandler) Static(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	h.static.ServeHTTP(w, r)
}
