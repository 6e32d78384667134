package server

import (
	"bytes"
	"net/http"

	"github.com/iot-manager/console/pkg/history"
	"github.com/iot-manager/console/pkg/navigation"
	"github.com/iot-manager/console/pkg/routepath"
	"github.com/iot-manager/console/pkg/routetable"
	"github.com/iot-manager/console/pkg/views"
)

// handlePage renders the page for the requested path.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	rel, ok := routepath.StripBase(s.config.BasePath, r.URL.EscapedPath())
	if !ok {
		http.NotFound(w, r)
		return
	}

	canon, err := routepath.Canonicalize(rel)
	if err == nil && canon.Changed {
		target := routepath.JoinBase(s.config.BasePath, canon.Path)
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusPermanentRedirect)
		return
	}

	req := rel
	if r.URL.RawQuery != "" {
		req += "?" + r.URL.RawQuery
	}

	renderer := views.NewBufferRenderer()
	nav := navigation.New(s.table, history.New(s.config.BasePath), renderer,
		navigation.WithMiddleware(s.middleware...),
		navigation.WithLogger(s.logger))

	res, err := nav.Navigate(r.Context(), req, navigation.WithReplace())
	switch {
	case err == nil:
		s.writeShell(w, http.StatusOK, res.Entry, renderer.HTML())
	case routetable.IsNotFound(err):
		s.writeNotFound(w, r, rel)
	case r.Context().Err() != nil:
		// Client went away.
	default:
		s.logger.Error("page render failed", "path", rel, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) writeNotFound(w http.ResponseWriter, r *http.Request, rel string) {
	var body bytes.Buffer
	if err := s.views.NotFound.Render(views.WithRequestPath(r.Context(), rel), &body); err != nil {
		s.logger.Error("not-found render failed", "error", err)
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	s.writeShell(w, http.StatusNotFound, routetable.Entry{}, body.String())
}

func (s *Server) writeShell(w http.ResponseWriter, status int, current routetable.Entry, body string) {
	data := views.ShellData{
		Title:   s.config.Title,
		Base:    s.config.BasePath,
		Entries: s.table.Entries(),
		Current: current,
		Body:    body,
	}
	if current.Name != "" {
		data.Title = current.Name + " · " + s.config.Title
	}
	if s.config.LiveNavigation {
		data.NavURL = s.navPath()
	}

	var buf bytes.Buffer
	if err := views.Shell(&buf, data); err != nil {
		s.logger.Error("shell render failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
