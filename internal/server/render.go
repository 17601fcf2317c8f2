package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/dreamhouse/pkg/artifact"
	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/pipeline"
	"github.com/matzehuels/dreamhouse/pkg/placement/camera"
	"github.com/matzehuels/dreamhouse/pkg/placement/grid"
	"github.com/matzehuels/dreamhouse/pkg/placement/volume"
	"github.com/matzehuels/dreamhouse/pkg/plan"
)

type placeResponse struct {
	OK         bool          `json:"ok"`
	LayoutHash string        `json:"layout_hash"`
	Plan2D     grid.Result   `json:"plan2d"`
	Plan3D     volume.Result `json:"plan3d"`
	Camera     camera.Pose   `json:"camera"`
}

type publishResponse struct {
	OK     bool   `json:"ok"`
	URL    string `json:"url"`
	Key    string `json:"key"`
	Format string `json:"format"`
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var l plan.Layout
	if err := decodeJSON(w, r, &l); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.options(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Place(r.Context(), l, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, placeResponse{
		OK:         true,
		LayoutHash: res.LayoutHash,
		Plan2D:     res.Plan2D,
		Plan3D:     res.Plan3D,
		Camera:     res.Camera,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	var l plan.Layout
	if err := decodeJSON(w, r, &l); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.options(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), l, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeArtifact(w, format, res)
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}
	if s.artifacts == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "publishing is not configured"))
		return
	}
	id, format := chi.URLParam(r, "id"), chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.designs.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts, err := s.options(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}
	if opts.Title == "" {
		opts.Title = d.Name
	}
	opts.Link = shareLink(r, id)

	res, err := s.runner.Execute(r.Context(), d.Layout, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	key := artifact.Key(id, pipeline.Extension(format))
	u, err := s.artifacts.Put(r.Context(), key, pipeline.ContentType(format), res.Artifacts[format])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("published design", "id", id, "format", format, "key", key)
	s.writeJSON(w, http.StatusOK, publishResponse{OK: true, URL: u, Key: key, Format: format})
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	if s.artifacts == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no artifact store"))
		return
	}
	obj, err := s.artifacts.Get(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(obj.Data)
}

func (s *Server) writeArtifact(w http.ResponseWriter, format string, res *pipeline.Result) {
	name := strings.ReplaceAll(strings.ToLower(res.Layout.Name), " ", "-")
	if name == "" {
		name = "layout"
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("Content-Disposition", `inline; filename="`+url.PathEscape(name)+pipeline.Extension(format)+`"`)
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	_, _ = w.Write(res.Artifacts[format])
}

// options merges query overrides into the server defaults.
func (s *Server) options(q url.Values) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = append([]string(nil), s.defaults.Formats...)

	floats := []struct {
		key string
		dst *float64
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"fov", &opts.FOV},
	}
	for _, f := range floats {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", f.key, v)
		}
		*f.dst = n
	}
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v := q.Get("color"); v != "" {
		opts.Color = v
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	if err := opts.ValidateForPlace(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// shareLink is the public URL of a saved design, stamped on PDFs.
func shareLink(r *http.Request, id string) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/api/get/" + url.PathEscape(id)
}
