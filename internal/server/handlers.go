package server

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/matzehuels/papg/pkg/arena"
	"github.com/matzehuels/papg/pkg/buildinfo"
	perrors "github.com/matzehuels/papg/pkg/errors"
	pgio "github.com/matzehuels/papg/pkg/io"
	"github.com/matzehuels/papg/pkg/pipeline"
	"github.com/matzehuels/papg/pkg/render"
	"github.com/matzehuels/papg/pkg/solver"
)

// SolveResponse is the body returned by POST /solve.
type SolveResponse struct {
	ID                string          `json:"id"`
	Strategy          solver.Strategy `json:"strategy"`
	Winners           []arena.Player  `json:"winners"`
	Lifts             int             `json:"lifts"`
	MaxRecursionDepth int             `json:"max_recursion_depth"`
	Locked            int             `json:"locked"`
	DurationUS        int64           `json:"duration_us"`
	Cached            bool            `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleStrategies(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, solver.Strategies())
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, perrors.New(perrors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	a, err := s.readGame(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := solveOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Solve(r.Context(), a, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, SolveResponse{
		ID:                requestIDFrom(r.Context()),
		Strategy:          res.Strategy,
		Winners:           res.Winners,
		Lifts:             res.Stats.Lifts,
		MaxRecursionDepth: res.Stats.MaxRecursionDepth,
		Locked:            res.Stats.Locked,
		DurationUS:        res.Duration.Microseconds(),
		Cached:            res.CacheHit,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	a, err := s.readGame(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := solveOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	ropts := pipeline.RenderOptions{
		Format:   render.Format(q.Get("format")),
		Detailed: q.Get("detailed") == "true",
		Measures: q.Get("measures") == "true",
	}
	if err := ropts.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Solve(r.Context(), a, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := s.runner.Render(r.Context(), a, res, ropts)
	if err != nil {
		s.writeError(w, r, perrors.Wrap(perrors.ErrCodeInternal, err, "render"))
		return
	}
	w.Header().Set("Content-Type", contentType(ropts.Format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// readGame decodes the request body, rejecting empty and oversized bodies.
func (s *Server) readGame(w http.ResponseWriter, r *http.Request) (*arena.Arena, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, perrors.New(perrors.ErrCodeGameTooLarge, "game exceeds %d bytes", tooLarge.Limit)
		}
		return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "read body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "empty request body")
	}
	a, err := pipeline.Decode(r.Context(), bytes.NewReader(body), bodyFormat(r))
	if err != nil {
		return nil, err
	}
	if err := perrors.ValidateGameSize(a.Size(), s.cfg.MaxVertices); err != nil {
		return nil, err
	}
	if err := perrors.ValidatePriority(a.MaxPriority(), s.cfg.MaxPriority); err != nil {
		return nil, err
	}
	if err := perrors.ValidateMeasureSize(a.Size(), a.MaxPriority(), s.cfg.MaxMeasureCells); err != nil {
		return nil, err
	}
	return a, nil
}

func bodyFormat(r *http.Request) pgio.Format {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err == nil && mt == "application/json" {
		return pgio.FormatJSON
	}
	return pgio.FormatPGSolver
}

func solveOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Strategy:   q.Get("strategy"),
		LockPolicy: q.Get("lock_policy"),
		Refresh:    q.Get("refresh") == "true",
	}
	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return opts, perrors.New(perrors.ErrCodeInvalidInput, "invalid seed %q", raw)
		}
		opts.Seed = seed
	}
	return opts, nil
}

func contentType(f render.Format) string {
	switch f {
	case render.FormatSVG:
		return "image/svg+xml"
	case render.FormatPNG:
		return "image/png"
	case render.FormatPDF:
		return "application/pdf"
	default:
		return "text/vnd.graphviz"
	}
}
