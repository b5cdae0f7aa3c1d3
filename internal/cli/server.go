package cli

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/otelviz/pkg/buildinfo"
	"github.com/matzehuels/otelviz/pkg/diagram"
	"github.com/matzehuels/otelviz/pkg/errors"
	"github.com/matzehuels/otelviz/pkg/io"
	"github.com/matzehuels/otelviz/pkg/observability"
	"github.com/matzehuels/otelviz/pkg/pipeline"
	"github.com/matzehuels/otelviz/pkg/runtime"
)

// maxBodyBytes bounds POST bodies.
const maxBodyBytes = 1 << 20

// requestIDHeader carries the per-request id in both directions.
const requestIDHeader = "X-Request-ID"

// server is the preview server: it renders the descriptions in dir on
// request and runs snippets through the shared runtime.
type server struct {
	dir      string
	runner   *pipeline.Runner
	loader   *runtime.Loader
	registry *prometheus.Registry
	logger   *log.Logger
}

// routes builds the HTTP handler.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Get("/diagrams", s.handleList)
	r.Get("/diagrams/{file}", s.handleDiagram)
	r.Post("/render", s.handleRender)
	r.Post("/run", s.handleRun)

	return r
}

// =============================================================================
// Middleware
// =============================================================================

// requestID propagates a client-supplied X-Request-ID or assigns a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		r.Header.Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// instrument reports each request to the HTTP hooks and the debug log.
// Metrics are labelled by route pattern rather than raw path.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, routePattern(r), status, time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", r.Header.Get(requestIDHeader))
	})
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// =============================================================================
// Handlers
// =============================================================================

type healthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	RuntimeReady bool   `json:"runtime_ready"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "ok",
		Version:      buildinfo.Current(),
		RuntimeReady: s.loader.Ready(),
	})
}

type diagramInfo struct {
	Name    string            `json:"name"`
	Kind    diagram.Kind      `json:"kind"`
	Title   string            `json:"title,omitempty"`
	Formats map[string]string `json:"formats"` // format -> URL
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	docs, err := io.ImportDir(s.dir)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]diagramInfo, 0, len(docs))
	for _, d := range docs {
		info := diagramInfo{Name: d.Name, Kind: d.Kind, Title: d.Title, Formats: map[string]string{}}
		for _, f := range pipeline.FormatNames() {
			if pipeline.Applies(d, f) {
				info.Formats[f] = "/diagrams/" + d.Name + "." + f
			}
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleDiagram serves /diagrams/{name}.{format}. Query parameters engine,
// id_prefix, responsive and refresh map onto pipeline options.
func (s *server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	if err := errors.ValidatePath(file); err != nil {
		s.writeError(w, r, err)
		return
	}
	dot := strings.LastIndexByte(file, '.')
	if dot <= 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "expected /diagrams/<name>.<format>, got %q", file))
		return
	}
	name, format := file[:dot], file[dot+1:]
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	docs, err := io.ImportDir(s.dir)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	idx := -1
	for i, d := range docs {
		if d.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "diagram %q not found", name))
		return
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Formats:    []string{format},
		Engine:     q.Get("engine"),
		IDPrefix:   q.Get("id_prefix"),
		Responsive: truthy(q.Get("responsive")),
		Refresh:    truthy(q.Get("refresh")),
		Logger:     s.logger,
	}
	s.render(w, r, docs[idx], format, opts)
}

type renderRequest struct {
	Document diagram.Document `json:"document"`
	Format   string           `json:"format,omitempty"`
	Options  pipeline.Options `json:"options,omitempty"`
}

// handleRender renders a posted document without touching dir.
func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Format == "" {
		req.Format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(req.Format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := req.Options
	opts.Formats = []string{req.Format}
	opts.Logger = s.logger
	s.render(w, r, req.Document, req.Format, opts)
}

func (s *server) render(w http.ResponseWriter, r *http.Request, doc diagram.Document, format string, opts pipeline.Options) {
	res, err := s.runner.Render(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if res.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("ETag", `"`+res.DocHash[:16]+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

type runRequest struct {
	Code string `json:"code"`
}

type runResponse struct {
	Output     string `json:"output"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	Failed     bool   `json:"failed"`
	DurationMS int64  `json:"duration_ms"`
}

// handleRun executes a snippet. A snippet that raises is still a 200 with
// failed set; only runtime failures are errors.
func (s *server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.loader.Exec(r.Context(), req.Code)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, runResponse{
		Output:     res.Output(),
		Stdout:     res.Stdout,
		Stderr:     res.Stderr,
		Failed:     res.Failed,
		DurationMS: res.Duration.Milliseconds(),
	})
}

// =============================================================================
// Helpers
// =============================================================================

type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}

	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: r.Header.Get(requestIDHeader),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes":
		return true
	}
	return false
}
