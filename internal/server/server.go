// Package server exposes a read-only compile-progress status API, adapted
// from kegliz/qplay's internal/app+internal/server/router (gin engine,
// request-ID middleware, structured request logging) trimmed to the one
// concern this compiler actually has over HTTP: letting an operator or a
// longer-running client poll how far a compile run has gotten. There is
// no qprog/qservice-style persisted-program store here — compiles are not
// interactive sessions, so that whole concern doesn't exist in this
// domain.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/kegliz/naqc/internal/logger"
	"github.com/kegliz/naqc/internal/server/router"
)

// Options configures a new Server.
type Options struct {
	Debug   bool
	Version string
}

// Server is the minimal lifecycle the status API exposes.
type Server interface {
	Listen(port int, localOnly bool) error
	Shutdown(ctx context.Context) error
}

// Stage names one pipeline stage's completion, in the order the compiler
// pipeline runs them.
type Stage string

const (
	StageLayer     Stage = "layer"
	StagePlacement Stage = "placement"
	StageRouting   Stage = "routing"
	StageSMT       Stage = "smt"
	StageOptimizer Stage = "optimizer"
	StageCodegen   Stage = "codegen"
	StageDone      Stage = "done"
)

// RunStatus is one compile run's last-known progress.
type RunStatus struct {
	RunID string `json:"runId"`
	Stage Stage  `json:"stage"`
	Error string `json:"error,omitempty"`
}

// Registry tracks in-flight and completed compile runs' status, read by
// the status API's handlers and written by the pipeline driving a run.
type Registry struct {
	mu   sync.RWMutex
	runs map[string]RunStatus
}

// NewRegistry returns an empty run Registry.
func NewRegistry() *Registry {
	return &Registry{runs: make(map[string]RunStatus)}
}

// Update records a run's current stage, creating the entry if new.
func (r *Registry) Update(runID string, stage Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[runID] = RunStatus{RunID: runID, Stage: stage}
}

// Fail records a run's terminal error.
func (r *Registry) Fail(runID string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[runID] = RunStatus{RunID: runID, Stage: r.runs[runID].Stage, Error: err.Error()}
}

// Get returns a run's last-known status.
func (r *Registry) Get(runID string) (RunStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.runs[runID]
	return s, ok
}

type appServer struct {
	logger   *logger.Logger
	router   *router.Router
	registry *Registry
	version  string
}

// New returns a Server exposing GET /healthz and GET /runs/:id over reg.
func New(options Options, reg *Registry) Server {
	l := logger.New(logger.Options{Debug: options.Debug})
	r := router.NewRouter(router.RouterOptions{Logger: l})

	a := &appServer{logger: l, router: r, registry: reg, version: options.Version}
	r.SetRoutes(a.routes())
	return a
}

func (a *appServer) routes() []*router.Route {
	return []*router.Route{
		{Name: "healthz", Method: http.MethodGet, Pattern: "/healthz", HandlerFunc: a.handleHealthz},
		{Name: "run-status", Method: http.MethodGet, Pattern: "/runs/:id", HandlerFunc: a.handleRunStatus},
	}
}

func (a *appServer) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": a.version})
}

func (a *appServer) handleRunStatus(c *gin.Context) {
	if l, err := loggerFromContext(c); err == nil {
		l.Debug().Str("runID", c.Param("id")).Msg("status lookup")
	}
	status, ok := a.registry.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown run id"})
		return
	}
	c.JSON(http.StatusOK, status)
}

// Listen implements Server.
func (a *appServer) Listen(port int, localOnly bool) error {
	a.logger.Info().Int("port", port).Bool("localOnly", localOnly).Msg("starting naqc status server")
	return a.router.Start(port, localOnly)
}

// Shutdown implements Server.
func (a *appServer) Shutdown(ctx context.Context) error {
	return a.router.Shutdown(ctx)
}

var errLoggerNotInContext = errors.New("server: logger not found in gin context")

// loggerFromContext retrieves the per-request logger the requestWrapper
// middleware injected.
func loggerFromContext(c *gin.Context) (*logger.Logger, error) {
	if v, ok := c.Get("logger"); ok {
		if l, ok := v.(*logger.Logger); ok {
			return l, nil
		}
	}
	return nil, errLoggerNotInContext
}
