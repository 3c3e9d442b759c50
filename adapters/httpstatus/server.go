// Package httpstatus exposes a minimal gin HTTP surface over a running
// session.Controller: a read-only status endpoint and a stop endpoint
// (spec.md §5 names "stop_workload" as one of only two operations legal
// to call from another thread while a session is running). This package
// sits entirely outside the core (spec.md §6, "CLI surface / TUI / logging:
// outside the core") and is the only HTTP surface in this repo.
package httpstatus

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pilot/domain/session"
)

// Server wraps a *session.Controller with a gin engine.
type Server struct {
	engine *gin.Engine
	ctl    *session.Controller
}

// New builds a Server for ctl. mode is gin's run mode
// (gin.DebugMode/gin.ReleaseMode/gin.TestMode); callers typically source it
// from internal/config.
func New(ctl *session.Controller, mode string) *Server {
	gin.SetMode(mode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{engine: engine, ctl: ctl}
	engine.GET("/status", s.handleStatus)
	engine.POST("/stop", s.handleStop)
	return s
}

// Run blocks, serving on addr until the process exits or ListenAndServe
// returns an error.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine exposes the underlying gin.Engine, e.g. for tests using
// httptest.NewServer or net/http/httptest's ResponseRecorder.
func (s *Server) Engine() *gin.Engine { return s.engine }

type statusResponse struct {
	State          string  `json:"state"`
	NumPI          int     `json:"num_of_pi"`
	NumRounds      int     `json:"num_of_rounds"`
	SessionSeconds float64 `json:"session_duration_seconds"`
}

func (s *Server) handleStatus(c *gin.Context) {
	container := s.ctl.Container()
	c.JSON(http.StatusOK, statusResponse{
		State:          s.ctl.State().String(),
		NumPI:          container.NumPI(),
		NumRounds:      len(container.Rounds()),
		SessionSeconds: container.SessionDuration().Seconds(),
	})
}

func (s *Server) handleStop(c *gin.Context) {
	s.ctl.StopWorkload()
	c.JSON(http.StatusAccepted, gin.H{"status": "stop_requested"})
}
