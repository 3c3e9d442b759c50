package httpstatus

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pilot/domain/session"
	"pilot/domain/workload"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	c := workload.NewContainer("httpstatus-test")
	c.SetNumOfPI(1)
	c.SetPIInfo(0, workload.PIDescriptor{Name: "throughput"})
	ctl := session.NewController(c)
	return New(ctl, gin.TestMode)
}

func TestHandleStatusReportsContainerState(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	s.Engine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"num_of_pi":1`)
}

func TestHandleStopRequestsStop(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stop", nil)
	s.Engine().ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.True(t, s.ctl.Container().StopRequested())
}
