package handlers

import (
	"context"
	"net/http"
	"time"

	"blynk_bridge/internal/models"
	"blynk_bridge/internal/scheduler"
	"blynk_bridge/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockStatus struct {
	snap  models.StatusSnapshot
	calls int
}

func (m *mockStatus) GetStatus(ctx context.Context) models.StatusSnapshot {
	m.calls++
	return m.snap
}

type mockCommands struct {
	result          models.CommandResult
	doorbellCalls   int
	smokeCalls      int
	resetSmokeCalls int
}

func (m *mockCommands) TriggerDoorbell(ctx context.Context) models.CommandResult {
	m.doorbellCalls++
	return m.result
}
func (m *mockCommands) TriggerSmoke(ctx context.Context) models.CommandResult {
	m.smokeCalls++
	return m.result
}
func (m *mockCommands) ResetSmoke(ctx context.Context) models.CommandResult {
	m.resetSmokeCalls++
	return m.result
}

type mockDiagnostics struct {
	probe      models.ConnectionProbe
	health     models.Health
	probeCalls int
}

func (m *mockDiagnostics) TestConnection(ctx context.Context) models.ConnectionProbe {
	m.probeCalls++
	return m.probe
}
func (m *mockDiagnostics) Health() models.Health { return m.health }

type mockEventLog struct {
	resp     []models.CommandEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.CommandEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockTasks struct {
	pending    []scheduler.TaskInfo
	cancelOK   bool
	lastCancel string
}

func (m *mockTasks) Pending() []scheduler.TaskInfo { return m.pending }
func (m *mockTasks) Cancel(id string) bool {
	m.lastCancel = id
	return m.cancelOK
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, opts, nil)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
