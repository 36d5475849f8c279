package jobs_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/modlingo/modlingo/internal/config"
	"github.com/modlingo/modlingo/internal/jobs"
	"github.com/modlingo/modlingo/internal/store"
	"github.com/modlingo/modlingo/internal/websocket"
)

type fakeJobContext struct {
	db     *sql.DB
	cfg    *config.Config
	st     *store.Store
	ws     *websocket.Hub
	jobMgr *jobs.JobManager
}

func (f *fakeJobContext) DB() *sql.DB                  { return f.db }
func (f *fakeJobContext) Config() *config.Config       { return f.cfg }
func (f *fakeJobContext) Store() *store.Store          { return f.st }
func (f *fakeJobContext) WsHub() *websocket.Hub        { return f.ws }
func (f *fakeJobContext) JobManager() *jobs.JobManager { return f.jobMgr }

func TestManager_NewManager(t *testing.T) {
	mgr := jobs.NewManager()
	assert.NotNil(t, mgr)
	assert.Empty(t, mgr.GetStatus())
}

func TestManager_RegisterAndGetStatus(t *testing.T) {
	mgr := jobs.NewManager()
	mgr.Register("jobA", func(ctx jobs.JobContext) {})
	mgr.Register("jobB", func(ctx jobs.JobContext) {})
	statuses := mgr.GetStatus()
	assert.Len(t, statuses, 2)
	var foundA, foundB bool
	for _, s := range statuses {
		if s.Name == "jobA" {
			foundA = true
		}
		if s.Name == "jobB" {
			foundB = true
		}
	}
	assert.True(t, foundA && foundB)
}

func TestManager_RunJob_SuccessAndStatus(t *testing.T) {
	ctx := &fakeJobContext{cfg: &config.Config{}, ws: websocket.NewHub()}
	mgr := jobs.NewManager()
	ctx.jobMgr = mgr
	done := make(chan struct{})
	mgr.Register("jobX", func(ctx jobs.JobContext) { close(done) })
	err := mgr.RunJob("jobX", ctx)
	assert.NoError(t, err)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not run")
	}
	time.Sleep(50 * time.Millisecond)
	statuses := mgr.GetStatus()
	assert.Equal(t, "success", statuses[0].Status)
}

func TestManager_RunJob_AlreadyRunning(t *testing.T) {
	ctx := &fakeJobContext{cfg: &config.Config{}}
	mgr := jobs.NewManager()
	ctx.jobMgr = mgr
	block := make(chan struct{})
	mgr.Register("jobY", func(ctx jobs.JobContext) { <-block })
	_ = mgr.RunJob("jobY", ctx)
	err := mgr.RunJob("jobY", ctx)
	assert.ErrorIs(t, err, jobs.ErrJobAlreadyRunning)
	close(block)
}

func TestManager_RunJob_NotFound(t *testing.T) {
	ctx := &fakeJobContext{cfg: &config.Config{}}
	mgr := jobs.NewManager()
	ctx.jobMgr = mgr
	err := mgr.RunJob("nope", ctx)
	assert.Error(t, err)
}

func TestManager_RunJob_PanicMarksFailed(t *testing.T) {
	ctx := &fakeJobContext{cfg: &config.Config{}}
	mgr := jobs.NewManager()
	ctx.jobMgr = mgr
	mgr.Register("jobZ", func(ctx jobs.JobContext) { panic("boom") })
	assert.NoError(t, mgr.RunJob("jobZ", ctx))
	time.Sleep(100 * time.Millisecond)
	statuses := mgr.GetStatus()
	assert.Equal(t, "failed", statuses[0].Status)
	assert.Contains(t, statuses[0].Message, "boom")
}
