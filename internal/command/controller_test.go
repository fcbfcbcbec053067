package command

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/slotboard/internal/backend"
	"github.com/five82/slotboard/internal/endpoint"
	"github.com/five82/slotboard/internal/grid"
	"github.com/five82/slotboard/internal/state"
)

// healthDoer answers health checks: 200 for up, connection refused otherwise.
type healthDoer struct {
	up string
}

func (d healthDoer) Do(req *http.Request) (*http.Response, error) {
	if req.URL.Host == d.up {
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(`{"status":"ok"}`))}, nil
	}
	return nil, errors.New("connection refused")
}

type fakeAPI struct {
	mu       sync.Mutex
	calls    []string
	entries  []grid.Entry
	genReq   backend.GenerateRequest
	uploaded string
	failOn   map[string]error
	block    chan struct{}
}

func (f *fakeAPI) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.failOn[name]
}

func (f *fakeAPI) Health(context.Context) error { return f.record("health") }

func (f *fakeAPI) Seed(context.Context) error {
	if f.block != nil {
		<-f.block
	}
	return f.record("seed")
}

func (f *fakeAPI) Generate(_ context.Context, req backend.GenerateRequest) error {
	f.mu.Lock()
	f.genReq = req
	f.mu.Unlock()
	return f.record("generate")
}

func (f *fakeAPI) Timetable(context.Context) ([]grid.Entry, error) {
	if err := f.record("timetable"); err != nil {
		return nil, err
	}
	return f.entries, nil
}

func (f *fakeAPI) Upload(_ context.Context, filename string, content io.Reader) (backend.UploadResult, error) {
	data, _ := io.ReadAll(content)
	f.mu.Lock()
	f.uploaded = filename + ":" + string(data)
	f.mu.Unlock()
	if err := f.record("upload"); err != nil {
		return backend.UploadResult{}, err
	}
	return backend.UploadResult{Raw: []byte(`{"imported":1}`)}, nil
}

func newController(t *testing.T, up, typed string, api backend.API) (*Controller, *state.Store, *endpoint.Resolver) {
	t.Helper()
	prober := &endpoint.Prober{HTTP: healthDoer{up: up}, Timeout: time.Second, Logger: zerolog.Nop()}
	resolver := endpoint.NewResolver(prober, typed, "http://localhost:8000")
	store := &state.Store{}
	resolver.OnResolved = store.SetBase
	return NewController(resolver, api, store, zerolog.Nop()), store, resolver
}

func TestExecute_TestConnectionWritesBackBase(t *testing.T) {
	c, store, _ := newController(t, "127.0.0.1:8000", "", &fakeAPI{})

	out := c.Execute(context.Background(), Request{Action: ActionTest})
	require.NoError(t, out.Err)
	assert.Equal(t, "http://127.0.0.1:8000", out.Base)
	assert.Equal(t, "Connected to: http://127.0.0.1:8000", out.Message)
	assert.Equal(t, "http://127.0.0.1:8000", c.Address())

	snap := store.Snapshot()
	assert.Equal(t, "http://127.0.0.1:8000", snap.Base)
	assert.False(t, snap.Busy)
	assert.False(t, snap.Notice.IsError)
}

func TestExecute_TestFailureReportsLastError(t *testing.T) {
	c, store, _ := newController(t, "nowhere:1", "", &fakeAPI{})

	out := c.Execute(context.Background(), Request{Action: ActionTest})
	require.Error(t, out.Err)
	var unreachable *endpoint.UnreachableError
	require.ErrorAs(t, out.Err, &unreachable)
	assert.True(t, strings.HasPrefix(out.Message, "Test failed: "))

	snap := store.Snapshot()
	assert.Empty(t, snap.Base)
	assert.True(t, snap.Notice.IsError)
}

func TestExecute_GenerateProjectsOverRequestedDays(t *testing.T) {
	api := &fakeAPI{entries: []grid.Entry{
		{Day: "Sat", Slot: "09:00-10:00", Course: "Art"},
		{Day: "Mon", Slot: "09:00-10:00", Course: "Math"},
	}}
	c, store, _ := newController(t, "localhost:8000", "", api)
	days := grid.ParseDays(grid.Presets[1])

	out := c.Execute(context.Background(), Request{Action: ActionGenerate, Days: days})
	require.NoError(t, out.Err)
	require.NotNil(t, out.Grid)
	assert.Equal(t, "Timetable generated", out.Message)
	assert.Equal(t, []string{"generate", "timetable"}, api.calls)
	assert.Equal(t, days, api.genReq.Days)
	assert.Equal(t, grid.DefaultSlots, api.genReq.Slots)

	cell, ok := out.Grid.Grid.Cell("Sat", "09:00-10:00")
	require.True(t, ok)
	assert.Equal(t, "Art", cell.Entries[0].Course)
	assert.Zero(t, out.Grid.Grid.Unplaced)

	snap := store.Snapshot()
	assert.True(t, snap.HasGrid)
	assert.Equal(t, 2, snap.EntryCount)
}

func TestExecute_GenerateDefaultsToWeekdays(t *testing.T) {
	api := &fakeAPI{}
	c, _, _ := newController(t, "localhost:8000", "", api)

	out := c.Execute(context.Background(), Request{Action: ActionGenerate})
	require.NoError(t, out.Err)
	assert.Equal(t, grid.DefaultDays, api.genReq.Days)
	assert.Equal(t, grid.DefaultDays, out.Grid.Grid.Days)
}

func TestExecute_ShowDoesNotRegenerate(t *testing.T) {
	api := &fakeAPI{entries: []grid.Entry{{Day: "Mon", Slot: "09:00-10:00"}}}
	c, _, _ := newController(t, "localhost:8000", "", api)

	out := c.Execute(context.Background(), Request{Action: ActionShow})
	require.NoError(t, out.Err)
	assert.Equal(t, []string{"timetable"}, api.calls)
	assert.Equal(t, "Timetable loaded (1 entries)", out.Message)
}

func TestExecute_QuickRunOrderAndStopOnFailure(t *testing.T) {
	api := &fakeAPI{}
	c, _, _ := newController(t, "localhost:8000", "", api)

	out := c.Execute(context.Background(), Request{Action: ActionQuickRun})
	require.NoError(t, out.Err)
	assert.Equal(t, []string{"seed", "generate", "timetable"}, api.calls)
	assert.Equal(t, "http://localhost:8000", out.Base)

	failing := &fakeAPI{failOn: map[string]error{"seed": &backend.HTTPError{Status: 500, Detail: "db locked"}}}
	c, store, _ := newController(t, "localhost:8000", "", failing)
	out = c.Execute(context.Background(), Request{Action: ActionQuickRun})
	require.Error(t, out.Err)
	assert.Equal(t, []string{"seed"}, failing.calls)
	assert.Equal(t, "Quick Run failed: HTTP 500 - db locked", out.Message)
	assert.False(t, store.Snapshot().HasGrid)
}

func TestExecute_QuickRunUnreachableSkipsBackend(t *testing.T) {
	api := &fakeAPI{}
	c, _, _ := newController(t, "nowhere:1", "", api)

	out := c.Execute(context.Background(), Request{Action: ActionQuickRun})
	require.Error(t, out.Err)
	assert.Empty(t, api.calls)
	assert.True(t, strings.HasPrefix(out.Message, "Quick Run failed: "))
}

func TestExecute_BusyGateRejectsConcurrentAction(t *testing.T) {
	api := &fakeAPI{block: make(chan struct{})}
	c, store, _ := newController(t, "localhost:8000", "", api)

	done := make(chan Outcome)
	go func() { done <- c.Execute(context.Background(), Request{Action: ActionSeed}) }()

	require.Eventually(t, func() bool { return store.Snapshot().Busy }, time.Second, 5*time.Millisecond)

	second := c.Execute(context.Background(), Request{Action: ActionTest})
	assert.ErrorIs(t, second.Err, ErrBusy)

	close(api.block)
	first := <-done
	require.NoError(t, first.Err)
	assert.Equal(t, "Sample data loaded", first.Message)
	assert.False(t, store.Snapshot().Busy)
}

func TestExecute_Upload(t *testing.T) {
	api := &fakeAPI{}
	c, _, _ := newController(t, "localhost:8000", "", api)
	path := filepath.Join(t.TempDir(), "classes.csv")
	require.NoError(t, os.WriteFile(path, []byte("course,teacher\n"), 0o600))

	out := c.Execute(context.Background(), Request{Action: ActionUpload, Path: path})
	require.NoError(t, out.Err)
	assert.Equal(t, "Upload successful", out.Message)
	assert.Equal(t, "classes.csv:course,teacher\n", api.uploaded)
	require.NotNil(t, out.Upload)

	out = c.Execute(context.Background(), Request{Action: ActionUpload, Path: filepath.Join(t.TempDir(), "missing.csv")})
	require.Error(t, out.Err)
	assert.True(t, strings.HasPrefix(out.Message, "Upload failed: open upload"))
}

func TestSetAddress_InvalidatesResolvedBase(t *testing.T) {
	c, store, resolver := newController(t, "localhost:8000", "", &fakeAPI{})
	require.NoError(t, c.Execute(context.Background(), Request{Action: ActionTest}).Err)

	c.SetAddress("http://10.1.1.1:8000")
	_, ok := resolver.Resolved()
	assert.False(t, ok)
	assert.Empty(t, store.Snapshot().Base)
	assert.Equal(t, "http://10.1.1.1:8000", c.Address())

	// Same value keeps the cache.
	require.NoError(t, c.Execute(context.Background(), Request{Action: ActionTest}).Err)
	c.SetAddress(c.Address())
	_, ok = resolver.Resolved()
	assert.True(t, ok)
}

func TestExecute_UnknownAction(t *testing.T) {
	c, _, _ := newController(t, "localhost:8000", "", &fakeAPI{})
	out := c.Execute(context.Background(), Request{Action: "bogus"})
	require.Error(t, out.Err)
}
