package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/slotboard/internal/backend"
	"github.com/five82/slotboard/internal/endpoint"
	"github.com/five82/slotboard/internal/grid"
	"github.com/five82/slotboard/internal/logging"
	"github.com/five82/slotboard/internal/state"
)

// ErrBusy is returned when an action is requested while another one runs.
var ErrBusy = errors.New("another action is running")

// Action names a user-triggered command.
type Action string

const (
	ActionTest     Action = "test"
	ActionSeed     Action = "seed"
	ActionGenerate Action = "generate"
	ActionShow     Action = "show"
	ActionQuickRun Action = "quickrun"
	ActionUpload   Action = "upload"
)

// Request is a typed command for Execute.
type Request struct {
	Action Action
	Days   []string // generate, show, quickrun
	Path   string   // upload
}

// Outcome is what Execute reports back for display.
type Outcome struct {
	Action  Action
	Message string
	Err     error
	Base    string
	Grid    *GridResult
	Upload  *backend.UploadResult
}

// GridResult is a projected timetable.
type GridResult struct {
	Grid    grid.Grid
	Entries int
}

// Controller runs the backend workflow: resolve, seed, generate, fetch and
// project. It owns the resolver, so callers never touch the cached base
// directly.
type Controller struct {
	resolver *endpoint.Resolver
	api      backend.API
	store    *state.Store
	slots    []string
	logger   zerolog.Logger
}

// NewController wires a controller. store may be nil for one-shot CLI use.
func NewController(resolver *endpoint.Resolver, api backend.API, store *state.Store, logger zerolog.Logger) *Controller {
	return &Controller{
		resolver: resolver,
		api:      api,
		store:    store,
		slots:    grid.DefaultSlots,
		logger:   logger,
	}
}

// Address returns the address to show in the base field.
func (c *Controller) Address() string {
	return c.resolver.Display()
}

// SetAddress replaces the typed base. A changed value invalidates the
// resolved base.
func (c *Controller) SetAddress(typed string) {
	c.resolver.SetTyped(typed)
	if _, ok := c.resolver.Resolved(); !ok {
		c.setBase("")
	}
}

// TestConnection drops the cached base and resolves a fresh one.
func (c *Controller) TestConnection(ctx context.Context) (string, error) {
	c.setBase("")
	base, err := c.resolver.Resolve(ctx)
	if err != nil {
		return "", err
	}
	c.setBase(base)
	return base, nil
}

// Seed loads the backend's sample data.
func (c *Controller) Seed(ctx context.Context) error {
	return c.api.Seed(ctx)
}

// Generate asks the backend for a timetable over days and the default slots,
// then fetches and projects it.
func (c *Controller) Generate(ctx context.Context, days []string) (GridResult, error) {
	req := backend.GenerateRequest{Days: axisOrDefault(days, grid.DefaultDays), Slots: c.slots}
	if err := c.api.Generate(ctx, req); err != nil {
		return GridResult{}, err
	}
	return c.Show(ctx, req.Days)
}

// Show fetches the current timetable and projects it without regenerating.
func (c *Controller) Show(ctx context.Context, days []string) (GridResult, error) {
	entries, err := c.api.Timetable(ctx)
	if err != nil {
		return GridResult{}, err
	}
	g := grid.Project(entries, days, c.slots)
	if g.Unplaced > 0 {
		c.logger.Warn().Int("unplaced", g.Unplaced).Msg("entries outside the day/slot axes")
	}
	return GridResult{Grid: g, Entries: len(entries)}, nil
}

// Upload posts the file at path to the backend.
func (c *Controller) Upload(ctx context.Context, path string) (backend.UploadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return backend.UploadResult{}, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()
	return c.api.Upload(ctx, filepath.Base(path), file)
}

// Execute runs req with the store's busy gate held and records the outcome
// as a notice. Only one action runs at a time.
func (c *Controller) Execute(ctx context.Context, req Request) Outcome {
	if c.store != nil {
		if !c.store.TryBegin(string(req.Action)) {
			return Outcome{Action: req.Action, Err: ErrBusy, Message: ErrBusy.Error()}
		}
		defer c.store.End()
	}

	started := time.Now()
	out := c.run(ctx, req)
	out.Action = req.Action

	event := c.logger.Info()
	if out.Err != nil {
		event = c.logger.Warn().Err(out.Err)
	}
	event.Str("action", string(req.Action)).Dur("elapsed", logging.Since(started)).Msg(out.Message)

	c.notify(out.Message, out.Err)
	if out.Grid != nil && c.store != nil {
		c.store.SetGrid(out.Grid.Grid, out.Grid.Entries)
	}
	return out
}

func (c *Controller) run(ctx context.Context, req Request) Outcome {
	switch req.Action {
	case ActionTest:
		base, err := c.TestConnection(ctx)
		if err != nil {
			return failed("Test failed", err)
		}
		return Outcome{Base: base, Message: "Connected to: " + base}

	case ActionSeed:
		if err := c.Seed(ctx); err != nil {
			return failed("Seed failed", err)
		}
		return Outcome{Message: "Sample data loaded"}

	case ActionGenerate:
		res, err := c.Generate(ctx, req.Days)
		if err != nil {
			return failed("Generate failed", err)
		}
		return Outcome{Grid: &res, Message: "Timetable generated"}

	case ActionShow:
		res, err := c.Show(ctx, req.Days)
		if err != nil {
			return failed("Fetch failed", err)
		}
		return Outcome{Grid: &res, Message: fmt.Sprintf("Timetable loaded (%d entries)", res.Entries)}

	case ActionQuickRun:
		return c.quickRun(ctx, req.Days)

	case ActionUpload:
		res, err := c.Upload(ctx, req.Path)
		if err != nil {
			return failed("Upload failed", err)
		}
		return Outcome{Upload: &res, Message: "Upload successful"}
	}
	return failed("Unknown action", fmt.Errorf("action %q", req.Action))
}

func (c *Controller) quickRun(ctx context.Context, days []string) Outcome {
	c.notify("Testing connection...", nil)
	base, err := c.TestConnection(ctx)
	if err != nil {
		return failed("Quick Run failed", err)
	}
	c.notify("Connected: "+base, nil)

	if err := c.Seed(ctx); err != nil {
		return failed("Quick Run failed", err)
	}
	c.notify("Sample data loaded. Generating...", nil)

	res, err := c.Generate(ctx, days)
	if err != nil {
		return failed("Quick Run failed", err)
	}
	return Outcome{Base: base, Grid: &res, Message: "Timetable generated"}
}

func (c *Controller) notify(text string, err error) {
	if c.store != nil {
		c.store.Notify(text, err)
	}
}

func (c *Controller) setBase(base string) {
	if c.store != nil {
		c.store.SetBase(base)
	}
}

func failed(prefix string, err error) Outcome {
	return Outcome{Err: err, Message: prefix + ": " + err.Error()}
}

func axisOrDefault(axis, fallback []string) []string {
	if len(axis) == 0 {
		return fallback
	}
	return axis
}
