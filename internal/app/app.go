package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/five82/slotboard/internal/backend"
	"github.com/five82/slotboard/internal/command"
	"github.com/five82/slotboard/internal/config"
	"github.com/five82/slotboard/internal/endpoint"
	"github.com/five82/slotboard/internal/logging"
	"github.com/five82/slotboard/internal/prefs"
	"github.com/five82/slotboard/internal/state"
	"github.com/five82/slotboard/internal/ui"
)

// Options configure the slotboard application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/slotboard/prefs.toml
	APIURL     string // overrides api_url from config when set
	LogLevel   string // overrides log_level from config when set
	// Console receives human-readable logs in addition to the log file. The
	// TUI leaves it nil because it owns the terminal.
	Console io.Writer
}

// Env is the wired set of components shared by the TUI and CLI commands.
type Env struct {
	Config     config.Config
	Logger     zerolog.Logger
	Store      *state.Store
	Controller *command.Controller

	closer io.Closer
}

// Setup loads configuration and wires the resolver, backend client and
// controller.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = v
	}

	logger, closer, err := logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile, Console: opts.Console})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	store := &state.Store{}
	prober := &endpoint.Prober{
		HTTP:    &http.Client{},
		Timeout: cfg.ProbeTimeout,
		Logger:  logging.Component(logger, "probe"),
		Check:   backend.EnsureOK,
	}
	resolver := endpoint.NewResolver(prober, cfg.APIURL, cfg.DetectedBase())
	resolver.OnResolved = store.SetBase

	client := backend.NewClient(resolver, logging.Component(logger, "backend"))
	controller := command.NewController(resolver, client, store, logging.Component(logger, "app"))

	logger.Info().
		Str("config", cfg.Path).
		Str("api_url", cfg.APIURL).
		Str("detected", cfg.DetectedBase()).
		Dur("probe_timeout", cfg.ProbeTimeout).
		Msg("slotboard starting")

	return &Env{Config: cfg, Logger: logger, Store: store, Controller: controller, closer: closer}, nil
}

// Close flushes the log sink.
func (e *Env) Close() error {
	if e == nil || e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// Run boots the slotboard TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	userPrefs := prefs.Load(opts.PrefsPath)
	days := env.Config.Days
	if userPrefs.Days != "" {
		days = userPrefs.Days
	}

	if env.Config.PageIsFile() {
		env.Store.Notify("page_url is a file: URL; set it to the http:// address the controller is served from", errors.New("file page url"))
	}

	go initialCheck(ctx, env)

	if err := StartWatcher(ctx, env.Config.Path, env.Controller, env.Logger); err != nil {
		env.Logger.Warn().Err(err).Msg("config watch disabled")
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Runner:    env.Controller,
		Store:     env.Store,
		Days:      days,
		LogPath:   env.Config.LogFile,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}

// initialCheck resolves a base in the background so the first action does
// not pay for probing.
func initialCheck(ctx context.Context, env *Env) {
	out := env.Controller.Execute(ctx, command.Request{Action: command.ActionTest})
	if out.Err != nil && !errors.Is(out.Err, command.ErrBusy) && ctx.Err() == nil {
		env.Store.Notify("Backend not reachable at "+env.Controller.Address(), out.Err)
	}
}
