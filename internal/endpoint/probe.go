package endpoint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultProbeTimeout bounds a single health check.
const DefaultProbeTimeout = 4 * time.Second

const healthPath = "/api/health"

// Doer is the subset of *http.Client the prober needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Prober health-checks candidates one at a time.
type Prober struct {
	HTTP    Doer
	Timeout time.Duration
	Logger  zerolog.Logger
	// Check validates a health response. Nil accepts any 2xx status.
	Check func(*http.Response) error
}

// NewProber returns a prober using http.DefaultClient and the default timeout.
func NewProber(logger zerolog.Logger) *Prober {
	return &Prober{HTTP: http.DefaultClient, Timeout: DefaultProbeTimeout, Logger: logger}
}

// Probe tries candidates strictly in order and returns the first one whose
// health endpoint answers 2xx. When all fail the returned *UnreachableError
// carries the last attempt's error.
func (p *Prober) Probe(ctx context.Context, candidates []Candidate) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, ErrNoCandidates
	}
	var last error
	for i, c := range candidates {
		if err := ctx.Err(); err != nil {
			return Candidate{}, err
		}
		err := p.check(ctx, c)
		if err == nil {
			p.Logger.Info().Str("base", c.Origin()).Int("attempt", i+1).Msg("backend reachable")
			return c, nil
		}
		if ctx.Err() != nil {
			return Candidate{}, ctx.Err()
		}
		p.Logger.Debug().Err(err).Str("base", c.Origin()).Int("attempt", i+1).Msg("probe failed")
		last = err
	}
	return Candidate{}, &UnreachableError{Attempts: len(candidates), Last: last}
}

func (p *Prober) check(ctx context.Context, c Candidate) error {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	target := c.Origin() + healthPath
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	doer := p.HTTP
	if doer == nil {
		doer = http.DefaultClient
	}
	resp, err := doer.Do(req)
	if err != nil {
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return fmt.Errorf("GET %s: %w", target, ErrProbeTimeout)
		}
		return fmt.Errorf("GET %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if p.Check != nil {
		return p.Check(resp)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode}
	}
	return nil
}
