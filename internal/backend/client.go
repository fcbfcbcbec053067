package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/five82/slotboard/internal/grid"
)

// API paths consumed from the scheduling backend.
const (
	PathHealth    = "/api/health"
	PathSeed      = "/api/seed"
	PathGenerate  = "/api/generate"
	PathTimetable = "/api/timetable"
	PathUpload    = "/api/upload"
)

const (
	defaultUserAgent = "slotboard/0.1"
	requestTimeout   = 2 * time.Minute
	uploadField      = "file"
)

// BaseResolver yields the backend origin requests are sent to. It resolves
// on demand when nothing is cached.
type BaseResolver interface {
	Base(ctx context.Context) (string, error)
}

// API defines the backend operations. It is implemented by *Client and can
// be used for testing.
type API interface {
	Health(ctx context.Context) error
	Seed(ctx context.Context) error
	Generate(ctx context.Context, req GenerateRequest) error
	Timetable(ctx context.Context) ([]grid.Entry, error)
	Upload(ctx context.Context, filename string, content io.Reader) (UploadResult, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the scheduling backend through whatever base the resolver
// provides.
type Client struct {
	resolver  BaseResolver
	http      *http.Client
	userAgent string
	logger    zerolog.Logger
}

// NewClient builds a Client that sends every request to resolver's base.
func NewClient(resolver BaseResolver, logger zerolog.Logger) *Client {
	return &Client{
		resolver:  resolver,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
		logger:    logger,
	}
}

// URL joins the resolved base with a relative API path.
func (c *Client) URL(ctx context.Context, path string) (string, error) {
	if c == nil || c.resolver == nil {
		return "", fmt.Errorf("client is nil")
	}
	base, err := c.resolver.Base(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve backend: %w", err)
	}
	return base + path, nil
}

// Health checks the resolved base answers its health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, PathHealth, nil, "", nil)
}

// Seed asks the backend to load its sample data set.
func (c *Client) Seed(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, PathSeed, nil, "", nil)
}

// Generate asks the backend to compute a timetable over the given axes.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, PathGenerate, bytes.NewReader(body), "application/json", nil)
}

// Timetable fetches the current schedule entries.
func (c *Client) Timetable(ctx context.Context) ([]grid.Entry, error) {
	var entries []grid.Entry
	if err := c.do(ctx, http.MethodGet, PathTimetable, nil, "", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Upload posts content as a multipart form file.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (UploadResult, error) {
	if content == nil {
		return UploadResult{}, fmt.Errorf("upload content is nil")
	}
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile(uploadField, filename)
	if err != nil {
		return UploadResult{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return UploadResult{}, fmt.Errorf("read upload: %w", err)
	}
	if err := form.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("close form: %w", err)
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, PathUpload, &buf, form.FormDataContentType(), &raw); err != nil {
		return UploadResult{}, err
	}
	return UploadResult{Raw: raw}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, dest any) error {
	target, err := c.URL(ctx, path)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("request_id", requestID).Str("method", method).Str("url", target).Msg("request failed")
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("backend request")

	if err := EnsureOK(resp); err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &MalformedError{Op: strings.TrimPrefix(path, "/api/"), Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// EnsureOK converts a non-2xx response into an *HTTPError, lifting the
// "detail" field from a JSON body when there is one. The body is consumed
// only on failure.
func EnsureOK(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	herr := &HTTPError{Status: resp.StatusCode}
	if resp.Body != nil {
		if detail, ok := decodeDetail(resp.Body); ok {
			herr.Detail = detail
		}
	}
	return herr
}

func decodeDetail(body io.Reader) (string, bool) {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 1<<20)).Decode(&payload); err != nil {
		return "", false
	}
	switch d := payload.Detail.(type) {
	case nil:
		return "", false
	case string:
		return d, d != ""
	case bool:
		if !d {
			return "", false
		}
	case float64:
		if d == 0 {
			return "", false
		}
	}
	// FastAPI validation errors carry a list of objects.
	encoded, err := json.Marshal(payload.Detail)
	if err != nil {
		return "", false
	}
	return string(encoded), true
}
