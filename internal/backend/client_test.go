package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/slotboard/internal/grid"
)

type staticBase struct {
	base  string
	err   error
	calls int
}

func (s *staticBase) Base(context.Context) (string, error) {
	s.calls++
	return s.base, s.err
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *staticBase) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	resolver := &staticBase{base: server.URL}
	return NewClient(resolver, zerolog.Nop()), resolver
}

func TestClient_CallsEndpointsAgainstResolvedBase(t *testing.T) {
	t.Parallel()

	var gotGenerate GenerateRequest
	var gotRequestIDs []string
	var gotUserAgent string

	c, resolver := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestIDs = append(gotRequestIDs, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == PathHealth:
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		case r.Method == http.MethodPost && r.URL.Path == PathSeed:
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && r.URL.Path == PathGenerate:
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				http.Error(w, "bad content type "+ct, http.StatusBadRequest)
				return
			}
			_ = json.NewDecoder(r.Body).Decode(&gotGenerate)
			_, _ = w.Write([]byte(`{"ok":true}`))
		case r.Method == http.MethodGet && r.URL.Path == PathTimetable:
			_ = json.NewEncoder(w).Encode([]grid.Entry{
				{Day: "Mon", Slot: "09:00-10:00", Course: "CS1", Section: "A", Teacher: "X", Room: "101"},
			})
		default:
			http.NotFound(w, r)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	if err := c.Health(ctx); err != nil {
		t.Fatalf("Health returned error: %v", err)
	}
	if err := c.Seed(ctx); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}
	req := GenerateRequest{Days: []string{"Mon", "Tue"}, Slots: grid.DefaultSlots}
	if err := c.Generate(ctx, req); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if len(gotGenerate.Days) != 2 || len(gotGenerate.Slots) != 7 {
		t.Fatalf("Generate body = %#v, want 2 days and 7 slots", gotGenerate)
	}

	entries, err := c.Timetable(ctx)
	if err != nil {
		t.Fatalf("Timetable returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Course != "CS1" || entries[0].Room != "101" {
		t.Fatalf("Timetable entries = %#v, want one CS1 entry", entries)
	}

	if resolver.calls != 4 {
		t.Fatalf("resolver calls = %d, want 4", resolver.calls)
	}
	if !strings.HasPrefix(gotUserAgent, "slotboard/") {
		t.Fatalf("User-Agent = %q, want slotboard/*", gotUserAgent)
	}
	seen := map[string]bool{}
	for _, id := range gotRequestIDs {
		if id == "" || seen[id] {
			t.Fatalf("X-Request-ID values = %v, want unique non-empty ids", gotRequestIDs)
		}
		seen[id] = true
	}
}

func TestClient_HTTPErrorCarriesDetail(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PathSeed:
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"detail":"already seeded"}`))
		case PathGenerate:
			http.Error(w, "<html>boom</html>", http.StatusInternalServerError)
		case PathTimetable:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"message":"no detail here"}`))
		default:
			http.NotFound(w, r)
		}
	})

	err := c.Seed(context.Background())
	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("Seed error = %v, want *HTTPError", err)
	}
	if herr.Status != http.StatusConflict || err.Error() != "HTTP 409 - already seeded" {
		t.Fatalf("Seed error = %q, want HTTP 409 - already seeded", err.Error())
	}

	err = c.Generate(context.Background(), GenerateRequest{})
	if err == nil || err.Error() != "HTTP 500" {
		t.Fatalf("Generate error = %v, want status-only HTTP 500", err)
	}

	_, err = c.Timetable(context.Background())
	if err == nil || err.Error() != "HTTP 502" {
		t.Fatalf("Timetable error = %v, want HTTP 502", err)
	}
}

func TestClient_MalformedTimetable(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{not-json`))
	})

	_, err := c.Timetable(context.Background())
	var merr *MalformedError
	if !errors.As(err, &merr) {
		t.Fatalf("Timetable error = %v, want *MalformedError", err)
	}
	if merr.Op != "timetable" || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Timetable error = %q, want timetable decode response", err.Error())
	}
}

func TestClient_UploadSendsMultipartFile(t *testing.T) {
	t.Parallel()

	var gotName, gotContent string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathUpload {
			http.NotFound(w, r)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		gotName = header.Filename
		gotContent = string(data)
		_, _ = w.Write([]byte(`{"imported":3}`))
	})

	res, err := c.Upload(context.Background(), "courses.csv", strings.NewReader("code,name\nCS1,Intro\n"))
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if gotName != "courses.csv" || !strings.HasPrefix(gotContent, "code,name") {
		t.Fatalf("upload name=%q content=%q", gotName, gotContent)
	}
	if string(res.Raw) != `{"imported":3}` {
		t.Fatalf("Upload raw = %s", res.Raw)
	}
}

func TestClient_ResolveFailureIsWrapped(t *testing.T) {
	cause := errors.New("nobody home")
	c := NewClient(&staticBase{err: cause}, zerolog.Nop())

	err := c.Seed(context.Background())
	if !errors.Is(err, cause) {
		t.Fatalf("Seed error = %v, want wrapped resolve error", err)
	}
	if !strings.Contains(err.Error(), "resolve backend") {
		t.Fatalf("Seed error = %q, want resolve backend prefix", err.Error())
	}
}

func TestClient_URLConcatenatesBaseAndPath(t *testing.T) {
	c := NewClient(&staticBase{base: "http://127.0.0.1:8000"}, zerolog.Nop())
	got, err := c.URL(context.Background(), PathTimetable)
	if err != nil {
		t.Fatalf("URL returned error: %v", err)
	}
	if got != "http://127.0.0.1:8000/api/timetable" {
		t.Fatalf("URL = %q", got)
	}
}

func TestEnsureOK(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"ok", 200, "", ""},
		{"created", 201, "garbage", ""},
		{"detail", 422, `{"detail":"days required"}`, "HTTP 422 - days required"},
		{"empty detail", 400, `{"detail":""}`, "HTTP 400"},
		{"false detail", 400, `{"detail":false}`, "HTTP 400"},
		{"zero detail", 400, `{"detail":0}`, "HTTP 400"},
		{"numeric detail", 409, `{"detail":7}`, "HTTP 409 - 7"},
		{"list detail", 422, `{"detail":[{"msg":"x"}]}`, `HTTP 422 - [{"msg":"x"}]`},
		{"not json", 503, "Service Unavailable", "HTTP 503"},
		{"redirect", 302, "", "HTTP 302"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := &http.Response{StatusCode: tc.status, Body: io.NopCloser(strings.NewReader(tc.body))}
			err := EnsureOK(resp)
			if tc.want == "" {
				if err != nil {
					t.Fatalf("EnsureOK = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tc.want {
				t.Fatalf("EnsureOK = %v, want %q", err, tc.want)
			}
		})
	}
}
