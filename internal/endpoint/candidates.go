package endpoint

import (
	"net"
	"net/url"
	"strings"
)

// DefaultPort is the port the backend listens on when none is configured.
const DefaultPort = "8000"

const fallbackBase = "http://localhost:" + DefaultPort

// Candidate is a fully qualified backend origin to attempt.
type Candidate struct {
	Scheme string
	Host   string
	Port   string
}

// Origin renders the candidate as scheme://host[:port].
func (c Candidate) Origin() string {
	host := c.Host
	if c.Port != "" {
		host = net.JoinHostPort(c.Host, c.Port)
	} else if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return c.Scheme + "://" + host
}

func (c Candidate) String() string { return c.Origin() }

// DetectBase derives the default backend base from the page the controller is
// served from: same scheme and hostname, fixed port.
func DetectBase(pageURL string) string {
	u, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return fallbackBase
	}
	return u.Scheme + "://" + net.JoinHostPort(u.Hostname(), DefaultPort)
}

// TypedOrDetected returns the user-typed base with a trailing slash removed,
// or detected when nothing was typed.
func TypedOrDetected(typed, detected string) string {
	raw := strings.TrimSuffix(strings.TrimSpace(typed), "/")
	if raw == "" {
		return detected
	}
	return raw
}

// Candidates expands the typed and detected bases into an ordered list of
// origins to probe. Typed expansions come first. Malformed bases contribute
// nothing.
func Candidates(typed, detected string) []Candidate {
	seen := make(map[string]struct{})
	var out []Candidate
	for _, raw := range []string{TypedOrDetected(typed, detected), detected} {
		base, ok := parseBase(raw)
		if !ok {
			continue
		}
		for _, c := range expand(base) {
			origin := c.Origin()
			if _, dup := seen[origin]; dup {
				continue
			}
			seen[origin] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

func parseBase(raw string) (Candidate, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Candidate{}, false
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return Candidate{}, false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return Candidate{}, false
	}
	host := u.Hostname()
	if host == "" {
		return Candidate{}, false
	}
	port := u.Port()
	if port == defaultPorts[scheme] {
		port = ""
	}
	return Candidate{Scheme: scheme, Host: strings.ToLower(host), Port: port}, true
}

// defaultPorts are dropped from parsed bases so that an explicit ":80" does
// not follow the base onto its https variant.
var defaultPorts = map[string]string{"http": "80", "https": "443"}

func expand(base Candidate) []Candidate {
	schemes := []string{"http", "https"}
	if base.Scheme == "https" {
		schemes = []string{"https", "http"}
	}
	hosts := []string{base.Host}
	switch base.Host {
	case "localhost":
		hosts = append(hosts, "127.0.0.1")
	case "127.0.0.1":
		hosts = append(hosts, "localhost")
	}

	out := make([]Candidate, 0, len(schemes)*len(hosts))
	for _, scheme := range schemes {
		for _, host := range hosts {
			out = append(out, Candidate{Scheme: scheme, Host: host, Port: base.Port})
		}
	}
	return out
}
