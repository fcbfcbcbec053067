// Package endpoint locates the scheduling backend.
//
// # Overview
//
// The backend's reachable address is not known up front: it may answer on
// http or https, and "localhost" and "127.0.0.1" do not always behave the
// same (IPv6 resolution, TLS certificates issued for one name only). This
// package turns the address the user typed plus an auto-detected default
// into a list of candidate origins and probes them until one answers.
//
// # Candidate Generation
//
// Candidates expands each input base in turn, typed first:
//
//  1. Keep the input's scheme first, then the other of http/https
//  2. Keep the hostname, adding 127.0.0.1 for localhost and vice versa
//  3. Cross schemes with hostnames, keeping the port
//
// Origins already emitted are skipped. An input that does not parse as an
// http(s) URL with a hostname contributes nothing; it is not an error.
//
// # Probing
//
// Prober.Probe issues GET {origin}/api/health for each candidate in order,
// one at a time, each bounded by its own timeout (4s by default). The first
// 2xx answer wins; the response body is not inspected. When every candidate
// fails the returned *UnreachableError carries the last attempt's error
// only.
//
// # Resolution
//
// Resolver owns the cached base. Resolve clears it before probing, so a
// retest never reuses a stale value. Base returns the cached value or
// resolves on demand. SetTyped with a new value clears the cache, matching
// an edit of the address field.
//
//	prober := endpoint.NewProber(logger)
//	resolver := endpoint.NewResolver(prober, cfg.APIURL, endpoint.DetectBase(cfg.PageURL))
//	base, err := resolver.Resolve(ctx)
package endpoint
