package mcpserver

import (
	"errors"
	"net/http"
)

// HeaderAPIKey is the header remote callers use to supply their AnChain API key.
const HeaderAPIKey = "x-api-key"

// ErrNoCredential indicates no API key was available for an upstream call.
var ErrNoCredential = errors.New("no credential provided")

// Resolver selects the AnChain API key for each tool invocation. In local
// (stdio) mode the key is fixed at startup and request headers are never
// consulted. In remote (HTTP) mode every caller supplies its own key via the
// x-api-key header and the stored key is never consulted.
type Resolver struct {
	remote bool
	apiKey string
}

// NewResolver creates a resolver bound to the configured transport mode.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{remote: cfg.Remote, apiKey: cfg.APIKey}
}

// Resolve returns the API key for one tool invocation. It returns
// ErrNoCredential when the applicable source yields an empty key; callers
// must not issue an upstream request in that case. http.Header.Get is
// case-insensitive and nil-safe, so a request without headers behaves as an
// absent header.
func (r *Resolver) Resolve(header http.Header) (string, error) {
	if r.remote {
		if key := header.Get(HeaderAPIKey); key != "" {
			return key, nil
		}
		return "", ErrNoCredential
	}
	if r.apiKey == "" {
		return "", ErrNoCredential
	}
	return r.apiKey, nil
}
