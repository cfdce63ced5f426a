package services

import "errors"

// Sentinel errors for the ingestion path. Callers classify with errors.Is;
// details are attached at the failure site via fmt.Errorf("...: %w", ...).
var (
	// ErrAuthConfig means the Spotify client credentials are unset. This is
	// an operator problem, not a caller problem.
	ErrAuthConfig = errors.New("spotify client credentials are not set")

	// ErrUpstreamAuth covers a failed token exchange or an unauthorized
	// response from the Spotify API.
	ErrUpstreamAuth = errors.New("spotify authorization failed")

	// ErrNotFound means the requested playlist does not exist upstream or
	// is not accessible.
	ErrNotFound = errors.New("playlist not found")

	// ErrUpstream is any other non-success response from the Spotify API.
	ErrUpstream = errors.New("spotify request failed")

	// ErrDataShape means the upstream payload was malformed; the whole
	// ingest is aborted, never partially applied.
	ErrDataShape = errors.New("unexpected payload shape")
)
