package server

import "net/http"

// sessionHeader carries the opaque caller-supplied token that partitions one
// shared store into independent logical datasets.
const sessionHeader = "X-Session-Id"

// sessionID resolves the caller's session scope, falling back to the
// configured shared default when the header is absent.
func (s *Server) sessionID(r *http.Request) string {
	if sid := r.Header.Get(sessionHeader); sid != "" {
		return sid
	}
	return s.cfg.DefaultSession
}
