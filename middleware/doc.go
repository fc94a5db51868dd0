// Package middleware contains the route gate: net/http middleware that
// intercepts every inbound request, extracts a session token from the auth
// cookie or a Bearer header, and redirects to the login page unless the
// token validates or the path is on the public allowlist.
package middleware
