// Package web serves the HomeHub dashboard as an embedded asset.
//
// The dashboard is a static page that talks to the /api routes. It is
// embedded into the binary with go:embed; setting api.static_dir serves a
// directory from disk instead. Unknown paths fall back to index.html so
// client-side routing works.
package web
