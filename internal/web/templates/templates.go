// Package templates embeds the HTML templates and static assets served by
// the web UI.
package templates

import "embed"

//go:embed base.html pages/*.html partials/*.html static/*
var FS embed.FS
