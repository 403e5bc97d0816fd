// Package templates embeds the text templates used to render reports.
package templates

import _ "embed"

//go:embed report/session.md.tmpl
var SessionReport string
