// Package assets embeds static app assets (email templates).
package assets

import "embed"

//go:embed templates/email
var FS embed.FS
