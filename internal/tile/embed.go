package tile

import "embed"

// dataFS embeds the default palette at build time.
//
//go:embed *.json
var dataFS embed.FS
