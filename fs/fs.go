package appfs

import "embed"

// FS holds the files shipped inside the binaries.
//
//go:embed templates/web/*.gohtml
var FS embed.FS
