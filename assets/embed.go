package assets

import "embed"

// AssetsFS holds the stylesheet and the site script served under /assets/.
//
//go:embed css js
var AssetsFS embed.FS
