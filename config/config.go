package config

import (
	"embed"
)

// Store holds the per-network config files.
// Files starting with "." (e.g. .secrets.yml) are not embedded.
//
//go:embed l2node
var Store embed.FS
