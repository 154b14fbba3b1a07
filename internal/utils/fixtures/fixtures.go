package fixtures

import (
	"embed"
)

//go:embed server/*.json
var FixturesFS embed.FS
