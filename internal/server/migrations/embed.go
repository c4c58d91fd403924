// Package migrations embeds the goose schema migrations, one directory per
// supported dialect. The repository manager selects the directory matching
// the configured database driver.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
