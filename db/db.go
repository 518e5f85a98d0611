// Package db embeds the schema migrations so a deployed binary carries
// them and can migrate on startup without a separate tool.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
