// Package migrations embebe los archivos SQL de migración.
package migrations

import "embed"

// FS contiene las migraciones de postgres, en orden lexicográfico.
//
//go:embed *.sql
var FS embed.FS
