// Package schemas содержит JSON Schema контрактов событий сервиса.
package schemas

import "embed"

// SchemasFS - схемы событий: events/<event-name>/v<major>.json
//
//go:embed events
var SchemasFS embed.FS
