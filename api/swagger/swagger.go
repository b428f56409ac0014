// Package swagger embeds the OpenAPI document of the user API.
package swagger

import _ "embed"

// Document is users.swagger.json as built into the binary
//
//go:embed users.swagger.json
var Document []byte
