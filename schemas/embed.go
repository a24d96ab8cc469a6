// Package schemas embeds the JSON Schemas that model output is validated against.
package schemas

import "embed"

// Achievements is the schema file for generated achievement lists.
const Achievements = "achievements.schema.json"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
