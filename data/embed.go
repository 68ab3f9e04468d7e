// Package data embeds the seed vocabulary loaded into a fresh journal database.
package data

import (
	_ "embed"
)

//go:embed seed/moods.json
var SeedMoods []byte

//go:embed seed/tags.txt
var SeedTags string
