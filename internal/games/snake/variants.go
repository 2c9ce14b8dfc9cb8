package snake

import (
	"github.com/vovakirdan/warpsnake/internal/config"
	"github.com/vovakirdan/warpsnake/internal/registry"
)

// Variant describes one registered flavour of the game.
type Variant struct {
	ID     string
	Title  string
	Policy string // sim step policy name
	Rewind bool   // whether the history ring is player-accessible
	Blurb  string
}

// Variants lists every playable variant in menu order.
var Variants = []Variant{
	{
		ID:     "timewarp",
		Title:  "Time Warp Snake",
		Policy: "classic",
		Rewind: true,
		Blurb:  "Crash, then rewind time and try again.",
	},
	{
		ID:     "classic",
		Title:  "Classic Snake",
		Policy: "classic",
		Blurb:  "Eat, grow, don't hit anything.",
	},
	{
		ID:     "gravity",
		Title:  "Gravity Flip",
		Policy: "gravity",
		Blurb:  "Every meal flips gravity and steers you somewhere new.",
	},
	{
		ID:     "portal",
		Title:  "Portal Snake",
		Policy: "portal",
		Blurb:  "Food is a portal; come out at the paired exit.",
	},
}

// settings is the configuration used by registry-created games.
var settings = config.DefaultSnakeConfig()

// SetConfig sets the configuration for games created through the registry.
func SetConfig(cfg config.SnakeConfig) {
	cfg.Normalize()
	settings = cfg
}

// Config returns the configuration used by registry-created games.
func Config() config.SnakeConfig {
	return settings
}

// LookupVariant finds a variant by ID.
func LookupVariant(id string) (Variant, bool) {
	for _, v := range Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v, settings)
		})
	}
}
