package tilequeue

import (
	"iter"
	"strconv"
)

type (
	// Tile is the read-only view of a loaded tile that the [Queue] consumes.
	// The queue never alters tile state beyond calling FreeResources.
	Tile interface {
		// LoadedTerrainTransition returns the state of the tile's own
		// terrain pipeline, and false if the tile has none.
		LoadedTerrainTransition() (TerrainState, bool)
		// UpsampledTerrainTransition returns the state of the terrain
		// being upsampled from an ancestor, and false if there is none.
		UpsampledTerrainTransition() (TerrainState, bool)
		// ImageryTransitions yields the state of each imagery
		// attachment, in attachment order.
		// A nil sequence is treated as no attachments.
		ImageryTransitions() iter.Seq[ImageryState]
		// FreeResources releases the tile's heavy resources.
		// It is called once, immediately before the queue drops the tile.
		FreeResources()
	}
	// TerrainState is a step in a tile's terrain loading pipeline.
	TerrainState uint8
	// ImageryState is a step in an imagery attachment's loading pipeline.
	ImageryState uint8
)

const (
	TerrainUnloaded TerrainState = iota
	TerrainFailed
	TerrainReceiving
	TerrainReceived
	TerrainTransforming
	TerrainTransformed
	TerrainReady
)

const (
	ImageryUnloaded ImageryState = iota
	ImageryTransitioning
	ImageryReceived
	ImageryTextureLoaded
	ImageryReady
	ImageryFailed
	ImageryInvalid
	ImageryPlaceholder
)

var (
	terrainStateNames = [...]string{
		TerrainUnloaded:     "unloaded",
		TerrainFailed:       "failed",
		TerrainReceiving:    "receiving",
		TerrainReceived:     "received",
		TerrainTransforming: "transforming",
		TerrainTransformed:  "transformed",
		TerrainReady:        "ready",
	}
	imageryStateNames = [...]string{
		ImageryUnloaded:      "unloaded",
		ImageryTransitioning: "transitioning",
		ImageryReceived:      "received",
		ImageryTextureLoaded: "texture loaded",
		ImageryReady:         "ready",
		ImageryFailed:        "failed",
		ImageryInvalid:       "invalid",
		ImageryPlaceholder:   "placeholder",
	}
)

func (state TerrainState) String() string {
	if int(state) < len(terrainStateNames) {
		return terrainStateNames[state]
	}
	return "TerrainState(" + strconv.Itoa(int(state)) + ")"
}

// InFlight reports whether terrain data is being
// received or transformed, and so must not be released.
func (state TerrainState) InFlight() bool {
	return state == TerrainReceiving ||
		state == TerrainTransforming
}

func (state ImageryState) String() string {
	if int(state) < len(imageryStateNames) {
		return imageryStateNames[state]
	}
	return "ImageryState(" + strconv.Itoa(int(state)) + ")"
}

// Evictable reports whether tile may be released by a trim.
// A tile is held back while either of its terrain pipelines
// is in flight or any of its imagery attachments is transitioning.
func Evictable(tile Tile) bool {
	if state, ok := tile.LoadedTerrainTransition(); ok && state.InFlight() {
		return false
	}
	if state, ok := tile.UpsampledTerrainTransition(); ok && state.InFlight() {
		return false
	}
	if imagery := tile.ImageryTransitions(); imagery != nil {
		for state := range imagery {
			if state == ImageryTransitioning {
				return false
			}
		}
	}
	return true
}
