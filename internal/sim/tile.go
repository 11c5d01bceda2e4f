package sim

import (
	"iter"
	"slices"

	"github.com/djdv/go-tilequeue"
)

// tile steps through the terrain pipeline one state per frame
// once requested, and may have its imagery reprojected.
type tile struct {
	imagery           []tilequeue.ImageryState
	id, released      int
	terrain           tilequeue.TerrainState
	resident, pending bool
}

func (t *tile) LoadedTerrainTransition() (tilequeue.TerrainState, bool) {
	return t.terrain, t.resident
}

func (*tile) UpsampledTerrainTransition() (tilequeue.TerrainState, bool) {
	return 0, false
}

func (t *tile) ImageryTransitions() iter.Seq[tilequeue.ImageryState] {
	return slices.Values(t.imagery)
}

func (t *tile) FreeResources() {
	t.resident = false
	t.terrain = tilequeue.TerrainUnloaded
	t.imagery = t.imagery[:0]
	t.released++
}

// request starts loading a tile that is not resident.
func (t *tile) request() {
	t.resident = true
	t.terrain = tilequeue.TerrainReceiving
	t.imagery = append(t.imagery[:0], tilequeue.ImageryTransitioning)
}

// reproject puts the tile's imagery back in flight.
func (t *tile) reproject() {
	for i := range t.imagery {
		t.imagery[i] = tilequeue.ImageryTransitioning
	}
}

// advance moves every pipeline one step and
// reports whether the tile is still loading.
func (t *tile) advance() bool {
	if t.loadingTerrain() {
		t.terrain++
	}
	for i, state := range t.imagery {
		if state == tilequeue.ImageryTransitioning {
			t.imagery[i] = tilequeue.ImageryReady
		}
	}
	return t.loadingTerrain()
}

func (t *tile) loadingTerrain() bool {
	return t.resident &&
		t.terrain >= tilequeue.TerrainReceiving &&
		t.terrain < tilequeue.TerrainReady
}
