// Package sim drives a tile replacement queue through a synthetic render loop.
//
// The view pans across a ring of tiles, rendering a fixed-size window each
// frame from its far edge to its near edge. Tiles that come into view are
// requested and step through the terrain pipeline one state per frame.
// Resident tiles may also have their imagery reprojected, which keeps them
// in flight for a frame. After rendering, the queue is trimmed to the
// configured ceiling and every tile rendered in the frame must still be
// present.
package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/djdv/go-tilequeue"
)

type (
	// Config describes a simulation run.
	Config struct {
		// Frames to render.
		Frames int
		// Tiles is the size of the tile ring.
		Tiles int
		// Visible is the number of tiles rendered per frame.
		Visible int
		// Step is how many tiles the view pans per frame.
		Step int
		// MaxCount is the ceiling passed to every trim.
		MaxCount int
		// InFlight is the chance, per resident tile and frame,
		// of an imagery reprojection.
		InFlight float64
		// Seed for the reprojection RNG.
		Seed uint64
	}
	// Result aggregates a simulation run.
	Result struct {
		Frames, Rendered, Requested,
		Evicted, Skipped,
		PeakTiles, FinalTiles int
		// Violations counts tiles rendered in a frame
		// that were no longer present after its trim.
		Violations int
	}
	world struct {
		queue    *tilequeue.Queue[*tile]
		rng      *rand.Rand
		logger   *slog.Logger
		tiles    []*tile
		pending  []*tile
		rendered []*tile
		config   Config
		result   Result
	}
)

// ErrInvalidConfig is returned from [Config.Validate] and [Run].
var ErrInvalidConfig = errors.New("invalid simulation config")

// DefaultConfig is used by the tilesim command when no overrides are given.
var DefaultConfig = Config{
	Frames:   600,
	Tiles:    16384,
	Visible:  256,
	Step:     8,
	MaxCount: 768,
	InFlight: 0.02,
	Seed:     1,
}

// Validate reports the first problem with cfg.
// Tiles must be at least Visible+Step so that the tile at the front
// when a frame starts is never inside that frame's view.
func (cfg Config) Validate() error {
	switch {
	case cfg.Frames < 1:
		return fmt.Errorf("%w: frames must be >=1 but got %d",
			ErrInvalidConfig, cfg.Frames)
	case cfg.Visible < 1:
		return fmt.Errorf("%w: visible must be >=1 but got %d",
			ErrInvalidConfig, cfg.Visible)
	case cfg.Step < 1:
		return fmt.Errorf("%w: step must be >=1 but got %d",
			ErrInvalidConfig, cfg.Step)
	case cfg.Tiles < cfg.Visible+cfg.Step:
		return fmt.Errorf("%w: tiles must be >=%d (visible+step) but got %d",
			ErrInvalidConfig, cfg.Visible+cfg.Step, cfg.Tiles)
	case cfg.MaxCount < 0:
		return fmt.Errorf("%w: max count must be >=0 but got %d",
			ErrInvalidConfig, cfg.MaxCount)
	case math.IsNaN(cfg.InFlight) || cfg.InFlight < 0 || cfg.InFlight > 1:
		return fmt.Errorf("%w: in-flight probability must be within [0,1] but got %v",
			ErrInvalidConfig, cfg.InFlight)
	}
	return nil
}

// Run simulates cfg.Frames frames.
// A nil logger discards output.
func Run(cfg Config, logger *slog.Logger) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	queue, err := tilequeue.New[*tile](
		tilequeue.WithLogger(logger),
		tilequeue.WithCapacityHint(cfg.MaxCount+cfg.Visible),
	)
	if err != nil {
		return Result{}, fmt.Errorf("creating queue: %w", err)
	}
	w := world{
		queue:    queue,
		rng:      rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)),
		logger:   logger,
		tiles:    make([]*tile, cfg.Tiles),
		rendered: make([]*tile, 0, cfg.Visible),
		config:   cfg,
	}
	for i := range w.tiles {
		w.tiles[i] = &tile{id: i}
	}
	for frame := range cfg.Frames {
		w.frame(frame)
	}
	w.result.FinalTiles = queue.Len()
	logger.Info("simulation finished",
		"frames", w.result.Frames,
		"requested", w.result.Requested,
		"evicted", w.result.Evicted,
		"skipped", w.result.Skipped,
		"peak", w.result.PeakTiles,
		"final", w.result.FinalTiles,
		"violations", w.result.Violations,
	)
	return w.result, nil
}

func (w *world) frame(number int) {
	w.advance()
	w.queue.MarkStartOfRenderFrame()
	w.render(number)
	w.reproject()
	w.result.PeakTiles = max(w.result.PeakTiles, w.queue.Len())
	report := w.queue.TrimTiles(w.config.MaxCount)
	w.result.Evicted += report.Evicted
	w.result.Skipped += report.Skipped
	violations := w.checkRendered()
	w.result.Violations += violations
	w.result.Frames++
	if violations != 0 {
		w.logger.Warn("rendered tiles were evicted",
			"frame", number, "count", violations)
	}
	w.logger.Debug("frame complete",
		"frame", number,
		"tiles", w.queue.Len(),
		"loading", len(w.pending),
	)
}

// advance steps every loading tile.
func (w *world) advance() {
	loading := w.pending[:0]
	for _, t := range w.pending {
		if t.advance() {
			loading = append(loading, t)
			continue
		}
		t.pending = false
	}
	clear(w.pending[len(loading):])
	w.pending = loading
}

// render walks the view from its far edge to its near edge.
func (w *world) render(number int) {
	var (
		start = number * w.config.Step
		ring  = len(w.tiles)
	)
	w.rendered = w.rendered[:0]
	for i := w.config.Visible - 1; i >= 0; i-- {
		t := w.tiles[(start+i)%ring]
		w.queue.MarkTileRendered(t)
		w.rendered = append(w.rendered, t)
		w.result.Rendered++
		if !t.resident {
			t.request()
			w.track(t)
			w.result.Requested++
		}
	}
}

func (w *world) reproject() {
	if w.config.InFlight == 0 {
		return
	}
	for t := range w.queue.Tiles() {
		if w.rng.Float64() < w.config.InFlight {
			t.reproject()
			w.track(t)
		}
	}
}

func (w *world) track(t *tile) {
	if t.pending {
		return
	}
	t.pending = true
	w.pending = append(w.pending, t)
}

func (w *world) checkRendered() (missing int) {
	for _, t := range w.rendered {
		if !w.queue.Contains(t) {
			missing++
		}
	}
	return missing
}
