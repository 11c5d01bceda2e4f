package tilequeue

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/djdv/go-tilequeue/internal/arena"
)

type (
	handle = arena.Handle
	// Member constrains the tile types a [Queue] can hold.
	// Tiles are identified by equality, so pointer types are typical.
	Member interface {
		comparable
		Tile
	}
	// Queue orders tiles from most to least recently rendered
	// and trims the least recently rendered ones that are safe to release.
	// Concurrent access must be guarded by the caller.
	// Constructed by [New].
	Queue[T Member] struct {
		index    map[T]handle
		logger   *slog.Logger
		list     arena.List[T]
		boundary handle
	}
	// TrimReport summarizes one call to [Queue.TrimTiles].
	TrimReport struct {
		// Visited is the number of tiles the scan evaluated.
		Visited int
		// Evicted is the number of tiles released and removed.
		Evicted int
		// Skipped is the number of visited tiles
		// left in place because their content was in flight.
		Skipped int
	}
)

// New creates an empty [Queue].
func New[T Member](options ...Option) (*Queue[T], error) {
	settings, err := makeSettings(options)
	if err != nil {
		return nil, err
	}
	queue := &Queue[T]{
		index:  make(map[T]handle, settings.capacityHint),
		logger: settings.logger,
	}
	queue.list.Grow(settings.capacityHint)
	return queue, nil
}

// MarkStartOfRenderFrame must be called before any tiles are
// marked as rendered in a new frame.
// The current front tile becomes the frame boundary.
// [Queue.TrimTiles] considers tiles from the back up to and including
// the boundary, so tiles rendered after this call are spared.
// If the queue is empty, trimming is disabled until the next frame.
func (q *Queue[_]) MarkStartOfRenderFrame() {
	q.boundary = q.list.Front()
}

// MarkTileRendered moves tile to the front of the queue,
// adding it if it is not already a member.
//
// If tile is already at the front and is the frame boundary,
// the boundary moves one tile towards the back instead.
// A boundary tile that is rendered from any other position
// moves to the front and remains the boundary.
func (q *Queue[T]) MarkTileRendered(tile T) {
	page, member := q.index[tile]
	if member && page == q.list.Front() {
		if page == q.boundary {
			q.boundary = q.list.Next(page)
		}
		return
	}
	if member {
		q.list.MoveToFront(page)
	} else {
		q.index[tile] = q.list.PushFront(tile)
	}
	if debugging {
		q.mustValidate("mark rendered")
	}
}

// TrimTiles releases tiles until at most maxCount remain,
// starting from the least recently rendered.
// The scan never passes the frame boundary; the boundary tile
// is the last one considered. Tiles that are not [Evictable] are skipped.
// As a result more than maxCount tiles may remain.
// If no frame boundary is set, TrimTiles does nothing.
func (q *Queue[_]) TrimTiles(maxCount int) TrimReport {
	var (
		report TrimReport
		last   = q.boundary
	)
	if last.IsZero() {
		return report
	}
	if debugging {
		assert(q.list.Valid(last), "frame boundary is not a member")
	}
	for hand, more := q.list.Back(), true; more &&
		!hand.IsZero() &&
		q.list.Len() > maxCount; {
		more = hand != last
		var (
			previous = q.list.Prev(hand)
			tile     = q.list.Value(hand)
		)
		report.Visited++
		if Evictable(tile) {
			tile.FreeResources()
			q.unlink(tile, hand)
			report.Evicted++
		} else {
			report.Skipped++
		}
		hand = previous
	}
	if report.Visited != 0 {
		q.logger.Debug("trimmed tiles",
			"max", maxCount,
			"visited", report.Visited,
			"evicted", report.Evicted,
			"skipped", report.Skipped,
			"remaining", q.list.Len(),
		)
	}
	return report
}

// Remove drops tile from the queue without releasing its resources,
// for tiles destroyed by their owner.
// It returns false if tile was not a member.
func (q *Queue[T]) Remove(tile T) bool {
	page, member := q.index[tile]
	if !member {
		return false
	}
	q.unlink(tile, page)
	return true
}

// unlink is the only path by which tiles leave the queue.
// A boundary that is removed passes to its successor towards the back.
func (q *Queue[T]) unlink(tile T, page handle) {
	if page == q.boundary {
		q.boundary = q.list.Next(page)
	}
	q.list.Remove(page)
	delete(q.index, tile)
	if debugging {
		q.mustValidate("unlink")
	}
}

// Len returns the number of tiles in the queue.
func (q *Queue[_]) Len() int {
	return q.list.Len()
}

// Contains reports whether tile is in the queue.
func (q *Queue[T]) Contains(tile T) bool {
	_, member := q.index[tile]
	return member
}

// FrameBoundary returns the tile marking the frame boundary,
// and false if there is none.
func (q *Queue[T]) FrameBoundary() (T, bool) {
	if q.boundary.IsZero() {
		var zero T
		return zero, false
	}
	return q.list.Value(q.boundary), true
}

// Tiles returns an iterator over the queue's tiles,
// from most to least recently rendered.
// The queue must not be modified during iteration.
func (q *Queue[T]) Tiles() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, tile := range q.list.All() {
			if !yield(tile) {
				return
			}
		}
	}
}

func (q *Queue[T]) validate() error {
	if err := q.list.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errCorrupt, err)
	}
	if indexed, listed := len(q.index), q.list.Len(); indexed != listed {
		return corruptf("%d tiles indexed but %d listed", indexed, listed)
	}
	for tile, page := range q.index {
		if !q.list.Valid(page) {
			return corruptf("tile %v indexed with stale handle %v", tile, page)
		}
		if listed := q.list.Value(page); listed != tile {
			return corruptf("handle %v indexed for %v but holds %v", page, tile, listed)
		}
	}
	if !q.boundary.IsZero() && !q.list.Valid(q.boundary) {
		return corruptf("frame boundary %v is not a member", q.boundary)
	}
	return nil
}

func (q *Queue[_]) mustValidate(operation string) {
	if err := q.validate(); err != nil {
		panic(operation + ": " + err.Error())
	}
}
