// Package tilequeue implements a replacement [Queue] for a streaming tile renderer.
//
// The queue decides which loaded tiles may be released when the renderer
// holds more tiles than it wants to, without releasing anything the
// current frame still needs and without destroying work that is in flight.
// It does not store tile data or measure memory; callers compare
// [Queue.Len] against their own ceiling and ask the queue to trim.
//
// Glossary and invariants:
//
//   - Tile
//
//     A unit of terrain/imagery content owned by the renderer.
//     The queue only reads its pipeline states and calls FreeResources.
//
//   - Membership list
//
//     Tiles ordered from most recently rendered (front)
//     to least recently rendered (back).
//     Links are kept in a queue-owned arena, never in the tile.
//
//   - Frame boundary
//
//     The tile that was at the front when the current frame started.
//     It is always a member, or absent.
//
//   - In flight
//
//     A terrain pipeline that is receiving or transforming,
//     or an imagery attachment that is transitioning.
//
// Per frame:
//
//   - [Queue.MarkStartOfRenderFrame]
//
//     Snapshots the front as the frame boundary.
//     Must be called before any tile is rendered in the frame.
//
//   - [Queue.MarkTileRendered]
//
//     Moves (or adds) a tile to the front.
//     Re-rendering the front tile when it is the boundary
//     shifts the boundary one tile towards the back.
//
//   - [Queue.TrimTiles]
//
//     Walks from the back towards the boundary, releasing
//     tiles that are not in flight until the count is low enough.
//     Nothing in front of the boundary is ever visited.
//     Without a boundary (no frame started, or the queue was empty
//     at the start of the frame) nothing is trimmed.
//
// Every removal, whether by trimming or [Queue.Remove],
// goes through one unlink path which hands the boundary
// to the next tile towards the back if the boundary is removed.
package tilequeue
