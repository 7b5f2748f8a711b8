// Package session provides the process-wide room registry for Color Wars.
//
// The session package implements:
//   - Lazy room creation on first join to an unknown id
//   - Deletion the moment a room's roster empties
//   - Per-room exclusive access via lock handles
//   - Inactivity-based cleanup of stale rooms
//
// Core Types:
//
// Manager is the registry mapping room ids (case-insensitive) to Handle
// values. A Handle couples a room with its own mutex: all mutating
// operations on one room are serialized through its handle, while different
// rooms proceed fully in parallel.
//
// Lifecycle:
//
// A room exists from the first successful join until its last player leaves
// or it sits idle past the cleanup window. Deletion is checked under both
// the registry lock and the room lock, so it can never interleave with an
// in-flight seat, unseat, or move on the same room. A caller holding a
// handle whose room lost that race observes Closed and re-resolves.
//
// Usage:
//
//	registry := session.NewManager()
//
//	h, err := registry.GetOrCreate("r1", 2)
//	if err != nil {
//		return err
//	}
//	h.Lock()
//	color, err := h.Room().Seat(connID, name)
//	h.Unlock()
package session
