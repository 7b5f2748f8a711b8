package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/lakshmikanth1222/color-wars/game/engine"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrInvalidRoomID = errors.New("invalid room id")
)

// DefaultMaxIdle is the inactivity window after which a room is eligible for
// cleanup.
const DefaultMaxIdle = 1 * time.Hour

// Handle pairs a room with its exclusive-access lock. Every mutating
// operation on a room (seat, unseat, move) must run between Lock and Unlock;
// rooms are independent, so operations on different handles proceed in
// parallel. A handle that lost the race to deletion reports Closed, and the
// caller must re-resolve through the manager.
type Handle struct {
	mu     sync.Mutex
	room   *engine.Room
	closed bool
}

func (h *Handle) Lock()   { h.mu.Lock() }
func (h *Handle) Unlock() { h.mu.Unlock() }

// Room returns the underlying room. Callers must hold the handle's lock.
func (h *Handle) Room() *engine.Room { return h.room }

// Closed reports whether the room was deleted out from under this handle.
// Callers must hold the handle's lock.
func (h *Handle) Closed() bool { return h.closed }

// Manager is the process-wide room registry. Rooms are created lazily on the
// first join to an unknown id and deleted the instant their roster empties.
type Manager struct {
	mu    sync.RWMutex
	rooms map[string]*Handle
}

// NewManager creates an empty registry.
func NewManager() *Manager {
	return &Manager{
		rooms: make(map[string]*Handle),
	}
}

// GetOrCreate resolves the handle for id, creating the room (with capacity
// fixed from maxPlayers) if it does not exist. Room ids are case-insensitive.
func (m *Manager) GetOrCreate(id string, maxPlayers int) (*Handle, error) {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > engine.MaxRoomIDLen {
		return nil, ErrInvalidRoomID
	}

	key := strings.ToLower(id)
	m.mu.Lock()
	defer m.mu.Unlock()

	if h, ok := m.rooms[key]; ok {
		return h, nil
	}
	h := &Handle{room: engine.NewRoom(id, maxPlayers)}
	m.rooms[key] = h
	return h, nil
}

// Get resolves an existing handle.
func (m *Manager) Get(id string) (*Handle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if h, ok := m.rooms[strings.ToLower(strings.TrimSpace(id))]; ok {
		return h, nil
	}
	return nil, ErrRoomNotFound
}

// RemoveIfEmpty deletes the room if its roster is empty. The check runs
// under both the registry lock and the room lock, so deletion can never
// interleave with an in-flight mutation on the same room. It reports whether
// the room was removed.
func (m *Manager) RemoveIfEmpty(id string) bool {
	key := strings.ToLower(strings.TrimSpace(id))

	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.rooms[key]
	if !ok {
		return false
	}
	h.Lock()
	defer h.Unlock()
	if len(h.room.Players) > 0 {
		return false
	}
	h.closed = true
	delete(m.rooms, key)
	return true
}

// CleanupExpired removes rooms whose last activity is older than maxAge,
// regardless of occupancy. Rooms with an operation in flight are skipped and
// picked up on a later sweep. It returns the number of rooms removed.
func (m *Manager) CleanupExpired(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, h := range m.rooms {
		if !h.mu.TryLock() {
			continue
		}
		if h.room.LastActivityAt.Before(cutoff) {
			h.closed = true
			delete(m.rooms, key)
			removed++
		}
		h.mu.Unlock()
	}
	return removed
}

// Count returns the number of active rooms.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// List returns the handles of all active rooms. The slice is a point-in-time
// copy; callers still lock each handle before reading its room.
func (m *Manager) List() []*Handle {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Handle, 0, len(m.rooms))
	for _, h := range m.rooms {
		out = append(out, h)
	}
	return out
}
