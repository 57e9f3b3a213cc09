package platform

import (
	"fmt"
	"sync"

	"github.com/1broseidon/tilecore/internal/window"
)

// MemoryBackend is an in-memory Backend. It records every call and is used
// by tests and dry runs.
type MemoryBackend struct {
	mu      sync.Mutex
	screen  window.Screen
	windows []Window
	calls   []string
	fail    map[window.ID]error
}

var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend returns a backend reporting screen and windows.
func NewMemoryBackend(screen window.Screen, windows ...Window) *MemoryBackend {
	return &MemoryBackend{screen: screen, windows: windows, fail: make(map[window.ID]error)}
}

// SetWindows replaces the window list.
func (m *MemoryBackend) SetWindows(windows ...Window) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windows = windows
}

// SetScreen replaces the reported screen size.
func (m *MemoryBackend) SetScreen(s window.Screen) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.screen = s
}

// FailOn makes every call naming w return err.
func (m *MemoryBackend) FailOn(w window.ID, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[w] = err
}

// Calls returns and clears the recorded calls.
func (m *MemoryBackend) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := m.calls
	m.calls = nil
	return calls
}

func (m *MemoryBackend) ScreenSize() (window.Screen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.screen, nil
}

func (m *MemoryBackend) ListWindows() ([]Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Window(nil), m.windows...), nil
}

func (m *MemoryBackend) MoveResize(id window.ID, g window.Geometry) error {
	return m.record(id, fmt.Sprintf("move %d %s", id, g))
}

func (m *MemoryBackend) Minimize(id window.ID) error {
	return m.record(id, fmt.Sprintf("minimize %d", id))
}

func (m *MemoryBackend) Activate(id window.ID) error {
	return m.record(id, fmt.Sprintf("activate %d", id))
}

func (m *MemoryBackend) record(id window.ID, call string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail[id]; err != nil {
		return err
	}
	m.calls = append(m.calls, call)
	return nil
}
