package wm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/tilecore/internal/window"
)

func newWorkspaces(t *testing.T, spaces ...WindowManager) *WorkspaceWM {
	t.Helper()
	ws, err := NewWorkspaceWM(spaces...)
	require.NoError(t, err)
	return ws
}

func TestWorkspaceSwitching(t *testing.T) {
	ws := newWorkspaces(t, NewMinimiseWM(screen, nil), NewMinimiseWM(screen, nil))
	addTiles(t, ws, 1, 2)

	require.NoError(t, ws.SwitchWorkspace(1))
	assert.Equal(t, 1, ws.CurrentWorkspaceIndex())
	assert.Empty(t, ws.Windows())
	assertNoFocus(t, ws)
	assert.False(t, ws.IsManaged(1))
	assert.ErrorIs(t, ws.FocusWindow(1), window.ErrUnknownWindow)

	addTiles(t, ws, 3)
	assert.Equal(t, []window.ID{3}, ws.Windows())

	require.NoError(t, ws.SwitchWorkspace(0))
	assert.Equal(t, []window.ID{1, 2}, ws.Windows())
	assert.Equal(t, window.ID(2), focused(t, ws))

	idx, ok := ws.WorkspaceOf(3)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestWorkspaceIDsAreUnique(t *testing.T) {
	ws := newWorkspaces(t, NewTilingWM(screen, nil), NewTilingWM(screen, nil))
	addTiles(t, ws, 1)

	require.NoError(t, ws.SwitchWorkspace(1))
	assert.ErrorIs(t, ws.AddWindow(window.NewTiled(1, someGeom)), window.ErrAlreadyManaged)
	assert.ErrorIs(t, ws.RemoveWindow(1), window.ErrUnknownWindow)
}

func TestWorkspaceViewCannotAddWindows(t *testing.T) {
	ws := newWorkspaces(t, NewTilingWM(screen, nil), NewTilingWM(screen, nil))
	addTiles(t, ws, 1)

	other, err := ws.Workspace(1)
	require.NoError(t, err)
	_, mutable := any(other).(WindowManager)
	assert.False(t, mutable, "workspace view exposes a mutable window manager")
	assert.False(t, other.IsManaged(1))

	var managing int
	for i := 0; i < ws.WorkspaceCount(); i++ {
		space, err := ws.Workspace(i)
		require.NoError(t, err)
		if space.IsManaged(1) {
			managing++
		}
	}
	assert.Equal(t, 1, managing)
}

func TestWorkspaceBounds(t *testing.T) {
	ws := newWorkspaces(t, NewTilingWM(screen, nil))

	for _, i := range []int{-1, 1} {
		assert.ErrorIs(t, ws.SwitchWorkspace(i), window.ErrInvalidWorkspace)
		_, err := ws.Workspace(i)
		assert.ErrorIs(t, err, window.ErrInvalidWorkspace)
	}
	addTiles(t, ws, 1)
	got, err := ws.Workspace(0)
	require.NoError(t, err)
	assert.Equal(t, ws.Current().Windows(), got.Windows())
	assert.True(t, got.IsManaged(1))

	_, err = NewWorkspaceWM()
	assert.Error(t, err)
}

func TestWorkspaceResizeAndGapReachEverySpace(t *testing.T) {
	ws := newWorkspaces(t, NewTilingWM(screen, nil), NewFloatWM(screen, nil), NewFullscreenWM(screen))
	big := window.Screen{Width: 1920, Height: 1080}

	ws.ResizeScreen(big)
	ws.SetGap(6)
	for i := 0; i < ws.WorkspaceCount(); i++ {
		space, err := ws.Workspace(i)
		require.NoError(t, err)
		assert.Equal(t, big, space.Screen())
		if gap, ok := space.Gap(); ok {
			assert.Equal(t, uint(6), gap)
		}
	}
}

func TestWorkspaceUnsupportedCapabilities(t *testing.T) {
	ws := newWorkspaces(t, NewFullscreenWM(screen))
	addTiles(t, ws, 1)

	assert.ErrorIs(t, ws.SwapWithMaster(1), ErrUnsupported)
	assert.ErrorIs(t, ws.ToggleFloating(1), ErrUnsupported)
	assert.ErrorIs(t, ws.SetWindowGeometry(1, someGeom), ErrUnsupported)
	assert.ErrorIs(t, ws.ToggleMinimised(1), ErrUnsupported)
	assert.Nil(t, ws.FloatingWindows())
	assert.Nil(t, ws.MinimisedWindows())
	assert.Equal(t, uint(0), ws.Gap())
	_, ok := ws.MasterWindow()
	assert.False(t, ok)
}

// checkInvariants asserts that every managed window is in exactly one of
// the visible layout or the minimised bucket, and that focus is sane.
func checkInvariants(t *testing.T, m *MinimiseWM) {
	t.Helper()
	managed := m.Windows()
	seen := make(map[window.ID]int)
	for _, w := range managed {
		seen[w]++
	}
	for w, n := range seen {
		require.Equal(t, 1, n, "window %d listed twice", w)
	}

	layout := m.WindowLayout()
	where := make(map[window.ID]string)
	for _, p := range layout.Windows {
		require.NotContains(t, where, p.Window, "window %d painted twice", p.Window)
		where[p.Window] = "visible"
	}
	for _, w := range m.MinimisedWindows() {
		require.NotContains(t, where, w, "window %d both visible and minimised", w)
		where[w] = "minimised"
	}
	require.Len(t, where, len(managed))
	for _, w := range managed {
		require.Contains(t, where, w)
	}

	floats := make(map[window.ID]bool)
	for _, w := range m.FloatingWindows() {
		floats[w] = true
		require.Equal(t, "visible", where[w])
	}
	var tiles []window.Geometry
	for _, p := range layout.Windows {
		if !floats[p.Window] {
			tiles = append(tiles, p.Geometry)
		}
	}
	for i := range tiles {
		for j := i + 1; j < len(tiles); j++ {
			require.False(t, tiles[i].Overlaps(tiles[j]), "tiles %v and %v overlap", tiles[i], tiles[j])
		}
	}

	if f, ok := m.FocusedWindow(); ok {
		require.Equal(t, "visible", where[f], "focused window %d must be visible", f)
	}
	if _, ok := m.MasterWindow(); ok != (len(tiles) > 0) {
		t.Fatalf("master present = %v with %d tiles", ok, len(tiles))
	}
}

func TestInvariantsUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	m := NewMinimiseWM(window.Screen{Width: 1280, Height: 720}, nil)
	dirs := []window.Direction{window.Prev, window.Next}

	for step := 0; step < 2000; step++ {
		w := window.ID(rng.Intn(8) + 1)
		switch rng.Intn(10) {
		case 0:
			g := window.Geometry{X: rng.Intn(500), Y: rng.Intn(500), Width: uint(rng.Intn(400) + 1), Height: uint(rng.Intn(400) + 1)}
			info := window.NewTiled(w, g)
			if rng.Intn(2) == 0 {
				info = window.NewFloating(w, g)
			}
			_ = m.AddWindow(info)
		case 1:
			_ = m.RemoveWindow(w)
		case 2:
			_ = m.FocusWindow(w)
		case 3:
			m.UnfocusWindow()
		case 4:
			m.CycleFocus(dirs[rng.Intn(2)])
		case 5:
			_ = m.SwapWithMaster(w)
		case 6:
			m.SwapWindows(dirs[rng.Intn(2)])
		case 7:
			_ = m.ToggleFloating(w)
		case 8:
			_ = m.ToggleMinimised(w)
		case 9:
			_ = m.SetWindowGeometry(w, someGeom)
		}
		checkInvariants(t, m)
	}
}
