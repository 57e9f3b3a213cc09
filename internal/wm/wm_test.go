package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/tilecore/internal/tiling"
	"github.com/1broseidon/tilecore/internal/window"
)

var (
	someGeom = window.Geometry{X: 10, Y: 10, Width: 100, Height: 100}
	screen   = window.Screen{Width: 800, Height: 600}
)

// factories builds one fresh window manager of every kind.
func factories() map[string]func() WindowManager {
	return map[string]func() WindowManager{
		"fullscreen": func() WindowManager { return NewFullscreenWM(screen) },
		"tiling":     func() WindowManager { return NewTilingWM(screen, nil) },
		"floating":   func() WindowManager { return NewFloatWM(screen, nil) },
		"minimising": func() WindowManager { return NewMinimiseWM(screen, nil) },
		"workspaces": func() WindowManager {
			ws, err := NewWorkspaceWM(NewMinimiseWM(screen, nil), NewMinimiseWM(screen, nil))
			if err != nil {
				panic(err)
			}
			return ws
		},
	}
}

func forEach(t *testing.T, test func(t *testing.T, m WindowManager)) {
	for name, build := range factories() {
		t.Run(name, func(t *testing.T) {
			test(t, build())
		})
	}
}

func addTiles(t *testing.T, m WindowManager, ids ...window.ID) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, m.AddWindow(window.NewTiled(id, someGeom)))
	}
}

func focused(t *testing.T, m WindowManager) window.ID {
	t.Helper()
	w, ok := m.FocusedWindow()
	require.True(t, ok, "expected a focused window")
	l, ok := m.WindowLayout().FocusedWindow()
	require.True(t, ok, "layout should report the focus too")
	require.Equal(t, w, l)
	return w
}

func assertNoFocus(t *testing.T, m WindowManager) {
	t.Helper()
	_, ok := m.FocusedWindow()
	assert.False(t, ok)
	assert.Nil(t, m.WindowLayout().Focused)
}

func TestEmpty(t *testing.T) {
	forEach(t, func(t *testing.T, m WindowManager) {
		assert.Equal(t, window.NewLayout(0, false, nil), m.WindowLayout())
		assert.Empty(t, m.Windows())
		assert.Equal(t, screen, m.Screen())
	})
}

func TestAddingAndRemovingWindows(t *testing.T) {
	forEach(t, func(t *testing.T, m WindowManager) {
		require.NoError(t, m.AddWindow(window.NewTiled(1, someGeom)))
		assert.True(t, m.IsManaged(1))
		assert.Equal(t, []window.ID{1}, m.Windows())
		assert.Equal(t, window.ID(1), focused(t, m))

		require.NoError(t, m.AddWindow(window.NewTiled(2, someGeom)))
		assert.Equal(t, []window.ID{1, 2}, m.Windows())
		assert.Equal(t, window.ID(2), focused(t, m))

		require.NoError(t, m.RemoveWindow(1))
		assert.False(t, m.IsManaged(1))
		assert.Equal(t, []window.ID{2}, m.Windows())
		assert.Equal(t, window.ID(2), focused(t, m))

		require.NoError(t, m.AddWindow(window.NewTiled(1, someGeom)))
		assert.Equal(t, window.ID(1), focused(t, m))
		require.NoError(t, m.RemoveWindow(1))
		assert.Equal(t, []window.ID{2}, m.Windows())
		assert.Equal(t, window.ID(2), focused(t, m))

		assert.ErrorIs(t, m.AddWindow(window.NewTiled(2, someGeom)), window.ErrAlreadyManaged)
		assert.ErrorIs(t, m.RemoveWindow(300), window.ErrUnknownWindow)
	})
}

func TestFocusAndUnfocus(t *testing.T) {
	forEach(t, func(t *testing.T, m WindowManager) {
		assertNoFocus(t, m)

		addTiles(t, m, 1)
		assert.Equal(t, window.ID(1), focused(t, m))

		m.UnfocusWindow()
		assertNoFocus(t, m)

		require.NoError(t, m.FocusWindow(1))
		assert.Equal(t, window.ID(1), focused(t, m))

		assert.ErrorIs(t, m.FocusWindow(404), window.ErrUnknownWindow)
		assert.Equal(t, window.ID(1), focused(t, m))
	})
}

func TestCycleFocusNoneAndOne(t *testing.T) {
	forEach(t, func(t *testing.T, m WindowManager) {
		m.CycleFocus(window.Next)
		assertNoFocus(t, m)
		m.CycleFocus(window.Prev)
		assertNoFocus(t, m)

		addTiles(t, m, 1)
		for _, dir := range []window.Direction{window.Next, window.Prev} {
			m.CycleFocus(dir)
			assert.Equal(t, window.ID(1), focused(t, m))
			m.UnfocusWindow()
			m.CycleFocus(dir)
			assert.Equal(t, window.ID(1), focused(t, m))
		}
	})
}

func TestCycleFocusMultiple(t *testing.T) {
	forEach(t, func(t *testing.T, m WindowManager) {
		addTiles(t, m, 1, 2, 3)
		assert.Equal(t, window.ID(3), focused(t, m))

		m.CycleFocus(window.Prev)
		assert.Equal(t, window.ID(2), focused(t, m))
		m.CycleFocus(window.Next)
		assert.Equal(t, window.ID(3), focused(t, m))
		m.CycleFocus(window.Next)
		assert.Equal(t, window.ID(1), focused(t, m))

		m.UnfocusWindow()
		m.CycleFocus(window.Prev)
		assert.Equal(t, window.ID(1), focused(t, m))
	})
}

func TestResizeScreen(t *testing.T) {
	forEach(t, func(t *testing.T, m WindowManager) {
		big := window.Screen{Width: 1000, Height: 1000}
		m.ResizeScreen(big)
		assert.Equal(t, big, m.Screen())
	})
}

func TestWindowInfo(t *testing.T) {
	forEach(t, func(t *testing.T, m WindowManager) {
		addTiles(t, m, 1, 2, 3)
		for _, w := range m.Windows() {
			_, err := m.WindowInfo(w)
			assert.NoError(t, err, "window %d", w)
		}
		_, err := m.WindowInfo(300)
		assert.ErrorIs(t, err, window.ErrUnknownWindow)
	})
}

func TestFullscreenShowsOnlyFocused(t *testing.T) {
	m := NewFullscreenWM(screen)
	addTiles(t, m, 1, 2)

	layout := m.WindowLayout()
	assert.Equal(t, []window.Placement{{Window: 2, Geometry: screen.Geometry()}}, layout.Windows)

	info, err := m.WindowInfo(1)
	require.NoError(t, err)
	assert.True(t, info.Fullscreen)
	assert.Equal(t, screen.Geometry(), info.Geometry)

	m.UnfocusWindow()
	assert.Empty(t, m.WindowLayout().Windows)
}

func TestNew(t *testing.T) {
	for _, variant := range Variants() {
		m, err := New(Options{Screen: screen, Variant: variant, Layout: tiling.NameGrid, Gap: 4})
		require.NoError(t, err, variant)
		assert.Equal(t, screen, m.Screen())
		if g, ok := As[GapSupport](m); ok {
			assert.Equal(t, uint(4), g.Gap())
		}
	}

	m, err := New(Options{Screen: screen, Workspaces: 3})
	require.NoError(t, err)
	ws, ok := As[MultiWorkspaceSupport](m)
	require.True(t, ok)
	assert.Equal(t, 3, ws.WorkspaceCount())

	_, err = New(Options{Screen: screen, Variant: "tabbed"})
	assert.Error(t, err)
	_, err = New(Options{Screen: screen, Layout: "spiral"})
	assert.Error(t, err)
}

func TestAs(t *testing.T) {
	_, ok := As[TilingSupport](NewFullscreenWM(screen))
	assert.False(t, ok)
	_, ok = As[FloatSupport](NewTilingWM(screen, nil))
	assert.False(t, ok)
	_, ok = As[MinimiseSupport](NewMinimiseWM(screen, nil))
	assert.True(t, ok)

	ws, err := NewWorkspaceWM(NewTilingWM(screen, nil), NewFullscreenWM(screen))
	require.NoError(t, err)
	_, ok = As[TilingSupport](ws)
	assert.True(t, ok)
	_, ok = As[FloatSupport](ws)
	assert.False(t, ok)

	require.NoError(t, ws.SwitchWorkspace(1))
	_, ok = As[TilingSupport](ws)
	assert.False(t, ok)
	_, ok = As[MultiWorkspaceSupport](ws)
	assert.True(t, ok)
}
