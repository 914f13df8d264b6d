package tray

import (
	"bytes"
	"image/png"
	"sync"
	"testing"

	"brightd/internal/screen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	mu      sync.Mutex
	shown   bool
	closed  int
	resized [][2]int
}

func (w *fakeWindow) Show()  { w.mu.Lock(); w.shown = true; w.mu.Unlock() }
func (w *fakeWindow) Hide()  { w.mu.Lock(); w.shown = false; w.mu.Unlock() }
func (w *fakeWindow) Close() { w.mu.Lock(); w.closed++; w.mu.Unlock() }
func (w *fakeWindow) Resize(width, height int) {
	w.mu.Lock()
	w.resized = append(w.resized, [2]int{width, height})
	w.mu.Unlock()
}

func TestStateVisibility(t *testing.T) {
	win := &fakeWindow{}
	s := NewState(win, false)
	assert.False(t, s.Visible())

	s.Show()
	assert.True(t, s.Visible())
	assert.True(t, win.shown)

	s.Hide()
	assert.False(t, s.Visible())
	assert.False(t, win.shown)

	assert.True(t, s.Toggle())
	assert.False(t, s.Toggle())
}

func TestStateQuitRunsOnce(t *testing.T) {
	win := &fakeWindow{}
	s := NewState(win, true)
	hooks := 0
	s.OnQuit(func() { hooks++ })

	s.Quit()
	s.Quit()
	assert.Equal(t, 1, hooks)
	assert.Equal(t, 1, win.closed)
	assert.False(t, s.Visible())
}

func TestStateConcurrentAccess(t *testing.T) {
	s := NewState(&fakeWindow{}, false)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); s.Toggle() }()
		go func() { defer wg.Done(); s.Reposition(screen.Geometry{Width: 10, Height: 10}) }()
	}
	wg.Wait()
	assert.Equal(t, screen.Geometry{Width: 10, Height: 10}, s.Geometry())
}

func TestMenu(t *testing.T) {
	win := &fakeWindow{}
	s := NewState(win, false)
	items := Menu(s, MenuOptions{
		Reposition: true,
		ScreenSize: func() screen.Size { return screen.Size{Width: 1280, Height: 800} },
		Width:      360,
		Height:     420,
		Margin:     40,
	})
	require.Len(t, items, 2)
	assert.Equal(t, LabelOpen, items[0].Label)
	assert.Equal(t, LabelExit, items[1].Label)

	items[0].Action()
	assert.True(t, s.Visible())
	assert.Equal(t, [][2]int{{360, 420}}, win.resized)
	assert.Equal(t, screen.Geometry{X: 880, Y: 340, Width: 360, Height: 420}, s.Geometry())

	items[1].Action()
	assert.Equal(t, 1, win.closed)
	assert.False(t, s.Visible())
}

func TestMenuOpenDefaultsScreenSize(t *testing.T) {
	win := &fakeWindow{}
	s := NewState(win, false)
	items := Menu(s, MenuOptions{Reposition: true, Width: 360, Height: 420})

	items[0].Action()
	assert.Equal(t, screen.Geometry{X: 1560, Y: 660, Width: 360, Height: 420}, s.Geometry())
}

func TestMenuOpenWithoutReposition(t *testing.T) {
	win := &fakeWindow{}
	s := NewState(win, false)
	Menu(s, MenuOptions{})[0].Action()
	assert.True(t, win.shown)
	assert.Empty(t, win.resized)
}

func TestIcon(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(Icon()))
	require.NoError(t, err)
	assert.Equal(t, IconSize, img.Bounds().Dx())
	assert.Equal(t, IconSize, img.Bounds().Dy())

	r, g, b, _ := img.At(IconSize/2, IconSize/2).RGBA()
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, g, b})
	r, _, _, _ = img.At(0, 0).RGBA()
	assert.Less(t, r, uint32(0x2000))
}
