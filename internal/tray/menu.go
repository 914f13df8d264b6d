package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"brightd/internal/screen"
)

const (
	LabelOpen = "Open"
	LabelExit = "Exit"
)

// MenuItem is a toolkit-neutral tray menu entry.
type MenuItem struct {
	Label  string
	Action func()
}

// MenuOptions controls what Open does besides showing the window.
type MenuOptions struct {
	Reposition bool
	ScreenSize func() screen.Size
	Width      int
	Height     int
	Margin     int
}

// Menu returns the {Open, Exit} tray menu bound to state.
func Menu(state *State, opts MenuOptions) []MenuItem {
	open := func() {
		if opts.Reposition {
			size := screen.Default()
			if opts.ScreenSize != nil {
				size = opts.ScreenSize()
			}
			state.Reposition(screen.WindowGeometry(size, opts.Width, opts.Height, opts.Margin))
		}
		state.Show()
	}
	return []MenuItem{
		{Label: LabelOpen, Action: open},
		{Label: LabelExit, Action: state.Quit},
	}
}

// IconSize is the edge length of the tray icon in pixels.
const IconSize = 64

// Icon renders the tray icon: a white square with a dark frame. The result
// is PNG encoded.
func Icon() []byte {
	img := image.NewNRGBA(image.Rect(0, 0, IconSize, IconSize))
	frame := color.NRGBA{R: 18, G: 18, B: 18, A: 255}
	fill := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	const border = 4
	for y := 0; y < IconSize; y++ {
		for x := 0; x < IconSize; x++ {
			if x < border || y < border || x >= IconSize-border || y >= IconSize-border {
				img.SetNRGBA(x, y, frame)
			} else {
				img.SetNRGBA(x, y, fill)
			}
		}
	}

	var buf bytes.Buffer
	// Encoding an in-memory NRGBA image cannot fail
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
