// Package screen discovers the screen size and computes where the brightness
// window goes when it is opened from the tray.
package screen

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"brightd/internal/log"
)

// DefaultDRMDir is where the kernel lists display connectors.
const DefaultDRMDir = "/sys/class/drm"

// Used when no connected display reports a mode.
const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// Size is a screen resolution in pixels.
type Size struct {
	Width  int
	Height int
}

// Default returns the 1920x1080 fallback size.
func Default() Size {
	return Size{Width: DefaultWidth, Height: DefaultHeight}
}

// Detect returns the preferred mode of the first connected connector under
// root, or Default when none can be read.
func Detect(root string) Size {
	statuses, err := filepath.Glob(filepath.Join(root, "*", "status"))
	if err != nil || len(statuses) == 0 {
		return Default()
	}
	sort.Strings(statuses)

	for _, status := range statuses {
		data, err := os.ReadFile(status)
		if err != nil || strings.TrimSpace(string(data)) != "connected" {
			continue
		}
		connector := filepath.Dir(status)
		size, err := preferredMode(filepath.Join(connector, "modes"))
		if err != nil {
			log.Debugf("Skipping connector %s: %v", filepath.Base(connector), err)
			continue
		}
		return size
	}
	return Default()
}

// preferredMode parses the first line of a DRM modes file ("2560x1440").
func preferredMode(path string) (Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return Size{}, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return Size{}, fmt.Errorf("no modes listed")
	}
	return ParseMode(scanner.Text())
}

// ParseMode parses "WIDTHxHEIGHT", ignoring any suffix such as "i".
func ParseMode(mode string) (Size, error) {
	var s Size
	mode = strings.TrimSpace(mode)
	if _, err := fmt.Sscanf(mode, "%dx%d", &s.Width, &s.Height); err != nil {
		return Size{}, fmt.Errorf("invalid mode %q: %w", mode, err)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return Size{}, fmt.Errorf("invalid mode %q", mode)
	}
	return s, nil
}

// Geometry is a window rectangle in screen coordinates.
type Geometry struct {
	X, Y          int
	Width, Height int
}

// WindowGeometry anchors a width x height window at the bottom-right corner
// of the screen, margin pixels from each edge, shrinking it to fit.
func WindowGeometry(screen Size, width, height, margin int) Geometry {
	if screen.Width <= 0 || screen.Height <= 0 {
		screen = Default()
	}
	if margin < 0 {
		margin = 0
	}

	g := Geometry{Width: width, Height: height}
	if maxW := screen.Width - 2*margin; g.Width > maxW {
		g.Width = maxW
	}
	if maxH := screen.Height - 2*margin; g.Height > maxH {
		g.Height = maxH
	}
	if g.Width < 1 {
		g.Width = 1
	}
	if g.Height < 1 {
		g.Height = 1
	}

	g.X = screen.Width - g.Width - margin
	g.Y = screen.Height - g.Height - margin
	if g.X < 0 {
		g.X = 0
	}
	if g.Y < 0 {
		g.Y = 0
	}
	return g
}
