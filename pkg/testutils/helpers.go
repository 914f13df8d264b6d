package testutils

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateBacklightDevice creates a fake sysfs backlight device under root with
// the given raw brightness and max_brightness values.
func CreateBacklightDevice(t *testing.T, root, name string, brightness, maxBrightness int) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	files := map[string]string{
		"brightness":        strconv.Itoa(brightness) + "\n",
		"max_brightness":    strconv.Itoa(maxBrightness) + "\n",
		"actual_brightness": strconv.Itoa(brightness) + "\n",
		"type":              "raw\n",
	}
	for file, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0644))
	}
	return dir
}

// ReadRawBrightness returns the raw value currently stored in a fake device.
func ReadRawBrightness(t *testing.T, root, name string) int {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, name, "brightness"))
	require.NoError(t, err)
	v, err := strconv.Atoi(string(trimNewline(data)))
	require.NoError(t, err)
	return v
}

// CreateDRMConnector creates a fake /sys/class/drm connector with a status
// and a modes file listing the given modes, preferred first.
func CreateDRMConnector(t *testing.T, root, name, status string, modes ...string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "status"), []byte(status+"\n"), 0644))
	content := ""
	for _, m := range modes {
		content += m + "\n"
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "modes"), []byte(content), 0644))
	return dir
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == ' ') {
		b = b[:len(b)-1]
	}
	return b
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	var result []rune
	inEscape := false
	for _, r := range str {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
