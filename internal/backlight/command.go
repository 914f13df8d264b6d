package backlight

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// CommandWriter shells out to brightnessctl, which handles permissions via
// its own setuid/udev setup.
type CommandWriter struct {
	run func(name string, args ...string) ([]byte, error)
}

// NewCommandWriter creates a writer that runs the brightnessctl binary.
func NewCommandWriter() *CommandWriter {
	return &CommandWriter{run: func(name string, args ...string) ([]byte, error) {
		return exec.Command(name, args...).CombinedOutput()
	}}
}

func (w *CommandWriter) Write(dev Device, raw int) error {
	args := []string{"--quiet", "--device=" + dev.Name, "set", strconv.Itoa(raw)}
	out, err := w.run("brightnessctl", args...)
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("brightnessctl: %w: %s", err, msg)
		}
		return fmt.Errorf("brightnessctl: %w", err)
	}
	return nil
}
