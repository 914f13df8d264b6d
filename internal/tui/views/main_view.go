package views

import (
	"fmt"
	"strings"

	"brightd/internal/tui/common"
	"brightd/internal/tui/components"
	"brightd/internal/tui/styles"
)

func RenderMainView(m common.ModelReader) string {
	var sb strings.Builder

	sb.WriteString(styles.Theme.Title.Render("Brightness Controller"))
	sb.WriteString("\n")

	bar := components.NewLevelBar(components.DefaultBarWidth)
	for _, row := range m.Rows() {
		if row.Selected {
			sb.WriteString(styles.Theme.Selected.Render("> " + row.Label))
		} else {
			sb.WriteString(styles.Theme.Unselected.Render("  " + row.Label))
		}
		sb.WriteString("\n  " + bar.View(row.Fraction) + "\n")
	}

	sb.WriteString("\n" + renderPresets(m) + "\n")

	saver := "off"
	if m.BatterySaver() {
		saver = "on"
	}
	sb.WriteString("Battery saver: " + saver + "\n")

	status := components.NewStatusBar()
	status.SetText(m.Status(), m.StatusIsError())
	if s := status.View(); s != "" {
		sb.WriteString("\n" + s + "\n")
	}

	if m.ShowHelp() {
		sb.WriteString("\n" + RenderHelp())
	}
	sb.WriteString("\n" + RenderKeyCommands())

	return styles.Theme.App.Render(sb.String())
}

func renderPresets(m common.ModelReader) string {
	presets := m.Presets()
	if len(presets) == 0 {
		return styles.Theme.Help.Render("(no presets)")
	}
	parts := make([]string, 0, len(presets))
	for i, p := range presets {
		if i >= 9 {
			break
		}
		parts = append(parts, styles.Theme.Preset.Render(fmt.Sprintf("%d %s %d%%", i+1, p.Name, p.Level)))
	}
	return strings.Join(parts, " ")
}

func RenderKeyCommands() string {
	return styles.Theme.Help.Render(`[↑/k] Prev  [↓/j] Next  [←/→] -/+ step  [1-9] Preset  [b] Battery saver  [q] Quit  [?] Help`)
}

func RenderHelp() string {
	return styles.Theme.Help.Render(`Keys:
  ↑/k ↓/j           select monitor (applies the current level to it)
  ←/h →/l ctrl+↑/↓  change brightness by the configured step
  1-9               apply preset
  b                 toggle battery saver
  r                 re-read brightness from hardware
  R                 re-read every monitor
  q / esc           quit
`)
}
