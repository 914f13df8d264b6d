package components

import (
	"brightd/internal/tui/styles"
)

type StatusBar struct {
	text    string
	isError bool
}

func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetText shows text; isError switches to the error style.
func (s *StatusBar) SetText(text string, isError bool) {
	s.text = text
	s.isError = isError
}

func (s *StatusBar) View() string {
	if s.text == "" {
		return ""
	}
	if s.isError {
		return styles.Theme.Error.Render(s.text)
	}
	return styles.Theme.Status.Render(s.text)
}
