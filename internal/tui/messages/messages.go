package messages

import (
	"brightd/internal/config"
)

// ErrorMsg reports a failure from outside the model, such as a rejected
// config edit.
type ErrorMsg struct {
	Err error
}

// ConfigUpdateMsg carries a configuration reloaded from disk.
type ConfigUpdateMsg struct {
	Config *config.Config
}
