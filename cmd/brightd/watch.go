package main

import (
	"brightd/internal/config"
	"brightd/internal/log"
)

// watchConfig reloads cfg's file on change and passes the result to
// onReload. Rejected edits go to onError. It returns a stop function; when
// the file cannot be watched the stop function does nothing.
func watchConfig(cfg *config.Config, onReload func(*config.Config), onError func(error)) func() {
	path := cfg.Path()
	if path == "" {
		return func() {}
	}

	w, err := config.NewWatcher(path, onReload)
	if err != nil {
		log.LogWithError(err).Debug("Config hot reload disabled")
		return func() {}
	}
	w.OnError(onError)
	if err := w.Start(); err != nil {
		log.LogWithError(err).Warn("Config hot reload disabled")
		return func() {}
	}
	return func() {
		if err := w.Stop(); err != nil {
			log.LogError(err, "Stopping config watcher")
		}
	}
}
