//go:build windows

// Package stderr is a no-op on Windows, where the audio backend does not
// write to fd 2.
package stderr

import "log/slog"

// Messages never receives on Windows.
var Messages = make(chan string)

func Start(*slog.Logger) error { return nil }

func Stop() {}
