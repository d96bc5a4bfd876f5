// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpConfigLoad   Op = "load configuration"
	OpLogSetup     Op = "set up logging"
	OpArtworkOpen  Op = "open artwork cache"
	OpSessionOpen  Op = "open playback session"
	OpSurfaceStart Op = "start control surface"

	// Browsing
	OpBrowse Op = "browse library"
	OpSearch Op = "search library"

	// Playback
	OpPlaybackStart Op = "start playback"
	OpPlaybackPause Op = "pause playback"
	OpPlaybackStop  Op = "stop playback"
	OpPlaybackSeek  Op = "seek"
	OpPlaybackSkip  Op = "skip track"
	OpPlaybackMode  Op = "change playback mode"
	OpRate          Op = "rate track"

	// Queue
	OpQueueAdd    Op = "add to queue"
	OpQueueRemove Op = "remove from queue"
	OpQueueClear  Op = "clear queue"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, cause(err))
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, cause(err))
}

// cause drops the outer wrapping layers that only repeat the operation,
// keeping the innermost message that still reads on its own.
func cause(err error) error {
	var unwrapped interface{ Unwrap() []error }
	if errors.As(err, &unwrapped) {
		if errs := unwrapped.Unwrap(); len(errs) > 0 {
			return errs[len(errs)-1]
		}
	}
	return err
}
