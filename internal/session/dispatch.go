package session

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/surface"
)

var (
	// ErrCommandFailed wraps every error a command returns to the transport.
	ErrCommandFailed = errors.New("session: command failed")
	// ErrUnknownCommand is returned for command names nothing handles.
	ErrUnknownCommand = errors.New("session: unknown command")
	// ErrBadArgument is returned when a command's arguments do not decode.
	ErrBadArgument = errors.New("session: bad argument")
)

// Inbound command names.
const (
	CmdPrepare               = "prepare"
	CmdPrepareFromMediaID    = "prepareFromMediaId"
	CmdPlay                  = "play"
	CmdPlayFromMediaID       = "playFromMediaId"
	CmdPlayMediaItem         = "playMediaItem"
	CmdPause                 = "pause"
	CmdClick                 = "click"
	CmdStop                  = "stop"
	CmdAddQueueItem          = "addQueueItem"
	CmdAddQueueItems         = "addQueueItems"
	CmdInsertQueueItem       = "insertQueueItem"
	CmdUpdateQueue           = "updateQueue"
	CmdReplaceQueueRange     = "replaceQueueRange"
	CmdUpdateMediaItem       = "updateMediaItem"
	CmdRemoveQueueItem       = "removeQueueItem"
	CmdRemoveQueueItemAt     = "removeQueueItemAt"
	CmdSkipToNext            = "skipToNext"
	CmdSkipToPrevious        = "skipToPrevious"
	CmdSkipToQueueItem       = "skipToQueueItem"
	CmdFastForward           = "fastForward"
	CmdRewind                = "rewind"
	CmdSeekTo                = "seekTo"
	CmdSeekForward           = "seekForward"
	CmdSeekBackward          = "seekBackward"
	CmdSetRating             = "setRating"
	CmdSetRepeatMode         = "setRepeatMode"
	CmdSetShuffleMode        = "setShuffleMode"
	CmdSetSpeed              = "setSpeed"
	CmdOnTaskRemoved         = "onTaskRemoved"
	CmdOnNotificationDeleted = "onNotificationDeleted"
	CmdGetChildren           = "getChildren"
	CmdGetMediaItem          = "getMediaItem"
	CmdSearch                = "search"

	// CustomActionPrefix namespaces custom actions: "customAction:<name>"
	// with an optional map argument.
	CustomActionPrefix = "customAction:"
)

var _ surface.Dispatcher = (*Session)(nil)

type command func(ctx context.Context, s *Session, a args) (any, error)

// noResult adapts a handler command without a reply.
func noResult(fn func(ctx context.Context, h playback.Handler, a args) error) command {
	return func(ctx context.Context, s *Session, a args) (any, error) {
		return nil, fn(ctx, s.handler, a)
	}
}

var commands = map[string]command{
	CmdPrepare: noResult(func(ctx context.Context, h playback.Handler, _ args) error {
		return h.Prepare(ctx)
	}),
	CmdPrepareFromMediaID: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		id, err := a.str(0)
		if err != nil {
			return err
		}
		extras, err := a.extras(1)
		if err != nil {
			return err
		}
		return h.PrepareFromMediaID(ctx, id, extras)
	}),
	CmdPlay: noResult(func(ctx context.Context, h playback.Handler, _ args) error {
		return h.Play(ctx)
	}),
	CmdPlayFromMediaID: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		id, err := a.str(0)
		if err != nil {
			return err
		}
		extras, err := a.extras(1)
		if err != nil {
			return err
		}
		return h.PlayFromMediaID(ctx, id, extras)
	}),
	CmdPlayMediaItem: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		item, err := a.item(0)
		if err != nil {
			return err
		}
		return h.PlayMediaItem(ctx, item)
	}),
	CmdPause: noResult(func(ctx context.Context, h playback.Handler, _ args) error {
		return h.Pause(ctx)
	}),
	CmdClick: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		button := playback.ButtonMedia
		if len(a) > 0 {
			var err error
			if button, err = a.button(0); err != nil {
				return err
			}
		}
		return h.Click(ctx, button)
	}),
	CmdStop: noResult(func(ctx context.Context, h playback.Handler, _ args) error {
		return h.Stop(ctx)
	}),
	CmdAddQueueItem: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		item, err := a.item(0)
		if err != nil {
			return err
		}
		return h.AddQueueItem(ctx, item)
	}),
	CmdAddQueueItems: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		items, err := a.items(0)
		if err != nil {
			return err
		}
		return h.AddQueueItems(ctx, items)
	}),
	CmdInsertQueueItem: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		index, err := a.integer(0)
		if err != nil {
			return err
		}
		item, err := a.item(1)
		if err != nil {
			return err
		}
		return h.InsertQueueItem(ctx, index, item)
	}),
	CmdUpdateQueue: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		items, err := a.items(0)
		if err != nil {
			return err
		}
		return h.UpdateQueue(ctx, items)
	}),
	CmdReplaceQueueRange: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		start, err := a.integer(0)
		if err != nil {
			return err
		}
		end, err := a.integer(1)
		if err != nil {
			return err
		}
		items, err := a.items(2)
		if err != nil {
			return err
		}
		return h.ReplaceQueueRange(ctx, start, end, items)
	}),
	CmdUpdateMediaItem: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		item, err := a.item(0)
		if err != nil {
			return err
		}
		return h.UpdateMediaItem(ctx, item)
	}),
	CmdRemoveQueueItem: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		item, err := a.item(0)
		if err != nil {
			return err
		}
		return h.RemoveQueueItem(ctx, item)
	}),
	CmdRemoveQueueItemAt: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		index, err := a.integer(0)
		if err != nil {
			return err
		}
		return h.RemoveQueueItemAt(ctx, index)
	}),
	CmdSkipToNext: noResult(func(ctx context.Context, h playback.Handler, _ args) error {
		return h.SkipToNext(ctx)
	}),
	CmdSkipToPrevious: noResult(func(ctx context.Context, h playback.Handler, _ args) error {
		return h.SkipToPrevious(ctx)
	}),
	CmdSkipToQueueItem: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		id, err := a.str(0)
		if err != nil {
			return err
		}
		return h.SkipToQueueItem(ctx, id)
	}),
	CmdFastForward: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		interval, err := a.duration(0)
		if err != nil {
			return err
		}
		return h.FastForward(ctx, interval)
	}),
	CmdRewind: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		interval, err := a.duration(0)
		if err != nil {
			return err
		}
		return h.Rewind(ctx, interval)
	}),
	CmdSeekTo: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		if _, err := a.at(0); err != nil {
			return err
		}
		pos, err := a.duration(0)
		if err != nil {
			return err
		}
		return h.SeekTo(ctx, pos)
	}),
	CmdSeekForward: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		begin, err := a.flag(0)
		if err != nil {
			return err
		}
		return h.SeekForward(ctx, begin)
	}),
	CmdSeekBackward: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		begin, err := a.flag(0)
		if err != nil {
			return err
		}
		return h.SeekBackward(ctx, begin)
	}),
	CmdSetRating: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		rating, err := a.rating(0)
		if err != nil {
			return err
		}
		extras, err := a.extras(1)
		if err != nil {
			return err
		}
		return h.SetRating(ctx, rating, extras)
	}),
	CmdSetRepeatMode: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		mode, err := a.repeatMode(0)
		if err != nil {
			return err
		}
		return h.SetRepeatMode(ctx, mode)
	}),
	CmdSetShuffleMode: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		mode, err := a.shuffleMode(0)
		if err != nil {
			return err
		}
		return h.SetShuffleMode(ctx, mode)
	}),
	CmdSetSpeed: noResult(func(ctx context.Context, h playback.Handler, a args) error {
		speed, err := a.number(0)
		if err != nil {
			return err
		}
		return h.SetSpeed(ctx, speed)
	}),
	CmdOnTaskRemoved: noResult(func(ctx context.Context, h playback.Handler, _ args) error {
		return h.OnTaskRemoved(ctx)
	}),
	CmdOnNotificationDeleted: noResult(func(ctx context.Context, h playback.Handler, _ args) error {
		return h.OnNotificationDeleted(ctx)
	}),
	CmdGetChildren: func(ctx context.Context, s *Session, a args) (any, error) {
		parentID := playback.RootID
		if len(a) > 0 && a[0] != nil {
			var err error
			if parentID, err = a.str(0); err != nil {
				return nil, err
			}
		}
		children, err := s.Children(ctx, parentID)
		if err != nil {
			return nil, err
		}
		return media.Records(children.Value()), nil
	},
	CmdGetMediaItem: func(ctx context.Context, s *Session, a args) (any, error) {
		id, err := a.str(0)
		if err != nil {
			return nil, err
		}
		item, err := s.handler.GetMediaItem(ctx, id)
		if err != nil || item == nil {
			return nil, err
		}
		return item.Record(), nil
	},
	CmdSearch: func(ctx context.Context, s *Session, a args) (any, error) {
		query, err := a.str(0)
		if err != nil {
			return nil, err
		}
		extras, err := a.extras(1)
		if err != nil {
			return nil, err
		}
		items, err := s.handler.Search(ctx, query, extras)
		if err != nil {
			return nil, err
		}
		return media.Records(items), nil
	},
}

// Dispatch runs the named command on the handler chain. Failures, including
// panics, are logged and returned wrapped in ErrCommandFailed; published
// state is left as the failing command left it.
func (s *Session) Dispatch(ctx context.Context, name string, arguments ...any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("command panicked",
				"command", name,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			result, err = nil, fmt.Errorf("%w: %s: panic: %v", ErrCommandFailed, name, r)
		}
	}()

	if s.ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCommandFailed, name, ErrClosed)
	}

	result, err = s.run(ctx, name, args(arguments))
	if err != nil {
		s.logger.Warn("command failed", "command", name, "error", err)
		return nil, fmt.Errorf("%w: %s: %w", ErrCommandFailed, name, err)
	}
	s.logger.Debug("command", "command", name)
	return result, nil
}

func (s *Session) run(ctx context.Context, name string, a args) (any, error) {
	if action, ok := strings.CutPrefix(name, CustomActionPrefix); ok {
		extras, err := a.extras(0)
		if err != nil {
			return nil, err
		}
		return s.handler.CustomAction(ctx, action, extras)
	}
	cmd, ok := commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return cmd(ctx, s, a)
}
