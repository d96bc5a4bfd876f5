//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/session"
)

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and optional
// interfaces. Commands go through the session dispatcher.
type playerAdapter struct {
	a *Adapter
}

func (p *playerAdapter) Next() error {
	return p.a.dispatch(session.CmdSkipToNext)
}

func (p *playerAdapter) Previous() error {
	return p.a.dispatch(session.CmdSkipToPrevious)
}

func (p *playerAdapter) Pause() error {
	return p.a.dispatch(session.CmdPause)
}

func (p *playerAdapter) PlayPause() error {
	if p.a.snapshot().playing() {
		return p.a.dispatch(session.CmdPause)
	}
	return p.a.dispatch(session.CmdPlay)
}

func (p *playerAdapter) Stop() error {
	return p.a.dispatch(session.CmdStop)
}

func (p *playerAdapter) Play() error {
	return p.a.dispatch(session.CmdPlay)
}

// Seek moves relative to the current position.
func (p *playerAdapter) Seek(offset types.Microseconds) error {
	d := time.Duration(offset) * time.Microsecond
	switch {
	case d > 0:
		return p.a.dispatch(session.CmdFastForward, d)
	case d < 0:
		return p.a.dispatch(session.CmdRewind, -d)
	default:
		return nil
	}
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	snap := p.a.snapshot()
	if string(trackObjectPath(snap.str(media.KeyID))) != trackID {
		return nil // Stale request for another track
	}
	return p.a.dispatch(session.CmdSeekTo, time.Duration(position)*time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	snap := p.a.snapshot()
	switch {
	case snap.stopped():
		return types.PlaybackStatusStopped, nil
	case snap.playing():
		return types.PlaybackStatusPlaying, nil
	default:
		return types.PlaybackStatusPaused, nil
	}
}

func (p *playerAdapter) Rate() (float64, error) {
	if speed := p.a.snapshot().status.Speed; speed > 0 {
		return speed, nil
	}
	return 1.0, nil
}

func (p *playerAdapter) SetRate(rate float64) error {
	return p.a.dispatch(session.CmdSetSpeed, rate)
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.a.snapshot()
	id := snap.str(media.KeyID)
	if id == "" {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId:     trackObjectPath(id),
		Length:      types.Microseconds(snap.duration().Microseconds()),
		Title:       snap.str(media.KeyTitle),
		Album:       snap.str(media.KeyAlbum),
		TrackNumber: snap.trackNumber(),
		ArtUrl:      snap.artURL(),
	}
	if artist := snap.str(media.KeyArtist); artist != "" {
		meta.Artist = []string{artist}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil // Volume is left to the system mixer
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.a.snapshot().position(time.Now()).Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.a.snapshot().hasNext(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.a.snapshot().hasPrevious(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	snap := p.a.snapshot()
	return snap.item != nil || len(snap.queue) > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.a.snapshot().item != nil, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.a.snapshot().hasAction(playback.ActionSeek), nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	switch playback.RepeatMode(p.a.snapshot().status.RepeatMode) {
	case playback.RepeatOne:
		return types.LoopStatusTrack, nil
	case playback.RepeatAll, playback.RepeatGroup:
		return types.LoopStatusPlaylist, nil
	case playback.RepeatNone:
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	mode := playback.RepeatNone
	switch status {
	case types.LoopStatusTrack:
		mode = playback.RepeatOne
	case types.LoopStatusPlaylist:
		mode = playback.RepeatAll
	case types.LoopStatusNone:
	}
	return p.a.dispatch(session.CmdSetRepeatMode, int(mode))
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return playback.ShuffleMode(p.a.snapshot().status.ShuffleMode) != playback.ShuffleNone, nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	mode := playback.ShuffleNone
	if shuffle {
		mode = playback.ShuffleAll
	}
	return p.a.dispatch(session.CmdSetShuffleMode, int(mode))
}

func trackObjectPath(id string) dbus.ObjectPath {
	h := fnv.New64a()
	h.Write([]byte(id))
	return dbus.ObjectPath(fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64()))
}
