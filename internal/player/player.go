package player

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

// Player plays local audio files through the default output device.
type Player struct {
	mu        sync.Mutex
	state     State
	ctrl      *beep.Ctrl
	volume    *effects.Volume
	streamer  beep.StreamSeekCloser
	format    beep.Format
	trackInfo *TrackInfo
	// generation guards the end-of-track callback against a track that has
	// since been replaced.
	generation uint64
	finishedCh chan struct{}
}

var (
	speakerOnce       sync.Once
	speakerErr        error
	speakerSampleRate beep.SampleRate
)

func New() *Player {
	return &Player{
		state:      Stopped,
		finishedCh: make(chan struct{}, 1),
	}
}

func initSpeaker(rate beep.SampleRate) error {
	speakerOnce.Do(func() {
		speakerSampleRate = rate
		speakerErr = speaker.Init(rate, rate.N(time.Second/10))
	})
	return speakerErr
}

// Play starts playback of the given audio file.
func (p *Player) Play(path string) error {
	p.Stop()

	streamer, format, err := open(path)
	if err != nil {
		return err
	}
	if err := initSpeaker(format.SampleRate); err != nil {
		streamer.Close()
		return err
	}

	info, err := ReadTrackInfo(path)
	if err != nil {
		info = &TrackInfo{Path: path, Title: baseTitle(path)}
	}
	info.Duration = format.SampleRate.D(streamer.Len())

	// Resample if the track's sample rate differs from the speaker's
	var out beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		out = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}

	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.streamer = streamer
	p.format = format
	p.trackInfo = info
	p.ctrl = &beep.Ctrl{Streamer: out}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2}
	p.state = Playing
	volume := p.volume
	p.mu.Unlock()

	// Drain any stale finish signal from the previous track.
	select {
	case <-p.finishedCh:
	default:
	}

	speaker.Play(beep.Seq(volume, beep.Callback(func() {
		go p.finish(gen)
	})))
	return nil
}

// finish runs outside the speaker callback, which holds the speaker lock.
func (p *Player) finish(gen uint64) {
	p.mu.Lock()
	if gen != p.generation || p.state == Stopped {
		p.mu.Unlock()
		return
	}
	p.release()
	p.mu.Unlock()

	select {
	case p.finishedCh <- struct{}{}:
	default:
	}
}

// Stop stops playback and releases the file.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Stopped {
		return
	}
	p.generation++
	speaker.Clear()
	p.release()
}

// release must be called with mu held.
func (p *Player) release() {
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	p.ctrl = nil
	p.volume = nil
	p.trackInfo = nil
	p.state = Stopped
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Resume resumes paused playback.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Paused || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Player) TrackInfo() *TrackInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.trackInfo
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos
}

func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.trackInfo == nil {
		return 0
	}
	return p.trackInfo.Duration
}

// SeekTo moves playback to pos, clamped to the track.
func (p *Player) SeekTo(pos time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return nil
	}

	n := p.format.SampleRate.N(max(pos, 0))
	n = min(n, p.streamer.Len())

	speaker.Lock()
	defer speaker.Unlock()
	return p.streamer.Seek(n)
}

func (p *Player) Finished() <-chan struct{} {
	return p.finishedCh
}
