package playback

import (
	"context"
	"errors"
	"slices"
	"testing"
	"testing/synctest"
	"time"
)

func newSeekerAt(t *testing.T, pos, duration time.Duration) (*Seeker, *recorder) {
	t.Helper()
	r := newRecorder()
	if err := r.PublishStatus(pausedAt(pos)); err != nil {
		t.Fatal(err)
	}
	cur := item("a", duration)
	r.PublishMediaItem(&cur)

	s, err := NewSeeker(r, WithIntervals(10*time.Second, 10*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	return s, r
}

func TestSeeker_RelativeSeekClamps(t *testing.T) {
	const duration = 3 * time.Minute
	ctx := context.Background()

	tests := []struct {
		name     string
		start    time.Duration
		seek     func(*Seeker) error
		wantSeek time.Duration
	}{
		{
			name:     "rewind past zero",
			start:    2 * time.Second,
			seek:     func(s *Seeker) error { return s.Rewind(ctx, 0) },
			wantSeek: 0,
		},
		{
			name:     "fast forward past duration",
			start:    duration - 2*time.Second,
			seek:     func(s *Seeker) error { return s.FastForward(ctx, 0) },
			wantSeek: duration,
		},
		{
			name:     "fast forward explicit interval",
			start:    time.Minute,
			seek:     func(s *Seeker) error { return s.FastForward(ctx, 5*time.Second) },
			wantSeek: time.Minute + 5*time.Second,
		},
		{
			name:     "negative fast forward goes back",
			start:    time.Minute,
			seek:     func(s *Seeker) error { return s.FastForward(ctx, -15*time.Second) },
			wantSeek: 45 * time.Second,
		},
		{
			name:     "rewind default interval",
			start:    time.Minute,
			seek:     func(s *Seeker) error { return s.Rewind(ctx, 0) },
			wantSeek: 50 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, r := newSeekerAt(t, tt.start, duration)
			if err := tt.seek(s); err != nil {
				t.Fatalf("seek error = %v", err)
			}
			if got := r.seekCalls(); len(got) != 1 || got[0] != tt.wantSeek {
				t.Errorf("seeks = %v, want [%v]", got, tt.wantSeek)
			}
		})
	}
}

func TestSeeker_RelativeSeekFailureKeepsState(t *testing.T) {
	s, r := newSeekerAt(t, time.Minute, 3*time.Minute)
	r.failSeek = true

	err := s.FastForward(context.Background(), 0)
	if !errors.Is(err, errRejected) {
		t.Fatalf("FastForward() error = %v, want errRejected", err)
	}
	if got := r.PlaybackStatus().Value().Position; got != time.Minute {
		t.Errorf("position = %v, want 1m", got)
	}
}

func TestSeeker_ContinuousSeekStepsEveryTick(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, r := newSeekerAt(t, 30*time.Second, 3*time.Minute)
		defer s.Close()
		ctx := context.Background()

		if err := s.SeekForward(ctx, true); err != nil {
			t.Fatalf("SeekForward(true) error = %v", err)
		}
		// Stop mid-period: nudges at 0 and 1 tick. Stopping exactly on
		// the 2-tick boundary would race the third nudge.
		time.Sleep(ContinuousSeekTick + ContinuousSeekTick/2)
		if err := s.SeekForward(ctx, false); err != nil {
			t.Fatalf("SeekForward(false) error = %v", err)
		}
		synctest.Wait()

		want := []time.Duration{40 * time.Second, 50 * time.Second}
		if got := r.seekCalls(); !slices.Equal(got, want) {
			t.Errorf("seeks = %v, want %v", got, want)
		}

		// Nothing more once stopped.
		time.Sleep(5 * ContinuousSeekTick)
		synctest.Wait()
		if got := r.seekCalls(); len(got) != 2 {
			t.Errorf("seeks after stop = %v, want 2 calls", got)
		}
		if s.Seeking() {
			t.Error("Seeking() = true after stop")
		}
	})
}

func TestSeeker_ContinuousSeekClampsAtDuration(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		duration := 3 * time.Minute
		s, r := newSeekerAt(t, duration-5*time.Second, duration)
		defer s.Close()
		ctx := context.Background()

		_ = s.SeekForward(ctx, true)
		time.Sleep(ContinuousSeekTick + ContinuousSeekTick/2)
		_ = s.SeekForward(ctx, false)
		synctest.Wait()

		want := []time.Duration{duration, duration}
		if got := r.seekCalls(); !slices.Equal(got, want) {
			t.Errorf("seeks = %v, want %v", got, want)
		}
	})
}

func TestSeeker_ContinuousSeekBackwardClampsAtZero(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, r := newSeekerAt(t, 15*time.Second, 3*time.Minute)
		defer s.Close()
		ctx := context.Background()

		_ = s.SeekBackward(ctx, true)
		time.Sleep(2*ContinuousSeekTick + ContinuousSeekTick/2)
		_ = s.SeekBackward(ctx, false)
		synctest.Wait()

		want := []time.Duration{5 * time.Second, 0, 0}
		if got := r.seekCalls(); !slices.Equal(got, want) {
			t.Errorf("seeks = %v, want %v", got, want)
		}
	})
}

func TestSeeker_NewContinuousSeekStopsPrevious(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, r := newSeekerAt(t, 30*time.Second, 3*time.Minute)
		defer s.Close()
		ctx := context.Background()

		_ = s.SeekForward(ctx, true)
		synctest.Wait()
		_ = s.SeekBackward(ctx, true)
		time.Sleep(ContinuousSeekTick + ContinuousSeekTick/2)
		_ = s.SeekBackward(ctx, false)
		synctest.Wait()

		// forward once, then only the backward stepper ticks.
		want := []time.Duration{40 * time.Second, 30 * time.Second, 20 * time.Second}
		if got := r.seekCalls(); !slices.Equal(got, want) {
			t.Errorf("seeks = %v, want %v", got, want)
		}
	})
}

func TestSeeker_StopIsIdempotent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, _ := newSeekerAt(t, 0, time.Minute)
		ctx := context.Background()

		_ = s.SeekForward(ctx, false)
		_ = s.SeekForward(ctx, true)
		_ = s.SeekForward(ctx, false)
		_ = s.SeekForward(ctx, false)
		_ = s.Close()

		if s.Seeking() {
			t.Error("Seeking() = true after stop")
		}
	})
}

func TestSeeker_NoStepperWithoutDuration(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, r := newSeekerAt(t, 0, 0)
		defer s.Close()

		_ = s.SeekForward(context.Background(), true)
		synctest.Wait()

		if s.Seeking() {
			t.Error("Seeking() = true for an item without duration")
		}
		if len(r.seekCalls()) != 0 {
			t.Errorf("seeks = %v, want none", r.seekCalls())
		}
	})
}

func TestSeeker_SkipsTickWhileSeekInFlight(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := newRecorder()
		_ = r.PublishStatus(pausedAt(0))
		cur := item("a", time.Hour)
		r.PublishMediaItem(&cur)

		slow := &slowSeeker{recorder: r, delay: 2500 * time.Millisecond}
		s, err := NewSeeker(slow)
		if err != nil {
			t.Fatal(err)
		}
		defer s.Close()

		_ = s.SeekForward(context.Background(), true)
		time.Sleep(3*ContinuousSeekTick + ContinuousSeekTick/2)
		_ = s.SeekForward(context.Background(), false)
		synctest.Wait()

		// Seek at 0s takes until 2.5s: ticks at 1s and 2s are skipped,
		// the tick at 3s fires.
		slow.mu.Lock()
		got := slow.started
		slow.mu.Unlock()
		if got != 2 {
			t.Errorf("seeks started = %d, want 2", got)
		}
	})
}

type slowSeeker struct {
	*recorder
	delay   time.Duration
	started int
}

func (s *slowSeeker) SeekTo(ctx context.Context, pos time.Duration) error {
	s.mu.Lock()
	s.started++
	s.mu.Unlock()
	time.Sleep(s.delay)
	return s.recorder.SeekTo(ctx, pos)
}
