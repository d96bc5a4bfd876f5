package playback

import "context"

// Buttons gives media buttons their usual meaning: the media button toggles
// play and pause, next and previous skip. The click is then forwarded.
type Buttons struct {
	*Composite
}

// NewButtons wraps inner with default media button handling.
func NewButtons(inner Handler) (*Buttons, error) {
	c, err := NewComposite(inner)
	if err != nil {
		return nil, err
	}
	return &Buttons{Composite: c}, nil
}

// Click handles a media button press.
func (b *Buttons) Click(ctx context.Context, button MediaButton) error {
	var err error
	switch button {
	case ButtonMedia:
		if b.PlaybackStatus().Value().Playing {
			err = b.Pause(ctx)
		} else {
			err = b.Play(ctx)
		}
	case ButtonNext:
		err = b.SkipToNext(ctx)
	case ButtonPrevious:
		err = b.SkipToPrevious(ctx)
	}
	if err != nil {
		return err
	}
	return b.Inner().Click(ctx, button)
}
