package session

import (
	"fmt"
	"math"
	"time"

	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
)

// args decodes positional command arguments. Numbers may arrive as any Go
// numeric type; durations are milliseconds unless given as time.Duration.
type args []any

func (a args) at(i int) (any, error) {
	if i >= len(a) {
		return nil, fmt.Errorf("%w: missing argument %d", ErrBadArgument, i)
	}
	return a[i], nil
}

func (a args) str(i int) (string, error) {
	v, err := a.at(i)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: argument %d is %T, want string", ErrBadArgument, i, v)
	}
	return s, nil
}

func (a args) flag(i int) (bool, error) {
	v, err := a.at(i)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: argument %d is %T, want bool", ErrBadArgument, i, v)
	}
	return b, nil
}

func (a args) integer(i int) (int, error) {
	v, err := a.at(i)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	}
	return 0, fmt.Errorf("%w: argument %d is %v, want integer", ErrBadArgument, i, v)
}

func (a args) number(i int) (float64, error) {
	v, err := a.at(i)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%w: argument %d is %T, want number", ErrBadArgument, i, v)
}

// duration reads milliseconds. A missing or nil argument is zero.
func (a args) duration(i int) (time.Duration, error) {
	if i >= len(a) || a[i] == nil {
		return 0, nil
	}
	if d, ok := a[i].(time.Duration); ok {
		return d, nil
	}
	ms, err := a.integer(i)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// extras reads an optional map argument.
func (a args) extras(i int) (map[string]any, error) {
	if i >= len(a) || a[i] == nil {
		return nil, nil
	}
	m, ok := a[i].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: argument %d is %T, want map", ErrBadArgument, i, a[i])
	}
	return m, nil
}

func (a args) item(i int) (media.Item, error) {
	v, err := a.at(i)
	if err != nil {
		return media.Item{}, err
	}
	return toItem(i, v)
}

func (a args) items(i int) ([]media.Item, error) {
	v, err := a.at(i)
	if err != nil {
		return nil, err
	}
	switch list := v.(type) {
	case []media.Item:
		return list, nil
	case []map[string]any:
		out := make([]media.Item, len(list))
		for j, rec := range list {
			if out[j], err = toItem(i, rec); err != nil {
				return nil, err
			}
		}
		return out, nil
	case []any:
		out := make([]media.Item, len(list))
		for j, rec := range list {
			if out[j], err = toItem(i, rec); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: argument %d is %T, want item list", ErrBadArgument, i, v)
}

func toItem(i int, v any) (media.Item, error) {
	switch it := v.(type) {
	case media.Item:
		return it, nil
	case map[string]any:
		item, err := media.ItemFromRecord(it)
		if err != nil {
			return media.Item{}, fmt.Errorf("%w: argument %d: %w", ErrBadArgument, i, err)
		}
		return item, nil
	}
	return media.Item{}, fmt.Errorf("%w: argument %d is %T, want item", ErrBadArgument, i, v)
}

func (a args) rating(i int) (media.Rating, error) {
	v, err := a.at(i)
	if err != nil {
		return media.Rating{}, err
	}
	var rec media.RatingRecord
	switch r := v.(type) {
	case media.Rating:
		return r, nil
	case media.RatingRecord:
		rec = r
	case map[string]any:
		style, err := args{r["type"]}.integer(0)
		if err != nil {
			return media.Rating{}, fmt.Errorf("%w: argument %d: rating type", ErrBadArgument, i)
		}
		rec = media.RatingRecord{Style: style, Value: r["value"]}
	default:
		return media.Rating{}, fmt.Errorf("%w: argument %d is %T, want rating", ErrBadArgument, i, v)
	}
	rating, err := media.RatingFromRecord(rec)
	if err != nil {
		return media.Rating{}, fmt.Errorf("%w: argument %d: %w", ErrBadArgument, i, err)
	}
	return rating, nil
}

func (a args) repeatMode(i int) (playback.RepeatMode, error) {
	n, err := a.integer(i)
	if err != nil || n < int(playback.RepeatNone) || n > int(playback.RepeatGroup) {
		return 0, fmt.Errorf("%w: repeat mode %v", ErrBadArgument, a.get(i))
	}
	return playback.RepeatMode(n), nil
}

func (a args) shuffleMode(i int) (playback.ShuffleMode, error) {
	n, err := a.integer(i)
	if err != nil || n < int(playback.ShuffleNone) || n > int(playback.ShuffleGroup) {
		return 0, fmt.Errorf("%w: shuffle mode %v", ErrBadArgument, a.get(i))
	}
	return playback.ShuffleMode(n), nil
}

func (a args) button(i int) (playback.MediaButton, error) {
	n, err := a.integer(i)
	if err != nil || n < int(playback.ButtonMedia) || n > int(playback.ButtonPrevious) {
		return 0, fmt.Errorf("%w: media button %v", ErrBadArgument, a.get(i))
	}
	return playback.MediaButton(n), nil
}

func (a args) get(i int) any {
	if i < len(a) {
		return a[i]
	}
	return nil
}
