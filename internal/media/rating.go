package media

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRating is returned when a rating value does not match its style.
var ErrInvalidRating = errors.New("invalid rating")

// RatingStyle identifies how a rating is expressed.
// The numeric values are the wire codes sent to the control surface.
type RatingStyle int

const (
	RatingNone RatingStyle = iota
	RatingHeart
	RatingThumbUpDown
	Rating3Stars
	Rating4Stars
	Rating5Stars
	RatingPercentage
)

// String returns the style name.
func (s RatingStyle) String() string {
	switch s {
	case RatingNone:
		return "none"
	case RatingHeart:
		return "heart"
	case RatingThumbUpDown:
		return "thumbUpDown"
	case Rating3Stars:
		return "range3stars"
	case Rating4Stars:
		return "range4stars"
	case Rating5Stars:
		return "range5stars"
	case RatingPercentage:
		return "percentage"
	default:
		return "unknown"
	}
}

// maxStars returns the star count for star styles, 0 otherwise.
func (s RatingStyle) maxStars() int {
	switch s {
	case Rating3Stars:
		return 3
	case Rating4Stars:
		return 4
	case Rating5Stars:
		return 5
	case RatingNone, RatingHeart, RatingThumbUpDown, RatingPercentage:
		return 0
	}
	return 0
}

func (s RatingStyle) valid() bool {
	return s >= RatingNone && s <= RatingPercentage
}

// Rating is an immutable rating value. Only one of the payload fields is
// meaningful, selected by style; the zero value is an unrated RatingNone.
type Rating struct {
	style   RatingStyle
	rated   bool
	flag    bool    // heart, thumb up
	stars   int     // star styles
	percent float64 // percentage
}

// NewHeartRating returns a heart rating.
func NewHeartRating(hasHeart bool) Rating {
	return Rating{style: RatingHeart, rated: true, flag: hasHeart}
}

// NewThumbRating returns a thumb up/down rating.
func NewThumbRating(thumbUp bool) Rating {
	return Rating{style: RatingThumbUpDown, rated: true, flag: thumbUp}
}

// NewStarRating returns a star rating. stars must be within [0, max] for the style.
func NewStarRating(style RatingStyle, stars int) (Rating, error) {
	maxStars := style.maxStars()
	if maxStars == 0 {
		return Rating{}, fmt.Errorf("%w: %s is not a star style", ErrInvalidRating, style)
	}
	if stars < 0 || stars > maxStars {
		return Rating{}, fmt.Errorf("%w: %d stars out of range [0,%d]", ErrInvalidRating, stars, maxStars)
	}
	return Rating{style: style, rated: true, stars: stars}, nil
}

// NewPercentageRating returns a percentage rating in [0, 100].
func NewPercentageRating(percent float64) (Rating, error) {
	if math.IsNaN(percent) || percent < 0 || percent > 100 {
		return Rating{}, fmt.Errorf("%w: percentage %v out of range [0,100]", ErrInvalidRating, percent)
	}
	return Rating{style: RatingPercentage, rated: true, percent: percent}, nil
}

// NewUnratedRating returns an unrated value of the given style.
func NewUnratedRating(style RatingStyle) (Rating, error) {
	if !style.valid() {
		return Rating{}, fmt.Errorf("%w: unknown style %d", ErrInvalidRating, int(style))
	}
	return Rating{style: style}, nil
}

// Style returns the rating style.
func (r Rating) Style() RatingStyle { return r.style }

// IsRated reports whether the rating carries a value.
func (r Rating) IsRated() bool { return r.rated }

// HasHeart reports whether a heart rating is set. False for other styles.
func (r Rating) HasHeart() bool {
	return r.style == RatingHeart && r.rated && r.flag
}

// IsThumbUp reports whether a thumb rating is up. False for other styles.
func (r Rating) IsThumbUp() bool {
	return r.style == RatingThumbUpDown && r.rated && r.flag
}

// StarRating returns the star count, or -1 if not a rated star style.
func (r Rating) StarRating() int {
	if r.style.maxStars() == 0 || !r.rated {
		return -1
	}
	return r.stars
}

// Percentage returns the percentage, or -1 if not a rated percentage.
func (r Rating) Percentage() float64 {
	if r.style != RatingPercentage || !r.rated {
		return -1
	}
	return r.percent
}

// RatingRecord is the wire form of a rating.
type RatingRecord struct {
	Style int `json:"type"`
	Value any `json:"value"`
}

// Record returns the wire form. Value is nil when unrated.
func (r Rating) Record() RatingRecord {
	rec := RatingRecord{Style: int(r.style)}
	if !r.rated {
		return rec
	}
	switch r.style {
	case RatingHeart, RatingThumbUpDown:
		rec.Value = r.flag
	case Rating3Stars, Rating4Stars, Rating5Stars:
		rec.Value = r.stars
	case RatingPercentage:
		rec.Value = r.percent
	case RatingNone:
	}
	return rec
}

// RatingFromRecord parses the wire form, applying the same validation as the
// constructors.
func RatingFromRecord(rec RatingRecord) (Rating, error) {
	style := RatingStyle(rec.Style)
	if !style.valid() {
		return Rating{}, fmt.Errorf("%w: unknown style %d", ErrInvalidRating, rec.Style)
	}
	if rec.Value == nil {
		return NewUnratedRating(style)
	}
	switch style {
	case RatingHeart, RatingThumbUpDown:
		b, ok := rec.Value.(bool)
		if !ok {
			return Rating{}, fmt.Errorf("%w: %s needs a bool, got %T", ErrInvalidRating, style, rec.Value)
		}
		if style == RatingHeart {
			return NewHeartRating(b), nil
		}
		return NewThumbRating(b), nil
	case Rating3Stars, Rating4Stars, Rating5Stars:
		n, ok := asInt(rec.Value)
		if !ok {
			return Rating{}, fmt.Errorf("%w: %s needs an integer, got %T", ErrInvalidRating, style, rec.Value)
		}
		return NewStarRating(style, n)
	case RatingPercentage:
		f, ok := asFloat(rec.Value)
		if !ok {
			return Rating{}, fmt.Errorf("%w: %s needs a number, got %T", ErrInvalidRating, style, rec.Value)
		}
		return NewPercentageRating(f)
	case RatingNone:
	}
	return Rating{}, fmt.Errorf("%w: style none cannot carry a value", ErrInvalidRating)
}

// String returns a short human-readable form.
func (r Rating) String() string {
	if !r.rated {
		return r.style.String() + "(unrated)"
	}
	return fmt.Sprintf("%s(%v)", r.style, r.Record().Value)
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
