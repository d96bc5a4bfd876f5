package media

import (
	"errors"
	"testing"
)

func TestNewStarRating(t *testing.T) {
	tests := []struct {
		name    string
		style   RatingStyle
		stars   int
		wantErr bool
	}{
		{"three of five", Rating5Stars, 3, false},
		{"zero stars", Rating3Stars, 0, false},
		{"max stars", Rating4Stars, 4, false},
		{"above max", Rating3Stars, 4, true},
		{"negative", Rating5Stars, -1, true},
		{"not a star style", RatingHeart, 1, true},
		{"percentage style", RatingPercentage, 50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewStarRating(tt.style, tt.stars)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRating) {
					t.Fatalf("NewStarRating() error = %v, want ErrInvalidRating", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStarRating() error = %v", err)
			}
			if r.StarRating() != tt.stars {
				t.Errorf("StarRating() = %d, want %d", r.StarRating(), tt.stars)
			}
			if !r.IsRated() {
				t.Error("IsRated() = false, want true")
			}
		})
	}
}

func TestNewPercentageRating(t *testing.T) {
	for _, p := range []float64{0, 42.5, 100} {
		r, err := NewPercentageRating(p)
		if err != nil {
			t.Fatalf("NewPercentageRating(%v) error = %v", p, err)
		}
		if r.Percentage() != p {
			t.Errorf("Percentage() = %v, want %v", r.Percentage(), p)
		}
	}

	for _, p := range []float64{-0.1, 100.1} {
		if _, err := NewPercentageRating(p); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("NewPercentageRating(%v) error = %v, want ErrInvalidRating", p, err)
		}
	}
}

func TestRating_AccessorsOnOtherStyles(t *testing.T) {
	heart := NewHeartRating(true)
	if !heart.HasHeart() {
		t.Error("HasHeart() = false, want true")
	}
	if heart.IsThumbUp() {
		t.Error("IsThumbUp() on heart rating = true, want false")
	}
	if heart.StarRating() != -1 {
		t.Errorf("StarRating() on heart rating = %d, want -1", heart.StarRating())
	}
	if heart.Percentage() != -1 {
		t.Errorf("Percentage() on heart rating = %v, want -1", heart.Percentage())
	}

	thumb := NewThumbRating(false)
	if thumb.IsThumbUp() {
		t.Error("IsThumbUp() = true, want false")
	}
	if !thumb.IsRated() {
		t.Error("thumb down should still be rated")
	}
}

func TestNewUnratedRating(t *testing.T) {
	r, err := NewUnratedRating(Rating5Stars)
	if err != nil {
		t.Fatalf("NewUnratedRating() error = %v", err)
	}
	if r.IsRated() {
		t.Error("IsRated() = true, want false")
	}
	if r.StarRating() != -1 {
		t.Errorf("StarRating() = %d, want -1", r.StarRating())
	}
	if _, err := NewUnratedRating(RatingStyle(42)); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("NewUnratedRating(42) error = %v, want ErrInvalidRating", err)
	}
}

func TestRatingFromRecord_Validates(t *testing.T) {
	tests := []struct {
		name string
		rec  RatingRecord
	}{
		{"heart with int", RatingRecord{Style: int(RatingHeart), Value: 1}},
		{"stars with bool", RatingRecord{Style: int(Rating5Stars), Value: true}},
		{"stars out of range", RatingRecord{Style: int(Rating3Stars), Value: 5}},
		{"fractional stars", RatingRecord{Style: int(Rating3Stars), Value: 1.5}},
		{"percentage with string", RatingRecord{Style: int(RatingPercentage), Value: "50"}},
		{"none with value", RatingRecord{Style: int(RatingNone), Value: true}},
		{"unknown style", RatingRecord{Style: 99}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RatingFromRecord(tt.rec); !errors.Is(err, ErrInvalidRating) {
				t.Errorf("RatingFromRecord() error = %v, want ErrInvalidRating", err)
			}
		})
	}
}

func TestRatingFromRecord_RoundTrip(t *testing.T) {
	stars, _ := NewStarRating(Rating4Stars, 2)
	pct, _ := NewPercentageRating(87.5)
	unrated, _ := NewUnratedRating(RatingThumbUpDown)

	for _, r := range []Rating{NewHeartRating(true), NewThumbRating(false), stars, pct, unrated} {
		got, err := RatingFromRecord(r.Record())
		if err != nil {
			t.Fatalf("RatingFromRecord(%v) error = %v", r, err)
		}
		if got != r {
			t.Errorf("RatingFromRecord(%v) = %v", r, got)
		}
	}
}
