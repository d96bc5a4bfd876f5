package media

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_EqualByID(t *testing.T) {
	a := NewItem("track-1", "First")
	b := NewItem("track-1", "Renamed").WithDuration(3 * time.Minute)
	c := NewItem("track-2", "First")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestItem_WithDoesNotMutate(t *testing.T) {
	a := NewItem("track-1", "First").WithExtra("source", "disk")
	b := a.WithExtra("source", "net")

	assert.Equal(t, "disk", a.Extra("source"))
	assert.Equal(t, "net", b.Extra("source"))
}

func TestItemRecord_RoundTrip(t *testing.T) {
	stars, err := NewStarRating(Rating5Stars, 4)
	require.NoError(t, err)

	item := Item{
		ID:                 "https://example.com/audio/track.mp3",
		Title:              "Track",
		Album:              "Album",
		Artist:             "Artist",
		Genre:              "Jazz",
		Duration:           245 * time.Second,
		ArtURI:             "https://example.com/art.jpg",
		Playable:           true,
		DisplayTitle:       "Track (live)",
		DisplaySubtitle:    "Artist",
		DisplayDescription: "Recorded 1969",
		Rating:             stars,
		Extras: map[string]any{
			"trackNumber": 3,
			"explicit":    false,
			"loudness":    -7.5,
			"source":      "web",
		},
	}

	rec := item.Record()
	assert.Equal(t, int64(245000), rec[KeyDuration])
	assert.Equal(t, map[string]any{"type": int(Rating5Stars), "value": 4}, rec[KeyRating])

	got, err := ItemFromRecord(rec)
	require.NoError(t, err)

	assert.True(t, got.Equal(item))
	assert.Equal(t, item, got)
}

func TestItemRecord_OmitsEmptyOptionalFields(t *testing.T) {
	rec := NewItem("id", "Title").Record()

	for _, key := range []string{KeyArtist, KeyGenre, KeyDuration, KeyArtURI, KeyRating, KeyExtras} {
		_, ok := rec[key]
		assert.False(t, ok, "key %q should be omitted", key)
	}

	got, err := ItemFromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, NewItem("id", "Title"), got)
}

func TestItemFromRecord_Errors(t *testing.T) {
	_, err := ItemFromRecord(map[string]any{KeyTitle: "no id"})
	require.ErrorIs(t, err, ErrMissingID)

	_, err = ItemFromRecord(map[string]any{KeyID: "x"})
	require.ErrorIs(t, err, ErrMissingTitle)

	_, err = ItemFromRecord(map[string]any{
		KeyID:     "x",
		KeyTitle:  "t",
		KeyRating: map[string]any{"type": int(RatingHeart), "value": 3},
	})
	require.ErrorIs(t, err, ErrInvalidRating)
}

func TestItemFromRecord_AcceptsJSONNumbers(t *testing.T) {
	got, err := ItemFromRecord(map[string]any{
		KeyID:       "x",
		KeyTitle:    "t",
		KeyDuration: float64(1500),
		KeyRating:   map[string]any{"type": float64(Rating3Stars), "value": float64(2)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, got.Duration)
	assert.Equal(t, 2, got.Rating.StarRating())
}

func TestIndexOf(t *testing.T) {
	items := []Item{NewItem("a", "A"), NewItem("b", "B"), NewItem("a", "A again")}

	assert.Equal(t, 0, IndexOf(items, "a"))
	assert.Equal(t, 1, IndexOf(items, "b"))
	assert.Equal(t, -1, IndexOf(items, "z"))
}
