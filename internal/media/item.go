// Package media holds the values exchanged between playback handlers and the
// control surface: media items and their ratings.
package media

import (
	"maps"
	"time"
)

// Item describes one playable or browsable unit.
//
// Items are values: a changed item is a new value with the same ID. Two items
// are the same item iff their IDs are equal, see Equal.
type Item struct {
	ID       string
	Title    string
	Album    string
	Artist   string
	Genre    string
	Duration time.Duration // 0 if unknown
	ArtURI   string
	Playable bool

	DisplayTitle       string
	DisplaySubtitle    string
	DisplayDescription string

	Rating Rating         // zero value means no rating
	Extras map[string]any // scalar values only: string, bool, int, int64, float64
}

// NewItem returns a playable item with the given identity.
func NewItem(id, title string) Item {
	return Item{ID: id, Title: title, Playable: true}
}

// Equal reports whether two items share the same identity.
func (i Item) Equal(other Item) bool {
	return i.ID == other.ID
}

// HasDuration reports whether the item has a known duration.
func (i Item) HasDuration() bool {
	return i.Duration > 0
}

// HasRating reports whether a rating is attached.
func (i Item) HasRating() bool {
	return i.Rating != (Rating{})
}

// Clone returns a copy that shares no mutable state with i.
func (i Item) Clone() Item {
	i.Extras = maps.Clone(i.Extras)
	return i
}

// WithDuration returns a copy with the duration set.
func (i Item) WithDuration(d time.Duration) Item {
	c := i.Clone()
	c.Duration = d
	return c
}

// WithRating returns a copy with the rating set.
func (i Item) WithRating(r Rating) Item {
	c := i.Clone()
	c.Rating = r
	return c
}

// WithArtURI returns a copy with the artwork reference set.
func (i Item) WithArtURI(uri string) Item {
	c := i.Clone()
	c.ArtURI = uri
	return c
}

// WithExtra returns a copy with one extras entry set.
func (i Item) WithExtra(key string, value any) Item {
	c := i.Clone()
	if c.Extras == nil {
		c.Extras = make(map[string]any, 1)
	}
	c.Extras[key] = value
	return c
}

// Extra returns the string value of an extras entry, or "" if absent.
func (i Item) Extra(key string) string {
	s, _ := i.Extras[key].(string)
	return s
}

// IndexOf returns the index of the first item in items with the same ID, or -1.
func IndexOf(items []Item, id string) int {
	for idx, it := range items {
		if it.ID == id {
			return idx
		}
	}
	return -1
}
