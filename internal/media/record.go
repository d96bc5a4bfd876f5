package media

import (
	"errors"
	"fmt"
	"maps"
	"time"
)

var (
	// ErrMissingID is returned when a record has no id.
	ErrMissingID = errors.New("media item record has no id")
	// ErrMissingTitle is returned when a record has no title.
	ErrMissingTitle = errors.New("media item record has no title")
)

// Record keys of the flat item form sent to the control surface.
const (
	KeyID                 = "id"
	KeyTitle              = "title"
	KeyAlbum              = "album"
	KeyArtist             = "artist"
	KeyGenre              = "genre"
	KeyDuration           = "duration"
	KeyArtURI             = "artUri"
	KeyPlayable           = "playable"
	KeyDisplayTitle       = "displayTitle"
	KeyDisplaySubtitle    = "displaySubtitle"
	KeyDisplayDescription = "displayDescription"
	KeyRating             = "rating"
	KeyExtras             = "extras"

	// ExtraArtCacheFile carries the resolved local artwork path in Extras.
	ExtraArtCacheFile = "artCacheFile"
	// ExtraTrackNumber carries the track's position in its album.
	ExtraTrackNumber = "trackNumber"
)

// Record serializes the item to a flat key/value map. Duration is in
// milliseconds, the rating is a {"type","value"} map. Empty optional fields
// are omitted.
func (i Item) Record() map[string]any {
	rec := map[string]any{
		KeyID:       i.ID,
		KeyTitle:    i.Title,
		KeyAlbum:    i.Album,
		KeyPlayable: i.Playable,
	}
	putString(rec, KeyArtist, i.Artist)
	putString(rec, KeyGenre, i.Genre)
	putString(rec, KeyArtURI, i.ArtURI)
	putString(rec, KeyDisplayTitle, i.DisplayTitle)
	putString(rec, KeyDisplaySubtitle, i.DisplaySubtitle)
	putString(rec, KeyDisplayDescription, i.DisplayDescription)
	if i.HasDuration() {
		rec[KeyDuration] = i.Duration.Milliseconds()
	}
	if i.HasRating() {
		r := i.Rating.Record()
		rec[KeyRating] = map[string]any{"type": r.Style, "value": r.Value}
	}
	if len(i.Extras) > 0 {
		rec[KeyExtras] = maps.Clone(i.Extras)
	}
	return rec
}

// ItemFromRecord parses the flat form produced by Record.
func ItemFromRecord(rec map[string]any) (Item, error) {
	id, _ := rec[KeyID].(string)
	if id == "" {
		return Item{}, ErrMissingID
	}
	title, _ := rec[KeyTitle].(string)
	if title == "" {
		return Item{}, fmt.Errorf("%w: %s", ErrMissingTitle, id)
	}

	item := Item{
		ID:                 id,
		Title:              title,
		Album:              stringOf(rec, KeyAlbum),
		Artist:             stringOf(rec, KeyArtist),
		Genre:              stringOf(rec, KeyGenre),
		ArtURI:             stringOf(rec, KeyArtURI),
		DisplayTitle:       stringOf(rec, KeyDisplayTitle),
		DisplaySubtitle:    stringOf(rec, KeyDisplaySubtitle),
		DisplayDescription: stringOf(rec, KeyDisplayDescription),
		Playable:           true,
	}
	if p, ok := rec[KeyPlayable].(bool); ok {
		item.Playable = p
	}
	if v, ok := rec[KeyDuration]; ok && v != nil {
		ms, ok := asInt(v)
		if !ok {
			return Item{}, fmt.Errorf("media item %s: duration is %T, want milliseconds", id, v)
		}
		item.Duration = time.Duration(ms) * time.Millisecond
	}
	if raw, ok := rec[KeyRating].(map[string]any); ok {
		style, ok := asInt(raw["type"])
		if !ok {
			return Item{}, fmt.Errorf("%w: media item %s: missing rating type", ErrInvalidRating, id)
		}
		r, err := RatingFromRecord(RatingRecord{Style: style, Value: raw["value"]})
		if err != nil {
			return Item{}, fmt.Errorf("media item %s: %w", id, err)
		}
		item.Rating = r
	}
	if extras, ok := rec[KeyExtras].(map[string]any); ok && len(extras) > 0 {
		item.Extras = maps.Clone(extras)
	}
	return item, nil
}

// Records serializes a list of items.
func Records(items []Item) []map[string]any {
	out := make([]map[string]any, len(items))
	for i, it := range items {
		out[i] = it.Record()
	}
	return out
}

func putString(rec map[string]any, key, value string) {
	if value != "" {
		rec[key] = value
	}
}

func stringOf(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return s
}
