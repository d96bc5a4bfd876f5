package localaudio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/llehouerou/audiosession/internal/artwork"
	"github.com/llehouerou/audiosession/internal/media"
	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/player"
)

const searchLimit = 50

// GetChildren lists the folders and then the audio files in parentID.
// The root id lists the library root.
func (h *Handler) GetChildren(ctx context.Context, parentID string, _ map[string]any) ([]media.Item, error) {
	dir := h.resolve(parentID)
	if !h.within(dir) {
		return nil, fmt.Errorf("%w: %s", ErrOutsideLibrary, parentID)
	}
	return h.list(ctx, dir)
}

func (h *Handler) list(ctx context.Context, dir string) ([]media.Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var folders, files []media.Item
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		switch {
		case e.IsDir():
			folders = append(folders, folderItem(path))
		case player.IsAudioFile(path):
			files = append(files, fileItem(path))
		}
	}
	return append(folders, files...), nil
}

// GetMediaItem describes the file or folder id. Unknown ids yield nil.
func (h *Handler) GetMediaItem(_ context.Context, id string) (*media.Item, error) {
	path := h.resolve(id)
	if !h.within(path) {
		return nil, nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var it media.Item
	switch {
	case info.IsDir():
		it = folderItem(path)
	case player.IsAudioFile(path):
		it = fileItem(path)
	default:
		return nil, nil
	}
	return &it, nil
}

// Search returns audio files whose name or title contains query, ignoring
// case.
func (h *Handler) Search(ctx context.Context, query string, _ map[string]any) ([]media.Item, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []media.Item{}, nil
	}

	results := []media.Item{}
	errLimit := errors.New("limit reached")
	err := filepath.WalkDir(h.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != h.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !player.IsAudioFile(path) {
			return nil
		}

		it := fileItem(path)
		if strings.Contains(strings.ToLower(d.Name()), query) ||
			strings.Contains(strings.ToLower(it.Title), query) ||
			strings.Contains(strings.ToLower(it.Artist), query) {
			results = append(results, it)
			if len(results) >= searchLimit {
				return errLimit
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errLimit) {
		return nil, err
	}
	return results, nil
}

// load returns the playable items for id and the index to start from.
func (h *Handler) load(ctx context.Context, id string) ([]media.Item, int, error) {
	path := h.resolve(id)
	if !h.within(path) {
		return nil, 0, fmt.Errorf("%w: %s", ErrOutsideLibrary, id)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	dir, start := path, ""
	if !info.IsDir() {
		dir, start = filepath.Dir(path), path
	}

	items, err := h.list(ctx, dir)
	if err != nil {
		return nil, 0, err
	}
	items = playable(items)
	if len(items) == 0 {
		return nil, 0, fmt.Errorf("%w: no audio in %s", ErrNotFound, id)
	}
	return items, max(media.IndexOf(items, start), 0), nil
}

func playable(items []media.Item) []media.Item {
	out := items[:0]
	for _, it := range items {
		if it.Playable {
			out = append(out, it)
		}
	}
	return out
}

func (h *Handler) resolve(id string) string {
	if id == "" || id == playback.RootID {
		return h.root
	}
	return filepath.Clean(id)
}

func (h *Handler) within(path string) bool {
	rel, err := filepath.Rel(h.root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func folderItem(path string) media.Item {
	it := media.NewItem(path, filepath.Base(path))
	it.Playable = false
	return it
}

func fileItem(path string) media.Item {
	it := media.NewItem(path, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	it.ArtURI = artwork.EmbeddedURI(path)

	info, err := player.ReadTrackInfo(path)
	if err != nil {
		return it
	}
	it.Title = info.Title
	it.Artist = info.Artist
	it.Album = info.Album
	it.Genre = info.Genre
	it.DisplaySubtitle = info.Artist
	if info.Track > 0 {
		it = it.WithExtra(media.ExtraTrackNumber, info.Track)
	}
	return it
}
