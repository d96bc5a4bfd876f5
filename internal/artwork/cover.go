package artwork

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// coverNames lists common album art filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.jpeg", "cover.png",
	"folder.jpg", "folder.jpeg", "folder.png",
	"album.jpg", "album.jpeg", "album.png",
	"front.jpg", "front.jpeg", "front.png",
	"artwork.jpg", "artwork.jpeg", "artwork.png",
}

// CoverFile looks for album art in the same directory as the track.
// Returns the path to the art file, or empty string if not found.
func CoverFile(trackPath string) string {
	dir := filepath.Dir(trackPath)
	for _, name := range coverNames {
		for _, candidate := range []string{name, strings.ToUpper(name)} {
			path := filepath.Join(dir, candidate)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

// Embedded reads the picture embedded in an audio file's tags.
// Returns nil data if the file has no readable picture.
func Embedded(trackPath string) (data []byte, mimeType string, err error) {
	f, err := os.Open(trackPath)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		// Untagged or unsupported files simply have no embedded art.
		return nil, "", nil //nolint:nilerr // absence of tags is not a failure
	}

	pic := m.Picture()
	if pic == nil {
		return nil, "", nil
	}
	return pic.Data, pic.MIMEType, nil
}
