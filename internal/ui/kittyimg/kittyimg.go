// Package kittyimg draws cover art with the Kitty terminal graphics protocol.
package kittyimg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG for image.Decode
	"image/png"
	"os"
	"strings"
)

const chunkSize = 4096 // max payload bytes per escape sequence

// File encodes the image stored at path, typically an artwork cache file,
// to fit cols by rows cells.
func File(path string, cols, rows int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Encode(data, cols, rows)
}

// Encode converts JPEG or PNG data to a transmit-and-display escape
// sequence sized cols by rows cells.
func Encode(data []byte, cols, rows int) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode cover: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode cover: %w", err)
	}
	payload := base64.StdEncoding.EncodeToString(buf.Bytes())

	var sb strings.Builder
	for i := 0; i < len(payload); i += chunkSize {
		end := min(i+chunkSize, len(payload))
		more := 0
		if end < len(payload) {
			more = 1
		}
		if i == 0 {
			fmt.Fprintf(&sb, "\x1b_Ga=T,f=100,c=%d,r=%d,m=%d;%s\x1b\\", cols, rows, more, payload[i:end])
		} else {
			fmt.Fprintf(&sb, "\x1b_Gm=%d;%s\x1b\\", more, payload[i:end])
		}
	}
	return sb.String(), nil
}

// Placeholder is a framed box with a note in the middle, drawn when there
// is no cover to show.
func Placeholder(cols, rows int) []string {
	if cols < 4 || rows < 2 {
		return nil
	}
	inner := cols - 2
	lines := make([]string, 0, rows)
	lines = append(lines, "┌"+strings.Repeat("─", inner)+"┐")
	for i := 1; i < rows-1; i++ {
		if i == rows/2 {
			left := (inner - 1) / 2
			lines = append(lines, "│"+strings.Repeat(" ", left)+"♪"+strings.Repeat(" ", inner-1-left)+"│")
			continue
		}
		lines = append(lines, "│"+strings.Repeat(" ", inner)+"│")
	}
	return append(lines, "└"+strings.Repeat("─", inner)+"┘")
}
