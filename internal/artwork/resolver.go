// Package artwork resolves item artwork URIs to local image files.
//
// Remote images are downloaded once into a cache directory indexed by an
// SQLite database. Local files are used in place unless a downscale size is
// set, in which case a resized copy is cached instead.
package artwork

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/dustin/go-humanize"
	"github.com/nfnt/resize"
)

// SchemeEmbedded addresses the picture embedded in a local audio file.
const SchemeEmbedded = "embedded"

const (
	defaultMaxBytes = 20 << 20
	defaultTimeout  = 30 * time.Second
	jpegQuality     = 90
)

var (
	// ErrNoArtwork is returned when the URI points to nothing usable.
	ErrNoArtwork = errors.New("artwork: not found")
	// ErrUnsupportedScheme is returned for URI schemes the resolver cannot fetch.
	ErrUnsupportedScheme = errors.New("artwork: unsupported scheme")
	// ErrTooLarge is returned when a download exceeds the size limit.
	ErrTooLarge = errors.New("artwork: image too large")
)

// EmbeddedURI returns the URI for the picture embedded in trackPath. If the
// file has none, a cover image next to it is used.
func EmbeddedURI(trackPath string) string {
	return (&url.URL{Scheme: SchemeEmbedded, Path: trackPath}).String()
}

// Options configures a Resolver.
type Options struct {
	CacheDir string // default: $XDG_CACHE_HOME/audiosession/artwork
	Width    int    // downscale bound, 0 = keep size
	Height   int    // downscale bound, 0 = keep size
	MaxBytes int64  // download limit, default 20 MiB
	Client   *http.Client
	Logger   *slog.Logger
}

// Resolver turns artwork URIs into local file paths.
type Resolver struct {
	dir      string
	width    uint
	height   uint
	maxBytes int64
	client   *http.Client
	logger   *slog.Logger
	index    *Index
	now      func() time.Time
}

// New opens the cache index and returns a resolver.
func New(ctx context.Context, opts Options) (*Resolver, error) {
	dir := opts.CacheDir
	if dir == "" {
		dir = filepath.Join(xdg.CacheHome, "audiosession", "artwork")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artwork cache: %w", err)
	}

	index, err := OpenIndex(ctx, filepath.Join(dir, "index.db"))
	if err != nil {
		return nil, fmt.Errorf("open artwork index: %w", err)
	}

	r := &Resolver{
		dir:      dir,
		width:    uint(max(opts.Width, 0)),  //nolint:gosec // clamped non-negative
		height:   uint(max(opts.Height, 0)), //nolint:gosec // clamped non-negative
		maxBytes: opts.MaxBytes,
		client:   opts.Client,
		logger:   opts.Logger,
		index:    index,
		now:      time.Now,
	}
	if r.maxBytes <= 0 {
		r.maxBytes = defaultMaxBytes
	}
	if r.client == nil {
		r.client = &http.Client{Timeout: defaultTimeout}
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r, nil
}

func (r *Resolver) downscales() bool {
	return r.width > 0 || r.height > 0
}

// Cached returns the local path for uri if it can be had without fetching
// or decoding anything.
func (r *Resolver) Cached(uri string) (string, bool) {
	u, err := url.Parse(uri)
	if err != nil || uri == "" {
		return "", false
	}
	if isLocal(u) && !r.downscales() {
		return u.Path, fileExists(u.Path)
	}

	e, ok, err := r.index.Lookup(context.Background(), uri)
	if err != nil || !ok {
		return "", false
	}
	if !fileExists(e.Path) {
		_ = r.index.Remove(context.Background(), uri)
		return "", false
	}
	return e.Path, true
}

// Resolve returns a local path for uri, fetching and caching it if needed.
func (r *Resolver) Resolve(ctx context.Context, uri string) (string, error) {
	if path, ok := r.Cached(uri); ok {
		return path, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse artwork uri: %w", err)
	}
	if isLocal(u) && !r.downscales() {
		return "", fmt.Errorf("%w: %s", ErrNoArtwork, u.Path)
	}

	data, err := r.fetch(ctx, u)
	if err != nil {
		return "", err
	}

	path, size, err := r.store(uri, data)
	if err != nil {
		return "", err
	}

	entry := Entry{URI: uri, Path: path, Size: size, FetchedAt: r.now()}
	if err := r.index.Put(ctx, entry); err != nil {
		return "", fmt.Errorf("index artwork: %w", err)
	}

	r.logger.Debug("artwork cached",
		"uri", uri,
		"path", path,
		"size", humanize.IBytes(uint64(size)), //nolint:gosec // file sizes are non-negative
	)
	return path, nil
}

// Prune deletes cached files older than maxAge and returns how many were
// removed.
func (r *Resolver) Prune(ctx context.Context, maxAge time.Duration) (int, error) {
	removed, err := r.index.Prune(ctx, r.now().Add(-maxAge))
	if err != nil {
		return 0, err
	}

	var freed int64
	for _, e := range removed {
		if err := os.Remove(e.Path); err == nil {
			freed += e.Size
		}
	}
	if len(removed) > 0 {
		r.logger.Info("artwork cache pruned",
			"files", len(removed),
			"freed", humanize.IBytes(uint64(freed)), //nolint:gosec // sum of sizes
		)
	}
	return len(removed), nil
}

// Close closes the cache index.
func (r *Resolver) Close() error {
	return r.index.Close()
}

func (r *Resolver) fetch(ctx context.Context, u *url.URL) ([]byte, error) {
	switch {
	case isLocal(u):
		return readFile(u.Path)
	case u.Scheme == SchemeEmbedded:
		return readEmbedded(u.Path)
	case u.Scheme == "http" || u.Scheme == "https":
		return r.download(ctx, u.String())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func (r *Resolver) download(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download artwork: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNoArtwork, uri)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download artwork: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("download artwork: %w", err)
	}
	if int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("%w: over %s", ErrTooLarge, humanize.IBytes(uint64(r.maxBytes))) //nolint:gosec // positive limit
	}
	return data, nil
}

// store writes data into the cache, resized when a bound is set, and
// returns the file path and size.
func (r *Resolver) store(uri string, data []byte) (string, int64, error) {
	ext := extensionFor(data)
	if r.downscales() {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return "", 0, fmt.Errorf("decode artwork: %w", err)
		}
		img = resize.Thumbnail(r.widthFor(img), r.heightFor(img), img, resize.Lanczos3)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return "", 0, fmt.Errorf("encode artwork: %w", err)
		}
		data, ext = buf.Bytes(), ".jpg"
	}

	sum := sha256.Sum256([]byte(uri))
	path := filepath.Join(r.dir, hex.EncodeToString(sum[:16])+ext)

	// Write then rename so concurrent resolvers never see a partial file.
	tmp, err := os.CreateTemp(r.dir, "art-*")
	if err != nil {
		return "", 0, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", 0, err
	}
	if err := tmp.Close(); err != nil {
		return "", 0, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", 0, err
	}
	return path, int64(len(data)), nil
}

// widthFor and heightFor fill an unset bound with the image's own size so
// Thumbnail only constrains the configured side.
func (r *Resolver) widthFor(img image.Image) uint {
	if r.width > 0 {
		return r.width
	}
	return uint(img.Bounds().Dx()) //nolint:gosec // image sizes are non-negative
}

func (r *Resolver) heightFor(img image.Image) uint {
	if r.height > 0 {
		return r.height
	}
	return uint(img.Bounds().Dy()) //nolint:gosec // image sizes are non-negative
}

func isLocal(u *url.URL) bool {
	return u.Scheme == "file" || (u.Scheme == "" && filepath.IsAbs(u.Path))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoArtwork, path)
	}
	return data, err
}

func readEmbedded(trackPath string) ([]byte, error) {
	data, _, err := Embedded(trackPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoArtwork, trackPath)
		}
		return nil, err
	}
	if data != nil {
		return data, nil
	}
	if cover := CoverFile(trackPath); cover != "" {
		return readFile(cover)
	}
	return nil, fmt.Errorf("%w: %s", ErrNoArtwork, trackPath)
}

func extensionFor(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
