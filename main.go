package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/audiosession/internal/app"
	"github.com/llehouerou/audiosession/internal/artwork"
	"github.com/llehouerou/audiosession/internal/config"
	"github.com/llehouerou/audiosession/internal/errmsg"
	"github.com/llehouerou/audiosession/internal/localaudio"
	"github.com/llehouerou/audiosession/internal/logging"
	"github.com/llehouerou/audiosession/internal/mpris"
	"github.com/llehouerou/audiosession/internal/notify"
	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/player"
	"github.com/llehouerou/audiosession/internal/session"
	"github.com/llehouerou/audiosession/internal/stderr"
	"github.com/llehouerou/audiosession/internal/surface"
	"github.com/llehouerou/audiosession/internal/ui/headerbar"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	logger, logCloser := setupLogging(cfg)
	defer logCloser.Close()

	// Capture C library noise before the audio device opens.
	if err := stderr.Start(logger); err != nil {
		logger.Warn("stderr capture unavailable", "error", err)
	}
	defer stderr.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root, err := libraryRoot(cfg)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpBrowse, err))
	}

	art, err := artwork.New(ctx, artwork.Options{
		CacheDir: cfg.Artwork.CacheDir,
		Width:    cfg.Artwork.DownscaleWidth,
		Height:   cfg.Artwork.DownscaleHeight,
		Logger:   logger,
	})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpArtworkOpen, err))
	}
	if cfg.Artwork.MaxAge > 0 {
		if _, err := art.Prune(ctx, cfg.Artwork.MaxAge); err != nil {
			logger.Warn("artwork prune failed", "error", err)
		}
	}

	opts, surfaces := surfaceOptions(cfg, logger)
	opts = append(opts, session.WithLogger(logger), session.WithArtResolver(art))

	audio := player.New()
	build := func(_ context.Context, sc surface.Config) (playback.Handler, error) {
		base := localaudio.New(audio, root, localaudio.WithLogger(logger))
		return session.Chain(base, sc, logger)
	}

	sess, err := session.Open(ctx, cfg.Surface(), build, opts...)
	if err != nil {
		_ = art.Close()
		return errors.New(errmsg.Format(errmsg.OpSessionOpen, err))
	}
	defer sess.Close()

	model := app.New(ctx, sess, app.Options{
		Title:    cfg.MPRIS.Identity,
		Surfaces: surfaces,
		Art:      art,
		Logger:   logger,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func setupLogging(cfg *config.Config) (*slog.Logger, io.Closer) {
	level, _ := cfg.LogLevel() // validated by Load
	logger, closer, err := logging.Setup(cfg.Log.File, level)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpLogSetup, err))
		return logging.NullLogger(), io.NopCloser(nil)
	}
	return logger, closer
}

// libraryRoot is the first argument, the configured folder, or the working
// directory, in that order.
func libraryRoot(cfg *config.Config) (string, error) {
	if len(os.Args) > 1 {
		return os.Args[1], nil
	}
	if cfg.DefaultFolder != "" {
		return cfg.DefaultFolder, nil
	}
	return os.Getwd()
}

// surfaceOptions creates the enabled desktop surfaces. A surface that
// cannot be created is logged and left out.
func surfaceOptions(cfg *config.Config, logger *slog.Logger) ([]session.Option, []headerbar.Surface) {
	var opts []session.Option
	var shown []headerbar.Surface

	if cfg.MPRISEnabled() {
		opts = append(opts, session.WithSurface(mpris.New(cfg.MPRIS.Identity, logger)))
	}
	shown = append(shown, headerbar.Surface{Name: "MPRIS", Active: cfg.MPRISEnabled()})

	active := false
	if cfg.NotificationsEnabled() {
		n, err := notify.New(cfg.MPRIS.Identity)
		if err != nil {
			logger.Warn("notifications unavailable", "error", errmsg.Format(errmsg.OpSurfaceStart, err))
		} else {
			opts = append(opts, session.WithSurface(notify.NewTrackSurface(n)))
			active = true
		}
	}
	shown = append(shown, headerbar.Surface{Name: "Notifications", Active: active})

	return opts, shown
}
