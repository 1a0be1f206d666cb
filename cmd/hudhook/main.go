package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/junsooki/hudhook/internal/callback"
	"github.com/junsooki/hudhook/internal/config"
	"github.com/junsooki/hudhook/internal/display"
	"github.com/junsooki/hudhook/internal/input"
	"github.com/junsooki/hudhook/internal/logger"
	"github.com/junsooki/hudhook/internal/peer"
	"github.com/junsooki/hudhook/internal/signaling"
)

func main() {
	cfg, err := config.ParseHUDFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if err := logger.Init(cfg.LogLevel, nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger.Info().
		Str("id", cfg.ID).
		Str("listen", cfg.Listen).
		Bool("headless", cfg.Headless).
		Msg("hudhook starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d := callback.NewDispatcher()
	app := &demo{}

	var runner callback.Runner
	var hud *display.HUD
	if cfg.Headless {
		runner = &callback.Direct{}
		app.quit = cancel
	} else {
		hud = display.NewHUD(d, display.Options{
			Title:  fmt.Sprintf("%s [%s]", cfg.Title, cfg.ID),
			Width:  cfg.Width,
			Height: cfg.Height,
			Status: app.status,
		})
		for _, r := range regions(cfg.Width, cfg.Height) {
			hud.AddRegion(r)
		}
		runner = hud
		app.quit = hud.Quit
	}
	app.bind(d)

	if cfg.Listen != "" {
		var newPeer signaling.PeerFactory
		if cfg.WebRTC {
			newPeer = func(cand peer.CandidateSender, handle peer.EventHandler) (*peer.Answerer, error) {
				return peer.NewAnswerer(cfg.ICEServers, cand, handle)
			}
		}
		srv := signaling.NewServer(input.NewRouter(d, runner), newPeer)
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Listen); err != nil {
				logger.Error().Err(err).Msg("control server stopped")
				cancel()
			}
		}()
		logger.Info().Str("url", "ws://"+cfg.Listen+signaling.Path).Msg("control endpoint ready")
	}

	if cfg.Headless {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		return
	}

	// Ebitengine RunGame must be on the main goroutine (macOS requirement).
	go func() {
		<-ctx.Done()
		hud.Quit()
	}()
	if err := hud.Loop(); err != nil {
		logger.Fatal().Err(err).Msg("display")
	}
	logger.Info().Msg("shutting down")
}
