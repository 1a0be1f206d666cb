package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/junsooki/hudhook/internal/config"
	"github.com/junsooki/hudhook/internal/input"
	"github.com/junsooki/hudhook/internal/logger"
	"github.com/junsooki/hudhook/internal/signaling"
)

func main() {
	cfg, err := config.ParseCtlFlags(os.Args[1:])
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

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	e := input.Event{
		Type:    input.EventType(cfg.Type),
		Trigger: cfg.Trigger,
		KeyCode: cfg.KeyCode,
	}

	var res input.Result
	if cfg.WebRTC {
		res, err = signaling.FireWebRTC(ctx, cfg.URL, cfg.ICEServers, e)
	} else {
		res, err = fireWebSocket(ctx, cfg.URL, e)
	}
	if err != nil {
		logger.Error().Err(err).Msg("fire")
		os.Exit(1)
	}

	out, err := json.Marshal(res)
	if err != nil {
		logger.Fatal().Err(err).Msg("encode result")
	}
	fmt.Println(string(out))
}

func fireWebSocket(ctx context.Context, url string, e input.Event) (input.Result, error) {
	client := signaling.NewClient(url, signaling.Handler{})
	if err := client.Connect(ctx); err != nil {
		return input.Result{}, err
	}
	defer client.Close()
	return client.Fire(ctx, e)
}
