package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

// HUDConfig holds runtime configuration for the hudhook binary.
type HUDConfig struct {
	ID         string
	Listen     string
	Title      string
	Width      int
	Height     int
	Headless   bool
	WebRTC     bool
	ICEServers []string
	LogLevel   string
}

// ParseHUDFlags parses flags for the hudhook binary.
func ParseHUDFlags(args []string) (*HUDConfig, error) {
	cfg := &HUDConfig{}
	fs := pflag.NewFlagSet("hudhook", pflag.ContinueOnError)
	fs.StringVar(&cfg.ID, "id", "", "HUD ID shown in the title (auto-generated if empty)")
	fs.StringVar(&cfg.Listen, "listen", "127.0.0.1:8470", "Address for the control WebSocket (empty disables it)")
	fs.StringVar(&cfg.Title, "title", "hudhook", "Window title")
	fs.IntVar(&cfg.Width, "width", 640, "Window width")
	fs.IntVar(&cfg.Height, "height", 360, "Window height")
	fs.BoolVar(&cfg.Headless, "headless", false, "Run without a window; only remote events fire triggers")
	fs.BoolVar(&cfg.WebRTC, "webrtc", true, "Accept WebRTC offers on the control connection")
	fs.StringSliceVar(&cfg.ICEServers, "ice", nil, "STUN/TURN server URLs (default: public STUN)")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.ID == "" {
		cfg.ID = fmt.Sprintf("hud-%s", shortID())
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}

// CtlConfig holds configuration for the hudctl binary.
type CtlConfig struct {
	URL        string
	Type       string
	Trigger    string
	KeyCode    int
	WebRTC     bool
	ICEServers []string
	Timeout    time.Duration
	LogLevel   string
}

// ParseCtlFlags parses flags for the hudctl binary.
func ParseCtlFlags(args []string) (*CtlConfig, error) {
	cfg := &CtlConfig{}
	fs := pflag.NewFlagSet("hudctl", pflag.ContinueOnError)
	fs.StringVar(&cfg.URL, "url", "ws://127.0.0.1:8470/ws", "Control WebSocket URL of a running hudhook")
	fs.StringVarP(&cfg.Type, "type", "t", "action", "Event type (action, query, key_down, key_up)")
	fs.StringVar(&cfg.Trigger, "trigger", "", "Trigger name (defaults per event type)")
	fs.IntVarP(&cfg.KeyCode, "key", "k", 0, "Key code for key events")
	fs.BoolVar(&cfg.WebRTC, "webrtc", false, "Send the event over a WebRTC data channel")
	fs.StringSliceVar(&cfg.ICEServers, "ice", nil, "STUN/TURN server URLs (default: public STUN)")
	fs.DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "Overall timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.URL == "" {
		return nil, errors.New("--url is required")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	return cfg, nil
}

func shortID() string {
	return uuid.NewString()[:8]
}
