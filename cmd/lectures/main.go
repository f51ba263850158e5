package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/studysmarterz/lectures/pkg/cache"
	"github.com/studysmarterz/lectures/pkg/config"
	"github.com/studysmarterz/lectures/pkg/feed"
	"github.com/studysmarterz/lectures/pkg/render"
	"github.com/studysmarterz/lectures/pkg/sanitizer"
	"github.com/studysmarterz/lectures/pkg/scheduler"
	"github.com/studysmarterz/lectures/server"
)

// Opts with all CLI options
type Opts struct {
	Config   string `short:"c" long:"config" env:"CONFIG" description:"path to config file, defaults are used if not set"`
	Listen   string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	Port     int    `long:"port" env:"PORT" description:"listen port on all interfaces, overrides config and --listen"`
	Upstream string `long:"upstream" env:"UPSTREAM_URL" description:"upstream API base URL, overrides config"`
	BaseURL  string `long:"base-url" env:"BASE_URL" description:"public base URL, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	lgr.Printf("[INFO] starting lectures version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Printf("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is canceled or the server fails
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	renderer, err := render.New(render.Params{
		Title:        cfg.Site.Title,
		CommunityURL: cfg.Site.CommunityURL,
		Reload:       cfg.Refresh.Interval,
	})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	loading, err := renderer.Loading()
	if err != nil {
		return fmt.Errorf("failed to render loading page: %w", err)
	}
	store := cache.NewStore(cache.Placeholder(loading, time.Now()))

	fetcher := feed.NewHTTPFetcher(feed.FetcherParams{
		Client:     &http.Client{},
		BaseURL:    cfg.Upstream.BaseURL,
		Timeout:    cfg.Upstream.Timeout,
		Retries:    cfg.Upstream.Retries,
		RetryDelay: cfg.Upstream.RetryDelay,
		UserAgent:  cfg.Upstream.UserAgent,
	})

	san := sanitizer.New(sanitizer.Params{
		Replacements: replacements(cfg.Rewrites),
		HostSuffix:   cfg.Media.HostSuffix,
		PlayerURL:    cfg.Media.PlayerURL,
	})

	sched := scheduler.NewScheduler(scheduler.Params{
		Fetcher:      fetcher,
		Transformer:  san,
		PageRenderer: renderer,
		FeedRenderer: feed.NewGenerator(cfg.Server.BaseURL, cfg.Site.Title, cfg.Refresh.Interval),
		Store:        store,
		Interval:     cfg.Refresh.Interval,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, store, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadConfig loads the config file if set, or defaults otherwise, and applies CLI overrides
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, err
		}
	}

	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.Port > 0 {
		cfg.Server.Listen = ":" + strconv.Itoa(opts.Port)
	}
	if opts.Upstream != "" {
		cfg.Upstream.BaseURL = opts.Upstream
	}
	if opts.BaseURL != "" {
		cfg.Server.BaseURL = opts.BaseURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func replacements(rewrites []config.Rewrite) []sanitizer.Replacement {
	res := make([]sanitizer.Replacement, 0, len(rewrites))
	for _, r := range rewrites {
		res = append(res, sanitizer.Replacement{From: r.From, To: r.To})
	}
	return res
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	color.NoColor = color.NoColor || noColor
	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
