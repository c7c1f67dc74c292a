package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"github.com/samvad-hq/bazaar-pulse/internal/app"
	"github.com/samvad-hq/bazaar-pulse/internal/config"
	"github.com/samvad-hq/bazaar-pulse/internal/dashboard"
	"github.com/samvad-hq/bazaar-pulse/internal/logger"
)

// Opts with all CLI options
type Opts struct {
	Once     bool   `long:"once" description:"fetch news and trends once and exit"`
	Search   string `short:"s" long:"search" description:"search text matched against title and description"`
	Source   string `long:"source" default:"All" description:"show only this source"`
	Category string `long:"category" default:"All" description:"show only this category"`
	Page     int    `short:"p" long:"page" default:"1" description:"news page to show"`
	PageSize int    `long:"page-size" default:"9" description:"news items per page"`
	NoColor  bool   `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

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

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "dashboard start failed: %v\n", err)
		os.Exit(1)
	}
}

func run(opts Opts) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("dashboard starting", "config", map[string]any{
		"app_name":       cfg.AppName,
		"env":            cfg.Env,
		"providers_file": cfg.ProvidersFile,
		"poll_interval":  cfg.PollInterval.String(),
		"news_api":       cfg.NewsAPIKey != "",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dash, err := app.NewDashboard(cfg, logger.Zap(), app.Options{
		Query: dashboard.Query{
			Search:   opts.Search,
			Source:   opts.Source,
			Category: opts.Category,
			Page:     opts.Page,
			PageSize: opts.PageSize,
		},
		Out:     os.Stdout,
		NoColor: opts.NoColor,
	})
	if err != nil {
		logger.ErrorObj("failed to initialize dashboard", "error", err)
		return err
	}

	if opts.Once {
		if _, err := dash.RunOnce(ctx); err != nil {
			return fmt.Errorf("dashboard refresh: %w", err)
		}
		return nil
	}

	if err := dash.Run(ctx); err != nil {
		return fmt.Errorf("dashboard run: %w", err)
	}
	return nil
}
