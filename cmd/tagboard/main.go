package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"tagboard/internal/adapters/cache"
	"tagboard/internal/adapters/client/tagsapi"
	"tagboard/internal/adapters/eventbroker/nats"
	"tagboard/internal/adapters/handlers/cli"
	"tagboard/internal/adapters/urlstate"
	"tagboard/internal/config"
	"tagboard/internal/core/port"
	"tagboard/internal/core/service/browse"
)

func main() {
	var (
		initialURL string
		once       bool
		verbose    bool
	)
	flag.StringVar(&initialURL, "url", "", "Initial browser query, ex: ?page=2&tag=react")
	flag.BoolVar(&once, "once", false, "Render the initial page and exit")
	flag.BoolVar(&verbose, "v", false, "Debug logs on stderr")
	flag.Parse()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.LoadBrowser()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// a full link is accepted too, only its query matters
	if i := strings.IndexByte(initialURL, '?'); i >= 0 {
		initialURL = initialURL[i:]
	}
	store, err := urlstate.NewStore(initialURL)
	if err != nil {
		logger.Warn("invalid initial url, starting empty", "url", initialURL, "error", err)
	}
	store.Subscribe(func(query string) {
		logger.Debug("url changed", "query", "?"+query)
	})

	api := tagsapi.NewClient(cfg.TagsAPI, logger)
	pageCache := cache.New(cache.Options{
		StaleTime:    cfg.Cache.StaleTime,
		FetchTimeout: cfg.TagsAPI.Timeout,
		MaxEntries:   cfg.Cache.MaxEntries,
	}, logger)
	browser := browse.NewBrowseService(store, api, pageCache, logger)

	if cfg.NATS.Enabled() && !once {
		if consumer := startLiveUpdates(ctx, cfg.NATS, browser, logger); consumer != nil {
			defer consumer.Close()
		}
	}

	repl := cli.NewREPL(browser, store.Encode, os.Stdout, logger)
	if once {
		if _, err := repl.Execute(ctx, "refresh"); err != nil {
			logger.Error("failed to render", "error", err)
			os.Exit(1)
		}
		if browser.View().Err != nil {
			os.Exit(1)
		}
		return
	}

	if err := repl.Run(ctx, os.Stdin); err != nil {
		logger.Error("input error", "error", err)
		os.Exit(1)
	}
}

// startLiveUpdates invalidates the browser cache on tag events. It returns nil when NATS is unreachable.
func startLiveUpdates(ctx context.Context, cfg config.NATSConfig, handler port.MessageService, logger *slog.Logger) port.EventConsumer {
	consumer, err := nats.NewNATSConsumer(cfg, logger)
	if err != nil {
		logger.Error("failed to init nats consumer, live updates disabled", "error", err)
		return nil
	}
	if err := consumer.Subscribe(ctx, handler); err != nil {
		logger.Error("failed to subscribe to tag events", "error", err)
		_ = consumer.Close()
		return nil
	}
	return consumer
}
