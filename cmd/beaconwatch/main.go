// Command beaconwatch watches a directory and republishes file-system events
// through a beacon.Emitter under fs.<op>.<ext> topics. Bursts of changes are
// collapsed with a debouncer and a throttled stats line shows emitter
// counters. It is a small demonstration of the library's moving parts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/beacon"
	"github.com/dshills/beacon/rate"
	"github.com/dshills/beacon/topic"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to TOML config file")
	watchPath := flag.String("path", "", "directory to watch (overrides config)")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *watchPath != "" {
		cfg.Path = *watchPath
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))

	em := beacon.New(
		beacon.WithSink(beacon.NewSlogSink(logger)),
		beacon.WithCapacity(cfg.Capacity),
	)

	var changes atomic.Int64
	if _, err := em.OnFunc("fs.**", func(ctx context.Context, args ...any) error {
		changes.Add(1)
		return nil
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Print one summary line per burst of changes.
	summarize, err := rate.Debounce(func(args ...any) {
		n := changes.Swap(0)
		if len(args) > 0 {
			logger.Info("changes settled", "count", n, "last", args[0])
		}
	}, cfg.Debounce())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Stats at most once per interval, however fast events arrive.
	stats, err := rate.Throttle(func(args ...any) {
		s := em.Stats()
		logger.Debug("emitter stats",
			"emitted", s.Emitted,
			"delivered", s.Delivered,
			"errors", s.ListenerErrors,
		)
	}, cfg.StatsInterval())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if _, err := em.OnFunc("fs.*.*", func(ctx context.Context, args ...any) error {
		if len(args) > 0 {
			summarize(args[0])
		}
		stats()
		return nil
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create watcher: %v\n", err)
		return 1
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.Path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to watch %s: %v\n", cfg.Path, err)
		return 1
	}
	logger.Info("watching", "path", cfg.Path)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	ctx := context.Background()
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			em.Emit(ctx, eventTopic(ev), ev.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			logger.Warn("watch error", "error", err)
		case <-signals:
			logger.Info("shutting down")
			return 0
		}
	}
}

// eventTopic maps an fsnotify event to an fs.<op>.<ext> topic, such as
// fs.write.go for a modified Go file.
func eventTopic(ev fsnotify.Event) topic.Topic {
	op := "other"
	switch {
	case ev.Has(fsnotify.Write):
		op = "write"
	case ev.Has(fsnotify.Create):
		op = "create"
	case ev.Has(fsnotify.Remove):
		op = "remove"
	case ev.Has(fsnotify.Rename):
		op = "rename"
	case ev.Has(fsnotify.Chmod):
		op = "chmod"
	}

	ext := strings.TrimPrefix(filepath.Ext(ev.Name), ".")
	if ext == "" {
		ext = "file"
	}
	return topic.Join("fs", op, ext)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
