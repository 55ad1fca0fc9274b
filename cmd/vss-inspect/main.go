// Command vss-inspect compiles a signal catalog and explores it.
//
// Without -interactive it prints the compiled tree and a summary. With
// -interactive it opens a session on an in-process broker and starts a
// shell for browsing the tree, subscribing to paths and writing values.
//
// Usage:
//
//	vss-inspect [flags]
//
// Flags:
//
//	-catalog string     Catalog file (.vspec, .yaml, .json, .cbor)
//	-config string      YAML configuration file
//	-policy string      Invalid record policy: strict, skip (default "strict")
//	-log-level string   Log level: debug, info, warn, error (default "info")
//	-event-log string   Write CBOR event log to this file
//	-ids                Show derived identifiers in the tree
//	-interactive        Start the interactive shell
//	-watch              Recompile and print the summary whenever the catalog changes
//	-recent int         Number of recently updated paths to keep (default 32)
//
// Examples:
//
//	# Print the tree of a catalog
//	vss-inspect -catalog vehicle.vspec -ids
//
//	# Re-check a catalog while editing it
//	vss-inspect -catalog vehicle.vspec -watch
//
//	# Explore interactively, recording events
//	vss-inspect -catalog vehicle.yaml -interactive -event-log session.vlog
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vss-go/vss-go/cmd/vss-inspect/interactive"
	"github.com/vss-go/vss-go/pkg/catalog"
	vsslog "github.com/vss-go/vss-go/pkg/log"
	"github.com/vss-go/vss-go/pkg/session"
	"github.com/vss-go/vss-go/pkg/tree"
)

var (
	config     = defaultConfig()
	configFile string
)

func init() {
	flag.StringVar(&configFile, "config", "", "YAML configuration file")
	flag.StringVar(&config.Catalog, "catalog", "", "Catalog file (.vspec, .yaml, .json, .cbor)")
	flag.StringVar(&config.Policy, "policy", config.Policy, "Invalid record policy: strict, skip")
	flag.StringVar(&config.LogLevel, "log-level", config.LogLevel, "Log level: debug, info, warn, error")
	flag.StringVar(&config.EventLog, "event-log", "", "Write CBOR event log to this file")
	flag.BoolVar(&config.ShowIDs, "ids", false, "Show derived identifiers in the tree")
	flag.BoolVar(&config.Interactive, "interactive", false, "Start the interactive shell")
	flag.BoolVar(&config.Watch, "watch", false, "Recompile and print the summary whenever the catalog changes")
	flag.IntVar(&config.RecentCapacity, "recent", config.RecentCapacity, "Number of recently updated paths to keep")
}

func main() {
	flag.Parse()

	if configFile != "" {
		// Flags given on the command line win over the file.
		fromFlags := config
		if err := loadConfigFile(configFile, &config); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}
		flag.Visit(func(f *flag.Flag) {
			overrideFromFlag(&config, fromFlags, f.Name)
		})
	}

	if err := config.validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := setupLogging(config.LogLevel)

	events, closeEvents, err := setupEventLog(config.EventLog, logger)
	if err != nil {
		log.Fatalf("Failed to open event log: %v", err)
	}
	defer closeEvents()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg := session.DefaultConfig()
	cfg.CatalogPath = config.Catalog
	cfg.Policy = config.policy()
	cfg.Identifiers = config.identifiers()
	cfg.RecentCapacity = config.RecentCapacity
	cfg.Logger = logger
	cfg.EventLogger = events

	sess, err := session.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer sess.Close()

	if !config.Interactive {
		printSummary(sess)
		if config.Watch {
			watchCatalog(ctx, cfg, logger)
		}
		return
	}

	shell, err := interactive.New(sess, interactive.Options{
		ShowIdentifiers: config.ShowIDs,
		Identifiers:     cfg.Identifiers,
	})
	if err != nil {
		log.Fatalf("Failed to start shell: %v", err)
	}
	log.SetOutput(shell.Stderr())
	shell.Run(ctx, cancel)
}

// overrideFromFlag copies the flag-provided value of name back into cfg.
func overrideFromFlag(cfg *Config, fromFlags Config, name string) {
	switch name {
	case "catalog":
		cfg.Catalog = fromFlags.Catalog
	case "policy":
		cfg.Policy = fromFlags.Policy
	case "log-level":
		cfg.LogLevel = fromFlags.LogLevel
	case "event-log":
		cfg.EventLog = fromFlags.EventLog
	case "ids":
		cfg.ShowIDs = fromFlags.ShowIDs
	case "interactive":
		cfg.Interactive = fromFlags.Interactive
	case "watch":
		cfg.Watch = fromFlags.Watch
	case "recent":
		cfg.RecentCapacity = fromFlags.RecentCapacity
	}
}

func setupLogging(level string) *slog.Logger {
	lvl, _ := parseLevel(level)
	log.SetFlags(log.Ltime)
	if lvl <= slog.LevelDebug {
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// setupEventLog combines the optional CBOR file logger with a slog adapter.
func setupEventLog(path string, logger *slog.Logger) (vsslog.Logger, func(), error) {
	adapter := vsslog.NewSlogAdapter(logger)
	if path == "" {
		return adapter, func() {}, nil
	}
	file, err := vsslog.NewFileLogger(path)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Event logging to: %s", path)
	closeFn := func() {
		if n := file.Dropped(); n > 0 {
			log.Printf("Event log dropped %d events", n)
		}
		file.Close()
	}
	return vsslog.NewMultiLogger(file, adapter), closeFn, nil
}

func printSummary(sess *session.Session) {
	forest := sess.Forest()
	cat := sess.Catalog()

	f := tree.NewFormatter()
	f.ShowIdentifiers = config.ShowIDs
	fmt.Print(f.FormatForest(forest))

	fmt.Println()
	fmt.Printf("Catalog:  %s (%s)\n", config.Catalog, cat.Format)
	fmt.Printf("Nodes:    %d (%d value-capable)\n", forest.Len(), len(forest.ValueNodes()))
	fmt.Printf("Roots:    %d\n", len(forest.Roots()))
	if len(cat.Skipped) > 0 {
		fmt.Printf("Skipped:  %d\n", len(cat.Skipped))
		for _, s := range cat.Skipped {
			fmt.Printf("  %v\n", s)
		}
	}
	for _, w := range forest.Warnings() {
		fmt.Printf("Warning:  %v\n", w)
	}
}

// watchCatalog reopens the catalog after every change until ctx is done.
func watchCatalog(ctx context.Context, cfg session.Config, logger *slog.Logger) {
	w, err := catalog.NewWatcher(catalog.WatchConfig{Path: cfg.CatalogPath, Logger: logger})
	if err != nil {
		log.Fatalf("Failed to watch catalog: %v", err)
	}
	defer w.Stop()

	changes, err := w.Start()
	if err != nil {
		log.Fatalf("Failed to watch catalog: %v", err)
	}
	log.Printf("Watching %s for changes (Ctrl-C to stop)", cfg.CatalogPath)

	for {
		select {
		case <-ctx.Done():
			return
		case <-changes:
		}

		sess, err := session.Open(ctx, cfg)
		if err != nil {
			log.Printf("Catalog invalid: %v", err)
			continue
		}
		fmt.Println()
		printSummary(sess)
		sess.Close()
	}
}
