package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	rbxdoc "github.com/SergeyMakeev/RbxDoc"
	"github.com/SergeyMakeev/RbxDoc/internal/observability"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rbxserve: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "optional TOML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg := defaultServeConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadServeConfig(*configPath); err != nil {
			return err
		}
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if flag.NArg() == 1 {
		cfg.File = flag.Arg(0)
	}
	if cfg.File == "" {
		return fmt.Errorf("usage: rbxserve [flags] <file>")
	}

	logger := observability.InitLogger("rbxserve")
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	start := time.Now()
	doc, err := rbxdoc.LoadFile(cfg.File, rbxdoc.WithLogger(logger))
	observability.RecordDocumentLoad(err, time.Since(start))
	if err != nil {
		return err
	}
	logger.Info().
		Str("file", cfg.File).
		Int("types", len(doc.Types)).
		Int("instances", len(doc.Instances)).
		Dur("duration", time.Since(start)).
		Msg("document loaded")

	srv := newServer(doc, cfg, logger)
	logger.Info().Str("addr", cfg.Addr).Msg("listening")
	return srv.router.Run(cfg.Addr)
}
