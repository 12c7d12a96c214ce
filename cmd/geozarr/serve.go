package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"

	"github.com/geozarr/toolkit/config"
	"github.com/geozarr/toolkit/serve"
)

func runServe(args []string) int {
	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	addr := flags.String("addr", "", "listen address (overrides config)")
	configPath := flags.String("config", "", "path to a YAML config file")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: geozarr serve [flags]")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	if cfg.Tracing {
		tp := serve.NewTracerProvider(serve.NewLogSpanExporter(logger), logger)
		otel.SetTracerProvider(tp)
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Warn("tracer shutdown failed", "error", err)
			}
		}()
	}

	server := serve.NewServer(
		serve.WithLogger(logger),
		serve.WithStoreTimeout(cfg.StoreTimeout),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, cfg.Addr); err != nil {
		logger.Error("server failed", "error", err)
		return 1
	}
	return 0
}
