// cmd/noesis/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"noesis/internal/artifacts"
	"noesis/internal/core/ports"
	"noesis/internal/core/usecases"
	"noesis/internal/extract"
	"noesis/internal/pipeline"
	"noesis/internal/platform/config"
	"noesis/internal/platform/errors"
	"noesis/internal/platform/logx"
	"noesis/internal/platform/registry"
	"noesis/internal/platform/ui"
	"noesis/internal/probe"
)

var (
	// Set via -ldflags at build time
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// 1. Load centralized config
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		os.Exit(2)
	}

	if cfg.PrintVersion {
		fmt.Printf("noesis %s (commit %s, built %s)\n", version, commit, date)
		os.Exit(0)
	}

	if cfg.Topic == "" && !cfg.CheckOnly {
		fmt.Fprintln(os.Stderr, "Error: a research topic is required")
		fmt.Fprintln(os.Stderr, "Usage: noesis -t <topic>")
		fmt.Fprintln(os.Stderr, "Try: noesis -h for help")
		os.Exit(2)
	}

	// 2. Shared logger
	logger := logx.New()

	logger.Info("noesis starting",
		"version", version,
		"topic", cfg.Topic,
		"check_only", cfg.CheckOnly,
		"artifact_dir", cfg.ArtifactDir,
	)

	// 3. Context and signals for clean shutdown
	ctx, cancel := rootContextWithSignals()
	defer cancel()

	// 4. Tool server registry with the MCP prober
	reg := registry.New(registry.Options{
		Prober:       probe.New(logger),
		ProbeTimeout: cfg.ProbeTimeout(),
		Logger:       logger,
	})
	for _, desc := range cfg.Servers {
		if err := reg.Register(desc); err != nil {
			logger.Err(err, "phase", "registry", "server", desc.Name)
			os.Exit(2)
		}
	}
	logger.Info("tool servers registered",
		"configured", len(reg.ListAll()),
		"enabled", len(reg.List()),
	)

	// 5. Presenter
	var presenter ports.Presenter
	if cfg.Quiet {
		presenter = ui.NewRawPresenter(os.Stdout)
	} else {
		presenter = ui.NewPTermPresenter()
	}

	// 6. Pipeline invoker
	invoker, err := pipeline.New(pipeline.Options{
		Command: cfg.Pipeline.Command,
		WorkDir: cfg.Pipeline.WorkDir,
		Timeout: cfg.PipelineTimeout(),
		Logger:  logger,
	})
	if err != nil {
		logger.Err(err, "phase", "invoker-build")
		os.Exit(2)
	}

	// 7. Artifact store and extractor
	store := artifacts.New(cfg.ArtifactDir, logger)
	extractor := extract.New(store, logger)

	// 8. Assistant usecase
	assistant := usecases.NewResearchAssistant(usecases.AssistantOptions{
		Directory: reg,
		Invoker:   invoker,
		Extractor: extractor,
		Presenter: presenter,
		Logger:    logger,
	})

	// 9. Diagnostics-only mode
	if cfg.CheckOnly {
		statuses := assistant.Diagnose(ctx)
		for _, status := range statuses {
			if !status.Reachable && status.Detail != "disabled" {
				os.Exit(1)
			}
		}
		return
	}

	// 10. Run the research flow
	result, err := assistant.Research(ctx, cfg.Topic)
	if err != nil {
		logger.Err(err, "phase", "research")
		os.Exit(2)
	}

	logger.Info("noesis finished",
		"topic", result.Topic,
		"summary", result.HasSummary(),
		"search_results", len(result.SearchResults),
		"images", len(result.Images),
		"warnings", len(result.Warnings),
	)
}

// rootContextWithSignals cancels the root context on SIGINT/SIGTERM so
// an in-flight pipeline subprocess is killed rather than orphaned.
func rootContextWithSignals() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
