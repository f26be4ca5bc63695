package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/BaSui01/modality/config"
	"github.com/BaSui01/modality/internal/cache"
	"github.com/BaSui01/modality/internal/metrics"
	"github.com/BaSui01/modality/internal/telemetry"
	"github.com/BaSui01/modality/pipeline"
	"github.com/BaSui01/modality/types"
)

// =============================================================================
// 🔄 convert 命令
// =============================================================================

func runConvert(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	modalities := strings.Join(types.ModalityNames(), ", ")
	inputPath := fs.String("input", "", "Input file to convert")
	targetName := fs.String("target", "", "Target modality: "+modalities)
	sourceName := fs.String("source-modality", "", "Source modality (auto-detected if omitted): "+modalities)
	outputPath := fs.String("output", "", "Write converted output to this file")
	configPath := fs.String("config", "", "Path to config file")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	if *inputPath == "" || *targetName == "" {
		fmt.Fprintln(stderr, "Error: --input and --target are required")
		fs.Usage()
		return exitUsage
	}

	target, err := types.ParseModality(*targetName)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid --target: %v\n", err)
		return exitUsage
	}

	var source types.Modality
	if *sourceName != "" {
		if source, err = types.ParseModality(*sourceName); err != nil {
			fmt.Fprintf(stderr, "Error: invalid --source-modality: %v\n", err)
			return exitUsage
		}
	}

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	svc, cleanup, err := setupService(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer cleanup()

	content := types.BytesContent(raw)
	if source == "" {
		source = svc.Detect(ctx, content)
		fmt.Fprintf(stderr, "Detected source modality: %s\n", source)
	}

	result, err := svc.Normalize(ctx, content, pipeline.Request{
		Source:   source,
		Target:   target,
		MimeType: guessMime(*inputPath),
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	output := result.Output.Content.Text()
	if *outputPath != "" {
		if err := os.WriteFile(*outputPath, []byte(output), 0o644); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		fmt.Fprintf(stdout, "Converted output written to %s\n", *outputPath)
	} else {
		fmt.Fprintln(stdout, output)
	}

	fmt.Fprintf(stderr, "\nConversion: %s -> %s  quality=%.2f\n",
		result.SourceModality, result.TargetModality, result.QualityScore)
	return exitOK
}

// =============================================================================
// 🔍 detect 命令
// =============================================================================

func runDetect(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("input", "", "File to detect modality for")
	configPath := fs.String("config", "", "Path to config file")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	if *inputPath == "" {
		fmt.Fprintln(stderr, "Error: --input is required")
		fs.Usage()
		return exitUsage
	}

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	svc, cleanup, err := setupService(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer cleanup()

	fmt.Fprintf(stdout, "Detected modality: %s\n", svc.Detect(ctx, types.BytesContent(raw)))
	return exitOK
}

// =============================================================================
// 🔧 辅助函数
// =============================================================================

// parseFlags parses args. ok is false when the command must stop with code.
func parseFlags(fs *flag.FlagSet, args []string) (code int, ok bool) {
	err := fs.Parse(args)
	switch {
	case err == nil:
		if fs.NArg() > 0 {
			fmt.Fprintf(fs.Output(), "Error: unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			return exitUsage, false
		}
		return exitOK, true
	case errors.Is(err, flag.ErrHelp):
		return exitOK, false
	default:
		return exitUsage, false
	}
}

// setupService loads config, builds the logger and wires the service.
// cleanup releases the service's resources and then flushes the logger.
func setupService(configPath string) (*pipeline.Service, func(), error) {
	loader := config.NewLoader().WithValidator(func(c *config.Config) error { return c.Validate() })
	if configPath != "" {
		loader = loader.WithConfigPath(configPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := initLogger(cfg.Log)
	svc, cleanup, err := buildService(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return svc, func() {
		cleanup()
		_ = logger.Sync()
	}, nil
}

// buildService wires the optional telemetry, metrics and cache around the
// pipeline. cleanup releases them in reverse order.
func buildService(cfg *config.Config, logger *zap.Logger) (*pipeline.Service, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithBatchConcurrency(cfg.Pipeline.BatchConcurrency),
	}

	providers, err := telemetry.Init(cfg.Telemetry, logger, telemetry.WithServiceVersion(Version))
	if err != nil {
		logger.Warn("failed to initialize telemetry", zap.Error(err))
	} else {
		opts = append(opts,
			pipeline.WithTracer(providers.Tracer()),
			pipeline.WithMeterProvider(providers.MeterProvider()),
		)
		closers = append(closers, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := providers.Shutdown(ctx); err != nil {
				logger.Warn("telemetry shutdown failed", zap.Error(err))
			}
		})
	}

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		opts = append(opts, pipeline.WithMetrics(metrics.NewCollector(cfg.Metrics.Namespace, reg, logger)))
		if path := cfg.Metrics.TextfilePath; path != "" {
			closers = append(closers, func() {
				if err := prometheus.WriteToTextfile(path, reg); err != nil {
					logger.Warn("failed to write metrics textfile", zap.String("path", path), zap.Error(err))
				}
			})
		}
	}

	if cfg.Cache.Enabled {
		rc, err := cache.New(cfg.Cache, logger)
		if err != nil {
			logger.Warn("result cache unavailable, continuing without it", zap.Error(err))
		} else {
			opts = append(opts, pipeline.WithCache(rc))
			closers = append(closers, func() { _ = rc.Close() })
		}
	}

	svc, err := pipeline.New(opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}
