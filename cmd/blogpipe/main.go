// Package main provides the blogpipe command: fetch an article, translate it
// and publish it to Ghost.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"

	"blogpipe/internal/archive"
	"blogpipe/internal/config"
	"blogpipe/internal/extractor"
	"blogpipe/internal/fileutil"
	"blogpipe/internal/ghost"
	"blogpipe/internal/logger"
	"blogpipe/internal/models"
	"blogpipe/internal/pipeline"
	"blogpipe/internal/publisher"
	"blogpipe/internal/render"
	"blogpipe/internal/translator"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}

		return exitCodeFor(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := execute(ctx, flags, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return exitCodeFor(err)
	}

	fmt.Fprintln(stdout, "✓ Published successfully!")
	fmt.Fprintf(stdout, "  Post ID: %s\n", result.ID)
	fmt.Fprintf(stdout, "  URL: %s\n", result.URL)
	fmt.Fprintf(stdout, "  Status: %s\n", result.Status)

	return ExitSuccess
}

func execute(ctx context.Context, flags *cliFlags, stdout, stderr io.Writer) (*models.PublishResult, error) {
	log := logger.NewLoggerWithWriter(flags.logLevel, stderr).With("run_id", uuid.NewString())
	log.Debug("loading configuration", "path", flags.config)

	cfg, err := config.Load(flags.config)
	if err != nil {
		return nil, err
	}

	if flags.status != "" {
		status, err := models.ParseStatus(flags.status)
		if err != nil {
			return nil, fmt.Errorf("--status: %w", err)
		}

		cfg.Publish.Status = string(status)
	}

	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}

	log.SetLevel(cfg.Logging.Level)
	log.Debug("configuration loaded", "config", cfg.String())

	if err := fileutil.EnsureDir(flags.outputDir); err != nil {
		return nil, err
	}

	client, err := ghost.NewAdminClient(cfg.BaseURL(), cfg.Ghost.AdminAPIKey, cfg.Timeout(), log)
	if err != nil {
		return nil, err
	}

	status, err := models.ParseStatus(cfg.Publish.Status)
	if err != nil {
		return nil, err
	}

	var archiver pipeline.Archiver
	if cfg.Publish.Archive {
		archiver = archive.New(flags.outputDir)
	}

	runner := pipeline.NewRunner(
		extractor.New(extractor.NewFetcher(cfg.Pipeline.UserAgent, cfg.Timeout(), cfg.Pipeline.BufferSizeKb), log),
		translator.Stub{},
		publisher.New(client, render.New(cfg.Publish.SanitizeHTML), log),
		archiver,
		stdout,
		log,
		pipeline.Options{
			OutputDir:  flags.outputDir,
			SourceLang: cfg.Pipeline.SourceLang,
			TargetLang: cfg.Pipeline.TargetLang,
			Publish: publisher.Options{
				Status:     status,
				Tags:       append(append([]string{}, cfg.Publish.Tags...), flags.tags...),
				Featured:   cfg.Publish.Featured,
				StripTitle: cfg.Publish.StripTitle,
			},
		},
	)

	log.Info("pipeline started", "url", flags.url, "source", flags.source, "output_dir", flags.outputDir)

	return runner.Run(ctx, pipeline.Source{URL: flags.url, Path: flags.source})
}
