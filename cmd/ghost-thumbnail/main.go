// Package main provides the ghost-thumbnail command, which sets the feature
// image of an existing Ghost post.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"blogpipe/internal/apperr"
	"blogpipe/internal/config"
	"blogpipe/internal/ghost"
	"blogpipe/internal/logger"
	"blogpipe/internal/publisher"
	"blogpipe/internal/render"
)

// Exit codes, shared with blogpipe.
const (
	exitSuccess = 0
	exitGeneral = 1
	exitUsage   = 2
	exitIO      = 3
	exitPublish = 5
)

// ErrMissingArgs is returned when --post-id or --image is absent.
var ErrMissingArgs = errors.New("--post-id and --image are required")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var postID, imagePath, configPath, logLevel string

	fs := flag.NewFlagSet("ghost-thumbnail", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&postID, "post-id", "p", "", "id of the post to update")
	fs.StringVarP(&imagePath, "image", "i", "", "image file to upload")
	fs.StringVarP(&configPath, "config", "c", "", "optional YAML config file")
	fs.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitSuccess
		}

		fmt.Fprintf(stderr, "Error: %v\n", err)

		return exitUsage
	}

	if postID == "" || imagePath == "" {
		fmt.Fprintf(stderr, "Error: %v\n", ErrMissingArgs)

		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	imageURL, err := updateThumbnail(ctx, configPath, logLevel, postID, imagePath, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return exitCodeFor(err)
	}

	fmt.Fprintln(stdout, "✓ Thumbnail updated!")
	fmt.Fprintf(stdout, "  Post ID: %s\n", postID)
	fmt.Fprintf(stdout, "  Image: %s\n", imageURL)

	return exitSuccess
}

func updateThumbnail(ctx context.Context, configPath, logLevel, postID, imagePath string, stderr io.Writer) (string, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return "", err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	log := logger.NewLoggerWithWriter(cfg.Logging.Level, stderr)

	client, err := ghost.NewAdminClient(cfg.BaseURL(), cfg.Ghost.AdminAPIKey, cfg.Timeout(), log)
	if err != nil {
		return "", err
	}

	return publisher.New(client, render.New(cfg.Publish.SanitizeHTML), log).UpdateFeatureImage(ctx, postID, imagePath)
}

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, apperr.ErrConfig):
		return exitUsage
	case errors.Is(err, apperr.ErrPublish):
		return exitPublish
	case errors.Is(err, apperr.ErrIO), errors.Is(err, os.ErrNotExist):
		return exitIO
	}

	return exitGeneral
}
