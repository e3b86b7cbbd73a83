package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// Usage errors.
var (
	ErrInvalidFlags           = errors.New("invalid flags")
	ErrAllowRepublishRequired = errors.New("--allow-republish is required: this command publishes a new post on every run")
	ErrSourceRequired         = errors.New("one of --url or --source is required")
	ErrSourceConflict         = errors.New("--url and --source are mutually exclusive")
)

const defaultOutputDir = "./output"

// cliFlags holds the parsed command line.
type cliFlags struct {
	url            string
	source         string
	outputDir      string
	config         string
	status         string
	logLevel       string
	tags           []string
	allowRepublish bool
}

// parseFlags parses and validates args. It performs no I/O besides writing
// usage text to stderr.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	f := &cliFlags{}

	fs := flag.NewFlagSet("blogpipe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: blogpipe (--url <url> | --source <file>) --allow-republish [flags]")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}

	fs.StringVarP(&f.url, "url", "u", "", "article URL to fetch")
	fs.StringVarP(&f.source, "source", "s", "", "local markdown file to publish")
	fs.BoolVar(&f.allowRepublish, "allow-republish", false, "confirm that a new post may be created")
	fs.StringVarP(&f.outputDir, "output-dir", "o", defaultOutputDir, "directory for original.md and translation.md")
	fs.StringVarP(&f.config, "config", "c", "", "optional YAML config file")
	fs.StringVar(&f.status, "status", "", "post status: published or draft (overrides config)")
	fs.StringArrayVarP(&f.tags, "tag", "t", nil, "tag to attach to the post (repeatable)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", ErrInvalidFlags, err)
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", ErrInvalidFlags, fs.Args())
	}

	if !f.allowRepublish {
		return nil, ErrAllowRepublishRequired
	}

	switch {
	case f.url != "" && f.source != "":
		return nil, ErrSourceConflict
	case f.url == "" && f.source == "":
		return nil, ErrSourceRequired
	}

	return f, nil
}
