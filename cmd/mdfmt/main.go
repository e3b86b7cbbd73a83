// Package main provides mdfmt, which aligns the pipe tables of markdown files
// such as a hand-edited translation.md before it is republished.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"blogpipe/internal/fileutil"
	"blogpipe/internal/formatter"
	"blogpipe/internal/validator"
)

// Exit codes.
const (
	exitSuccess = 0
	exitPending = 1 // dry run found files that would change
	exitUsage   = 2
	exitIO      = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type summary struct {
	scanned int
	changed int
	errors  int
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		targetPath string
		write      bool
	)

	fset := flag.NewFlagSet("mdfmt", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.StringVarP(&targetPath, "path", "p", ".", "file or directory to format")
	fset.BoolVarP(&write, "write", "w", false, "write changes to files (default: dry run)")

	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitSuccess
		}

		fmt.Fprintf(stderr, "Error: %v\n", err)

		return exitUsage
	}

	v := validator.NewMarkdownValidator()

	var sum summary

	err := filepath.WalkDir(targetPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == targetPath {
				return err
			}

			fmt.Fprintf(stderr, "Error accessing %s: %v\n", path, err)
			sum.errors++

			return nil
		}

		if d.IsDir() {
			// Skip .git and other hidden directories
			if strings.HasPrefix(d.Name(), ".") && path != targetPath {
				return filepath.SkipDir
			}

			return nil
		}

		if strings.ToLower(filepath.Ext(path)) != ".md" {
			return nil
		}

		sum.scanned++

		changed, procErr := processFile(path, write, v, stderr)

		switch {
		case procErr != nil:
			fmt.Fprintf(stderr, "Error processing %s: %v\n", path, procErr)
			sum.errors++
		case changed && write:
			sum.changed++
			fmt.Fprintf(stdout, "✓ Formatted: %s\n", path)
		case changed:
			sum.changed++
			fmt.Fprintf(stdout, "Would format: %s\n", path)
		}

		return nil
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return exitIO
	}

	fmt.Fprintf(stdout, "Scanned: %d  Changed: %d  Errors: %d\n", sum.scanned, sum.changed, sum.errors)

	switch {
	case sum.errors > 0:
		return exitIO
	case sum.changed > 0 && !write:
		return exitPending
	}

	return exitSuccess
}

func processFile(path string, write bool, v *validator.MarkdownValidator, stderr io.Writer) (bool, error) {
	original, err := fileutil.ReadText(path)
	if err != nil {
		return false, err
	}

	if v.Stats(original).UnclosedFence {
		fmt.Fprintf(stderr, "Warning: %s has an unclosed code fence, tables after it are left as is\n", path)
	}

	formatted := formatter.FormatTables(original)
	if formatted == original {
		return false, nil
	}

	if write {
		if _, err := fileutil.WriteText(filepath.Dir(path), filepath.Base(path), formatted); err != nil {
			return false, err
		}
	}

	return true, nil
}
