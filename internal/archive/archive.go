// Package archive keeps timestamped copies of each run's markdown files.
package archive

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"blogpipe/internal/fileutil"
)

const (
	maxSlugLen      = 50
	timestampLayout = "20060102-150405"
	fallbackSlug    = "untitled"
)

// Archiver writes <prefix>-<slug>-<timestamp>.md files into a directory.
type Archiver struct {
	dir string
	now func() time.Time
}

// New creates an archiver for dir using the local wall clock.
func New(dir string) *Archiver {
	return &Archiver{dir: dir, now: time.Now}
}

// Filename builds the archive name for title at time t.
func Filename(prefix, title string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%s.md", prefix, shortSlug(title), t.Format(timestampLayout))
}

func shortSlug(title string) string {
	s := slug.Make(title)
	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
	}

	s = strings.TrimRight(s, "-")
	if s == "" {
		return fallbackSlug
	}

	return s
}

// Save writes content under a timestamped name and returns the path.
func (a *Archiver) Save(prefix, title, content string) (string, error) {
	return fileutil.WriteText(a.dir, Filename(prefix, title, a.now()), content)
}

// SaveRun archives the original and translated markdown of one run. Both
// files share a timestamp.
func (a *Archiver) SaveRun(title, original, translation string) ([]string, error) {
	now := a.now()

	files := []struct{ prefix, content string }{
		{"original", original},
		{"translation", translation},
	}

	paths := make([]string, 0, len(files))

	for _, f := range files {
		path, err := fileutil.WriteText(a.dir, Filename(f.prefix, title, now), f.content)
		if err != nil {
			return paths, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}
