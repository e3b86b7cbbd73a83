// Package render converts post markdown into the HTML sent to the CMS.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrRender indicates markdown could not be converted.
var ErrRender = errors.New("markdown rendering failed")

// Renderer converts markdown to an HTML fragment. Output is deterministic
// for a given input.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New creates a renderer with fenced code, tables and hard line breaks.
// When sanitize is true the HTML is passed through a user-content policy.
func New(sanitize bool) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // newline becomes <br />
			html.WithXHTML(),
		),
	)

	r := &Renderer{md: md}

	if sanitize {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+#.-]+$`)).OnElements("code")
		r.policy = p
	}

	return r
}

// Render converts content to HTML.
func (r *Renderer) Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}

	if r.policy == nil {
		return buf.String(), nil
	}

	return r.policy.Sanitize(buf.String()), nil
}
