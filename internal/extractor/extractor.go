// Package extractor turns a web page or a local markdown file into an Article.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"blogpipe/internal/apperr"
	"blogpipe/internal/fileutil"
	"blogpipe/internal/formatter"
	"blogpipe/internal/logger"
	"blogpipe/internal/models"
)

// OriginalFileName is the file SaveOriginal writes inside the output directory.
const OriginalFileName = "original.md"

// ErrNoContent is returned when a downloaded page has no article text.
var ErrNoContent = errors.New("no extractable article text")

// Extractor produces articles from URLs and files.
type Extractor struct {
	fetcher   *Fetcher
	sanitizer *bluemonday.Policy
	logger    *logger.Logger
}

// New creates an extractor that downloads pages with fetcher.
func New(fetcher *Fetcher, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.Discard()
	}

	return &Extractor{
		fetcher:   fetcher,
		sanitizer: contentPolicy(),
		logger:    log,
	}
}

// contentPolicy keeps the structural markup the markdown converter understands.
func contentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^(language|lang)-[\w+#.-]+$`)).OnElements("code")

	return p
}

// ExtractFromURL downloads rawURL and extracts its main content as markdown.
func (e *Extractor) ExtractFromURL(ctx context.Context, rawURL string) (*models.Article, error) {
	body, status, duration, err := e.fetcher.FetchWithMetrics(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("page fetched", "url", rawURL, "status", status, "bytes", len(body), "duration", duration)

	pageURL, _ := url.Parse(rawURL)

	article, err := e.extractHTML(body, pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", apperr.ErrExtract, rawURL, err)
	}

	article.Metadata.Source = rawURL

	e.logger.Info("article extracted", "source", rawURL, "title", article.Title, "chars", len(article.Content))

	return article, nil
}

func (e *Extractor) extractHTML(page string, pageURL *url.URL) (*models.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	meta := readMetadata(doc)

	content, err := e.mainContent(page, pageURL)
	if err != nil {
		return nil, err
	}

	if content == "" {
		e.logger.Debug("readability found nothing, using whole body")

		doc.Find("script, style, noscript, nav, header, footer, aside").Remove()

		bodyHTML, err := doc.Find("body").Html()
		if err != nil {
			return nil, fmt.Errorf("failed to render body: %w", err)
		}

		if content, err = htmlToMarkdown(e.sanitizer.Sanitize(bodyHTML)); err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(content) == "" {
		return nil, ErrNoContent
	}

	heading, ok := formatter.ExtractTitle(content)
	if !ok || heading == "" {
		heading = meta.Heading
	}

	return &models.Article{
		Title:   models.ResolveTitle(meta.Title, heading),
		Content: content,
		Metadata: models.ArticleMetadata{
			Date:   meta.Date,
			Author: meta.Author,
		},
	}, nil
}

// mainContent isolates the article body with readability and converts it.
// An empty result without error means readability found nothing usable.
func (e *Extractor) mainContent(page string, pageURL *url.URL) (string, error) {
	article, err := readability.FromReader(strings.NewReader(page), pageURL)
	if err != nil {
		e.logger.Debug("readability failed", "error", err)

		return "", nil
	}

	var text strings.Builder
	if err := article.RenderText(&text); err != nil || strings.TrimSpace(text.String()) == "" {
		return "", nil
	}

	var html strings.Builder
	if err := article.RenderHTML(&html); err != nil {
		return "", fmt.Errorf("failed to render article: %w", err)
	}

	return htmlToMarkdown(e.sanitizer.Sanitize(html.String()))
}

// ExtractFromFile reads a markdown file verbatim. The title is the first
// level-1 heading, or the file name without its extension.
func (e *Extractor) ExtractFromFile(path string) (*models.Article, error) {
	content, err := fileutil.ReadText(path)
	if err != nil {
		return nil, err
	}

	title, ok := formatter.ExtractTitle(content)
	if !ok || title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	e.logger.Info("article loaded", "source", path, "title", title, "chars", len(content))

	return &models.Article{
		Title:   title,
		Content: content,
		Metadata: models.ArticleMetadata{
			Source: path,
		},
	}, nil
}

// SaveOriginal writes content verbatim to dir/original.md and returns the path.
func (e *Extractor) SaveOriginal(content, dir string) (string, error) {
	return fileutil.WriteText(dir, OriginalFileName, content)
}
