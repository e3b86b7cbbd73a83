// Package pipeline drives one article through extract, translate and publish.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"blogpipe/internal/formatter"
	"blogpipe/internal/logger"
	"blogpipe/internal/models"
	"blogpipe/internal/publisher"
	"blogpipe/internal/translator"
	"blogpipe/internal/validator"
	"blogpipe/pkg/utils"
)

// ErrNoSource is returned when neither a URL nor a file path is given.
var ErrNoSource = errors.New("either a url or a source file is required")

const progressTitleWidth = 60

// Extractor produces the source article and persists it.
type Extractor interface {
	ExtractFromURL(ctx context.Context, url string) (*models.Article, error)
	ExtractFromFile(path string) (*models.Article, error)
	SaveOriginal(content, dir string) (string, error)
}

// Publisher creates the post.
type Publisher interface {
	Publish(ctx context.Context, title, markdown string, opts publisher.Options) (*models.PublishResult, error)
}

// Archiver keeps timestamped copies of a run's files.
type Archiver interface {
	SaveRun(title, original, translation string) ([]string, error)
}

// Source selects where the article comes from. Exactly one field is set.
type Source struct {
	URL  string
	Path string
}

// Options configures a run.
type Options struct {
	OutputDir  string
	SourceLang string
	TargetLang string
	Publish    publisher.Options
}

// Runner runs the stages strictly in order and stops at the first error.
type Runner struct {
	extractor  Extractor
	translator translator.Translator
	publisher  Publisher
	archiver   Archiver
	validator  *validator.MarkdownValidator
	out        io.Writer
	logger     *logger.Logger
	opts       Options
}

// NewRunner creates a runner. Progress lines are written to out. archiver may be nil.
func NewRunner(ex Extractor, tr translator.Translator, pub Publisher, archiver Archiver, out io.Writer, log *logger.Logger, opts Options) *Runner {
	if log == nil {
		log = logger.Discard()
	}

	return &Runner{
		extractor:  ex,
		translator: tr,
		publisher:  pub,
		archiver:   archiver,
		validator:  validator.NewMarkdownValidator(),
		out:        out,
		logger:     log,
		opts:       opts,
	}
}

// Run executes the pipeline for src and returns the created post.
func (r *Runner) Run(ctx context.Context, src Source) (*models.PublishResult, error) {
	// Step 1: extract and keep the original
	r.printf("Step 1: Extracting content...\n")

	article, err := r.extract(ctx, src)
	if err != nil {
		return nil, err
	}

	originalPath, err := r.extractor.SaveOriginal(article.Content, r.opts.OutputDir)
	if err != nil {
		return nil, err
	}

	r.printf("✓ Original saved to: %s\n", originalPath)

	// Step 2: translate and keep the translation
	r.printf("Step 2: Translating content...\n")

	translation, err := r.translator.Translate(ctx, article.Content, r.opts.SourceLang, r.opts.TargetLang)
	if err != nil {
		return nil, fmt.Errorf("translating content: %w", err)
	}

	translationPath, err := translator.SaveTranslation(translation.TranslatedContent, r.opts.OutputDir)
	if err != nil {
		return nil, err
	}

	r.printf("✓ Translation saved to: %s\n", translationPath)
	r.printf("  Tokens used: %d in, %d out\n", translation.Usage.InputTokens, translation.Usage.OutputTokens)

	title := models.ResolveTitle(translation.Title, article.Title)
	r.checkTitles(article.Content, translation.TranslatedContent)
	r.checkStructure(article.Content, translation.TranslatedContent)

	// Step 3: publish
	r.printf("Step 3: Publishing to Ghost...\n")
	r.printf("  Title: %s\n", utils.NewStringHelper().TruncateWidth(title, progressTitleWidth))

	result, err := r.publisher.Publish(ctx, title, translation.TranslatedContent, r.opts.Publish)
	if err != nil {
		return nil, err
	}

	if r.archiver != nil {
		paths, err := r.archiver.SaveRun(title, article.Content, translation.TranslatedContent)
		if err != nil {
			// The post already exists; losing the archive copy is not fatal.
			r.logger.Warn("archiving failed", "error", err)
		}

		for _, p := range paths {
			r.printf("✓ Archived: %s\n", p)
		}
	}

	return result, nil
}

func (r *Runner) extract(ctx context.Context, src Source) (*models.Article, error) {
	switch {
	case src.URL != "":
		r.logger.Debug("extracting from url", "url", src.URL)

		return r.extractor.ExtractFromURL(ctx, src.URL)
	case src.Path != "":
		r.logger.Debug("extracting from file", "path", src.Path)

		return r.extractor.ExtractFromFile(src.Path)
	}

	return nil, ErrNoSource
}

// checkTitles warns when the original and translated headings disagree.
func (r *Runner) checkTitles(original, translated string) {
	origTitle, ok1 := formatter.ExtractTitle(original)
	transTitle, ok2 := formatter.ExtractTitle(translated)

	if ok1 && ok2 && origTitle != transTitle {
		r.logger.Warn("title mismatch between original and translation",
			"original", origTitle, "translation", transTitle)
	}
}

// checkStructure warns when the translation lost headings, code blocks or tables.
func (r *Runner) checkStructure(original, translated string) {
	res := r.validator.ValidateTranslation(original, translated)

	for _, w := range res.Warnings {
		r.logger.Warn("translation structure differs", "detail", w)
	}
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}
