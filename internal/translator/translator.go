// Package translator holds the translation stage of the pipeline.
package translator

import (
	"context"

	"blogpipe/internal/fileutil"
	"blogpipe/internal/models"
)

// TranslationFileName is the file SaveTranslation writes inside the output directory.
const TranslationFileName = "translation.md"

// Translator converts markdown content between languages. Implementations
// must keep the markdown structure (headings, code fences, tables) intact and
// report the tokens they consumed.
type Translator interface {
	Translate(ctx context.Context, content, sourceLang, targetLang string) (*models.Translation, error)
}

// Stub is the placeholder translator. Translation happens out of band, so it
// returns empty content, an empty title and zero usage for any input.
type Stub struct{}

var _ Translator = Stub{}

// Translate implements Translator.
func (Stub) Translate(_ context.Context, _, _, _ string) (*models.Translation, error) {
	return &models.Translation{}, nil
}

// SaveTranslation writes content verbatim to dir/translation.md and returns the path.
func SaveTranslation(content, dir string) (string, error) {
	return fileutil.WriteText(dir, TranslationFileName, content)
}
