// Package models defines the values passed between pipeline stages.
package models

import (
	"strings"
	"time"
)

// UntitledTitle is used when no other title source yields a value.
const UntitledTitle = "Untitled"

// Article is the extracted source text plus its title and provenance.
type Article struct {
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Metadata ArticleMetadata `json:"metadata"`
}

// ArticleMetadata records where an article came from.
type ArticleMetadata struct {
	Date   *time.Time `json:"date,omitempty"`
	Source string     `json:"source"`
	Author string     `json:"author,omitempty"`
}

// Usage reports the tokens consumed by a translation.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Translation is the translated counterpart of an Article.
// Title may be empty, in which case the article title is used.
type Translation struct {
	TranslatedContent string `json:"translated_content"`
	Title             string `json:"title"`
	Usage             Usage  `json:"usage"`
}

// ResolveTitle returns the first candidate that is non-empty after trimming,
// or UntitledTitle when every candidate is blank.
func ResolveTitle(candidates ...string) string {
	for _, c := range candidates {
		if t := strings.TrimSpace(c); t != "" {
			return t
		}
	}

	return UntitledTitle
}
