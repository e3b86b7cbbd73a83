package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidStatus is returned for post statuses other than draft or published.
var ErrInvalidStatus = errors.New("status must be 'draft' or 'published'")

// PostStatus is the publication state of a CMS post.
type PostStatus string

// Post statuses accepted by the CMS.
const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// ParseStatus converts a user-supplied status string.
func ParseStatus(s string) (PostStatus, error) {
	switch PostStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusDraft:
		return StatusDraft, nil
	case StatusPublished:
		return StatusPublished, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// PublishResult is the terminal value of a pipeline run.
type PublishResult struct {
	ID     string     `json:"id"`
	URL    string     `json:"url"`
	Status PostStatus `json:"status"`
}
