// Package publisher renders markdown and creates the post in Ghost.
package publisher

import (
	"context"
	"fmt"

	"blogpipe/internal/apperr"
	"blogpipe/internal/formatter"
	"blogpipe/internal/ghost"
	"blogpipe/internal/logger"
	"blogpipe/internal/models"
	"blogpipe/internal/render"
)

// Options controls how a post is created.
type Options struct {
	Status       models.PostStatus
	Tags         []string
	Featured     bool
	FeatureImage string
	// StripTitle drops the first level-1 heading, since Ghost renders the
	// post title above the body.
	StripTitle bool
}

// Publisher creates Ghost posts from markdown.
type Publisher struct {
	client   ghost.Client
	renderer *render.Renderer
	logger   *logger.Logger
}

// New creates a publisher.
func New(client ghost.Client, renderer *render.Renderer, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Discard()
	}

	return &Publisher{
		client:   client,
		renderer: renderer,
		logger:   log,
	}
}

// Publish renders markdown to HTML and creates a post. A single attempt is
// made; failures wrap apperr.ErrPublish.
func (p *Publisher) Publish(ctx context.Context, title, markdown string, opts Options) (*models.PublishResult, error) {
	if opts.Status == "" {
		opts.Status = models.StatusPublished
	}

	if opts.StripTitle {
		markdown = formatter.StripTitle(markdown)
	}

	html, err := p.renderer.Render(markdown)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrPublish, err)
	}

	p.logger.Debug("post rendered", "title", title, "html_bytes", len(html), "status", opts.Status)

	post, err := p.client.CreatePost(ctx, &ghost.Post{
		Title:        title,
		HTML:         html,
		Status:       string(opts.Status),
		Featured:     opts.Featured,
		Tags:         ghost.TagsFromNames(opts.Tags),
		FeatureImage: opts.FeatureImage,
	})
	if err != nil {
		return nil, fmt.Errorf("creating post %q: %w", title, err)
	}

	status := models.PostStatus(post.Status)
	if status == "" {
		status = opts.Status
	}

	p.logger.Info("post created", "id", post.ID, "url", post.URL, "status", status)

	return &models.PublishResult{
		ID:     post.ID,
		URL:    post.URL,
		Status: status,
	}, nil
}
