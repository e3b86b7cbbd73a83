package publisher

import (
	"context"
	"fmt"
)

// UpdateFeatureImage uploads imagePath and sets it as the feature image of
// an existing post. It returns the uploaded image URL.
func (p *Publisher) UpdateFeatureImage(ctx context.Context, postID, imagePath string) (string, error) {
	imageURL, err := p.client.UploadImage(ctx, imagePath)
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", imagePath, err)
	}

	p.logger.Info("image uploaded", "path", imagePath, "url", imageURL)

	post, err := p.client.GetPost(ctx, postID)
	if err != nil {
		return "", fmt.Errorf("fetching post %s: %w", postID, err)
	}

	// Only the fields needed for the update are sent back.
	post.HTML = ""
	post.Tags = nil
	post.FeatureImage = imageURL

	if _, err := p.client.UpdatePost(ctx, post); err != nil {
		return "", fmt.Errorf("updating post %s: %w", postID, err)
	}

	p.logger.Info("feature image set", "post_id", postID)

	return imageURL, nil
}
