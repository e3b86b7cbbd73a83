// Package ghost is a client for the Ghost Admin API.
package ghost

import "strings"

// Post is the subset of a Ghost post the pipeline reads and writes.
type Post struct {
	ID           string `json:"id,omitempty"`
	UUID         string `json:"uuid,omitempty"`
	Title        string `json:"title"`
	Slug         string `json:"slug,omitempty"`
	HTML         string `json:"html"`
	Status       string `json:"status,omitempty"`
	Featured     bool   `json:"featured"`
	Tags         []Tag  `json:"tags,omitempty"`
	FeatureImage string `json:"feature_image,omitempty"`
	URL          string `json:"url,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// Tag references a tag by name. Ghost creates unknown tags on the fly.
type Tag struct {
	Name string `json:"name"`
}

// TagsFromNames converts plain names, skipping blanks.
func TagsFromNames(names []string) []Tag {
	var tags []Tag

	for _, n := range names {
		if n = strings.TrimSpace(n); n == "" {
			continue
		}

		tags = append(tags, Tag{Name: n})
	}

	return tags
}

type postsEnvelope struct {
	Posts []Post `json:"posts"`
}

// postUpdate is the PUT body. Unlike Post, an empty html is left out so an
// update never blanks the stored body.
type postUpdate struct {
	ID           string `json:"id"`
	Title        string `json:"title,omitempty"`
	HTML         string `json:"html,omitempty"`
	Status       string `json:"status,omitempty"`
	Featured     bool   `json:"featured"`
	Tags         []Tag  `json:"tags,omitempty"`
	FeatureImage string `json:"feature_image,omitempty"`
	UpdatedAt    string `json:"updated_at"`
}

func newPostUpdate(p *Post) postUpdate {
	return postUpdate{
		ID:           p.ID,
		Title:        p.Title,
		HTML:         p.HTML,
		Status:       p.Status,
		Featured:     p.Featured,
		Tags:         p.Tags,
		FeatureImage: p.FeatureImage,
		UpdatedAt:    p.UpdatedAt,
	}
}

type updateEnvelope struct {
	Posts []postUpdate `json:"posts"`
}

type imagesEnvelope struct {
	Images []struct {
		URL string `json:"url"`
		Ref string `json:"ref"`
	} `json:"images"`
}

type errorsEnvelope struct {
	Errors []struct {
		Message string `json:"message"`
		Context string `json:"context"`
		Type    string `json:"type"`
	} `json:"errors"`
}
