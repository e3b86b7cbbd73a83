package ghost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blogpipe/internal/apperr"
	"blogpipe/internal/logger"
)

// Admin API constants.
const (
	AdminAPIPath   = "/ghost/api/admin"
	AcceptVersion  = "v5.0"
	maxResponseLen = 10 * 1024 * 1024
)

// Client errors.
var (
	ErrNoPosts           = errors.New("response contained no posts")
	ErrNoImages          = errors.New("response contained no images")
	ErrMissingPostID     = errors.New("post id is required")
	ErrMissingUpdatedAt  = errors.New("post updated_at is required for updates")
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is a non-2xx answer from Ghost.
type APIError struct {
	StatusCode int
	Messages   []string
	Body       string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("ghost api status %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
	}

	return fmt.Sprintf("ghost api status %d: %s", e.StatusCode, e.Body)
}

// Client defines the Admin API operations the pipeline uses.
type Client interface {
	CreatePost(ctx context.Context, post *Post) (*Post, error)
	GetPost(ctx context.Context, id string) (*Post, error)
	UpdatePost(ctx context.Context, post *Post) (*Post, error)
	UploadImage(ctx context.Context, path string) (string, error)
}

// Ensure AdminClient implements Client.
var _ Client = (*AdminClient)(nil)

// AdminClient talks to the Ghost Admin REST API. Every request carries a
// freshly minted token. All failures wrap apperr.ErrPublish.
type AdminClient struct {
	httpClient *http.Client
	baseURL    string
	tokens     *TokenSource
	logger     *logger.Logger
}

// NewAdminClient creates a client for the Ghost site at baseURL.
func NewAdminClient(baseURL, adminKey string, timeout time.Duration, log *logger.Logger) (*AdminClient, error) {
	key, err := ParseAdminKey(adminKey)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.Discard()
	}

	return &AdminClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     NewTokenSource(key),
		logger:     log,
	}, nil
}

// CreatePost creates a post from HTML content.
func (c *AdminClient) CreatePost(ctx context.Context, post *Post) (*Post, error) {
	body, err := json.Marshal(postsEnvelope{Posts: []Post{*post}})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal post: %w", apperr.ErrPublish, err)
	}

	query := url.Values{"source": {"html"}}

	resp, err := c.do(ctx, http.MethodPost, "/posts/", query, bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, err
	}

	return firstPost(resp)
}

// GetPost fetches a post by id.
func (c *AdminClient) GetPost(ctx context.Context, id string) (*Post, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: %w", apperr.ErrPublish, ErrMissingPostID)
	}

	resp, err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(id)+"/", nil, nil, "")
	if err != nil {
		return nil, err
	}

	return firstPost(resp)
}

// UpdatePost saves changes to an existing post. Ghost rejects updates whose
// updated_at does not match the stored post.
func (c *AdminClient) UpdatePost(ctx context.Context, post *Post) (*Post, error) {
	if post.ID == "" {
		return nil, fmt.Errorf("%w: %w", apperr.ErrPublish, ErrMissingPostID)
	}

	if post.UpdatedAt == "" {
		return nil, fmt.Errorf("%w: %w", apperr.ErrPublish, ErrMissingUpdatedAt)
	}

	body, err := json.Marshal(updateEnvelope{Posts: []postUpdate{newPostUpdate(post)}})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal post: %w", apperr.ErrPublish, err)
	}

	var query url.Values
	if post.HTML != "" {
		query = url.Values{"source": {"html"}}
	}

	resp, err := c.do(ctx, http.MethodPut, "/posts/"+url.PathEscape(post.ID)+"/", query, bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, err
	}

	return firstPost(resp)
}

// UploadImage uploads a local image and returns its public URL.
func (c *AdminClient) UploadImage(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading image %s: %w", apperr.ErrIO, path, err)
	}

	name := filepath.Base(path)

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err == nil {
		_, err = part.Write(data)
	}

	if err == nil {
		err = mw.WriteField("purpose", "image")
	}

	if err == nil {
		err = mw.WriteField("ref", name)
	}

	if err == nil {
		err = mw.Close()
	}

	if err != nil {
		return "", fmt.Errorf("%w: building upload: %w", apperr.ErrPublish, err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/images/upload/", nil, &buf, mw.FormDataContentType())
	if err != nil {
		return "", err
	}

	var env imagesEnvelope
	if err := json.Unmarshal(resp, &env); err != nil {
		return "", fmt.Errorf("%w: %w: %w", apperr.ErrPublish, ErrMalformedResponse, err)
	}

	if len(env.Images) == 0 || env.Images[0].URL == "" {
		return "", fmt.Errorf("%w: %w", apperr.ErrPublish, ErrNoImages)
	}

	return env.Images[0].URL, nil
}

func (c *AdminClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	endpoint := c.baseURL + AdminAPIPath + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	token, err := c.tokens.Mint()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrPublish, err)
	}

	if body == nil {
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", apperr.ErrPublish, err)
	}

	req.Header.Set("Authorization", "Ghost "+token)
	req.Header.Set("Accept-Version", AcceptVersion)
	req.Header.Set("Accept", "application/json")

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug("ghost request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", apperr.ErrPublish, err)
	}
	defer resp.Body.Close()

	// Limit response size to 10MB
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseLen))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", apperr.ErrPublish, err)
	}

	c.logger.Debug("ghost response", "method", method, "path", path, "status", resp.StatusCode, "bytes", len(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, data)
		c.logger.Error("ghost request failed", "method", method, "path", path, "status", resp.StatusCode)

		return nil, fmt.Errorf("%w: %w", apperr.ErrPublish, apiErr)
	}

	return data, nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: strings.TrimSpace(string(body))}

	var env errorsEnvelope
	if json.Unmarshal(body, &env) == nil {
		for _, e := range env.Errors {
			msg := e.Message
			if e.Context != "" {
				msg += " (" + e.Context + ")"
			}

			apiErr.Messages = append(apiErr.Messages, msg)
		}
	}

	return apiErr
}

func firstPost(data []byte) (*Post, error) {
	var env postsEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", apperr.ErrPublish, ErrMalformedResponse, err)
	}

	if len(env.Posts) == 0 {
		return nil, fmt.Errorf("%w: %w", apperr.ErrPublish, ErrNoPosts)
	}

	return &env.Posts[0], nil
}
