package utils

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestHTTPHelper_IsValidURL(t *testing.T) {
	h := NewHTTPHelper("")

	assert.True(t, h.IsValidURL("https://example.com/post"))
	assert.True(t, h.IsValidURL("http://localhost:2368"))
	assert.False(t, h.IsValidURL("example.com/post"))
	assert.False(t, h.IsValidURL("ftp://example.com"))
	assert.False(t, h.IsValidURL("https://"))
	assert.False(t, h.IsValidURL("::not a url"))
}

func TestHTTPHelper_BuildHeaders(t *testing.T) {
	h := NewHTTPHelper("test-agent/2.0")

	headers := h.BuildHeaders(map[string]string{"Accept-Version": "v5.0"})

	assert.Equal(t, "test-agent/2.0", headers.Get("User-Agent"))
	assert.Equal(t, "v5.0", headers.Get("Accept-Version"))
	assert.NotEmpty(t, headers.Get("Accept"))
}

func TestStringHelper(t *testing.T) {
	s := NewStringHelper()

	assert.Equal(t, "a b c", s.NormalizeWhitespace("  a \n\t b   c "))
	assert.Equal(t, "short", s.TruncateWidth("short", 10))

	truncated := s.TruncateWidth("고루틴과 채널로 배우는 동시성", 12)
	assert.LessOrEqual(t, runewidth.StringWidth(truncated), 12)
	assert.Contains(t, truncated, "...")
}
