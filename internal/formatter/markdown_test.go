package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTables(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "Basic table formatting",
			input: `
| Header 1 | Header 2 |
| --- | --- |
| val 1 | val 2 |
`,
			expected: `
| Header 1 | Header 2 |
| -------- | -------- |
| val 1    | val 2    |
`,
		},
		{
			name: "Fix excessive dashes",
			input: `
| Col A | Col B |
| ---------------------- | ---------------------------------- |
| A | B |
`,
			expected: `
| Col A | Col B |
| ----- | ----- |
| A     | B     |
`,
		},
		{
			name: "Mixed content",
			input: `
# Title

| H1 | H2 |
| -- | -- |
| v1 | v2 |

Text after table.
`,
			expected: `
# Title

| H1  | H2  |
| --- | --- |
| v1  | v2  |

Text after table.
`,
		},
		{
			name: "Alignment markers are kept",
			input: `
| Name | Count | Note |
| :--- | ---: | :---: |
| go | 1 | ok |
`,
			expected: `
| Name | Count | Note |
| :--- | ----: | :--: |
| go   | 1     | ok   |
`,
		},
		{
			name: "Mixed Hangul and ASCII",
			input: `
| Term | 번역 |
| --- | --- |
| goroutine | 고루틴 |
| channel | 채널 |
`,
			// 고루틴 is 6 columns wide, 채널 is 4.
			expected: `
| Term      | 번역   |
| --------- | ------ |
| goroutine | 고루틴 |
| channel   | 채널   |
`,
		},
		{
			name: "Escaped pipe stays in its cell",
			input: `
| Expr | Meaning |
| --- | --- |
| a \| b | either |
`,
			expected: `
| Expr   | Meaning |
| ------ | ------- |
| a \| b | either  |
`,
		},
		{
			name: "Pipes inside code fences are untouched",
			input: "```\n| a | b |\n| - | - |\n```",
			expected: "```\n| a | b |\n| - | - |\n```",
		},
		{
			name: "Not a table without separator",
			input: `
| just | a line |
| another | line |
`,
			expected: `
| just | a line |
| another | line |
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTables(strings.TrimSpace(tt.input))
			assert.Equal(t, strings.TrimSpace(tt.expected), strings.TrimSpace(got))
		})
	}
}
