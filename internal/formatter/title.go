package formatter

import "strings"

const headingPrefix = "# "

// ExtractTitle returns the text of the first level-1 heading in content,
// trimmed of surrounding whitespace. Lines inside fenced code blocks are ignored.
func ExtractTitle(content string) (string, bool) {
	inFence := false

	for line := range strings.SplitSeq(content, "\n") {
		line = strings.TrimSpace(line)

		if isFence(line) {
			inFence = !inFence

			continue
		}

		if inFence {
			continue
		}

		if strings.HasPrefix(line, headingPrefix) {
			return strings.TrimSpace(line[len(headingPrefix):]), true
		}
	}

	return "", false
}

// StripTitle removes the first level-1 heading line from content and trims
// the result. The CMS renders the post title itself, so keeping the heading
// would show it twice.
func StripTitle(content string) string {
	lines := strings.Split(content, "\n")
	inFence := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if isFence(trimmed) {
			inFence = !inFence

			continue
		}

		if !inFence && strings.HasPrefix(trimmed, headingPrefix) {
			rest := append(lines[:i:i], lines[i+1:]...)

			return strings.TrimSpace(strings.Join(rest, "\n"))
		}
	}

	return strings.TrimSpace(content)
}

func isFence(trimmedLine string) bool {
	return strings.HasPrefix(trimmedLine, "```") || strings.HasPrefix(trimmedLine, "~~~")
}
