// Package validator checks that markdown keeps its structure across
// translation.
package validator

import (
	"fmt"
	"strings"
)

// ValidationStats counts the constructs a translation must preserve.
type ValidationStats struct {
	Headings      int
	CodeBlocks    int
	Tables        int
	TableRows     int
	UnclosedFence bool
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Warnings   []string
	Original   ValidationStats
	Translated ValidationStats
	IsValid    bool
}

// MarkdownValidator validates markdown structure.
type MarkdownValidator struct{}

// NewMarkdownValidator creates a new validator.
func NewMarkdownValidator() *MarkdownValidator {
	return &MarkdownValidator{}
}

// Stats scans markdown and counts headings, fenced blocks and pipe tables.
// Lines inside fences are not counted as headings or tables.
func (v *MarkdownValidator) Stats(markdown string) ValidationStats {
	var stats ValidationStats

	inFence := false
	inTable := false

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~") {
			if !inFence {
				stats.CodeBlocks++
			}

			inFence = !inFence
			inTable = false

			continue
		}

		if inFence {
			continue
		}

		if strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|") && len(line) > 1 {
			if !inTable {
				stats.Tables++
				inTable = true
			}

			// Skip markdown table separators
			if !strings.Contains(line, "---") {
				stats.TableRows++
			}

			continue
		}

		inTable = false

		if isHeading(line) {
			stats.Headings++
		}
	}

	stats.UnclosedFence = inFence

	return stats
}

func isHeading(line string) bool {
	level := len(line) - len(strings.TrimLeft(line, "#"))

	return level >= 1 && level <= 6 && len(line) > level && line[level] == ' '
}

// ValidateTranslation compares translated against original. An empty
// translation is not compared, since nothing has been translated yet.
func (v *MarkdownValidator) ValidateTranslation(original, translated string) *ValidationResult {
	result := &ValidationResult{
		IsValid:  true,
		Warnings: []string{},
		Original: v.Stats(original),
	}

	if strings.TrimSpace(translated) == "" {
		return result
	}

	result.Translated = v.Stats(translated)

	if result.Translated.UnclosedFence {
		result.IsValid = false
		result.Warnings = append(result.Warnings, "translation has an unclosed code fence")
	}

	checks := []struct {
		name       string
		orig, tran int
	}{
		{"heading", result.Original.Headings, result.Translated.Headings},
		{"code block", result.Original.CodeBlocks, result.Translated.CodeBlocks},
		{"table", result.Original.Tables, result.Translated.Tables},
		{"table row", result.Original.TableRows, result.Translated.TableRows},
	}

	for _, c := range checks {
		if c.orig != c.tran {
			result.IsValid = false
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s count changed: original %d, translation %d", c.name, c.orig, c.tran))
		}
	}

	return result
}
