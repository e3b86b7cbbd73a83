// Package formatter provides markdown formatting and title helpers.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatTables rewrites every pipe table in content so that its columns line
// up by display width. Everything outside tables is left untouched.
func FormatTables(content string) string {
	lines := strings.Split(content, "\n")

	var formattedLines []string

	var tableBuffer []string

	inFence := false

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)

		if isFence(trimmedLine) {
			inFence = !inFence
		}

		// Simple heuristic: starts and ends with |
		if !inFence && strings.HasPrefix(trimmedLine, "|") && strings.HasSuffix(trimmedLine, "|") && len(trimmedLine) > 1 {
			tableBuffer = append(tableBuffer, line)

			continue
		}

		if len(tableBuffer) > 0 {
			formattedLines = append(formattedLines, processTable(tableBuffer)...)
			tableBuffer = nil
		}

		formattedLines = append(formattedLines, line)
	}

	if len(tableBuffer) > 0 {
		formattedLines = append(formattedLines, processTable(tableBuffer)...)
	}

	return strings.Join(formattedLines, "\n")
}

type alignment int

const (
	alignNone alignment = iota
	alignLeft
	alignCenter
	alignRight
)

func parseAlignment(cell string) alignment {
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":")

	switch {
	case left && right:
		return alignCenter
	case right:
		return alignRight
	case left:
		return alignLeft
	}

	return alignNone
}

func splitRow(row string) []string {
	trimmed := strings.TrimSpace(row)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")

	var cells []string

	var sb strings.Builder

	escaped := false

	for _, r := range trimmed {
		switch {
		case escaped:
			sb.WriteRune(r)

			escaped = false
		case r == '\\':
			sb.WriteRune(r)

			escaped = true
		case r == '|':
			cells = append(cells, strings.TrimSpace(sb.String()))
			sb.Reset()
		default:
			sb.WriteRune(r)
		}
	}

	return append(cells, strings.TrimSpace(sb.String()))
}

func isSeparatorRow(cells []string) bool {
	for _, cell := range cells {
		trim := strings.ReplaceAll(cell, "-", "")
		trim = strings.ReplaceAll(trim, ":", "")
		trim = strings.ReplaceAll(trim, " ", "")

		if trim != "" || !strings.Contains(cell, "-") {
			return false
		}
	}

	return true
}

func processTable(rows []string) []string {
	// A table needs at least a header and a separator.
	if len(rows) < 2 {
		return rows
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, splitRow(row))
	}

	if !isSeparatorRow(table[1]) {
		return rows
	}

	colCount := 0
	for _, row := range table {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	aligns := make([]alignment, colCount)
	for i, cell := range table[1] {
		aligns[i] = parseAlignment(cell)
	}

	// Calculate max widths (using display width), skipping the separator row
	colWidths := make([]int, colCount)

	for rIdx, row := range table {
		if rIdx == 1 {
			continue
		}

		for i, cell := range row {
			if width := runewidth.StringWidth(cell); width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	result := make([]string, 0, len(table))

	for i, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		for j := 0; j < colCount; j++ {
			sb.WriteString(" ")

			if i == 1 {
				sb.WriteString(separatorCell(colWidths[j], aligns[j]))
			} else {
				content := ""
				if j < len(row) {
					content = row[j]
				}

				sb.WriteString(content)

				if padding := colWidths[j] - runewidth.StringWidth(content); padding > 0 {
					sb.WriteString(strings.Repeat(" ", padding))
				}
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}

func separatorCell(width int, a alignment) string {
	switch a {
	case alignLeft:
		return ":" + strings.Repeat("-", width-1)
	case alignRight:
		return strings.Repeat("-", width-1) + ":"
	case alignCenter:
		return ":" + strings.Repeat("-", width-2) + ":"
	}

	return strings.Repeat("-", width)
}
