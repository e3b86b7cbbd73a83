package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"blogpipe/internal/formatter"
)

var spaceRun = regexp.MustCompile(`[ \t\r\f\v]+`)

// dropped elements never contribute text to the article.
var dropped = map[string]bool{
	"script": true, "style": true, "noscript": true, "iframe": true, "svg": true,
	"img": true, "picture": true, "video": true, "audio": true, "form": true,
	"button": true, "input": true, "nav": true, "#comment": true,
}

// containers are walked for their block children.
var containers = map[string]bool{
	"html": true, "body": true, "div": true, "section": true, "article": true, "main": true,
	"header": true, "footer": true, "aside": true, "figure": true, "figcaption": true,
	"details": true, "summary": true, "dl": true, "dt": true, "dd": true, "center": true,
}

// htmlToMarkdown converts an HTML fragment into markdown. Tables come out
// column-aligned.
func htmlToMarkdown(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	root := doc.Find("body").First()
	if root.Length() == 0 {
		root = doc.Selection
	}

	md := strings.Join(blocks(root), "\n\n")

	return formatter.FormatTables(strings.TrimSpace(md)), nil
}

func blocks(sel *goquery.Selection) []string {
	var out []string

	var pending strings.Builder

	flush := func() {
		if text := cleanInline(pending.String()); text != "" {
			out = append(out, text)
		}

		pending.Reset()
	}

	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)

		switch {
		case dropped[name]:
			return
		case len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6':
			flush()

			if text := strings.ReplaceAll(cleanInline(inline(s)), "\n", " "); text != "" {
				out = append(out, strings.Repeat("#", int(name[1]-'0'))+" "+text)
			}
		case name == "p":
			flush()

			if text := cleanInline(inline(s)); text != "" {
				out = append(out, text)
			}
		case name == "ul" || name == "ol":
			flush()

			if lines := list(s, name == "ol", ""); len(lines) > 0 {
				out = append(out, strings.Join(lines, "\n"))
			}
		case name == "pre":
			flush()
			out = append(out, codeBlock(s))
		case name == "blockquote":
			flush()

			if quoted := quote(blocks(s)); quoted != "" {
				out = append(out, quoted)
			}
		case name == "table":
			flush()

			if table := tableToMarkdown(s); table != "" {
				out = append(out, table)
			}
		case name == "hr":
			flush()
			out = append(out, "---")
		case containers[name]:
			flush()
			out = append(out, blocks(s)...)
		default:
			pending.WriteString(inlineNode(s))
		}
	})

	flush()

	return out
}

func inline(sel *goquery.Selection) string {
	var sb strings.Builder

	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		sb.WriteString(inlineNode(s))
	})

	return sb.String()
}

func inlineNode(s *goquery.Selection) string {
	name := goquery.NodeName(s)

	switch name {
	case "#text":
		return spaceRun.ReplaceAllString(strings.ReplaceAll(s.Text(), "\n", " "), " ")
	case "br":
		return "\n"
	case "strong", "b":
		return wrap(inline(s), "**")
	case "em", "i":
		return wrap(inline(s), "_")
	case "del", "s", "strike":
		return wrap(inline(s), "~~")
	case "code", "kbd", "samp":
		if text := s.Text(); strings.TrimSpace(text) != "" {
			return "`" + text + "`"
		}

		return ""
	case "a":
		text := strings.TrimSpace(inline(s))
		href := attr(s, "href")

		if text == "" {
			return ""
		}

		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
			return text
		}

		return "[" + text + "](" + href + ")"
	}

	if dropped[name] {
		return ""
	}

	return inline(s)
}

func wrap(text, marker string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text
	}

	lead := text[:len(text)-len(strings.TrimLeft(text, " "))]
	trail := text[len(strings.TrimRight(text, " ")):]

	return lead + marker + trimmed + marker + trail
}

func cleanInline(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func list(sel *goquery.Selection, ordered bool, indent string) []string {
	var lines []string

	n := 0

	sel.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		n++

		marker := "- "
		if ordered {
			marker = fmt.Sprintf("%d. ", n)
		}

		var text strings.Builder

		var nested []string

		li.Contents().Each(func(_ int, s *goquery.Selection) {
			switch name := goquery.NodeName(s); name {
			case "ul", "ol":
				nested = append(nested, list(s, name == "ol", indent+strings.Repeat(" ", len(marker)))...)
			case "p", "div":
				text.WriteString(" " + inline(s) + " ")
			default:
				text.WriteString(inlineNode(s))
			}
		})

		item := strings.ReplaceAll(cleanInline(text.String()), "\n", " ")
		lines = append(lines, indent+marker+item)
		lines = append(lines, nested...)
	})

	return lines
}

func codeBlock(pre *goquery.Selection) string {
	lang := ""

	code := pre.Find("code").First()
	for _, class := range strings.Fields(attr(code, "class")) {
		for _, prefix := range []string{"language-", "lang-"} {
			if strings.HasPrefix(class, prefix) {
				lang = strings.TrimPrefix(class, prefix)
			}
		}
	}

	body := strings.TrimRight(pre.Text(), "\n")
	body = strings.TrimLeft(body, "\n")

	fence := "```"
	if strings.Contains(body, fence) {
		fence = "~~~"
	}

	return fence + lang + "\n" + body + "\n" + fence
}

func quote(inner []string) string {
	if len(inner) == 0 {
		return ""
	}

	lines := strings.Split(strings.Join(inner, "\n\n"), "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}

	return strings.Join(lines, "\n")
}

func tableToMarkdown(table *goquery.Selection) string {
	var rows [][]string

	cols := 0

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string

		tr.ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
			text := strings.ReplaceAll(cleanInline(inline(cell)), "\n", " ")
			cells = append(cells, strings.ReplaceAll(text, "|", `\|`))
		})

		if len(cells) == 0 {
			return
		}

		cols = max(cols, len(cells))
		rows = append(rows, cells)
	})

	if len(rows) == 0 {
		return ""
	}

	lines := make([]string, 0, len(rows)+1)

	for i, row := range rows {
		for len(row) < cols {
			row = append(row, "")
		}

		lines = append(lines, "| "+strings.Join(row, " | ")+" |")

		if i == 0 {
			lines = append(lines, "|"+strings.Repeat(" --- |", cols))
		}
	}

	return strings.Join(lines, "\n")
}
