package render

import (
	"fmt"
	"io"
	"strings"

	"ilflow/internal/blocks"
)

// IndexRow is one method in the batch index page.
type IndexRow struct {
	Name  string
	Link  string // relative path of the method's DOT file; "" if none
	Stats blocks.Stats
	Diags int
	Err   string
}

// WriteIndexHTML writes a small HTML page summarizing a batch run.
func WriteIndexHTML(w io.Writer, title string, rows []IndexRow) error {
	var totals blocks.Stats
	failed := 0
	for _, r := range rows {
		if r.Err != "" {
			failed++
			continue
		}
		totals.Instructions += r.Stats.Instructions
		totals.Blocks += r.Stats.Blocks
		totals.Tries += r.Stats.Tries
		totals.Handlers += r.Stats.Handlers
		totals.Filters += r.Stats.Filters
		totals.MaxDepth = max(totals.MaxDepth, r.Stats.MaxDepth)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: "Helvetica Neue", Helvetica, Arial, sans-serif; font-size: 14px; color: #1A1A1A; background: #F5F5F5; margin: 2em; max-width: 900px; }
h1 { font-size: 18px; font-weight: 600; margin-bottom: 0.5em; }
h2 { font-size: 14px; font-weight: 600; margin-top: 1.5em; border-bottom: 1px solid #ddd; padding-bottom: 4px; }
table { border-collapse: collapse; margin: 0.5em 0; }
th, td { text-align: left; padding: 3px 12px 3px 0; font-size: 13px; }
th { font-weight: 600; }
td.num { text-align: right; font-variant-numeric: tabular-nums; }
td.err { color: #FC3D21; }
a { color: #0B3D91; }
.m { font-family: "Courier New", monospace; font-size: 12px; }
</style>
</head>
<body>
`, htmlEscape(title))

	fmt.Fprintf(&b, "<h1>%s</h1>\n", htmlEscape(title))

	b.WriteString("<h2>Summary</h2>\n<table>\n")
	summary := []struct {
		label string
		n     int
	}{
		{"Methods", len(rows)},
		{"Failed", failed},
		{"Instructions", totals.Instructions},
		{"Basic blocks", totals.Blocks},
		{"Try regions", totals.Tries},
		{"Handlers", totals.Handlers},
		{"Filters", totals.Filters},
		{"Max nesting", totals.MaxDepth},
	}
	for _, s := range summary {
		fmt.Fprintf(&b, "<tr><td>%s</td><td class=\"num\">%d</td></tr>\n", s.label, s.n)
	}
	b.WriteString("</table>\n")

	b.WriteString("<h2>Methods</h2>\n<table>\n")
	b.WriteString("<tr><th>Method</th><th>Blocks</th><th>Tries</th><th>Handlers</th><th>Depth</th><th>Diags</th></tr>\n")
	for _, r := range rows {
		name := htmlEscape(r.Name)
		if r.Link != "" {
			name = fmt.Sprintf("<a href=\"%s\">%s</a>", htmlEscape(r.Link), name)
		}
		if r.Err != "" {
			fmt.Fprintf(&b, "<tr><td class=\"m\">%s</td><td class=\"err\" colspan=\"5\">%s</td></tr>\n",
				name, htmlEscape(r.Err))
			continue
		}
		fmt.Fprintf(&b, "<tr><td class=\"m\">%s</td><td class=\"num\">%d</td><td class=\"num\">%d</td><td class=\"num\">%d</td><td class=\"num\">%d</td><td class=\"num\">%d</td></tr>\n",
			name, r.Stats.Blocks, r.Stats.Tries, r.Stats.Handlers, r.Stats.MaxDepth, r.Diags)
	}
	b.WriteString("</table>\n</body></html>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func htmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}
