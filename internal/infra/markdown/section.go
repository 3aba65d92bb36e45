// Package markdown reads and rewrites the block list section of a note.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/runoshun/blockary/internal/domain"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Document is a parsed note. The front matter is kept apart from the
// markdown body and is never touched by section updates.
// Fields are ordered to minimize memory padding.
type Document struct {
	root        ast.Node
	frontMatter []byte   // Raw front matter including its delimiters
	body        []byte   // Markdown after the front matter
	lines       []string // body split into lines, without line endings
	headings    []heading
	newline     string // Line ending of the body, "\n" or "\r\n"
}

// heading is a top-level heading of the body.
type heading struct {
	title string
	node  ast.Node
	first int // Line index where the heading starts
	last  int // Line index where the heading ends (setext underline)
}

var parser = goldmark.New().Parser()

// Parse parses note content.
func Parse(content []byte) *Document {
	front, body := SplitFrontMatter(content)
	d := &Document{
		frontMatter: front,
		body:        body,
		root:        parser.Parse(text.NewReader(body)),
		newline:     "\n",
	}
	if bytes.Contains(body, []byte("\r\n")) {
		d.newline = "\r\n"
	}
	if len(body) > 0 {
		d.lines = strings.Split(strings.TrimSuffix(string(body), "\n"), "\n")
		for i, l := range d.lines {
			d.lines[i] = strings.TrimSuffix(l, "\r")
		}
	}
	d.headings = d.collectHeadings()
	return d
}

// FrontMatter returns the YAML between the front matter delimiters, or nil.
func (d *Document) FrontMatter() []byte {
	if d.frontMatter == nil {
		return nil
	}
	inner := d.frontMatter[bytes.IndexByte(d.frontMatter, '\n')+1:]
	if i := bytes.LastIndex(bytes.TrimRight(inner, "\r\n"), []byte("\n")); i >= 0 {
		return inner[:i+1]
	}
	return nil
}

// HasSection reports whether the body has a heading titled title.
func (d *Document) HasSection(title string) bool {
	_, ok := d.find(title)
	return ok
}

// SectionItems returns the text of every list item directly below the
// first heading titled title, up to the next heading. Titles match
// case-insensitively. Items keep their inline markup.
func (d *Document) SectionItems(title string) ([]string, error) {
	i, ok := d.find(title)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSectionNotFound, title)
	}

	var end ast.Node
	if i+1 < len(d.headings) {
		end = d.headings[i+1].node
	}

	var items []string
	for n := d.headings[i].node.NextSibling(); n != nil && n != end; n = n.NextSibling() {
		list, ok := n.(*ast.List)
		if !ok {
			continue
		}
		for li := list.FirstChild(); li != nil; li = li.NextSibling() {
			if item := d.itemText(li); item != "" {
				items = append(items, item)
			}
		}
	}
	return items, nil
}

// ReplaceSection returns the note content with the lines between the
// first heading titled title and the next heading replaced by lines.
// Blank lines closing the old section are kept. Everything else is
// returned unchanged, and the result always ends with a newline. Lines
// are written with the line ending of the body, CRLF if it has any.
func (d *Document) ReplaceSection(title string, lines []string) ([]byte, error) {
	i, ok := d.find(title)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSectionNotFound, title)
	}

	start := d.headings[i].last + 1
	end := len(d.lines)
	if i+1 < len(d.headings) {
		end = d.headings[i+1].first
	}
	start = min(start, end)

	trailing := 0
	for j := end - 1; j >= start && strings.TrimSpace(d.lines[j]) == ""; j-- {
		trailing++
	}

	out := make([]string, 0, len(d.lines)-(end-start)+len(lines)+trailing)
	out = append(out, d.lines[:start]...)
	out = append(out, lines...)
	for range trailing {
		out = append(out, "")
	}
	out = append(out, d.lines[end:]...)

	var buf bytes.Buffer
	buf.Write(d.frontMatter)
	buf.WriteString(strings.Join(out, d.newline))
	buf.WriteString(d.newline)
	return buf.Bytes(), nil
}

func (d *Document) find(title string) (int, bool) {
	want := strings.TrimSpace(title)
	for i, h := range d.headings {
		if strings.EqualFold(h.title, want) {
			return i, true
		}
	}
	return 0, false
}

func (d *Document) collectHeadings() []heading {
	var out []heading
	searchFrom := 0
	for n := d.root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		lines := h.Lines()
		if lines.Len() == 0 {
			// Empty ATX heading such as "##": goldmark records no segment.
			line := d.findEmptyHeading(searchFrom)
			out = append(out, heading{node: h, first: line, last: line})
			searchFrom = line + 1
			continue
		}
		first := d.lineOf(lines.At(0).Start)
		last := d.lineOf(lines.At(lines.Len() - 1).Start)
		if !isATX(d.lineAt(first)) {
			last++ // setext underline
		}
		parts := make([]string, 0, lines.Len())
		for j := 0; j < lines.Len(); j++ {
			seg := lines.At(j)
			parts = append(parts, strings.TrimSpace(string(seg.Value(d.body))))
		}
		out = append(out, heading{
			title: strings.Join(parts, " "),
			node:  h,
			first: first,
			last:  min(last, len(d.lines)-1),
		})
		searchFrom = last + 1
	}
	return out
}

func (d *Document) itemText(li ast.Node) string {
	block := li.FirstChild()
	if block == nil {
		return ""
	}
	switch block.(type) {
	case *ast.TextBlock, *ast.Paragraph:
	default:
		return ""
	}
	lines := block.Lines()
	parts := make([]string, 0, lines.Len())
	for j := 0; j < lines.Len(); j++ {
		seg := lines.At(j)
		if s := strings.TrimSpace(string(seg.Value(d.body))); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// lineOf returns the line index of a byte offset into the body.
func (d *Document) lineOf(offset int) int {
	return bytes.Count(d.body[:min(offset, len(d.body))], []byte("\n"))
}

func (d *Document) lineAt(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return d.lines[i]
}

func (d *Document) findEmptyHeading(from int) int {
	for i := from; i < len(d.lines); i++ {
		if isATX(d.lines[i]) && strings.Trim(d.lines[i], "# \t") == "" {
			return i
		}
	}
	return len(d.lines)
}

// isATX reports whether line opens an ATX heading.
func isATX(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
	if level == 0 || level > 6 {
		return false
	}
	rest := trimmed[level:]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// SplitFrontMatter separates a leading "---" YAML block from the body.
// The returned front matter includes both delimiter lines.
func SplitFrontMatter(content []byte) (front, body []byte) {
	first, rest, ok := cutLine(content)
	if !ok || strings.TrimRight(string(first), "\r") != "---" {
		return nil, content
	}
	offset := len(content) - len(rest)
	for len(rest) > 0 {
		line, next, _ := cutLine(rest)
		offset += len(rest) - len(next)
		if l := strings.TrimRight(string(line), "\r"); l == "---" || l == "..." {
			return content[:offset], content[offset:]
		}
		rest = next
	}
	return nil, content
}

// cutLine splits b after its first newline. ok is false if b has none.
func cutLine(b []byte) (line, rest []byte, ok bool) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return b, nil, false
	}
	return b[:i], b[i+1:], true
}
