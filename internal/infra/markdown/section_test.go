package markdown

import (
	"testing"

	"github.com/runoshun/blockary/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const faultyNote = `
# Some Title
## Some other section
` + "```clojure" + `
(+ 1 2)
` + "```" + `

` + "```tasks" + `
some other suprising content %#$@
## Time Blocks
like $(exit 0)
` + "```" + `
bla foo
   ### Some wrong indent
## Time Blocks
- 08:00 - 11:00 This
- 11:00 - 11:30 should
- 14:00 - 15:00 appear
- So should this
# Notes
- 10:00 - 11:00 What is this?
`

func TestSectionItems_FaultyElements(t *testing.T) {
	items, err := Parse([]byte(faultyNote)).SectionItems("Time Blocks")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"08:00 - 11:00 This",
		"11:00 - 11:30 should",
		"14:00 - 15:00 appear",
		"So should this",
	}, items)
}

func TestReplaceSection_FaultyElements(t *testing.T) {
	out, err := Parse([]byte(faultyNote)).ReplaceSection("Time Blocks", []string{
		"- 10:00 - 11:00 (Personal) -hidden-",
		"- 11:00 - 12:00 Meeting",
	})
	require.NoError(t, err)

	want := `
# Some Title
## Some other section
` + "```clojure" + `
(+ 1 2)
` + "```" + `

` + "```tasks" + `
some other suprising content %#$@
## Time Blocks
like $(exit 0)
` + "```" + `
bla foo
   ### Some wrong indent
## Time Blocks
- 10:00 - 11:00 (Personal) -hidden-
- 11:00 - 12:00 Meeting
# Notes
- 10:00 - 11:00 What is this?
`
	assert.Equal(t, want, string(out))
}

func TestSectionItems_CaseInsensitiveTitle(t *testing.T) {
	doc := Parse([]byte("## time BLOCKS ##\n- a\n- b\n"))
	items, err := doc.SectionItems("Time Blocks")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)
	assert.True(t, doc.HasSection("time blocks"))
}

func TestSectionItems_NotFound(t *testing.T) {
	doc := Parse([]byte("# Notes\n- a\n"))
	_, err := doc.SectionItems("Time Blocks")
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)
	assert.False(t, doc.HasSection("Time Blocks"))

	_, err = doc.ReplaceSection("Time Blocks", []string{"- x"})
	assert.ErrorIs(t, err, domain.ErrSectionNotFound)
}

func TestSectionItems_MarkupAndContinuation(t *testing.T) {
	doc := Parse([]byte(`## Time Blocks
- 07:30 - 08:00 talk to [[Lars]] about *this*
- 09:00 - 10:00 long
  continued line
- 10:00 - 11:00 parent
  - nested child

Some paragraph
- 11:00 - 12:00 second list
`))
	items, err := doc.SectionItems("Time Blocks")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"07:30 - 08:00 talk to [[Lars]] about *this*",
		"09:00 - 10:00 long continued line",
		"10:00 - 11:00 parent",
		"11:00 - 12:00 second list",
	}, items)
}

func TestSectionItems_Setext(t *testing.T) {
	doc := Parse([]byte("Time Blocks\n-----------\n- a\n\nNotes\n=====\n- b\n"))
	items, err := doc.SectionItems("Time Blocks")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, items)

	out, err := doc.ReplaceSection("Time Blocks", []string{"- c"})
	require.NoError(t, err)
	assert.Equal(t, "Time Blocks\n-----------\n- c\n\nNotes\n=====\n- b\n", string(out))
}

func TestReplaceSection_KeepsTrailingBlankLines(t *testing.T) {
	doc := Parse([]byte("# Day\n\n## Time Blocks\n- old\n\n\n## Notes\ntext"))
	out, err := doc.ReplaceSection("Time Blocks", []string{"- new 1", "- new 2"})
	require.NoError(t, err)
	assert.Equal(t, "# Day\n\n## Time Blocks\n- new 1\n- new 2\n\n\n## Notes\ntext\n", string(out))
}

func TestReplaceSection_KeepsCRLF(t *testing.T) {
	doc := Parse([]byte("# Day\r\n## time blocks\r\n- 08:00 - 09:00 A\r\n\r\n## Notes\r\ntext\r\n"))

	items, err := doc.SectionItems("Time Blocks")
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00 - 09:00 A"}, items)

	out, err := doc.ReplaceSection("Time Blocks", []string{"- 07:00 - 08:00 Z", "- 08:00 - 09:00 B"})
	require.NoError(t, err)
	assert.Equal(t, "# Day\r\n## time blocks\r\n- 07:00 - 08:00 Z\r\n- 08:00 - 09:00 B\r\n\r\n## Notes\r\ntext\r\n", string(out))

	same, err := Parse(out).ReplaceSection("Time Blocks", []string{"- 07:00 - 08:00 Z", "- 08:00 - 09:00 B"})
	require.NoError(t, err)
	assert.Equal(t, string(out), string(same))
}

func TestReplaceSection_AtEndOfFile(t *testing.T) {
	doc := Parse([]byte("# Day\n## Time Blocks\n"))
	out, err := doc.ReplaceSection("Time Blocks", []string{"- a"})
	require.NoError(t, err)
	assert.Equal(t, "# Day\n## Time Blocks\n- a\n", string(out))
}

func TestReplaceSection_EmptyHeadingEndsSection(t *testing.T) {
	doc := Parse([]byte("## Time Blocks\n- a\n##\nafter\n"))
	items, err := doc.SectionItems("Time Blocks")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, items)

	out, err := doc.ReplaceSection("Time Blocks", nil)
	require.NoError(t, err)
	assert.Equal(t, "## Time Blocks\n##\nafter\n", string(out))
}

func TestReplaceSection_OnlyFirstSection(t *testing.T) {
	doc := Parse([]byte("## Time Blocks\n- a\n## Time Blocks\n- b\n"))
	out, err := doc.ReplaceSection("Time Blocks", []string{"- x"})
	require.NoError(t, err)
	assert.Equal(t, "## Time Blocks\n- x\n## Time Blocks\n- b\n", string(out))
}

func TestFrontMatter(t *testing.T) {
	content := "---\ndate: 2025-11-12\ntitle: \"## Time Blocks\"\n---\n## Time Blocks\n- a\n"
	doc := Parse([]byte(content))

	assert.Equal(t, "date: 2025-11-12\ntitle: \"## Time Blocks\"\n", string(doc.FrontMatter()))

	items, err := doc.SectionItems("Time Blocks")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, items)

	out, err := doc.ReplaceSection("Time Blocks", []string{"- b"})
	require.NoError(t, err)
	assert.Equal(t, "---\ndate: 2025-11-12\ntitle: \"## Time Blocks\"\n---\n## Time Blocks\n- b\n", string(out))
}

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantFront string
		wantBody  string
	}{
		{"none", "# Title\n", "", "# Title\n"},
		{"simple", "---\na: 1\n---\nbody\n", "---\na: 1\n---\n", "body\n"},
		{"dots close", "---\na: 1\n...\nbody", "---\na: 1\n...\n", "body"},
		{"crlf", "---\r\na: 1\r\n---\r\nbody", "---\r\na: 1\r\n---\r\n", "body"},
		{"unclosed", "---\na: 1\nbody\n", "", "---\na: 1\nbody\n"},
		{"closing at eof", "---\na: 1\n---", "---\na: 1\n---", ""},
		{"thematic break later", "text\n---\nmore\n", "", "text\n---\nmore\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			front, body := SplitFrontMatter([]byte(tt.content))
			assert.Equal(t, tt.wantFront, string(front))
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}
