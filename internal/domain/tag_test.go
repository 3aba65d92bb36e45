package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{"single segment", "@chores", [][]string{{"chores"}}},
		{"two segments", "@personal/tasks", [][]string{{"personal", "tasks"}}},
		{"brackets included", "@p/[[PROJ Vancouver]]", [][]string{{"p", "[[PROJ Vancouver]]"}}},
		{"parenthesis included", "@p/(Hi World)/Derp", [][]string{{"p", "(Hi World)", "Derp"}}},
		{"complex mixed", "@[[Deep/Space]]/(Nested Level)/simple", [][]string{{"[[Deep/Space]]", "(Nested Level)", "simple"}}},
		{"multiple tags", "Check @tag1 and @p/[[Project X]]", [][]string{{"tag1"}, {"p", "[[Project X]]"}}},
		{"plain segment stops at space", "@p/Project X", [][]string{{"p", "Project"}}},
		{"adjacent tags", "@a@b", [][]string{{"a"}, {"b"}}},
		{"empty segments dropped", "@a//b", [][]string{{"a", "b"}}},
		{"trailing slash", "@a/ rest", [][]string{{"a"}}},
		{"unicode segment", "@büro/Ärger", [][]string{{"büro", "Ärger"}}},
		{"mail address", "mail me@example.com", [][]string{{"example.com"}}},
		{"at followed by space", "meet @ noon", nil},
		{"at at end", "trailing @", nil},
		{"no tags", "just text", nil},
		{"slash only", "@/", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := ParseTags(tt.input)
			var got [][]string
			for _, tag := range tags {
				got = append(got, tag.Segments)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTags_UnclosedSpanRunsToEnd(t *testing.T) {
	tags := ParseTags("@p/[[open span")
	if assert.Len(t, tags, 1) {
		assert.Equal(t, []string{"p", "[[open span"}, tags[0].Segments)
	}

	tags = ParseTags("@(open paren")
	if assert.Len(t, tags, 1) {
		assert.Equal(t, []string{"(open paren"}, tags[0].Segments)
	}
}

func TestTag_Segment(t *testing.T) {
	tag := NewTag("personal", "tasks")

	seg, ok := tag.Segment(0)
	assert.True(t, ok)
	assert.Equal(t, "personal", seg)

	seg, ok = tag.Segment(1)
	assert.True(t, ok)
	assert.Equal(t, "tasks", seg)

	_, ok = tag.Segment(2)
	assert.False(t, ok)

	_, ok = tag.Segment(-1)
	assert.False(t, ok)
}

func TestTag_StringAndEqual(t *testing.T) {
	tag := NewTag("p", "[[Project X]]")
	assert.Equal(t, "@p/[[Project X]]", tag.String())
	assert.True(t, tag.Equal(NewTag("p", "[[Project X]]")))
	assert.False(t, tag.Equal(NewTag("p")))

	reparsed := ParseTags(tag.String())
	if assert.Len(t, reparsed, 1) {
		assert.True(t, tag.Equal(reparsed[0]))
	}
}
